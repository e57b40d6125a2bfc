package event

import "unicode/utf8"

// KeyCode identifies a key. Printable characters use KeyRune.
type KeyCode uint8

const (
	KeyNone KeyCode = iota
	KeyRune
	KeyEnter
	KeyEsc
	KeyTab
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown
	KeyCtrl // Rune holds the lowercase letter
)

var keyNames = map[KeyCode]string{
	KeyEnter:     "enter",
	KeyEsc:       "esc",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPgUp:      "pgup",
	KeyPgDown:    "pgdown",
}

// Key is a single key press.
type Key struct {
	Code KeyCode
	Rune rune
}

// RuneKey returns the key for a printable character.
func RuneKey(r rune) Key { return Key{Code: KeyRune, Rune: r} }

// CtrlKey returns the key for Ctrl plus a letter.
func CtrlKey(r rune) Key { return Key{Code: KeyCtrl, Rune: r} }

// String returns the key in the same notation as bubbletea key messages, so
// bubbles/key bindings match it ("q", "esc", "ctrl+c", "up").
func (k Key) String() string {
	switch k.Code {
	case KeyRune:
		if k.Rune == ' ' {
			return " "
		}
		return string(k.Rune)
	case KeyCtrl:
		return "ctrl+" + string(k.Rune)
	case KeyNone:
		return ""
	}
	return keyNames[k.Code]
}

// csiKeys maps the final byte of a parameterless CSI or SS3 sequence.
var csiKeys = map[byte]KeyCode{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

// tildeKeys maps the numeric parameter of "CSI n ~" sequences.
var tildeKeys = map[string]KeyCode{
	"1": KeyHome,
	"4": KeyEnd,
	"5": KeyPgUp,
	"6": KeyPgDown,
	"7": KeyHome,
	"8": KeyEnd,
}

// DecodeKeys parses a chunk of raw terminal input into key presses. A chunk
// that is exactly ESC is the Escape key; unknown sequences are dropped.
func DecodeKeys(data []byte) []Key {
	var keys []Key
	for i := 0; i < len(data); {
		b := data[i]
		switch {
		case b == 0x1b:
			k, n := decodeEscape(data[i:])
			if k.Code != KeyNone {
				keys = append(keys, k)
			}
			i += n
		case b == '\r' || b == '\n':
			keys = append(keys, Key{Code: KeyEnter})
			i++
		case b == '\t':
			keys = append(keys, Key{Code: KeyTab})
			i++
		case b == 0x7f || b == 0x08:
			keys = append(keys, Key{Code: KeyBackspace})
			i++
		case b >= 0x01 && b <= 0x1a:
			keys = append(keys, CtrlKey(rune('a'+b-1)))
			i++
		case b < 0x20:
			i++
		default:
			r, n := utf8.DecodeRune(data[i:])
			if r != utf8.RuneError {
				keys = append(keys, RuneKey(r))
			}
			i += n
		}
	}
	return keys
}

// decodeEscape decodes the sequence starting at data[0] == ESC and returns
// the key and the number of bytes consumed.
func decodeEscape(data []byte) (Key, int) {
	if len(data) == 1 {
		return Key{Code: KeyEsc}, 1
	}
	switch data[1] {
	case '[', 'O':
		// Parameters run until a final byte in 0x40..0x7e.
		j := 2
		for j < len(data) && (data[j] < 0x40 || data[j] > 0x7e) {
			j++
		}
		if j >= len(data) {
			return Key{}, len(data)
		}
		params, final := string(data[2:j]), data[j]
		if final == '~' {
			return Key{Code: tildeKeys[params]}, j + 1
		}
		if code, ok := csiKeys[final]; ok && (params == "" || params == "1") {
			return Key{Code: code}, j + 1
		}
		return Key{}, j + 1
	case 0x1b:
		// ESC ESC: the first one stands alone.
		return Key{Code: KeyEsc}, 1
	}
	// Alt+key is reported as the key itself.
	k := DecodeKeys(data[1:2])
	if len(k) == 0 {
		return Key{}, 2
	}
	return k[0], 2
}
