// Package player reveals a recorded terminal byte stream to a virtual
// terminal one recorded frame at a time.
//
// A frame is one newline-terminated chunk of the recording. Each Advance
// appends the next frame to the decoded history and hands the whole history
// to the decoder, whose escape-sequence state depends on cumulative input.
package player

import (
	"bytes"

	"github.com/daviddao/vtplay/internal/vterm"
)

// Decoder interprets terminal output into a grid.
type Decoder interface {
	// Process interprets the complete output history.
	Process(stream []byte)
	Resize(rows, cols int)
	Snapshot() vterm.Screen
}

// Player is one playback session. It is not safe for concurrent use.
type Player struct {
	name      string
	content   []byte
	cursor    int
	buffer    []byte
	term      Decoder
	frames    int
	completed bool
}

// New returns a player for content. content is not modified.
func New(name string, content []byte, term Decoder) *Player {
	return &Player{
		name:    name,
		content: content,
		term:    term,
	}
}

// Advance feeds the next frame to the decoder and reports whether one was
// fed. When the content is exhausted the player completes instead and the
// decoder is left untouched. Advance on a completed player does nothing.
func (p *Player) Advance() bool {
	if p.completed {
		return false
	}
	line := p.nextLine()
	if len(line) == 0 {
		p.completed = true
		return false
	}
	p.buffer = append(p.buffer, line...)
	p.frames++
	p.term.Process(p.buffer)
	return true
}

// nextLine consumes bytes up to and including the next newline, or the rest
// of the content if there is none.
func (p *Player) nextLine() []byte {
	rest := p.content[p.cursor:]
	n := len(rest)
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		n = i + 1
	}
	p.cursor += n
	return rest[:n]
}

// Resize resizes the decoder in place without re-reading the content.
func (p *Player) Resize(rows, cols int) {
	p.term.Resize(rows, cols)
}

// Snapshot returns the decoder's current grid.
func (p *Player) Snapshot() vterm.Screen {
	return p.term.Snapshot()
}

// Completed reports whether the content has been exhausted.
func (p *Player) Completed() bool {
	return p.completed
}

// Buffer returns the history fed so far. Callers must not modify it.
func (p *Player) Buffer() []byte {
	return p.buffer
}

// Frames returns the number of frames fed to the decoder.
func (p *Player) Frames() int {
	return p.frames
}

// Progress returns the consumed and total byte counts.
func (p *Player) Progress() (consumed, total int) {
	return p.cursor, len(p.content)
}

// Name returns the asset name being played.
func (p *Player) Name() string {
	return p.name
}
