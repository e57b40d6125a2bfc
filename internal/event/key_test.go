package event

import "testing"

func TestDecodeKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"letters", "qj", []string{"q", "j"}},
		{"enter cr", "\r", []string{"enter"}},
		{"enter lf", "\n", []string{"enter"}},
		{"lone esc", "\x1b", []string{"esc"}},
		{"double esc", "\x1b\x1b", []string{"esc", "esc"}},
		{"ctrl c", "\x03", []string{"ctrl+c"}},
		{"tab", "\t", []string{"tab"}},
		{"backspace", "\x7f", []string{"backspace"}},
		{"arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []string{"up", "down", "right", "left"}},
		{"ss3 arrows", "\x1bOA\x1bOB", []string{"up", "down"}},
		{"home end", "\x1b[H\x1b[F\x1b[1~\x1b[4~", []string{"home", "end", "home", "end"}},
		{"paging", "\x1b[5~\x1b[6~", []string{"pgup", "pgdown"}},
		{"unknown csi dropped", "\x1b[200~x", []string{"x"}},
		{"modified arrow dropped", "\x1b[1;5Ak", []string{"k"}},
		{"alt letter", "\x1bq", []string{"q"}},
		{"utf8", "é", []string{"é"}},
		{"space", " ", []string{" "}},
		{"mixed", "k\x1b[Bq", []string{"k", "down", "q"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := DecodeKeys([]byte(tt.input))
			if len(keys) != len(tt.want) {
				t.Fatalf("DecodeKeys(%q) = %v, want %v", tt.input, keys, tt.want)
			}
			for i, k := range keys {
				if k.String() != tt.want[i] {
					t.Errorf("key %d = %q, want %q", i, k.String(), tt.want[i])
				}
			}
		})
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{TickEvent(), "tick"},
		{KeyEvent(CtrlKey('c')), "input ctrl+c"},
		{ResizeEvent(120, 40), "resize 120x40"},
		{Event{Kind: Kind(9)}, "kind(9)"},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
