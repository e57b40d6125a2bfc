// Package vterm adapts github.com/hinshun/vt10x into the decoder used by the
// player: it interprets a byte stream of terminal control sequences into a
// character grid and exposes read-only snapshots of that grid.
package vterm

import (
	"github.com/hinshun/vt10x"
)

// resetSequence is RIS followed by SGR reset, cursor home and erase display.
// It clears the grid and the cursor but keeps the current size.
const resetSequence = "\x1bc\x1b[0m\x1b[H\x1b[2J"

// Terminal is a virtual terminal sized in rows and columns.
type Terminal struct {
	vt vt10x.Terminal
}

// New returns a terminal of the given size. Sizes below one are clamped.
func New(rows, cols int) *Terminal {
	rows, cols = clamp(rows), clamp(cols)
	return &Terminal{vt: vt10x.New(vt10x.WithSize(cols, rows))}
}

// Process interprets stream as the complete history of output written to the
// terminal. The emulator is reset first, so repeated calls with a growing
// history always yield the screen of the whole stream.
func (t *Terminal) Process(stream []byte) {
	_, _ = t.vt.Write([]byte(resetSequence))
	_, _ = t.vt.Write(stream)
}

// Resize changes the grid size in place, keeping already decoded cells.
func (t *Terminal) Resize(rows, cols int) {
	t.vt.Resize(clamp(cols), clamp(rows))
}

// Size returns the grid size as rows and columns.
func (t *Terminal) Size() (rows, cols int) {
	t.vt.Lock()
	defer t.vt.Unlock()
	cols, rows = t.vt.Size()
	return rows, cols
}

// Snapshot copies the current grid.
func (t *Terminal) Snapshot() Screen {
	t.vt.Lock()
	defer t.vt.Unlock()

	cols, rows := t.vt.Size()
	s := Screen{
		Rows:  rows,
		Cols:  cols,
		Cells: make([]Cell, rows*cols),
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			g := t.vt.Cell(x, y)
			s.Cells[y*cols+x] = Cell{Char: g.Char, FG: uint32(g.FG), BG: uint32(g.BG)}
		}
	}
	c := t.vt.Cursor()
	s.CursorX, s.CursorY = c.X, c.Y
	s.CursorVisible = t.vt.CursorVisible()
	return s
}

func clamp(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
