package vterm

import (
	"fmt"
	"strings"

	"github.com/hinshun/vt10x"
)

// Cell is one grid position. Colors below 256 are palette indexes; anything
// else renders with the host terminal's defaults.
type Cell struct {
	Char rune
	FG   uint32
	BG   uint32
}

// Screen is an immutable copy of the terminal grid, row-major.
type Screen struct {
	Rows, Cols       int
	Cells            []Cell
	CursorX, CursorY int
	CursorVisible    bool
}

// Cell returns the cell at column x, row y, or a blank cell out of range.
func (s Screen) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= s.Cols || y >= s.Rows {
		return Cell{FG: uint32(vt10x.DefaultFG), BG: uint32(vt10x.DefaultBG)}
	}
	return s.Cells[y*s.Cols+x]
}

// Line returns row y as plain text with trailing blanks trimmed.
func (s Screen) Line(y int) string {
	var b strings.Builder
	for x := 0; x < s.Cols; x++ {
		b.WriteRune(printable(s.Cell(x, y).Char))
	}
	return strings.TrimRight(b.String(), " ")
}

// String returns the grid as plain text, one line per row.
func (s Screen) String() string {
	lines := make([]string, s.Rows)
	for y := range lines {
		lines[y] = s.Line(y)
	}
	return strings.Join(lines, "\n")
}

// Render returns the grid as lines of text with SGR color sequences, one
// line per row, each exactly Cols cells wide. Attributes are reset at the end
// of every line so rows can be composed independently.
func (s Screen) Render() string {
	var b strings.Builder
	defFG, defBG := uint32(vt10x.DefaultFG), uint32(vt10x.DefaultBG)

	for y := 0; y < s.Rows; y++ {
		lastFG, lastBG := defFG, defBG
		for x := 0; x < s.Cols; x++ {
			c := s.Cells[y*s.Cols+x]
			if c.FG != lastFG || c.BG != lastBG {
				b.WriteString("\x1b[0m")
				if c.FG != defFG && c.FG < 256 {
					fmt.Fprintf(&b, "\x1b[38;5;%dm", c.FG)
				}
				if c.BG != defBG && c.BG < 256 {
					fmt.Fprintf(&b, "\x1b[48;5;%dm", c.BG)
				}
				lastFG, lastBG = c.FG, c.BG
			}
			b.WriteRune(printable(c.Char))
		}
		if lastFG != defFG || lastBG != defBG {
			b.WriteString("\x1b[0m")
		}
		if y < s.Rows-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func printable(r rune) rune {
	if r < ' ' {
		return ' '
	}
	return r
}
