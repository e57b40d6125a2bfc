// Package event multiplexes terminal input and timer ticks into a single
// ordered stream consumed by the main loop.
package event

import "fmt"

// Kind distinguishes event categories.
type Kind uint8

const (
	Tick Kind = iota
	Input
	Resize
)

func (k Kind) String() string {
	switch k {
	case Tick:
		return "tick"
	case Input:
		return "input"
	case Resize:
		return "resize"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Event is one tick, key press, or terminal resize.
type Event struct {
	Kind   Kind
	Key    Key // Input
	Width  int // Resize
	Height int // Resize
}

// TickEvent returns a Tick event.
func TickEvent() Event { return Event{Kind: Tick} }

// KeyEvent returns an Input event for k.
func KeyEvent(k Key) Event { return Event{Kind: Input, Key: k} }

// ResizeEvent returns a Resize event for a terminal of width by height cells.
func ResizeEvent(width, height int) Event {
	return Event{Kind: Resize, Width: width, Height: height}
}

func (e Event) String() string {
	switch e.Kind {
	case Input:
		return "input " + e.Key.String()
	case Resize:
		return fmt.Sprintf("resize %dx%d", e.Width, e.Height)
	}
	return e.Kind.String()
}
