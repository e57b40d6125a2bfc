package event

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// TerminalSource reads key presses from a terminal in raw mode and reports
// size changes of the output terminal.
type TerminalSource struct {
	in     *os.File
	out    *os.File
	state  *term.State
	events chan Event
	errs   chan error
	stop   chan struct{}
	resize *resizeWatcher
}

// NewTerminalSource switches in to raw mode (when it is a terminal) and
// starts reading it. out is queried for the window size on resize.
func NewTerminalSource(in, out *os.File) (*TerminalSource, error) {
	s := &TerminalSource{
		in:     in,
		out:    out,
		events: make(chan Event, 256),
		errs:   make(chan error, 1),
		stop:   make(chan struct{}),
	}
	if fd := int(in.Fd()); term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return nil, fmt.Errorf("enter raw mode: %w", err)
		}
		s.state = state
	}
	s.resize = watchResize(s.emitSize, s.stop)
	go s.readLoop()
	return s, nil
}

// Size returns the current size of the output terminal, falling back to
// 80x24 when it cannot be determined.
func (s *TerminalSource) Size() (width, height int) {
	w, h, err := term.GetSize(int(s.out.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

// Poll implements Source.
func (s *TerminalSource) Poll(timeout time.Duration) (Event, bool, error) {
	select {
	case ev := <-s.events:
		return ev, true, nil
	case err := <-s.errs:
		return Event{}, false, err
	default:
	}
	if timeout <= 0 {
		return Event{}, false, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ev := <-s.events:
		return ev, true, nil
	case err := <-s.errs:
		return Event{}, false, err
	case <-timer.C:
		return Event{}, false, nil
	}
}

// Close restores the terminal mode and stops resize notifications.
func (s *TerminalSource) Close() error {
	select {
	case <-s.stop:
		return nil
	default:
	}
	close(s.stop)
	if s.resize != nil {
		s.resize.close()
	}
	if s.state != nil {
		return term.Restore(int(s.in.Fd()), s.state)
	}
	return nil
}

func (s *TerminalSource) emitSize() {
	w, h := s.Size()
	s.send(ResizeEvent(w, h))
}

func (s *TerminalSource) send(ev Event) {
	select {
	case s.events <- ev:
	case <-s.stop:
	}
}

// readLoop blocks on the input file. It stays blocked in Read after Close;
// the process exits shortly after in practice.
func (s *TerminalSource) readLoop() {
	buf := make([]byte, 256)
	for {
		n, err := s.in.Read(buf)
		if n > 0 {
			for _, k := range DecodeKeys(buf[:n]) {
				s.send(KeyEvent(k))
			}
		}
		if err != nil {
			if err == io.EOF {
				err = fmt.Errorf("input closed: %w", err)
			}
			select {
			case s.errs <- err:
			case <-s.stop:
			}
			return
		}
	}
}
