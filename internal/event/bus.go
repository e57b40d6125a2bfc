package event

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrChannelClosed is returned by Bus.Next once the producer has stopped and
// every queued event has been delivered.
var ErrChannelClosed = errors.New("event channel closed")

// Source is an input device.
type Source interface {
	// Poll waits at most timeout for the next input event. It returns false
	// when the timeout expired without input.
	Poll(timeout time.Duration) (Event, bool, error)
}

// Bus runs a producer goroutine that polls a Source with a timeout equal to
// the tick interval and emits a Tick whenever a full interval has passed.
// Events are delivered by Next in the order they were produced. The queue is
// unbounded: a stalled consumer accumulates events, nothing is dropped.
type Bus struct {
	src      Source
	tickRate time.Duration
	now      func() time.Time

	in   chan Event
	out  chan Event
	done chan struct{}
	once sync.Once

	mu    sync.Mutex
	cause error
}

// NewBus starts producing events from src with the given tick interval.
func NewBus(src Source, tickRate time.Duration) *Bus {
	b := newBus(src, tickRate, time.Now)
	b.start()
	return b
}

func newBus(src Source, tickRate time.Duration, now func() time.Time) *Bus {
	return &Bus{
		src:      src,
		tickRate: tickRate,
		now:      now,
		in:       make(chan Event),
		out:      make(chan Event),
		done:     make(chan struct{}),
	}
}

func (b *Bus) start() {
	go b.relay()
	go b.produce()
}

// Next blocks until an event is available. After the producer stops and the
// queue is drained it returns an error wrapping ErrChannelClosed.
func (b *Bus) Next() (Event, error) {
	ev, ok := <-b.out
	if !ok {
		if err := b.Err(); err != nil {
			return Event{}, fmt.Errorf("%w: %v", ErrChannelClosed, err)
		}
		return Event{}, ErrChannelClosed
	}
	return ev, nil
}

// Err returns the reason the producer stopped, if it failed.
func (b *Bus) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cause
}

// Close stops the producer. Pending events can still be read with Next.
func (b *Bus) Close() {
	b.once.Do(func() { close(b.done) })
}

func (b *Bus) fail(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cause == nil {
		b.cause = err
	}
}

// produce is the input and tick loop.
func (b *Bus) produce() {
	defer close(b.in)
	defer func() {
		if r := recover(); r != nil {
			b.fail(fmt.Errorf("event producer panic: %v", r))
			slog.Error("event producer crashed", "panic", r)
		}
	}()

	last := b.now()
	for {
		select {
		case <-b.done:
			return
		default:
		}

		timeout := b.tickRate - b.now().Sub(last)
		if timeout < 0 {
			timeout = 0
		}
		ev, ok, err := b.src.Poll(timeout)
		if err != nil {
			b.fail(fmt.Errorf("poll input: %w", err))
			slog.Error("event source failed", "err", err)
			return
		}
		if ok && !b.emit(ev) {
			return
		}

		if now := b.now(); now.Sub(last) >= b.tickRate {
			if !b.emit(TickEvent()) {
				return
			}
			last = now
		}
	}
}

func (b *Bus) emit(ev Event) bool {
	select {
	case b.in <- ev:
		return true
	case <-b.done:
		return false
	}
}

// relay moves events from the producer into an unbounded FIFO so that the
// producer never blocks on a slow consumer.
func (b *Bus) relay() {
	defer close(b.out)

	var queue []Event
	in := b.in
	for in != nil || len(queue) > 0 {
		var out chan Event
		var head Event
		if len(queue) > 0 {
			out = b.out
			head = queue[0]
		}
		select {
		case ev, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			queue = append(queue, ev)
		case out <- head:
			queue[0] = Event{}
			queue = queue[1:]
		}
	}
}
