// Package pacer turns irregular wall-clock ticks into a steady count of
// playback advances at a target frame rate.
//
// Elapsed time is accumulated and drained one frame interval at a time, so a
// slow draw produces a catch-up burst on the next tick instead of slowing the
// animation, and drift stays below one interval.
package pacer

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidRate is returned by New for a non-positive or non-finite rate.
var ErrInvalidRate = errors.New("frame rate must be greater than 0")

// Pacer accumulates elapsed time and converts it into advance counts.
type Pacer struct {
	interval    time.Duration
	accumulator time.Duration
	last        time.Time
}

// New returns a pacer targeting fps advances per second, measuring from now.
func New(fps float64, now time.Time) (*Pacer, error) {
	if math.IsNaN(fps) || math.IsInf(fps, 0) || fps <= 0 {
		return nil, fmt.Errorf("fps %v: %w", fps, ErrInvalidRate)
	}
	interval := time.Duration(float64(time.Second) / fps)
	if interval <= 0 {
		return nil, fmt.Errorf("fps %v: interval rounds to zero: %w", fps, ErrInvalidRate)
	}
	return &Pacer{interval: interval, last: now}, nil
}

// Tick adds the time since the previous measurement and returns how many
// frame intervals are now due. The residual stays in [0, Interval()).
func (p *Pacer) Tick(now time.Time) int {
	if elapsed := now.Sub(p.last); elapsed > 0 {
		p.accumulator += elapsed
	}
	p.last = now

	n := 0
	for p.accumulator >= p.interval {
		p.accumulator -= p.interval
		n++
	}
	return n
}

// Interval returns the duration of one frame.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Residual returns the accumulated time not yet converted into a frame.
func (p *Pacer) Residual() time.Duration {
	return p.accumulator
}
