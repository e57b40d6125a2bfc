// Package fps estimates the observed playback rate over a sliding one-second
// window. The value is for display only; pacing is handled by package pacer.
package fps

import (
	"fmt"
	"time"
)

// minSamples is the number of ticks a window must exceed before a rate is
// computed. Fewer samples give noisy estimates.
const minSamples = 2

// Meter counts ticks and publishes a rate once per completed window.
type Meter struct {
	count int
	start time.Time
	value float64
	ok    bool
}

// New returns a meter whose first window starts at now.
func New(now time.Time) *Meter {
	return &Meter{start: now}
}

// Tick records one frame at now. When more than a second has passed since the
// window started and more than minSamples frames were seen, the rate is
// stored and a new window begins.
func (m *Meter) Tick(now time.Time) {
	m.count++
	elapsed := now.Sub(m.start)
	if elapsed > time.Second && m.count > minSamples {
		m.value = float64(m.count) / elapsed.Seconds()
		m.ok = true
		m.count = 0
		m.start = now
	}
}

// Value returns the last computed rate and whether any window has completed.
func (m *Meter) Value() (float64, bool) {
	return m.value, m.ok
}

// String formats the last computed rate with two decimals, "0.00" if none.
func (m *Meter) String() string {
	return fmt.Sprintf("%.2f", m.value)
}
