// Package perf measures frame rate and turns it into a particle budget.
package perf

import (
	"math"
	"time"

	"ocean-fill/internal/core"
)

const (
	// DefaultSamples is the rolling window length of a Monitor.
	DefaultSamples = 60
	// OptimisticFPS is reported before any frame has been measured.
	OptimisticFPS = 60
)

// FPSSource reports a frame rate.
type FPSSource interface {
	CurrentFPS() int
}

// Monitor keeps a rolling average of the instantaneous frame rate derived
// from successive Update timestamps.
type Monitor struct {
	samples *core.Ring[float64]
	sum     float64
	last    time.Time
	mean    float64
}

// NewMonitor creates a Monitor averaging over the given number of samples.
func NewMonitor(samples int) *Monitor {
	if samples <= 0 {
		samples = DefaultSamples
	}
	return &Monitor{samples: core.NewRing[float64](samples)}
}

// Update records a frame presented at now. The first call only establishes
// the baseline; calls that do not move time forward are ignored.
func (m *Monitor) Update(now time.Time) {
	if m.last.IsZero() {
		m.last = now
		return
	}
	delta := now.Sub(m.last)
	if delta <= 0 {
		return
	}
	m.last = now

	fps := 1000 / (float64(delta) / float64(time.Millisecond))
	if evicted, ok := m.samples.Push(fps); ok {
		m.sum -= evicted
	}
	m.sum += fps
	m.mean = m.sum / float64(m.samples.Len())
}

// CurrentFPS returns the rounded rolling mean, or OptimisticFPS when nothing
// has been measured yet.
func (m *Monitor) CurrentFPS() int {
	if m.samples.Len() == 0 {
		return OptimisticFPS
	}
	return int(math.Round(m.mean))
}

// SampleCount reports how many samples are in the window.
func (m *Monitor) SampleCount() int { return m.samples.Len() }

// Reset forgets every sample and the baseline timestamp.
func (m *Monitor) Reset() {
	m.samples.Clear(nil)
	m.sum = 0
	m.mean = 0
	m.last = time.Time{}
}
