package progress

import (
	"time"

	"ocean-fill/internal/core"
)

// DefaultSaveInterval spaces out routine saves.
const DefaultSaveInterval = time.Second

// Saver debounces writes: state changes mark it dirty and Maybe writes at
// most once per interval. Flush writes a dirty record immediately.
type Saver struct {
	mgr      *Manager
	clock    core.Clock
	interval time.Duration

	dirty    bool
	last     time.Time
	saves    int
	failures int
}

// NewSaver creates a Saver. A nil clock uses the wall clock and a negative
// interval falls back to DefaultSaveInterval.
func NewSaver(mgr *Manager, clock core.Clock, interval time.Duration) *Saver {
	if clock == nil {
		clock = core.SystemClock{}
	}
	if interval < 0 {
		interval = DefaultSaveInterval
	}
	return &Saver{mgr: mgr, clock: clock, interval: interval}
}

// MarkDirty records that the persisted state is out of date.
func (s *Saver) MarkDirty() { s.dirty = true }

// Dirty reports whether a write is pending.
func (s *Saver) Dirty() bool { return s.dirty }

// Maybe writes rec when it is dirty and the interval has elapsed since the
// previous attempt. It reports whether a write was attempted.
func (s *Saver) Maybe(rec Record) (bool, error) {
	if !s.dirty {
		return false, nil
	}
	if !s.last.IsZero() && s.clock.Now().Sub(s.last) < s.interval {
		return false, nil
	}
	return true, s.save(rec)
}

// Flush writes rec immediately if it is dirty.
func (s *Saver) Flush(rec Record) (bool, error) {
	if !s.dirty {
		return false, nil
	}
	return true, s.save(rec)
}

func (s *Saver) save(rec Record) error {
	s.last = s.clock.Now()
	if err := s.mgr.Save(rec); err != nil {
		s.failures++
		return err
	}
	s.dirty = false
	s.saves++
	return nil
}

// Saves counts successful writes.
func (s *Saver) Saves() int { return s.saves }

// Failures counts failed writes.
func (s *Saver) Failures() int { return s.failures }
