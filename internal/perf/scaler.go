package perf

import (
	"math"
	"time"

	"ocean-fill/internal/core"
)

// ScalerConfig tunes a Scaler.
type ScalerConfig struct {
	// Cooldown is the minimum spacing between two evaluations.
	Cooldown time.Duration
	// MinLevel is the floor for the performance level.
	MinLevel float64
}

// DefaultScalerConfig returns a 2s cooldown and a 0.3 floor.
func DefaultScalerConfig() ScalerConfig {
	return ScalerConfig{Cooldown: 2 * time.Second, MinLevel: 0.3}
}

// Scaler maps the observed frame rate to a level in [MinLevel, 1]. It drops
// quickly when frames are slow and recovers in small steps, and it never
// changes more than once per cooldown window.
type Scaler struct {
	clock      core.Clock
	cfg        ScalerConfig
	level      float64
	lastAdjust time.Time
	adjusted   bool
}

// NewScaler creates a Scaler at full level. A nil clock uses the wall clock.
func NewScaler(clock core.Clock, cfg ScalerConfig) *Scaler {
	if clock == nil {
		clock = core.SystemClock{}
	}
	if cfg.Cooldown < 0 {
		cfg.Cooldown = 0
	}
	if cfg.MinLevel <= 0 || cfg.MinLevel > 1 {
		cfg.MinLevel = DefaultScalerConfig().MinLevel
	}
	return &Scaler{clock: clock, cfg: cfg, level: 1}
}

// Adjust re-evaluates the level from src unless the last evaluation happened
// less than a cooldown ago, in which case the current level is returned
// untouched. Every evaluation restarts the cooldown, including ones where the
// frame rate sits in the 30–50 dead band and the level stays the same.
func (s *Scaler) Adjust(src FPSSource) float64 {
	now := s.clock.Now()
	if s.adjusted && now.Sub(s.lastAdjust) < s.cfg.Cooldown {
		return s.level
	}
	s.adjusted = true
	s.lastAdjust = now

	fps := src.CurrentFPS()
	switch {
	case fps < 20:
		s.level *= 0.6
	case fps < 30:
		s.level *= 0.8
	case fps > 50 && s.level < 1:
		s.level *= 1.1
	}
	s.level = math.Max(s.cfg.MinLevel, math.Min(1, s.level))
	return s.level
}

// Level returns the current performance level.
func (s *Scaler) Level() float64 { return s.level }

// ScaledValue scales base by the level, never returning less than 1.
func (s *Scaler) ScaledValue(base int) int {
	v := int(math.Floor(float64(base) * s.level))
	if v < 1 {
		return 1
	}
	return v
}

// Reset restores full level and clears the cooldown.
func (s *Scaler) Reset() {
	s.level = 1
	s.adjusted = false
	s.lastAdjust = time.Time{}
}
