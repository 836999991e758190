// Package ocean simulates droplets falling into a rising body of water.
//
// The Engine is driven by a single frame loop: SpawnDroplet for input and
// Tick once per frame. It is not safe for concurrent use.
package ocean

import (
	"fmt"
	"math"

	"ocean-fill/internal/core"
	"ocean-fill/internal/pool"
)

// MaxLevel is a completely filled ocean.
const MaxLevel = 100

// levelPrecision snaps the water level after each increment so that repeated
// fractional increments land exactly on round values (125 × 0.8 == 100).
const levelPrecision = 1e6

// Engine owns the droplets, splashes and water level.
type Engine struct {
	cfg Config

	level      float64
	collisions int
	limit      int

	droplets []*Droplet
	splashes *core.Ring[*Splash]

	dropletPool *pool.Pool[Droplet]
	splashPool  *pool.Pool[Splash]

	rng *core.RNG
}

// New returns an Engine with an empty ocean.
func New(cfg Config) *Engine {
	cfg = cfg.sanitize()
	return &Engine{
		cfg:         cfg,
		limit:       cfg.MaxDroplets,
		droplets:    make([]*Droplet, 0, cfg.MaxDroplets),
		splashes:    core.NewRing[*Splash](cfg.MaxSplashes),
		dropletPool: pool.New[Droplet](nil, cfg.PoolRetention),
		splashPool:  pool.New[Splash](nil, cfg.PoolRetention),
		rng:         core.NewRNG(cfg.Seed),
	}
}

// Config returns the sanitized configuration in use.
func (e *Engine) Config() Config { return e.cfg }

// Size reports the canvas dimensions.
func (e *Engine) Size() core.Size { return core.Size{W: e.cfg.Width, H: e.cfg.Height} }

// SpawnDroplet drops a new droplet at (x, y) in canvas space. It reports false
// and does nothing when the droplet limit is reached or the position is not
// a finite number.
func (e *Engine) SpawnDroplet(x, y float64) bool {
	if len(e.droplets) >= e.limit {
		return false
	}
	if !finite(x) || !finite(y) {
		return false
	}
	d := e.dropletPool.Acquire()
	*d = Droplet{
		X:    x,
		Y:    y,
		VX:   e.rng.Range(-e.cfg.JitterVX, e.cfg.JitterVX),
		Size: e.cfg.DropletSize,
		Life: 1,
	}
	e.droplets = append(e.droplets, d)
	return true
}

// Tick advances the simulation by deltaMs milliseconds. Negative or NaN
// deltas count as zero and anything above MaxDeltaMs is clamped.
func (e *Engine) Tick(deltaMs float64) {
	dt := e.clampDelta(deltaMs)
	e.updateSplashes(dt)
	e.updateDroplets(dt)
}

func (e *Engine) clampDelta(dt float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	return math.Min(dt, e.cfg.MaxDeltaMs)
}

func (e *Engine) updateDroplets(dt float64) {
	surface := e.SurfaceY()
	cullY := float64(e.cfg.Height) + e.cfg.CullMargin
	lifeStep := dt / e.cfg.DropletLifetimeMs

	kept := e.droplets[:0]
	for _, d := range e.droplets {
		d.VY += e.cfg.Gravity * dt
		d.X += d.VX * dt
		d.Y += d.VY * dt
		d.Life -= lifeStep

		if !d.Collided && d.Y >= surface {
			d.Collided = true
			e.raise()
			e.CreateSplash(d.X, surface)
			surface = e.SurfaceY()
		}

		if d.Life <= 0 || d.Y > cullY {
			e.dropletPool.Release(d)
			continue
		}
		kept = append(kept, d)
	}
	for i := len(kept); i < len(e.droplets); i++ {
		e.droplets[i] = nil
	}
	e.droplets = kept
}

func (e *Engine) updateSplashes(dt float64) {
	step := dt / e.cfg.SplashLifetimeMs
	e.splashes.Do(func(s *Splash) {
		s.Radius = math.Max(0, math.Min(s.MaxRadius, s.Radius+s.Speed*dt))
		s.Opacity = math.Max(0, s.Opacity-step)
		s.Life -= step
	})
	e.splashes.Filter((*Splash).alive, e.splashPool.Release)
}

func (e *Engine) raise() {
	e.collisions++
	next := math.Round((e.level+e.cfg.DropletIncrement)*levelPrecision) / levelPrecision
	e.level = math.Min(MaxLevel, next)
}

// CreateSplash starts a splash at (x, y). When the splash limit is reached
// the oldest splash is evicted first.
func (e *Engine) CreateSplash(x, y float64) {
	s := e.splashPool.Acquire()
	*s = Splash{
		X:         x,
		Y:         y,
		MaxRadius: e.cfg.SplashMaxRadius,
		Speed:     e.cfg.SplashSpeed,
		Opacity:   1,
		Life:      1,
	}
	if evicted, ok := e.splashes.Push(s); ok {
		e.splashPool.Release(evicted)
	}
}

// Reset empties the ocean and restarts the jitter sequence from the seed.
func (e *Engine) Reset() {
	for _, d := range e.droplets {
		e.dropletPool.Release(d)
	}
	clear(e.droplets)
	e.droplets = e.droplets[:0]
	e.splashes.Clear(e.splashPool.Release)
	e.level = 0
	e.collisions = 0
	e.rng.Seed(e.cfg.Seed)
}

// WaterLevel returns the fill percentage in [0, 100].
func (e *Engine) WaterLevel() float64 { return e.level }

// SetWaterLevel restores a saved level, clamped to [0, 100]. NaN is ignored.
func (e *Engine) SetWaterLevel(level float64) {
	if math.IsNaN(level) {
		return
	}
	e.level = math.Max(0, math.Min(MaxLevel, level))
}

// SurfaceY is the canvas y coordinate of the water surface.
func (e *Engine) SurfaceY() float64 {
	usable := float64(e.cfg.Height - e.cfg.SurfaceMargin)
	return float64(e.cfg.Height) - (e.level/MaxLevel)*usable
}

// Collisions counts droplets that reached the surface since the last Reset.
func (e *Engine) Collisions() int { return e.collisions }

// DropletCount reports the number of live droplets.
func (e *Engine) DropletCount() int { return len(e.droplets) }

// SplashCount reports the number of live splashes.
func (e *Engine) SplashCount() int { return e.splashes.Len() }

// DropletLimit is the current concurrent droplet cap.
func (e *Engine) DropletLimit() int { return e.limit }

// SetDropletLimit changes the droplet cap within [1, MaxDroplets]. Droplets
// already in flight are not removed.
func (e *Engine) SetDropletLimit(n int) {
	e.limit = max(1, min(n, e.cfg.MaxDroplets))
}

// AppendDroplets appends a copy of every live droplet to dst.
func (e *Engine) AppendDroplets(dst []Droplet) []Droplet {
	for _, d := range e.droplets {
		dst = append(dst, *d)
	}
	return dst
}

// AppendSplashes appends a copy of every live splash to dst, oldest first.
func (e *Engine) AppendSplashes(dst []Splash) []Splash {
	e.splashes.Do(func(s *Splash) { dst = append(dst, *s) })
	return dst
}

// ProgressText formats a water level for display and screen readers.
func ProgressText(level float64) string {
	if math.IsNaN(level) {
		level = 0
	}
	pct := int(math.Floor(math.Max(0, math.Min(MaxLevel, level))))
	return fmt.Sprintf("Ocean filled: %d%%", pct)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
