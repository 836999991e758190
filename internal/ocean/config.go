package ocean

import (
	"math"
	"strconv"
)

// Config holds the canvas geometry and every physics tunable of the engine.
// Times are in milliseconds, speeds in px/ms and accelerations in px/ms².
type Config struct {
	Width  int
	Height int
	// SurfaceMargin is reserved at the top of the canvas; the water never
	// rises into it.
	SurfaceMargin int

	Seed int64

	MaxDroplets   int
	MaxSplashes   int
	PoolRetention int

	Gravity           float64
	JitterVX          float64
	DropletSize       float64
	DropletLifetimeMs float64
	CullMargin        float64
	DropletIncrement  float64

	SplashMaxRadius  float64
	SplashSpeed      float64
	SplashLifetimeMs float64

	MaxDeltaMs float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:             800,
		Height:            600,
		Seed:              1,
		MaxDroplets:       10,
		MaxSplashes:       5,
		PoolRetention:     50,
		Gravity:           0.0012,
		JitterVX:          0.04,
		DropletSize:       6,
		DropletLifetimeMs: 4000,
		CullMargin:        50,
		DropletIncrement:  0.8,
		SplashMaxRadius:   30,
		SplashSpeed:       0.08,
		SplashLifetimeMs:  600,
		MaxDeltaMs:        33,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	setInt := func(key string, dst *int, min int) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed >= min {
				*dst = parsed
			}
		}
	}
	setFloat := func(key string, dst *float64, min float64) {
		if v, ok := cfg[key]; ok {
			parsed, err := strconv.ParseFloat(v, 64)
			if err == nil && !math.IsInf(parsed, 0) && parsed >= min {
				*dst = parsed
			}
		}
	}

	setInt("w", &c.Width, 1)
	setInt("h", &c.Height, 1)
	setInt("surface_margin", &c.SurfaceMargin, 0)
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	setInt("max_droplets", &c.MaxDroplets, 1)
	setInt("max_splashes", &c.MaxSplashes, 1)
	setInt("pool_retention", &c.PoolRetention, 1)
	setFloat("gravity", &c.Gravity, 0)
	setFloat("jitter_vx", &c.JitterVX, 0)
	setFloat("droplet_size", &c.DropletSize, 0)
	setFloat("droplet_lifetime_ms", &c.DropletLifetimeMs, 1)
	setFloat("cull_margin", &c.CullMargin, 0)
	setFloat("droplet_increment", &c.DropletIncrement, 0)
	setFloat("splash_max_radius", &c.SplashMaxRadius, 0)
	setFloat("splash_speed", &c.SplashSpeed, 0)
	setFloat("splash_lifetime_ms", &c.SplashLifetimeMs, 1)
	setFloat("max_delta_ms", &c.MaxDeltaMs, 1)

	if c.SurfaceMargin >= c.Height {
		c.SurfaceMargin = 0
	}
	return c
}

// sanitize repairs values that would break the simulation when a Config is
// built by hand rather than through DefaultConfig or FromMap.
func (c Config) sanitize() Config {
	d := DefaultConfig()
	for _, f := range []struct {
		v   *float64
		def float64
	}{
		{&c.Gravity, d.Gravity},
		{&c.JitterVX, d.JitterVX},
		{&c.DropletSize, d.DropletSize},
		{&c.DropletLifetimeMs, d.DropletLifetimeMs},
		{&c.CullMargin, d.CullMargin},
		{&c.DropletIncrement, d.DropletIncrement},
		{&c.SplashMaxRadius, d.SplashMaxRadius},
		{&c.SplashSpeed, d.SplashSpeed},
		{&c.SplashLifetimeMs, d.SplashLifetimeMs},
		{&c.MaxDeltaMs, d.MaxDeltaMs},
	} {
		if math.IsNaN(*f.v) || math.IsInf(*f.v, 0) {
			*f.v = f.def
		}
	}
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.SurfaceMargin < 0 || c.SurfaceMargin >= c.Height {
		c.SurfaceMargin = 0
	}
	if c.MaxDroplets <= 0 {
		c.MaxDroplets = d.MaxDroplets
	}
	if c.MaxSplashes <= 0 {
		c.MaxSplashes = d.MaxSplashes
	}
	if c.PoolRetention <= 0 {
		c.PoolRetention = d.PoolRetention
	}
	if c.DropletLifetimeMs <= 0 {
		c.DropletLifetimeMs = d.DropletLifetimeMs
	}
	if c.SplashLifetimeMs <= 0 {
		c.SplashLifetimeMs = d.SplashLifetimeMs
	}
	if c.MaxDeltaMs <= 0 {
		c.MaxDeltaMs = d.MaxDeltaMs
	}
	if c.SplashMaxRadius < 0 {
		c.SplashMaxRadius = 0
	}
	return c
}
