package ocean

import "ocean-fill/internal/core"

// Parameters reports the tunables and live counters for the HUD panel.
func (e *Engine) Parameters() core.ParameterSnapshot {
	c := e.cfg
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Canvas",
			Params: []core.Parameter{
				core.IntParam("w", "Width", c.Width),
				core.IntParam("h", "Height", c.Height),
				core.IntParam("surface_margin", "Surface margin", c.SurfaceMargin),
			},
		},
		{
			Name: "Droplets",
			Params: []core.Parameter{
				core.IntParam("droplets", "Active", len(e.droplets)),
				core.IntParam("droplet_limit", "Limit", e.limit),
				core.IntParam("max_droplets", "Max droplets", c.MaxDroplets),
				core.FloatParam("gravity", "Gravity", c.Gravity),
				core.FloatParam("droplet_increment", "Increment", c.DropletIncrement),
			},
		},
		{
			Name: "Splashes",
			Params: []core.Parameter{
				core.IntParam("splashes", "Active", e.splashes.Len()),
				core.IntParam("max_splashes", "Max splashes", c.MaxSplashes),
				core.FloatParam("splash_max_radius", "Max radius", c.SplashMaxRadius),
			},
		},
		{
			Name: "Water",
			Params: []core.Parameter{
				core.FloatParam("level", "Level", e.level),
				core.IntParam("collisions", "Collisions", e.collisions),
				core.BoolParam("full", "Full", e.level >= MaxLevel),
			},
		},
	}}
}
