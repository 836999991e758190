package ocean

// Droplet is a falling particle. Life runs from 1 at spawn down to 0.
type Droplet struct {
	X, Y     float64
	VX, VY   float64
	Size     float64
	Life     float64
	Collided bool
}

// Splash is the expanding ring left where a droplet met the surface.
type Splash struct {
	X, Y      float64
	Radius    float64
	MaxRadius float64
	Speed     float64
	Opacity   float64
	Life      float64
}

func (s *Splash) alive() bool { return s.Life > 0 && s.Opacity > 0 }
