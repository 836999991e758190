package render

import (
	"math"

	"ocean-fill/internal/ocean"
)

// Cell is what one grid cell shows.
type Cell uint8

const (
	CellSky Cell = iota
	CellWater
	CellSurface
	CellDroplet
	CellSplash
)

// CellGrid stores a downsampled view of the canvas in row-major order.
type CellGrid struct {
	W, H int
	data []Cell
}

// NewCellGrid allocates a grid with the given dimensions.
func NewCellGrid(w, h int) *CellGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &CellGrid{W: w, H: h, data: make([]Cell, w*h)}
}

// Cells exposes the backing slice.
func (g *CellGrid) Cells() []Cell { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *CellGrid) Index(x, y int) int { return y*g.W + x }

// At returns the cell at (x, y), or CellSky outside the grid.
func (g *CellGrid) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return CellSky
	}
	return g.data[g.Index(x, y)]
}

// Set writes c at (x, y). Coordinates outside the grid are ignored.
func (g *CellGrid) Set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return
	}
	g.data[g.Index(x, y)] = c
}

// Clear fills the grid with sky.
func (g *CellGrid) Clear() {
	clear(g.data)
}

// Rasterizer maps engine state onto a CellGrid. It keeps scratch slices so a
// frame loop does not allocate.
type Rasterizer struct {
	droplets []ocean.Droplet
	splashes []ocean.Splash
}

// Rasterize paints the engine's water, splashes and droplets into g. Each
// cell covers (canvas width / g.W) by (canvas height / g.H) pixels and shows
// what lies at its center.
func (r *Rasterizer) Rasterize(g *CellGrid, e *ocean.Engine) {
	size := e.Size()
	sx := float64(size.W) / float64(g.W)
	sy := float64(size.H) / float64(g.H)

	surface := e.SurfaceY()
	surfaceRow := -1
	if e.WaterLevel() > 0 {
		surfaceRow = int(math.Min(float64(g.H-1), surface/sy))
	}
	for y := 0; y < g.H; y++ {
		c := CellSky
		switch {
		case y == surfaceRow:
			c = CellSurface
		case (float64(y)+0.5)*sy >= surface:
			c = CellWater
		}
		row := g.data[y*g.W : (y+1)*g.W]
		for x := range row {
			row[x] = c
		}
	}

	r.splashes = e.AppendSplashes(r.splashes[:0])
	for _, s := range r.splashes {
		row := int(s.Y / sy)
		from := int(math.Floor((s.X - s.Radius) / sx))
		to := int(math.Floor((s.X + s.Radius) / sx))
		for x := from; x <= to; x++ {
			g.Set(x, row-1, CellSplash)
		}
	}

	r.droplets = e.AppendDroplets(r.droplets[:0])
	for _, d := range r.droplets {
		if d.Collided {
			continue
		}
		g.Set(int(math.Floor(d.X/sx)), int(math.Floor(d.Y/sy)), CellDroplet)
	}
}
