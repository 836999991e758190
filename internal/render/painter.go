//go:build ebiten

package render

import (
	"image/color"
	"math"

	"ocean-fill/internal/ocean"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// OceanPainter draws the engine state onto an ebiten image.
type OceanPainter struct {
	img *ebiten.Image
	buf []byte
	w   int
	h   int

	lastSurface float64

	Sky     color.RGBA
	Shallow color.RGBA
	Deep    color.RGBA
	Droplet color.RGBA
	Splash  color.RGBA

	droplets []ocean.Droplet
	splashes []ocean.Splash
}

// NewOceanPainter allocates a painter for a w by h canvas.
func NewOceanPainter(w, h int) *OceanPainter {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &OceanPainter{
		img:         ebiten.NewImage(w, h),
		buf:         make([]byte, w*h*4),
		w:           w,
		h:           h,
		lastSurface: math.NaN(),
		Sky:         DefaultPalette[CellSky],
		Shallow:     ShallowWater,
		Deep:        DeepWater,
		Droplet:     DefaultPalette[CellDroplet],
		Splash:      DefaultPalette[CellSplash],
	}
}

// Draw paints water, splashes and droplets. The background is only rebuilt
// when the surface moves.
func (p *OceanPainter) Draw(screen *ebiten.Image, e *ocean.Engine) {
	surface := e.SurfaceY()
	if surface != p.lastSurface {
		FillOceanRGBA(p.buf, p.w, p.h, surface, p.Sky, p.Shallow, p.Deep)
		p.img.WritePixels(p.buf)
		p.lastSurface = surface
	}
	screen.DrawImage(p.img, nil)

	p.splashes = e.AppendSplashes(p.splashes[:0])
	for _, s := range p.splashes {
		clr := p.Splash
		clr.A = uint8(math.Round(255 * math.Max(0, math.Min(1, s.Opacity))))
		vector.StrokeCircle(screen, float32(s.X), float32(s.Y), float32(s.Radius), 2, premultiply(clr), true)
	}

	p.droplets = e.AppendDroplets(p.droplets[:0])
	for _, d := range p.droplets {
		if d.Collided {
			continue
		}
		vector.FillCircle(screen, float32(d.X), float32(d.Y), float32(d.Size/2), p.Droplet, true)
	}
}

func premultiply(c color.RGBA) color.RGBA {
	a := uint16(c.A)
	return color.RGBA{
		R: uint8(uint16(c.R) * a / 255),
		G: uint8(uint16(c.G) * a / 255),
		B: uint8(uint16(c.B) * a / 255),
		A: c.A,
	}
}
