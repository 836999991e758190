package render

import (
	"image"
	"image/color"
	"math"
)

// Palette assigns a color to every Cell kind.
type Palette [CellSplash + 1]color.RGBA

// DefaultPalette is the ocean color scheme.
var DefaultPalette = Palette{
	CellSky:     {R: 0xe6, G: 0xf4, B: 0xfb, A: 0xff},
	CellWater:   {R: 0x1e, G: 0x6f, B: 0xb8, A: 0xff},
	CellSurface: {R: 0x7f, G: 0xc8, B: 0xf0, A: 0xff},
	CellDroplet: {R: 0x2a, G: 0x9d, B: 0xf4, A: 0xff},
	CellSplash:  {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
}

// Water gradient endpoints, surface to floor.
var (
	ShallowWater = color.RGBA{R: 0x4f, G: 0xb3, B: 0xe8, A: 0xff}
	DeepWater    = color.RGBA{R: 0x0b, G: 0x3d, B: 0x7a, A: 0xff}
)

// fillPaletteRGBA converts cells into RGBA pixels in buf.
func fillPaletteRGBA(buf []byte, cells []Cell, palette *Palette) {
	last := Cell(len(palette) - 1)
	for i, c := range cells {
		if c > last {
			c = last
		}
		base := i * 4
		col := palette[c]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Image renders the grid into an RGBA image, one pixel per cell.
func Image(g *CellGrid, palette *Palette) *image.RGBA {
	if palette == nil {
		palette = &DefaultPalette
	}
	img := image.NewRGBA(image.Rect(0, 0, g.W, g.H))
	fillPaletteRGBA(img.Pix, g.Cells(), palette)
	return img
}

// FillOceanRGBA paints a w*h canvas into buf: sky above surfaceY and a
// vertical gradient from shallow to deep below it. buf must hold w*h*4 bytes.
func FillOceanRGBA(buf []byte, w, h int, surfaceY float64, sky, shallow, deep color.RGBA) {
	start := int(math.Ceil(math.Max(0, surfaceY)))
	depth := float64(h - start)
	for y := 0; y < h; y++ {
		col := sky
		if y >= start {
			t := 0.0
			if depth > 1 {
				t = float64(y-start) / (depth - 1)
			}
			col = lerpRGBA(shallow, deep, t)
		}
		row := buf[y*w*4 : (y+1)*w*4]
		for x := 0; x < w; x++ {
			base := x * 4
			row[base+0] = col.R
			row[base+1] = col.G
			row[base+2] = col.B
			row[base+3] = col.A
		}
	}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
