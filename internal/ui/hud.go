//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"math"

	"ocean-fill/internal/core"
	"ocean-fill/internal/ocean"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// FrameStats is the per-frame state the HUD reads.
type FrameStats struct {
	Level     float64
	FPS       int
	PerfLevel float64
	Params    core.ParameterSnapshot
}

// HUD draws the progress line, the fill bar, milestone banners and an
// optional tunables panel on the right edge of the canvas.
type HUD struct {
	width      int
	showPanel  bool
	level      *LevelDisplay
	banner     *Banner
	stats      FrameStats
	panel      *ebiten.Image
	lastHeight int
}

// NewHUD constructs a HUD whose panel is width pixels wide.
func NewHUD(width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{
		width:  width,
		level:  NewLevelDisplay(0.4),
		banner: NewBanner(2.5, 0.8),
	}
}

// TogglePanel shows or hides the tunables panel.
func (h *HUD) TogglePanel() { h.showPanel = !h.showPanel }

// Announce queues a banner message.
func (h *HUD) Announce(msg string) { h.banner.Show(msg) }

// SnapLevel shows level without easing.
func (h *HUD) SnapLevel(level float64) { h.level.Snap(level) }

// Update advances animations by dt seconds.
func (h *HUD) Update(dt float32, stats FrameStats) {
	h.stats = stats
	h.level.SetTarget(stats.Level)
	h.level.Update(dt)
	h.banner.Update(dt)
}

// Draw paints the HUD over the ocean.
func (h *HUD) Draw(screen *ebiten.Image) {
	face := basicfont.Face7x13
	b := screen.Bounds()

	barW := float32(b.Dx() / 3)
	vector.FillRect(screen, hudPadding, hudPadding, barW, barHeight, color.RGBA{R: 16, G: 32, B: 48, A: 160}, false)
	fill := barW * float32(h.level.Value()/ocean.MaxLevel)
	vector.FillRect(screen, hudPadding, hudPadding, fill, barHeight, color.RGBA{R: 42, G: 157, B: 244, A: 255}, false)
	text.Draw(screen, ocean.ProgressText(h.stats.Level), face, hudPadding, hudPadding+barHeight+lineHeight, color.RGBA{R: 10, G: 30, B: 60, A: 255})

	if msg := h.banner.Text(); msg != "" {
		alpha := uint8(math.Round(255 * h.banner.Alpha()))
		bounds := text.BoundString(face, msg)
		x := (b.Dx() - bounds.Dx()) / 2
		y := b.Dy() / 3
		vector.FillRect(screen, float32(x-hudPadding), float32(y-lineHeight-4), float32(bounds.Dx()+2*hudPadding), lineHeight+12, color.NRGBA{A: alpha / 2}, false)
		text.Draw(screen, msg, face, x, y, color.NRGBA{R: 255, G: 255, B: 255, A: alpha})
	}

	if h.showPanel && h.width > 0 {
		h.drawPanel(screen, b.Dx()-h.width, b.Dy())
	}
}

func (h *HUD) drawPanel(screen *ebiten.Image, offsetX, height int) {
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 220})

	face := basicfont.Face7x13
	header := color.RGBA{R: 200, G: 200, B: 210, A: 255}
	label := color.RGBA{R: 160, G: 160, B: 170, A: 255}
	value := color.RGBA{R: 220, G: 220, B: 230, A: 255}

	y := hudPadding + lineHeight
	text.Draw(h.panel, "Ocean Controls", face, hudPadding, y, header)
	y += lineHeight
	text.Draw(h.panel, fmt.Sprintf("FPS %d  perf %.2f", h.stats.FPS, h.stats.PerfLevel), face, hudPadding, y, label)

	for _, group := range h.stats.Params.Groups {
		y += lineHeight + groupGap
		text.Draw(h.panel, group.Name, face, hudPadding, y, header)
		for _, p := range group.Params {
			y += lineHeight
			text.Draw(h.panel, p.Label, face, hudPadding, y, label)
			w := text.BoundString(face, p.Value).Dx()
			text.Draw(h.panel, p.Value, face, h.width-hudPadding-w, y, value)
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

const (
	hudPadding = 12
	barHeight  = 10
	lineHeight = 16
	groupGap   = 6
)
