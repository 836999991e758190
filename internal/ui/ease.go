package ui

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// LevelDisplay eases the water level shown on screen towards the engine's
// level so each collision reads as a smooth rise.
type LevelDisplay struct {
	duration float32
	tween    *gween.Tween
	value    float64
	target   float64
}

// NewLevelDisplay returns a display that takes duration seconds to catch up
// with a new target.
func NewLevelDisplay(duration float32) *LevelDisplay {
	if duration <= 0 {
		duration = 0.4
	}
	return &LevelDisplay{duration: duration}
}

// SetTarget starts easing towards level. Repeating the current target keeps
// the running tween.
func (d *LevelDisplay) SetTarget(level float64) {
	if level == d.target {
		return
	}
	d.target = level
	d.tween = gween.New(float32(d.value), float32(level), d.duration, ease.OutCubic)
}

// Snap jumps straight to level, used after a restore or reset.
func (d *LevelDisplay) Snap(level float64) {
	d.target = level
	d.value = level
	d.tween = nil
}

// Update advances the tween by dt seconds and returns the displayed level.
func (d *LevelDisplay) Update(dt float32) float64 {
	if d.tween == nil {
		return d.value
	}
	v, done := d.tween.Update(dt)
	d.value = float64(v)
	if done {
		d.value = d.target
		d.tween = nil
	}
	return d.value
}

// Value is the level currently displayed.
func (d *LevelDisplay) Value() float64 { return d.value }

// Banner shows one message at a time: fully opaque for Hold seconds, then
// fading out over Fade seconds. Messages that arrive while one is showing
// wait their turn.
type Banner struct {
	Hold float32
	Fade float32

	text    string
	alpha   float64
	held    float32
	fade    *gween.Tween
	pending []string
}

// NewBanner returns a banner with the given timings in seconds.
func NewBanner(hold, fade float32) *Banner {
	if hold <= 0 {
		hold = 2.5
	}
	if fade <= 0 {
		fade = 0.8
	}
	return &Banner{Hold: hold, Fade: fade}
}

// Show queues text for display.
func (b *Banner) Show(text string) {
	if text == "" {
		return
	}
	if b.text == "" {
		b.start(text)
		return
	}
	b.pending = append(b.pending, text)
}

func (b *Banner) start(text string) {
	b.text = text
	b.alpha = 1
	b.held = 0
	b.fade = nil
}

// Update advances the banner by dt seconds.
func (b *Banner) Update(dt float32) {
	if b.text == "" {
		return
	}
	if b.fade == nil {
		b.held += dt
		if b.held < b.Hold {
			return
		}
		dt = b.held - b.Hold
		b.fade = gween.New(1, 0, b.Fade, ease.InQuad)
	}
	v, done := b.fade.Update(dt)
	b.alpha = float64(v)
	if !done {
		return
	}
	b.text = ""
	b.alpha = 0
	b.fade = nil
	if len(b.pending) > 0 {
		next := b.pending[0]
		b.pending = b.pending[1:]
		b.start(next)
	}
}

// Text is the message on screen, or "" when idle.
func (b *Banner) Text() string { return b.text }

// Alpha is the current opacity in [0, 1].
func (b *Banner) Alpha() float64 { return b.alpha }

// Pending counts queued messages.
func (b *Banner) Pending() int { return len(b.pending) }
