package app

import (
	"context"
	"time"

	"ocean-fill/internal/render"

	"github.com/gdamore/tcell/v2"
)

// ChimePlayer plays the sound for a reached milestone.
type ChimePlayer interface {
	Play(name string)
}

// statusFrames is how long an announcement stays on the status line.
const statusFrames = 150

var cellGlyphs = [...]struct {
	r     rune
	style tcell.Style
}{
	render.CellSky:     {' ', tcell.StyleDefault},
	render.CellWater:   {'~', tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)},
	render.CellSurface: {'≈', tcell.StyleDefault.Foreground(tcell.ColorAqua).Background(tcell.ColorBlue)},
	render.CellDroplet: {'•', tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue)},
	render.CellSplash:  {'*', tcell.StyleDefault.Foreground(tcell.ColorWhite)},
}

// Terminal runs a Session in a tcell screen. Each terminal cell stands for a
// block of canvas pixels and the bottom row shows progress.
type Terminal struct {
	screen  tcell.Screen
	session *Session
	chimes  ChimePlayer

	grid   *render.CellGrid
	raster render.Rasterizer

	buttons    tcell.ButtonMask
	status     string
	statusLeft int
}

// NewTerminal wires a Session to screen. chimes may be nil.
func NewTerminal(screen tcell.Screen, session *Session, chimes ChimePlayer) *Terminal {
	t := &Terminal{screen: screen, session: session, chimes: chimes}
	t.Resize(80, 25)
	return t
}

// Resize sets the screen size in cells. One row is kept for the status line.
func (t *Terminal) Resize(cols, rows int) {
	t.grid = render.NewCellGrid(cols, rows-1)
}

// Run drives the frame loop until the user quits or ctx is done.
func (t *Terminal) Run(ctx context.Context, frame time.Duration) error {
	t.screen.EnableMouse()
	t.Resize(t.screen.Size())

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(t.screen.PollEvent, events, done)

	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !t.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			t.Step()
			t.Draw()
		}
	}
}

// pumpEvents forwards polled events until poll returns nil or done closes.
func pumpEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// HandleEvent applies one input event. It returns false when the user asked
// to quit.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			t.session.SpawnFromKeyboard()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'r', 'R':
				t.session.Reset()
			case ' ':
				t.session.SpawnFromKeyboard()
			}
		}
	case *tcell.EventMouse:
		pressed := ev.Buttons() & tcell.Button1
		if pressed != 0 && t.buttons&tcell.Button1 == 0 {
			col, row := ev.Position()
			if row < t.grid.H {
				t.session.Spawn(t.canvasPoint(col, row))
			}
		}
		t.buttons = ev.Buttons()
	case *tcell.EventResize:
		t.Resize(ev.Size())
		if t.screen != nil {
			t.screen.Sync()
		}
	}
	return true
}

// canvasPoint maps the center of a terminal cell to canvas pixels.
func (t *Terminal) canvasPoint(col, row int) (float64, float64) {
	size := t.session.Engine().Size()
	sx := float64(size.W) / float64(t.grid.W)
	sy := float64(size.H) / float64(t.grid.H)
	return (float64(col) + 0.5) * sx, (float64(row) + 0.5) * sy
}

// Step advances the session by one frame and collects announcements.
func (t *Terminal) Step() FrameResult {
	res := t.session.Frame()
	if t.chimes != nil {
		for _, name := range res.Achieved {
			t.chimes.Play(name)
		}
	}
	if msgs := t.session.DrainAnnouncements(); len(msgs) > 0 {
		t.status = msgs[len(msgs)-1]
		t.statusLeft = statusFrames
	} else if t.statusLeft > 0 {
		t.statusLeft--
		if t.statusLeft == 0 {
			t.status = ""
		}
	}
	t.raster.Rasterize(t.grid, t.session.Engine())
	return res
}

// StatusLine is the text shown on the bottom row.
func (t *Terminal) StatusLine() string {
	line := t.session.ProgressText()
	if t.status != "" {
		line += "  " + t.status
	}
	return line
}

// Grid exposes the rasterized canvas.
func (t *Terminal) Grid() *render.CellGrid { return t.grid }

// Draw copies the grid and status line to the screen.
func (t *Terminal) Draw() {
	for y := 0; y < t.grid.H; y++ {
		for x := 0; x < t.grid.W; x++ {
			g := cellGlyphs[t.grid.At(x, y)]
			t.screen.SetContent(x, y, g.r, nil, g.style)
		}
	}
	row := t.grid.H
	status := []rune(t.StatusLine())
	bar := tcell.StyleDefault.Reverse(true)
	for x := 0; x < t.grid.W; x++ {
		r := ' '
		if x < len(status) {
			r = status[x]
		}
		t.screen.SetContent(x, row, r, nil, bar)
	}
	t.screen.Show()
}
