//go:build ebiten

package app

import (
	"log"

	"ocean-fill/internal/render"
	"ocean-fill/internal/ui"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const panelWidth = 220

// Game adapts a Session to the ebiten.Game interface.
type Game struct {
	session *Session
	painter *render.OceanPainter
	hud     *ui.HUD
	chimes  ChimePlayer
	logger  *log.Logger

	touches []ebiten.TouchID
}

// New constructs a Game for the provided session. chimes may be nil.
func New(session *Session, chimes ChimePlayer, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	size := session.Engine().Size()
	hud := ui.NewHUD(panelWidth)
	hud.SnapLevel(session.Engine().WaterLevel())
	return &Game{
		session: session,
		painter: render.NewOceanPainter(size.W, size.H),
		hud:     hud,
		chimes:  chimes,
		logger:  logger,
	}
}

// Update handles input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.handlePointer()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.session.SpawnFromKeyboard()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.session.Reset()
		g.hud.SnapLevel(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := clipboard.WriteAll(g.session.ProgressText()); err != nil {
			g.logger.Printf("copy progress: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud.TogglePanel()
	}

	res := g.session.Frame()
	for _, name := range res.Achieved {
		if g.chimes != nil {
			g.chimes.Play(name)
		}
	}
	for _, msg := range g.session.DrainAnnouncements() {
		g.hud.Announce(msg)
	}
	g.hud.Update(1/float32(ebiten.TPS()), ui.FrameStats{
		Level:     res.Level,
		FPS:       res.FPS,
		PerfLevel: res.PerfLevel,
		Params:    g.session.Engine().Parameters(),
	})
	return nil
}

func (g *Game) handlePointer() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.session.Spawn(float64(x), float64(y))
	}
	g.touches = inpututil.AppendJustPressedTouchIDs(g.touches[:0])
	for _, id := range g.touches {
		x, y := ebiten.TouchPosition(id)
		g.session.Spawn(float64(x), float64(y))
	}
}

// Draw renders the ocean and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Draw(screen, g.session.Engine())
	g.hud.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.session.Engine().Size()
	return s.W, s.H
}
