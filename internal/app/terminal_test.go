package app

import (
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	"ocean-fill/internal/milestone"
	"ocean-fill/internal/render"

	"github.com/gdamore/tcell/v2"
)

func newTestTerminal(t *testing.T) (*Terminal, *harness) {
	t.Helper()
	h := newHarness(t, nil, nil)
	term := NewTerminal(nil, h.session, nil)
	term.Resize(80, 31)
	return term, h
}

func TestTerminalMouseSpawnsOnPress(t *testing.T) {
	term, h := newTestTerminal(t)
	term.HandleEvent(tcell.NewEventMouse(40, 3, tcell.Button1, tcell.ModNone))
	term.HandleEvent(tcell.NewEventMouse(41, 3, tcell.Button1, tcell.ModNone))

	drops := h.session.Engine().AppendDroplets(nil)
	if len(drops) != 1 {
		t.Fatalf("droplets = %d, want 1 for a held button", len(drops))
	}
	if drops[0].X != 405 || drops[0].Y != 70 {
		t.Fatalf("droplet at (%v, %v), want cell center (405, 70)", drops[0].X, drops[0].Y)
	}

	term.HandleEvent(tcell.NewEventMouse(41, 3, tcell.ButtonNone, tcell.ModNone))
	term.HandleEvent(tcell.NewEventMouse(10, 3, tcell.Button1, tcell.ModNone))
	if n := h.session.Engine().DropletCount(); n != 2 {
		t.Fatalf("droplets = %d after second click, want 2", n)
	}
}

func TestTerminalIgnoresClicksOnStatusRow(t *testing.T) {
	term, h := newTestTerminal(t)
	term.HandleEvent(tcell.NewEventMouse(5, 30, tcell.Button1, tcell.ModNone))
	if n := h.session.Engine().DropletCount(); n != 0 {
		t.Fatalf("status row click spawned %d droplets", n)
	}
}

func TestTerminalKeys(t *testing.T) {
	term, h := newTestTerminal(t)
	if !term.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)) {
		t.Fatal("space must not quit")
	}
	if h.session.Engine().DropletCount() != 1 {
		t.Fatal("space should spawn a droplet")
	}

	h.session.Engine().SetWaterLevel(40)
	term.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	if h.session.Engine().WaterLevel() != 0 {
		t.Fatal("r should reset the ocean")
	}

	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone),
	} {
		if term.HandleEvent(ev) {
			t.Fatalf("%v should quit", ev.Name())
		}
	}
}

func TestTerminalStepShowsMilestone(t *testing.T) {
	term, h := newTestTerminal(t)
	h.session.Frame()
	h.session.Engine().SetWaterLevel(29.6)
	h.session.Spawn(400, 600)
	h.clock.Advance(frameStep)
	res := term.Step()
	if len(res.Achieved) != 1 || res.Achieved[0] != milestone.Fish {
		t.Fatalf("achieved = %v, want fish", res.Achieved)
	}
	line := term.StatusLine()
	if !strings.HasPrefix(line, "Ocean filled: 30%") || !strings.Contains(line, milestone.Message(milestone.Fish)) {
		t.Fatalf("status line = %q", line)
	}
	for i := 0; i < statusFrames; i++ {
		h.clock.Advance(frameStep)
		term.Step()
	}
	if got := term.StatusLine(); got != "Ocean filled: 30%" {
		t.Fatalf("status line after timeout = %q", got)
	}
	if got := term.Grid().At(0, term.Grid().H-1); got != render.CellWater {
		t.Fatalf("bottom row = %d, want water", got)
	}
}

func TestTerminalDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(40, 11)

	h := newHarness(t, nil, nil)
	term := NewTerminal(screen, h.session, nil)
	term.HandleEvent(tcell.NewEventResize(40, 11))
	h.session.Engine().SetWaterLevel(50)
	term.Step()
	term.Draw()

	if r, _, _, _ := screen.GetContent(0, 9); r != '~' {
		t.Fatalf("water glyph = %q, want '~'", r)
	}
	if r, _, _, _ := screen.GetContent(0, 0); r != ' ' {
		t.Fatalf("sky glyph = %q, want space", r)
	}
	var status []rune
	for x := 0; x < 17; x++ {
		r, _, _, _ := screen.GetContent(x, 10)
		status = append(status, r)
	}
	if got := string(status); got != "Ocean filled: 50%" {
		t.Fatalf("status row = %q", got)
	}
}

type recordingChimes struct{ played []string }

func (r *recordingChimes) Play(name string) { r.played = append(r.played, name) }

func TestTerminalPlaysChimeOnMilestone(t *testing.T) {
	h := newHarness(t, nil, nil)
	chimes := &recordingChimes{}
	term := NewTerminal(nil, h.session, chimes)
	term.Resize(80, 31)
	h.session.Frame()
	h.session.Engine().SetWaterLevel(69.6)
	h.session.Spawn(400, 600)
	h.clock.Advance(frameStep)
	term.Step()
	want := []string{milestone.Fish, milestone.Waves}
	if !slices.Equal(chimes.played, want) {
		t.Fatalf("played %v, want %v", chimes.played, want)
	}
}

func TestPumpEventsStopsWhenDone(t *testing.T) {
	poll := func() tcell.Event { return tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone) }
	events := make(chan tcell.Event, 2)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		pumpEvents(poll, events, done)
		close(finished)
	}()

	// Nobody reads events, so the pump fills the buffer and waits.
	close(done)
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("pump kept blocking on a full buffer after done closed")
	}
}

func TestPumpEventsStopsOnNil(t *testing.T) {
	calls := 0
	poll := func() tcell.Event {
		calls++
		if calls > 3 {
			return nil
		}
		return tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)
	}
	events := make(chan tcell.Event, 10)
	pumpEvents(poll, events, make(chan struct{}))
	if len(events) != 3 {
		t.Fatalf("forwarded %d events, want 3", len(events))
	}
}

func TestTerminalRunQuitsOnKey(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(40, 11)

	h := newHarness(t, nil, nil)
	term := NewTerminal(screen, h.session, nil)
	if err := screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := term.Run(ctx, time.Millisecond); err != nil {
		t.Fatalf("Run() = %v, want nil after q", err)
	}
}
