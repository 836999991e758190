package app

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"log"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"ocean-fill/internal/core"
	"ocean-fill/internal/milestone"
	"ocean-fill/internal/ocean"
	"ocean-fill/internal/progress"
)

const frameStep = 16 * time.Millisecond

type harness struct {
	clock   *core.ManualClock
	store   *progress.MemoryStore
	session *Session
}

func newHarness(t *testing.T, store *progress.MemoryStore, logger *log.Logger) *harness {
	t.Helper()
	if store == nil {
		store = progress.NewMemoryStore()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	cfg := ocean.DefaultConfig()
	cfg.JitterVX = 0
	cfg.CullMargin = 0
	clock := core.NewManualClock(time.Time{})
	s := NewSession(SessionDeps{
		Engine:   ocean.New(cfg),
		Progress: progress.NewManager(store, logger),
		Clock:    clock,
		Logger:   logger,
	})
	return &harness{clock: clock, store: store, session: s}
}

func (h *harness) frame() FrameResult {
	h.clock.Advance(frameStep)
	return h.session.Frame()
}

// collide lands one droplet on the canvas floor.
func (h *harness) collide(t *testing.T) FrameResult {
	t.Helper()
	cfg := h.session.Engine().Config()
	if !h.session.Spawn(float64(cfg.Width)/2, float64(cfg.Height)) {
		t.Fatal("spawn rejected")
	}
	return h.frame()
}

func TestEndToEndFillsOcean(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.session.Frame()

	var fired []string
	for i := 0; i < 125; i++ {
		fired = append(fired, h.collide(t).Achieved...)
	}
	if got := h.session.Engine().WaterLevel(); got != 100 {
		t.Fatalf("level = %v after 125 collisions, want 100", got)
	}
	if want := []string{milestone.Fish, milestone.Waves, milestone.Completion}; !slices.Equal(fired, want) {
		t.Fatalf("milestones fired %v, want %v", fired, want)
	}
	for i := 0; i < 5; i++ {
		if res := h.collide(t); res.Level != 100 || len(res.Achieved) != 0 {
			t.Fatalf("extra collision changed state: %+v", res)
		}
	}
	if got := h.session.ProgressText(); got != "Ocean filled: 100%" {
		t.Fatalf("ProgressText() = %q", got)
	}

	msgs := h.session.DrainAnnouncements()
	if len(msgs) != 3 || msgs[2] != milestone.Message(milestone.Completion) {
		t.Fatalf("announcements = %v", msgs)
	}
	if len(h.session.DrainAnnouncements()) != 0 {
		t.Fatal("announcements must be drained")
	}
}

func TestMilestonePersistsEagerly(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.session.Frame()
	for i := 0; i < 38; i++ {
		h.collide(t)
	}
	raw, err := h.store.Get(progress.MilestonesKey)
	if err != nil {
		t.Fatalf("milestones not saved: %v", err)
	}
	if !strings.Contains(raw, `"fish":true`) {
		t.Fatalf("saved milestones %s, want fish achieved", raw)
	}
}

func TestRestoreContinuesProgress(t *testing.T) {
	store := progress.NewMemoryStore()
	first := newHarness(t, store, nil)
	first.session.Frame()
	for i := 0; i < 40; i++ {
		first.collide(t)
	}
	first.session.Close()

	second := newHarness(t, store, nil)
	if !second.session.Restore() {
		t.Fatal("Restore found no saved state")
	}
	if got := second.session.Engine().WaterLevel(); got != 32 {
		t.Fatalf("restored level = %v, want 32", got)
	}
	if !second.session.Milestones().Achieved(milestone.Fish) {
		t.Fatal("fish should be restored as achieved")
	}
	second.session.Frame()
	if res := second.collide(t); len(res.Achieved) != 0 {
		t.Fatalf("restored milestone re-fired: %v", res.Achieved)
	}
}

func TestRestoreFreshOnEmptyStore(t *testing.T) {
	h := newHarness(t, nil, nil)
	if h.session.Restore() {
		t.Fatal("empty store must not restore")
	}
	if h.session.Engine().WaterLevel() != 0 {
		t.Fatal("fresh session must start empty")
	}
}

func TestSavesAreDebounced(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.session.Frame()
	h.collide(t)
	if got, _ := h.store.Get(progress.LevelKey); got != "0.8" {
		t.Fatalf("first change saved %q, want 0.8", got)
	}
	h.collide(t)
	if got, _ := h.store.Get(progress.LevelKey); got != "0.8" {
		t.Fatalf("second change inside the interval saved %q", got)
	}
	h.clock.Advance(time.Second)
	h.session.Frame()
	if got, _ := h.store.Get(progress.LevelKey); got != "1.6" {
		t.Fatalf("after interval saved %q, want 1.6", got)
	}
}

func TestStorageFailureKeepsSimulationRunning(t *testing.T) {
	var buf bytes.Buffer
	store := &progress.MemoryStore{Fail: errors.New("quota exceeded")}
	h := newHarness(t, store, log.New(&buf, "", 0))
	h.session.Frame()
	for i := 0; i < 50; i++ {
		h.collide(t)
		h.clock.Advance(time.Second)
	}
	if got := h.session.Engine().WaterLevel(); got != 40 {
		t.Fatalf("level = %v, want 40 despite storage failure", got)
	}
	if n := strings.Count(buf.String(), "quota exceeded"); n != 1 {
		t.Fatalf("storage failure logged %d times, want once:\n%s", n, buf.String())
	}

	store.Fail = nil
	h.collide(t)
	if !strings.Contains(buf.String(), "recovered") {
		t.Fatalf("expected a recovery message:\n%s", buf.String())
	}
	if got, err := store.Get(progress.LevelKey); err != nil || got != "40.8" {
		t.Fatalf("stored level = %q, %v; want 40.8", got, err)
	}
}

func TestResetClearsAndSaves(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.session.Frame()
	for i := 0; i < 40; i++ {
		h.collide(t)
	}
	h.session.Reset()
	if h.session.Engine().WaterLevel() != 0 || h.session.Milestones().Achieved(milestone.Fish) {
		t.Fatal("reset must clear level and milestones")
	}
	rec, ok := progress.NewManager(h.store, nil).Load()
	if !ok || rec.WaterLevel != 0 || rec.Milestones[milestone.Fish] {
		t.Fatalf("saved record after reset = %+v, %v", rec, ok)
	}
	h.session.DrainAnnouncements()
	for i := 0; i < 38; i++ {
		h.collide(t)
	}
	if !h.session.Milestones().Achieved(milestone.Fish) {
		t.Fatal("fish should fire again after reset")
	}
}

func TestFrameClampsLongPauses(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.session.Frame()
	h.clock.Advance(10 * time.Second)
	res := h.session.Frame()
	if res.DeltaMs != h.session.Engine().Config().MaxDeltaMs {
		t.Fatalf("delta = %v, want clamp to %v", res.DeltaMs, h.session.Engine().Config().MaxDeltaMs)
	}
}

func TestSlowFramesShrinkDropletBudget(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.session.Frame()
	for i := 0; i < 20; i++ {
		h.clock.Advance(100 * time.Millisecond)
		h.session.Frame()
	}
	if lvl := h.session.Scaler().Level(); lvl >= 1 {
		t.Fatalf("performance level = %v at 10fps, want a drop", lvl)
	}
	limit := h.session.Engine().DropletLimit()
	if limit >= h.session.Engine().Config().MaxDroplets || limit < 1 {
		t.Fatalf("droplet limit = %d, want scaled below max", limit)
	}
	accepted := 0
	for i := 0; i < 20; i++ {
		if h.session.Spawn(10, 10) {
			accepted++
		}
	}
	if accepted != limit {
		t.Fatalf("accepted %d spawns, want %d", accepted, limit)
	}
}

func TestSpawnFromKeyboardStaysOnCanvas(t *testing.T) {
	h := newHarness(t, nil, nil)
	for i := 0; i < 5; i++ {
		h.session.SpawnFromKeyboard()
	}
	cfg := h.session.Engine().Config()
	for _, d := range h.session.Engine().AppendDroplets(nil) {
		if d.X < 0 || d.X > float64(cfg.Width) || d.Y < 0 || d.Y > float64(cfg.Height) {
			t.Fatalf("keyboard droplet off canvas: %+v", d)
		}
	}
}

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	path := filepath.Join(t.TempDir(), "save.json")
	err := fs.Parse([]string{"-seed", "9", "-save", path, "-set", "max_droplets=3", "-set", "bogus", "-set", "w=320"})
	if err != nil {
		t.Fatal(err)
	}
	ec := cfg.EngineConfig()
	if ec.MaxDroplets != 3 || ec.Width != 320 || ec.Seed != 9 {
		t.Fatalf("engine config = %+v", ec)
	}
	if _, ok := cfg.Store().(*progress.FileStore); !ok {
		t.Fatalf("store = %T, want *progress.FileStore", cfg.Store())
	}
	cfg.SavePath = ""
	if _, ok := cfg.Store().(*progress.MemoryStore); !ok {
		t.Fatalf("store = %T, want *progress.MemoryStore", cfg.Store())
	}
}

func TestSessionFromConfigPersistsToFile(t *testing.T) {
	cfg := NewConfig()
	cfg.SavePath = filepath.Join(t.TempDir(), "progress.json")
	cfg.Overrides = KVList{"cull_margin=0", "jitter_vx=0"}
	clock := core.NewManualClock(time.Time{})
	s := NewSessionFromConfig(cfg, clock, log.New(io.Discard, "", 0))
	s.Frame()
	s.Spawn(100, float64(s.Engine().Config().Height))
	clock.Advance(frameStep)
	s.Frame()
	s.Close()

	reloaded := NewSessionFromConfig(cfg, clock, log.New(io.Discard, "", 0))
	if !reloaded.Restore() || reloaded.Engine().WaterLevel() != 0.8 {
		t.Fatalf("reloaded level = %v", reloaded.Engine().WaterLevel())
	}
}
