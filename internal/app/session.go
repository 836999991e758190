package app

import (
	"log"
	"math"
	"time"

	"ocean-fill/internal/core"
	"ocean-fill/internal/milestone"
	"ocean-fill/internal/ocean"
	"ocean-fill/internal/perf"
	"ocean-fill/internal/progress"
)

// SessionDeps are the collaborators a Session drives. Nil fields are filled
// with defaults by NewSession.
type SessionDeps struct {
	Engine       *ocean.Engine
	Milestones   *milestone.Tracker
	Progress     *progress.Manager
	Monitor      *perf.Monitor
	Scaler       *perf.Scaler
	Clock        core.Clock
	SaveInterval time.Duration
	Logger       *log.Logger
}

// FrameResult summarizes one Frame call.
type FrameResult struct {
	DeltaMs   float64
	Level     float64
	FPS       int
	PerfLevel float64
	// Achieved lists milestones reached during this frame in threshold order.
	Achieved []string
}

// Session ties the simulation components together for a frontend. The
// frontend calls Spawn for input and Frame once per rendered frame, both from
// the same goroutine.
type Session struct {
	engine     *ocean.Engine
	milestones *milestone.Tracker
	progress   *progress.Manager
	saver      *progress.Saver
	monitor    *perf.Monitor
	scaler     *perf.Scaler
	clock      core.Clock
	logger     *log.Logger
	rng        *core.RNG

	lastFrame     time.Time
	announcements []string
	saveFailing   bool
}

// NewSession wires the collaborators in deps.
func NewSession(deps SessionDeps) *Session {
	if deps.Clock == nil {
		deps.Clock = core.SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if deps.Engine == nil {
		deps.Engine = ocean.New(ocean.DefaultConfig())
	}
	if deps.Milestones == nil {
		deps.Milestones = milestone.New()
	}
	if deps.Progress == nil {
		deps.Progress = progress.NewManager(progress.NewMemoryStore(), deps.Logger)
	}
	if deps.Monitor == nil {
		deps.Monitor = perf.NewMonitor(perf.DefaultSamples)
	}
	if deps.Scaler == nil {
		deps.Scaler = perf.NewScaler(deps.Clock, perf.DefaultScalerConfig())
	}
	if deps.SaveInterval <= 0 {
		deps.SaveInterval = progress.DefaultSaveInterval
	}
	return &Session{
		engine:     deps.Engine,
		milestones: deps.Milestones,
		progress:   deps.Progress,
		saver:      progress.NewSaver(deps.Progress, deps.Clock, deps.SaveInterval),
		monitor:    deps.Monitor,
		scaler:     deps.Scaler,
		clock:      deps.Clock,
		logger:     deps.Logger,
		rng:        core.NewRNG(deps.Engine.Config().Seed + 1),
	}
}

// NewSessionFromConfig builds every collaborator from command-line config.
func NewSessionFromConfig(cfg *Config, clock core.Clock, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return NewSession(SessionDeps{
		Engine:       ocean.New(cfg.EngineConfig()),
		Progress:     progress.NewManager(cfg.Store(), logger),
		Clock:        clock,
		SaveInterval: cfg.SaveInterval,
		Logger:       logger,
	})
}

// Restore loads saved progress. It reports false and leaves a fresh ocean
// when nothing usable was saved.
func (s *Session) Restore() bool {
	rec, ok := s.progress.Load()
	if !ok {
		return false
	}
	s.engine.SetWaterLevel(rec.WaterLevel)
	s.milestones.Restore(rec.Milestones)
	return true
}

// Spawn requests a droplet at canvas coordinates (x, y).
func (s *Session) Spawn(x, y float64) bool {
	return s.engine.SpawnDroplet(x, y)
}

// SpawnFromKeyboard drops a droplet at a random position along the top of
// the canvas, for visitors who cannot point.
func (s *Session) SpawnFromKeyboard() bool {
	cfg := s.engine.Config()
	margin := cfg.DropletSize * 2
	x := s.rng.Range(margin, float64(cfg.Width)-margin)
	return s.engine.SpawnDroplet(x, margin+float64(cfg.SurfaceMargin))
}

// Frame advances the simulation by the time elapsed since the previous frame.
func (s *Session) Frame() FrameResult {
	now := s.clock.Now()
	dt := 0.0
	if !s.lastFrame.IsZero() {
		dt = float64(now.Sub(s.lastFrame)) / float64(time.Millisecond)
	}
	s.lastFrame = now
	dt = math.Max(0, math.Min(dt, s.engine.Config().MaxDeltaMs))

	s.monitor.Update(now)
	level := s.scaler.Adjust(s.monitor)
	s.engine.SetDropletLimit(s.scaler.ScaledValue(s.engine.Config().MaxDroplets))

	before := s.engine.WaterLevel()
	s.engine.Tick(dt)
	after := s.engine.WaterLevel()
	if after != before {
		s.saver.MarkDirty()
	}

	achieved := s.milestones.Evaluate(after)
	for _, name := range achieved {
		s.announcements = append(s.announcements, milestone.Message(name))
	}
	if len(achieved) > 0 {
		s.saver.MarkDirty()
		s.reportSave(s.saver.Flush(s.Record()))
	} else {
		s.reportSave(s.saver.Maybe(s.Record()))
	}

	return FrameResult{
		DeltaMs:   dt,
		Level:     after,
		FPS:       s.monitor.CurrentFPS(),
		PerfLevel: level,
		Achieved:  achieved,
	}
}

// Reset empties the ocean, clears milestones and saves immediately.
func (s *Session) Reset() {
	s.engine.Reset()
	s.milestones.Reset()
	s.announcements = append(s.announcements, ocean.ProgressText(0))
	s.saver.MarkDirty()
	s.reportSave(s.saver.Flush(s.Record()))
}

// Close writes any pending progress.
func (s *Session) Close() {
	s.reportSave(s.saver.Flush(s.Record()))
}

func (s *Session) reportSave(attempted bool, err error) {
	if !attempted {
		return
	}
	if err != nil {
		if !s.saveFailing {
			s.logger.Printf("progress not saved, continuing without persistence: %v", err)
		}
		s.saveFailing = true
		return
	}
	if s.saveFailing {
		s.logger.Printf("progress saving recovered")
	}
	s.saveFailing = false
}

// Record snapshots the state that is persisted.
func (s *Session) Record() progress.Record {
	return progress.Record{
		WaterLevel: s.engine.WaterLevel(),
		Milestones: s.milestones.Flags(),
	}
}

// DrainAnnouncements returns and clears pending screen-reader messages.
func (s *Session) DrainAnnouncements() []string {
	out := s.announcements
	s.announcements = nil
	return out
}

// ProgressText is the current "Ocean filled: X%" line.
func (s *Session) ProgressText() string { return ocean.ProgressText(s.engine.WaterLevel()) }

// Engine exposes the simulation for drawing.
func (s *Session) Engine() *ocean.Engine { return s.engine }

// Milestones exposes the milestone tracker for drawing.
func (s *Session) Milestones() *milestone.Tracker { return s.milestones }

// Scaler exposes the performance scaler.
func (s *Session) Scaler() *perf.Scaler { return s.scaler }

// Monitor exposes the frame rate monitor.
func (s *Session) Monitor() *perf.Monitor { return s.monitor }
