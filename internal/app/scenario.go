package app

import (
	"io"
	"log"
	"time"

	"ocean-fill/internal/core"
	"ocean-fill/internal/ocean"
	"ocean-fill/internal/progress"
)

// Scenario describes a scripted headless run: a droplet is requested every
// SpawnEvery frames and the clock advances Frame per frame.
type Scenario struct {
	Frames     int
	Frame      time.Duration
	SpawnEvery int
	// ReportEvery emits a progress report every n frames; 0 disables reports.
	ReportEvery int
}

// DefaultScenario runs one simulated minute at 60 frames per second.
func DefaultScenario() Scenario {
	return Scenario{Frames: 3600, Frame: 16 * time.Millisecond, SpawnEvery: 6, ReportEvery: 600}
}

// ScenarioReport is a periodic snapshot of a run.
type ScenarioReport struct {
	Frame     int
	Level     float64
	Droplets  int
	Splashes  int
	FPS       int
	PerfLevel float64
}

// ScenarioResult summarizes a finished run.
type ScenarioResult struct {
	Frames     int
	Spawned    int
	Rejected   int
	Collisions int
	Level      float64
	// FilledAt is the frame the ocean reached 100%, or -1.
	FilledAt int
	// Milestones maps each achieved milestone to the frame it fired on.
	Milestones map[string]int
	Reports    []ScenarioReport
	Record     progress.Record
}

// RunScenario drives a fresh session on a manual clock. A nil store keeps
// progress in memory and a nil logger discards warnings.
func RunScenario(cfg ocean.Config, sc Scenario, store progress.Store, logger *log.Logger) ScenarioResult {
	if store == nil {
		store = progress.NewMemoryStore()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if sc.Frame <= 0 {
		sc.Frame = 16 * time.Millisecond
	}
	if sc.SpawnEvery <= 0 {
		sc.SpawnEvery = 1
	}

	clock := core.NewManualClock(time.Time{})
	s := NewSession(SessionDeps{
		Engine:   ocean.New(cfg),
		Progress: progress.NewManager(store, logger),
		Clock:    clock,
		Logger:   logger,
	})
	s.Frame()

	res := ScenarioResult{FilledAt: -1, Milestones: map[string]int{}}
	for frame := 1; frame <= sc.Frames; frame++ {
		if frame%sc.SpawnEvery == 0 {
			if s.SpawnFromKeyboard() {
				res.Spawned++
			} else {
				res.Rejected++
			}
		}
		clock.Advance(sc.Frame)
		fr := s.Frame()
		for _, name := range fr.Achieved {
			res.Milestones[name] = frame
		}
		if res.FilledAt < 0 && fr.Level >= ocean.MaxLevel {
			res.FilledAt = frame
		}
		if sc.ReportEvery > 0 && frame%sc.ReportEvery == 0 {
			e := s.Engine()
			res.Reports = append(res.Reports, ScenarioReport{
				Frame:     frame,
				Level:     fr.Level,
				Droplets:  e.DropletCount(),
				Splashes:  e.SplashCount(),
				FPS:       fr.FPS,
				PerfLevel: fr.PerfLevel,
			})
		}
		res.Frames = frame
	}
	s.DrainAnnouncements()
	s.Close()

	res.Collisions = s.Engine().Collisions()
	res.Level = s.Engine().WaterLevel()
	res.Record = s.Record()
	return res
}
