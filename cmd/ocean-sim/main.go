package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"time"

	"ocean-fill/internal/app"
	"ocean-fill/internal/milestone"
	"ocean-fill/internal/ocean"
	"ocean-fill/internal/progress"
)

type sweepParams struct {
	gravity    float64
	increment  float64
	spawnEvery int
}

func (p sweepParams) String() string {
	return fmt.Sprintf("gravity=%.4f increment=%.2f spawnEvery=%d", p.gravity, p.increment, p.spawnEvery)
}

type sweepResult struct {
	params sweepParams
	result app.ScenarioResult
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	sc := app.DefaultScenario()
	flag.IntVar(&sc.Frames, "frames", sc.Frames, "frames to simulate")
	flag.DurationVar(&sc.Frame, "frame", sc.Frame, "simulated time per frame")
	flag.IntVar(&sc.SpawnEvery, "spawn-every", sc.SpawnEvery, "request a droplet every n frames")
	flag.IntVar(&sc.ReportEvery, "report", sc.ReportEvery, "print a report every n frames (0 disables)")
	schemaPath := flag.String("schema", "", "write the save-record JSON schema to this path and exit")
	sweep := flag.Bool("sweep", false, "sweep gravity, increment and spawn cadence instead of a single run")
	workers := flag.Int("workers", runtime.NumCPU(), "number of sweep worker goroutines")
	flag.Parse()

	if *schemaPath != "" {
		if err := writeSchema(*schemaPath); err != nil {
			log.Fatalf("failed to write schema: %v", err)
		}
		return
	}

	if *sweep {
		runSweep(cfg.EngineConfig(), sc, *workers)
		return
	}

	res := app.RunScenario(cfg.EngineConfig(), sc, cfg.Store(), log.Default())
	for _, r := range res.Reports {
		fmt.Printf("frame %5d  %-18s droplets=%2d splashes=%d fps=%d perf=%.2f\n",
			r.Frame, ocean.ProgressText(r.Level), r.Droplets, r.Splashes, r.FPS, r.PerfLevel)
	}
	printSummary(res)
}

func printSummary(res app.ScenarioResult) {
	fmt.Printf("\n%s after %d frames (%d collisions, %d spawned, %d rejected)\n",
		ocean.ProgressText(res.Level), res.Frames, res.Collisions, res.Spawned, res.Rejected)
	for _, m := range milestone.New().All() {
		frame, ok := res.Milestones[m.Name]
		at := "not reached"
		if ok {
			at = "frame " + strconv.Itoa(frame)
		}
		fmt.Printf("  %-10s (%3.0f%%) %s\n", m.Name, m.Threshold, at)
	}
}

func runSweep(base ocean.Config, sc app.Scenario, workers int) {
	if workers <= 0 {
		workers = 1
	}
	sc.ReportEvery = 0

	var sets []sweepParams
	for _, g := range []float64{0.0008, 0.0012, 0.0016} {
		for _, inc := range []float64{0.5, 0.8, 1.2} {
			for _, every := range []int{3, 6, 12} {
				sets = append(sets, sweepParams{gravity: g, increment: inc, spawnEvery: every})
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d frames)\n", len(sets), workers, sc.Frames)

	jobs := make(chan sweepParams)
	results := make(chan sweepResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				cfg := base
				cfg.Gravity = p.gravity
				cfg.DropletIncrement = p.increment
				run := sc
				run.SpawnEvery = p.spawnEvery
				results <- sweepResult{params: p, result: app.RunScenario(cfg, run, nil, nil)}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, p := range sets {
			jobs <- p
		}
		close(jobs)
	}()

	start := time.Now()
	var all []sweepResult
	for r := range results {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool {
		return fillFrame(all[i].result) < fillFrame(all[j].result)
	})

	fmt.Printf("\nResults by time to fill (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for i, r := range all {
		filled := "never"
		if r.result.FilledAt >= 0 {
			filled = (time.Duration(r.result.FilledAt) * sc.Frame).Round(100 * time.Millisecond).String()
		}
		fmt.Printf("%2d) filled=%-8s level=%5.1f collisions=%4d rejected=%4d %s\n",
			i+1, filled, r.result.Level, r.result.Collisions, r.result.Rejected, r.params)
	}
}

func fillFrame(res app.ScenarioResult) int {
	if res.FilledAt < 0 {
		return int(^uint(0) >> 1)
	}
	return res.FilledAt
}

func writeSchema(outPath string) error {
	data, err := json.MarshalIndent(progress.Schema(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}
