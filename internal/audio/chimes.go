// Package audio plays short synthesized chimes when milestones are reached.
package audio

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"ocean-fill/internal/milestone"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the output rate used for every chime.
const SampleRate = beep.SampleRate(44100)

const (
	noteLength = 180 * time.Millisecond
	attack     = 10 * time.Millisecond
	release    = 120 * time.Millisecond
)

// Note frequencies in Hz.
const (
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteA5 = 880.00
	noteC6 = 1046.50
)

// Chimes owns the speaker mixer. Play is safe to call from the frame loop;
// it never blocks on audio output.
type Chimes struct {
	mu     sync.Mutex
	volume float64
	logger *log.Logger
	mixer  *beep.Mixer
	ready  bool
}

// NewChimes creates a silent player. Call Init to open the audio device.
func NewChimes(volume float64, logger *log.Logger) *Chimes {
	if logger == nil {
		logger = log.Default()
	}
	return &Chimes{
		volume: math.Max(0, math.Min(1, volume)),
		logger: logger,
		mixer:  &beep.Mixer{},
	}
}

// Init opens the speaker. Without a working device Play stays a no-op.
func (c *Chimes) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(c.mixer)
	c.ready = true
	return nil
}

// Play queues the chime for a milestone.
func (c *Chimes) Play(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready {
		return
	}
	s := Tune(name, SampleRate, c.volume)
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// Ready reports whether Init succeeded.
func (c *Chimes) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// Close silences pending chimes.
func (c *Chimes) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.ready = false
}

// Tune builds the chime for a milestone: a rising pair for fish, an arpeggio
// for waves and an arpeggio resolving into a chord for completion. Unknown
// names get a single note.
func Tune(name string, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch name {
	case milestone.Fish:
		s = beep.Seq(note(noteC5, rate), note(noteE5, rate))
	case milestone.Waves:
		s = beep.Seq(note(noteC5, rate), note(noteE5, rate), note(noteG5, rate))
	case milestone.Completion:
		chord := beep.Mix(
			withVolume(note(noteC5, rate), 0.4),
			withVolume(note(noteG5, rate), 0.3),
			withVolume(note(noteC6, rate), 0.3),
		)
		s = beep.Seq(note(noteC5, rate), note(noteE5, rate), note(noteG5, rate), chord)
	default:
		s = note(noteA5, rate)
	}
	return withVolume(s, volume)
}

// note is one enveloped sine tone. A frequency the rate cannot carry plays
// as silence of the same length.
func note(freq float64, rate beep.SampleRate) beep.Streamer {
	tone, err := generators.SineTone(rate, freq)
	if err != nil {
		tone = beep.Silence(-1)
	}
	return newEnvelope(beep.Take(rate.N(noteLength), tone), rate)
}

// withVolume scales s linearly; zero silences it since log2(0) is -Inf.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// envelope fades a note in over attack and out over its last release span.
type envelope struct {
	streamer beep.Streamer
	pos      int
	total    int
	attack   int
	release  int
}

func newEnvelope(s beep.Streamer, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		total:    rate.N(noteLength),
		attack:   rate.N(attack),
		release:  rate.N(release),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; left < e.release {
			vol = math.Min(vol, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
