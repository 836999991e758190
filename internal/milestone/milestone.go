// Package milestone turns the water level into one-shot achievements.
package milestone

import "sort"

// Names of the built-in milestones.
const (
	Fish       = "fish"
	Waves      = "waves"
	Completion = "completion"
)

// Milestone is a named water-level threshold. Once Achieved it stays achieved
// until Reset.
type Milestone struct {
	Name      string
	Threshold float64
	Achieved  bool
}

// Tracker evaluates a fixed set of milestones against the water level.
type Tracker struct {
	milestones []Milestone
}

// New returns a Tracker with the fish (30), waves (70) and completion (100)
// milestones.
func New() *Tracker {
	return NewWithThresholds(map[string]float64{
		Fish:       30,
		Waves:      70,
		Completion: 100,
	})
}

// NewWithThresholds returns a Tracker for arbitrary thresholds, ordered by
// ascending threshold (ties broken by name).
func NewWithThresholds(thresholds map[string]float64) *Tracker {
	ms := make([]Milestone, 0, len(thresholds))
	for name, th := range thresholds {
		ms = append(ms, Milestone{Name: name, Threshold: th})
	}
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].Threshold != ms[j].Threshold {
			return ms[i].Threshold < ms[j].Threshold
		}
		return ms[i].Name < ms[j].Name
	})
	return &Tracker{milestones: ms}
}

// Evaluate achieves every pending milestone whose threshold is at or below
// level and returns their names in ascending threshold order. Milestones that
// were already achieved are never reported again.
func (t *Tracker) Evaluate(level float64) []string {
	var fired []string
	for i := range t.milestones {
		m := &t.milestones[i]
		if m.Achieved || level < m.Threshold {
			continue
		}
		m.Achieved = true
		fired = append(fired, m.Name)
	}
	return fired
}

// Reset puts every milestone back to pending.
func (t *Tracker) Reset() {
	for i := range t.milestones {
		t.milestones[i].Achieved = false
	}
}

// Achieved reports whether the named milestone has been reached. Unknown
// names report false.
func (t *Tracker) Achieved(name string) bool {
	for _, m := range t.milestones {
		if m.Name == name {
			return m.Achieved
		}
	}
	return false
}

// Flags returns the achievement state of every milestone keyed by name.
func (t *Tracker) Flags() map[string]bool {
	flags := make(map[string]bool, len(t.milestones))
	for _, m := range t.milestones {
		flags[m.Name] = m.Achieved
	}
	return flags
}

// Restore marks milestones achieved from saved flags without reporting them.
// Unknown names are ignored and false entries never clear an achievement.
func (t *Tracker) Restore(flags map[string]bool) {
	for i := range t.milestones {
		if flags[t.milestones[i].Name] {
			t.milestones[i].Achieved = true
		}
	}
}

// All returns a copy of the milestones in threshold order.
func (t *Tracker) All() []Milestone {
	return append([]Milestone(nil), t.milestones...)
}

// Message returns the announcement text for a milestone.
func Message(name string) string {
	switch name {
	case Fish:
		return "Fish have moved into your ocean!"
	case Waves:
		return "Waves are rolling across the ocean!"
	case Completion:
		return "The ocean is full! Thank you for every drop."
	default:
		return "Milestone reached: " + name
	}
}
