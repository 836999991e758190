// Package progress persists the water level and milestone flags so a visitor
// can pick up where they left off.
package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
)

// Storage keys for the two persisted values.
const (
	LevelKey      = "ocean.waterLevel"
	MilestonesKey = "ocean.milestones"
)

// Record is the persisted progress.
type Record struct {
	WaterLevel float64         `json:"waterLevel" jsonschema:"title=Water level,description=Fill percentage of the ocean,minimum=0,maximum=100,required"`
	Milestones map[string]bool `json:"milestones" jsonschema:"title=Milestones,description=Achievement flag per milestone name,required"`
}

// Manager reads and writes Records through a Store. Failures never escape as
// panics: Save returns an error for the caller to log and Load reports false
// so the caller starts fresh.
type Manager struct {
	store  Store
	logger *log.Logger
}

// NewManager wraps store. A nil store makes every Save fail with
// ErrUnavailable and every Load report no saved state. A nil logger uses
// log.Default().
func NewManager(store Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{store: store, logger: logger}
}

// Save writes rec under LevelKey and MilestonesKey in a single store update.
func (m *Manager) Save(rec Record) error {
	if m.store == nil {
		return fmt.Errorf("save progress: %w", ErrUnavailable)
	}
	if math.IsNaN(rec.WaterLevel) || math.IsInf(rec.WaterLevel, 0) {
		return fmt.Errorf("save progress: invalid water level %v", rec.WaterLevel)
	}
	flags := rec.Milestones
	if flags == nil {
		flags = map[string]bool{}
	}
	encoded, err := json.Marshal(flags)
	if err != nil {
		return fmt.Errorf("save progress: encode milestones: %w", err)
	}
	err = m.store.SetMany(map[string]string{
		LevelKey:      strconv.FormatFloat(rec.WaterLevel, 'f', -1, 64),
		MilestonesKey: string(encoded),
	})
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Load returns the saved record. It reports false when nothing was saved, the
// saved data is corrupt or the store cannot be read.
func (m *Manager) Load() (Record, bool) {
	if m.store == nil {
		return Record{}, false
	}
	rawLevel, err := m.store.Get(LevelKey)
	if err != nil {
		m.warnRead(LevelKey, err)
		return Record{}, false
	}
	level, err := strconv.ParseFloat(rawLevel, 64)
	if err != nil || math.IsNaN(level) || math.IsInf(level, 0) {
		m.logger.Printf("progress: ignoring corrupt %s value %q", LevelKey, rawLevel)
		return Record{}, false
	}

	rawFlags, err := m.store.Get(MilestonesKey)
	if err != nil {
		m.warnRead(MilestonesKey, err)
		return Record{}, false
	}
	var flags map[string]bool
	if err := json.Unmarshal([]byte(rawFlags), &flags); err != nil || flags == nil {
		m.logger.Printf("progress: ignoring corrupt %s value %q", MilestonesKey, rawFlags)
		return Record{}, false
	}

	return Record{
		WaterLevel: math.Max(0, math.Min(100, level)),
		Milestones: flags,
	}, true
}

func (m *Manager) warnRead(key string, err error) {
	if errors.Is(err, ErrNotFound) {
		return
	}
	m.logger.Printf("progress: cannot read %s, starting fresh: %v", key, err)
}
