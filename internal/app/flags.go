package app

import (
	"flag"
	"strings"
	"time"

	"ocean-fill/internal/ocean"
	"ocean-fill/internal/progress"
)

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set appends one key=value pair.
func (l *KVList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// Map splits the pairs into a map, skipping malformed entries. Later pairs
// win over earlier ones.
func (l KVList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			continue
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return out
}

// Config represents the command-line parameters shared by the frontends.
type Config struct {
	TPS          int
	Seed         int64
	SavePath     string
	SaveInterval time.Duration
	Mute         bool
	Overrides    KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{TPS: 60, Seed: 42, SaveInterval: progress.DefaultSaveInterval}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for droplet jitter")
	fs.StringVar(&c.SavePath, "save", c.SavePath, "progress file (empty keeps progress for this session only)")
	fs.DurationVar(&c.SaveInterval, "save-interval", c.SaveInterval, "minimum spacing between routine saves")
	fs.BoolVar(&c.Mute, "mute", c.Mute, "disable milestone chimes")
	fs.Var(&c.Overrides, "set", "engine parameter override in key=value form (repeatable)")
}

// EngineConfig builds the engine configuration from the overrides. The -seed
// flag applies unless an explicit seed override is given.
func (c *Config) EngineConfig() ocean.Config {
	kv := c.Overrides.Map()
	cfg := ocean.FromMap(kv)
	if _, ok := kv["seed"]; !ok {
		cfg.Seed = c.Seed
	}
	return cfg
}

// Store returns the persistence backend selected by SavePath.
func (c *Config) Store() progress.Store {
	if c.SavePath == "" {
		return progress.NewMemoryStore()
	}
	return progress.NewFileStore(c.SavePath)
}
