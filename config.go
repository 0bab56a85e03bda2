package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ModeRestart = "restart"
	ModeEvolve  = "evolve"

	ScoreRanking = "ranking"
	ScoreValue   = "value"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds search tuning parameters and process settings. Adjust the search knobs to
// trade speed for solution quality.
type Config struct {
	// Mode selects repeated-restart hill climbing or generational evolution.
	Mode string `yaml:"mode"`
	// Scoring selects what candidates are ranked by: ranking score or raw value.
	Scoring string `yaml:"scoring"`
	// Seed feeds the search's random source. Equal seeds reproduce a run.
	Seed uint64 `yaml:"seed"`
	// Workers is the number of independent restart streams run in parallel.
	Workers int `yaml:"workers"`

	// Workshops times DaysPerWorkshop is the maximum number of days in a week.
	Workshops       int `yaml:"workshops"`
	DaysPerWorkshop int `yaml:"daysPerWorkshop"`

	// AttemptBudget is how many random picks construction tries before giving up on a step.
	AttemptBudget int `yaml:"attemptBudget"`
	// NoImprovement stops restart mode after this many consecutive non-improving trials.
	NoImprovement int `yaml:"noImprovement"`
	// MaxTrials caps restart trials per worker. 0 means no cap.
	MaxTrials int `yaml:"maxTrials"`
	// TimeLimit caps the wall-clock time of a run. 0 means no limit.
	TimeLimit time.Duration `yaml:"timeLimit"`

	// Population is the generation size in evolve mode.
	Population int `yaml:"population"`
	// Generations is how many generations evolve mode runs.
	Generations int `yaml:"generations"`
	// EliteFraction of each generation is kept as parents, best first.
	EliteFraction float64 `yaml:"eliteFraction"`
	// LuckyFraction of the non-elite remainder is sampled as extra parents.
	LuckyFraction float64 `yaml:"luckyFraction"`
	// OffspringPerPair is how many children each parent pair produces.
	OffspringPerPair int `yaml:"offspringPerPair"`
	// MutationAttempts is the number of single-slot mutations tried per child.
	MutationAttempts int `yaml:"mutationAttempts"`

	Granary GranaryConfig `yaml:"granary"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
}

// GranaryConfig holds the weekly expedition yields per area.
type GranaryConfig struct {
	NormalPerWeek int `yaml:"normalPerWeek"`
	RarePerWeek   int `yaml:"rarePerWeek"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the tuning used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Mode:             ModeRestart,
		Scoring:          ScoreRanking,
		Seed:             1,
		Workers:          1,
		Workshops:        3,
		DaysPerWorkshop:  5,
		AttemptBudget:    100,
		NoImprovement:    5000,
		Population:       200,
		Generations:      100,
		EliteFraction:    0.2,
		LuckyFraction:    0.05,
		OffspringPerPair: 2,
		MutationAttempts: 3,
		Granary: GranaryConfig{
			NormalPerWeek: 35,
			RarePerWeek:   7,
		},
		Log:    LogConfig{Level: "info"},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// MaxDays is the day cap of a week.
func (c Config) MaxDays() int {
	return c.Workshops * c.DaysPerWorkshop
}

// LoadConfig starts from DefaultConfig, applies an optional YAML file, then ISLAND_*
// environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv("ISLAND_CONFIG_PATH")
	}
	if path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("ISLAND_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("ISLAND_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ISLAND_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	if v := os.Getenv("ISLAND_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ISLAND_WORKERS: %w", err)
		}
		cfg.Workers = n
	}
	if v := os.Getenv("ISLAND_TIME_LIMIT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ISLAND_TIME_LIMIT: %w", err)
		}
		cfg.TimeLimit = d
	}
	if v := os.Getenv("ISLAND_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("ISLAND_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	return nil
}

// Validate rejects knobs the search cannot run with.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeRestart, ModeEvolve:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	switch c.Scoring {
	case ScoreRanking, ScoreValue:
	default:
		return fmt.Errorf("%w: unknown scoring %q", ErrInvalidConfig, c.Scoring)
	}
	ints := []struct {
		name string
		v    int
	}{
		{"workers", c.Workers},
		{"workshops", c.Workshops},
		{"daysPerWorkshop", c.DaysPerWorkshop},
		{"attemptBudget", c.AttemptBudget},
		{"noImprovement", c.NoImprovement},
		{"maxTrials", c.MaxTrials},
		{"population", c.Population},
		{"generations", c.Generations},
		{"offspringPerPair", c.OffspringPerPair},
		{"mutationAttempts", c.MutationAttempts},
		{"granary.normalPerWeek", c.Granary.NormalPerWeek},
		{"granary.rarePerWeek", c.Granary.RarePerWeek},
	}
	for _, f := range ints {
		if f.v < 0 {
			return fmt.Errorf("%w: %s must not be negative (got %d)", ErrInvalidConfig, f.name, f.v)
		}
	}
	if c.EliteFraction < 0 || c.EliteFraction > 1 {
		return fmt.Errorf("%w: eliteFraction must be within [0,1] (got %g)", ErrInvalidConfig, c.EliteFraction)
	}
	if c.LuckyFraction < 0 || c.LuckyFraction > 1 {
		return fmt.Errorf("%w: luckyFraction must be within [0,1] (got %g)", ErrInvalidConfig, c.LuckyFraction)
	}
	if c.TimeLimit < 0 {
		return fmt.Errorf("%w: timeLimit must not be negative", ErrInvalidConfig)
	}
	return nil
}
