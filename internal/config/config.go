// Package config loads crisissim settings from YAML with environment overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/talgya/crisissim/internal/economy"
	"github.com/talgya/crisissim/internal/engine"
	"github.com/talgya/crisissim/internal/entropy"
	"github.com/talgya/crisissim/internal/report"
)

// DefaultPath is read when neither --config nor CRISISSIM_CONFIG is given.
const DefaultPath = "crisissim.yaml"

// Config holds all application configuration.
type Config struct {
	Population struct {
		Total int64 `yaml:"total"`
	} `yaml:"population"`
	Simulation struct {
		PeriodsPerCycle int `yaml:"periods_per_cycle"`
	} `yaml:"simulation"`
	Random struct {
		Source string `yaml:"source"` // math, crypto or simplex
		Seed   int64  `yaml:"seed"`   // 0 = random
	} `yaml:"random"`
	Policy struct {
		ApplyEffects bool `yaml:"apply_effects"`
	} `yaml:"policy"`
	Report struct {
		Path string `yaml:"path"`
	} `yaml:"report"`
	Database struct {
		Path string `yaml:"path"` // empty (default) disables run history
	} `yaml:"database"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Path resolves the config file location from flag, environment, then default.
func Path(flag string) string {
	if flag != "" {
		return flag
	}
	if v := os.Getenv("CRISISSIM_CONFIG"); v != "" {
		return v
	}
	return DefaultPath
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	// Defaults
	if cfg.Population.Total == 0 {
		cfg.Population.Total = economy.SpainPopulation
	}
	if cfg.Simulation.PeriodsPerCycle == 0 {
		cfg.Simulation.PeriodsPerCycle = engine.DefaultPeriods
	}
	if cfg.Random.Source == "" {
		cfg.Random.Source = entropy.KindMath
	}
	if cfg.Report.Path == "" {
		cfg.Report.Path = report.DefaultPath
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("CRISISSIM_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("CRISISSIM_SEED: %w", err)
		}
		c.Random.Seed = seed
	}
	if v := os.Getenv("CRISISSIM_RANDOM_SOURCE"); v != "" {
		c.Random.Source = v
	}
	if v := os.Getenv("CRISISSIM_REPORT_PATH"); v != "" {
		c.Report.Path = v
	}
	// Set but empty disables the database, so look it up rather than Getenv.
	if v, ok := os.LookupEnv("CRISISSIM_DB_PATH"); ok {
		c.Database.Path = v
	}
	if v := os.Getenv("CRISISSIM_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Population.Total <= 0 {
		return fmt.Errorf("population.total must be positive")
	}
	if c.Simulation.PeriodsPerCycle <= 0 {
		return fmt.Errorf("simulation.periods_per_cycle must be positive")
	}
	switch c.Random.Source {
	case entropy.KindMath, entropy.KindCrypto, entropy.KindSimplex:
	default:
		return fmt.Errorf("random.source must be one of math, crypto, simplex (got %q)", c.Random.Source)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses log.level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(c.Log.Level))); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}
