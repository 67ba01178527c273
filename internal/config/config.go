package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the generator's runtime settings. Built-in defaults live in
// the env tags; the environment overrides them and CLI flags override the
// environment.
type Config struct {
	Events              int     `env:"CLICKGEN_EVENTS" envDefault:"200"`
	MaxEventsPerSession int     `env:"CLICKGEN_MAX_EVENTS_PER_SESSION" envDefault:"12"`
	SleepMs             int     `env:"CLICKGEN_SLEEP_MS" envDefault:"0"`
	Out                 string  `env:"CLICKGEN_OUT" envDefault:"-"`
	DupRate             float64 `env:"CLICKGEN_DUP_RATE" envDefault:"0.01"`
	OORate              float64 `env:"CLICKGEN_OO_RATE" envDefault:"0.02"`
	Seed                int64   `env:"CLICKGEN_SEED" envDefault:"0"`
	Environment         string  `env:"CLICKGEN_ENVIRONMENT" envDefault:"development"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

// Validate rejects settings outside their legal ranges before any work
// starts. Violations are fatal configuration errors.
func (c *Config) Validate() error {
	if c.Events <= 0 {
		return fmt.Errorf("events must be positive, got %d", c.Events)
	}
	if c.MaxEventsPerSession < 1 {
		return fmt.Errorf("max-events-per-session must be at least 1, got %d", c.MaxEventsPerSession)
	}
	if c.SleepMs < 0 {
		return fmt.Errorf("sleep-ms must not be negative, got %d", c.SleepMs)
	}
	if c.DupRate < 0 || c.DupRate > 1 {
		return fmt.Errorf("dup-rate must be in [0, 1], got %g", c.DupRate)
	}
	if c.OORate < 0 || c.OORate > 1 {
		return fmt.Errorf("oo-rate must be in [0, 1], got %g", c.OORate)
	}

	return nil
}
