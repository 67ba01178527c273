package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Events:              200,
		MaxEventsPerSession: 12,
		SleepMs:             0,
		Out:                 "-",
		DupRate:             0.01,
		OORate:              0.02,
		Environment:         "development",
	}
}

func TestConfig_Load_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.Events)
	assert.Equal(t, 12, cfg.MaxEventsPerSession)
	assert.Equal(t, 0, cfg.SleepMs)
	assert.Equal(t, "-", cfg.Out)
	assert.Equal(t, 0.01, cfg.DupRate)
	assert.Equal(t, 0.02, cfg.OORate)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, "development", cfg.Environment)
}

func TestConfig_Load_EnvironmentOverrides(t *testing.T) {
	t.Setenv("CLICKGEN_EVENTS", "5000")
	t.Setenv("CLICKGEN_DUP_RATE", "0.25")
	t.Setenv("CLICKGEN_OUT", "/tmp/events.jsonl")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Events)
	assert.Equal(t, 0.25, cfg.DupRate)
	assert.Equal(t, "/tmp/events.jsonl", cfg.Out)
	assert.Equal(t, 12, cfg.MaxEventsPerSession)
}

func TestConfig_Validate_Valid(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero events", func(c *Config) { c.Events = 0 }, "events must be positive"},
		{"negative events", func(c *Config) { c.Events = -5 }, "events must be positive"},
		{"zero session length", func(c *Config) { c.MaxEventsPerSession = 0 }, "max-events-per-session"},
		{"negative sleep", func(c *Config) { c.SleepMs = -1 }, "sleep-ms"},
		{"dup rate below range", func(c *Config) { c.DupRate = -0.1 }, "dup-rate must be in [0, 1]"},
		{"dup rate above range", func(c *Config) { c.DupRate = 1.5 }, "dup-rate must be in [0, 1]"},
		{"oo rate below range", func(c *Config) { c.OORate = -0.1 }, "oo-rate must be in [0, 1]"},
		{"oo rate above range", func(c *Config) { c.OORate = 2 }, "oo-rate must be in [0, 1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
