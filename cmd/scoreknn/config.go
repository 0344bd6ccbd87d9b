package main

import (
	"github.com/kelseyhightower/envconfig"

	"github.com/YuminosukeSato/scoreknn/analysis"
	"github.com/YuminosukeSato/scoreknn/pkg/errors"
)

// EnvPrefix is prepended to every variable, e.g. SCOREKNN_K.
const EnvPrefix = "SCOREKNN"

// Config is the harness configuration read from SCOREKNN_* variables.
type Config struct {
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	Observations int    `envconfig:"OBSERVATIONS" default:"500"`
	TestSetSize  int    `envconfig:"TEST_SET_SIZE" default:"50"`
	K            int    `envconfig:"K" default:"10"`
	Seed         uint64 `envconfig:"SEED" default:"0"`
	Combined     bool   `envconfig:"COMBINED" default:"false"`
	PlotPath     string `envconfig:"PLOT_PATH"`
}

// LoadConfig reads and validates the configuration from the environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "error loading environment variables")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects sizes the analysis cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Observations < 0:
		return errors.NewValidationError("OBSERVATIONS", "must not be negative", c.Observations)
	case c.TestSetSize <= 0:
		return errors.NewValidationError("TEST_SET_SIZE", "must be positive", c.TestSetSize)
	case c.K <= 0:
		return errors.NewValidationError("K", "must be positive", c.K)
	}
	return nil
}

// SessionOptions maps the config onto analysis options. Seed 0 leaves the
// splits non-deterministic.
func (c *Config) SessionOptions() []analysis.Option {
	opts := []analysis.Option{
		analysis.WithTestSetSize(c.TestSetSize),
		analysis.WithK(c.K),
	}
	if c.Seed != 0 {
		opts = append(opts, analysis.WithRandomState(c.Seed))
	}
	if c.Combined {
		opts = append(opts, analysis.WithCombinedFeatures())
	}
	return opts
}
