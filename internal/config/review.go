package config

import (
	"fmt"

	"github.com/JaimeStill/revisor/internal/policy"
	"github.com/JaimeStill/revisor/pkg/envvar"
)

const (
	EnvReviewWorkers      = "REVISOR_REVIEW_WORKERS"
	EnvReviewMaxRecordAge = "REVISOR_REVIEW_MAX_RECORD_AGE"
)

// ReviewConfig holds batch review parameters.
type ReviewConfig struct {
	// Workers bounds concurrent oracle calls within one run.
	Workers int `toml:"workers"`
	// MaxRecordAge is the validity window of a criminal record in days.
	MaxRecordAge int `toml:"max_record_age"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ReviewConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ReviewConfig) Merge(overlay *ReviewConfig) {
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
	if overlay.MaxRecordAge != 0 {
		c.MaxRecordAge = overlay.MaxRecordAge
	}
}

func (c *ReviewConfig) loadDefaults() {
	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.MaxRecordAge == 0 {
		c.MaxRecordAge = policy.DefaultMaxRecordAge
	}
}

func (c *ReviewConfig) loadEnv() {
	envvar.Int(EnvReviewWorkers, &c.Workers)
	envvar.Int(EnvReviewMaxRecordAge, &c.MaxRecordAge)
}

func (c *ReviewConfig) validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive")
	}
	if c.MaxRecordAge < 1 {
		return fmt.Errorf("max_record_age must be positive")
	}
	return nil
}
