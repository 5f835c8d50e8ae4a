// Package config loads and validates the PrioFlow run configuration from
// JSON or YAML files, with sensible defaults matching the classic exercise.
package config

import (
	"fmt"

	"github.com/c360/prioflow/errors"
)

// Config represents the complete run configuration.
type Config struct {
	// Producers is the number of producer goroutines. Must be positive.
	Producers int `json:"producers" yaml:"producers"`

	// Consumers is the number of consumer goroutines. Must be positive.
	Consumers int `json:"consumers" yaml:"consumers"`

	// Capacity is the fixed buffer size. Must be positive.
	Capacity int `json:"capacity" yaml:"capacity"`

	// ItemsPerProducer is how many items each producer generates.
	ItemsPerProducer int `json:"items_per_producer" yaml:"items_per_producer"`

	// UrgentPercent is the probability (0-100) that an item is urgent.
	UrgentPercent int `json:"urgent_percent" yaml:"urgent_percent"`

	// RatePerSec limits aggregate production; 0 disables pacing.
	RatePerSec float64 `json:"rate_per_sec" yaml:"rate_per_sec"`

	// Seed makes item generation deterministic when non-zero.
	Seed int64 `json:"seed" yaml:"seed"`

	// MetricsPort exposes Prometheus metrics when positive; 0 disables.
	MetricsPort int `json:"metrics_port" yaml:"metrics_port"`
}

// Default returns the configuration the classic exercise runs with.
func Default() *Config {
	return &Config{
		Producers:        3,
		Consumers:        2,
		Capacity:         10,
		ItemsPerProducer: 20,
		UrgentPercent:    25,
	}
}

// Validate checks the configuration for fatal setup errors.
func (c *Config) Validate() error {
	if c.Producers <= 0 {
		return errors.WrapInvalid(
			fmt.Errorf("producers must be positive, got %d", c.Producers),
			"Config", "Validate", "producer count")
	}
	if c.Consumers <= 0 {
		return errors.WrapInvalid(
			fmt.Errorf("consumers must be positive, got %d", c.Consumers),
			"Config", "Validate", "consumer count")
	}
	if c.Capacity <= 0 {
		return errors.WrapInvalid(
			fmt.Errorf("capacity must be positive, got %d", c.Capacity),
			"Config", "Validate", "buffer capacity")
	}
	if c.ItemsPerProducer <= 0 {
		return errors.WrapInvalid(
			fmt.Errorf("items_per_producer must be positive, got %d", c.ItemsPerProducer),
			"Config", "Validate", "items per producer")
	}
	if c.UrgentPercent < 0 || c.UrgentPercent > 100 {
		return errors.WrapInvalid(
			fmt.Errorf("urgent_percent must be in [0,100], got %d", c.UrgentPercent),
			"Config", "Validate", "urgent percent")
	}
	if c.RatePerSec < 0 {
		return errors.WrapInvalid(
			fmt.Errorf("rate_per_sec must be non-negative, got %f", c.RatePerSec),
			"Config", "Validate", "production rate")
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		return errors.WrapInvalid(
			fmt.Errorf("metrics_port must be a valid port, got %d", c.MetricsPort),
			"Config", "Validate", "metrics port")
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
