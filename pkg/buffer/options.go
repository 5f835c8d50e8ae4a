package buffer

import (
	"time"

	"github.com/c360/prioflow/metric"
)

// Option configures buffer behavior using the functional options pattern.
type Option func(*bufferOptions)

// bufferOptions holds internal configuration for buffer instances.
// Stats are ALWAYS collected - they are not optional.
// Prometheus metrics are optional and enabled via WithMetrics().
type bufferOptions struct {
	clock func() time.Time

	// metricsReg is optional - if provided, buffer activity is also exposed
	// as Prometheus metrics
	metricsReg *metric.MetricsRegistry

	// metricsPrefix is used as the component label for Prometheus metrics
	metricsPrefix string
}

// WithMetrics enables Prometheus metrics export for buffer activity.
// If registry is nil or prefix is empty, this option is ignored.
func WithMetrics(registry *metric.MetricsRegistry, prefix string) Option {
	return func(opts *bufferOptions) {
		if registry != nil && prefix != "" {
			opts.metricsReg = registry
			opts.metricsPrefix = prefix
		}
	}
}

// WithClock overrides the time source used for latency measurement.
// Intended for tests; defaults to time.Now.
func WithClock(clock func() time.Time) Option {
	return func(opts *bufferOptions) {
		if clock != nil {
			opts.clock = clock
		}
	}
}

// applyOptions applies functional options to create final buffer configuration.
func applyOptions(options ...Option) *bufferOptions {
	opts := &bufferOptions{
		clock: time.Now,
	}

	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}

	return opts
}
