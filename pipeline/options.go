package pipeline

import (
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/c360/prioflow/metric"
)

// Defaults match the classic exercise this pipeline generalizes: each
// producer emits 20 items and roughly a quarter of them are urgent.
const (
	DefaultItemsPerProducer = 20
	DefaultUrgentPercent    = 25
)

// Option configures pipeline behavior using the functional options pattern.
type Option func(*pipelineOptions)

type pipelineOptions struct {
	logger           *slog.Logger
	metricsReg       *metric.MetricsRegistry
	itemsPerProducer int
	urgentPercent    int
	limiter          *rate.Limiter
	seed             int64
	seeded           bool
}

// WithLogger sets the logger for run and per-item events.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(opts *pipelineOptions) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// WithMetricsRegistry enables Prometheus metrics for the run and its buffer.
func WithMetricsRegistry(registry *metric.MetricsRegistry) Option {
	return func(opts *pipelineOptions) {
		opts.metricsReg = registry
	}
}

// WithItemsPerProducer sets how many items each producer generates.
func WithItemsPerProducer(n int) Option {
	return func(opts *pipelineOptions) {
		if n > 0 {
			opts.itemsPerProducer = n
		}
	}
}

// WithUrgentPercent sets the probability (0-100) that a produced item is
// urgent.
func WithUrgentPercent(percent int) Option {
	return func(opts *pipelineOptions) {
		if percent >= 0 && percent <= 100 {
			opts.urgentPercent = percent
		}
	}
}

// WithRate limits aggregate production to n items per second. Zero or
// negative disables pacing (the default).
func WithRate(n float64) Option {
	return func(opts *pipelineOptions) {
		if n > 0 {
			opts.limiter = rate.NewLimiter(rate.Limit(n), 1)
		}
	}
}

// WithSeed makes item generation deterministic. Producer i derives its
// generator from seed+i, so runs with the same configuration repeat exactly.
func WithSeed(seed int64) Option {
	return func(opts *pipelineOptions) {
		opts.seed = seed
		opts.seeded = true
	}
}

func applyOptions(options ...Option) *pipelineOptions {
	opts := &pipelineOptions{
		logger:           slog.Default(),
		itemsPerProducer: DefaultItemsPerProducer,
		urgentPercent:    DefaultUrgentPercent,
	}

	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}

	return opts
}
