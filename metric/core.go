package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all platform-level metrics (not component-specific)
type Metrics struct {
	// Flow metrics
	ItemsProduced  *prometheus.CounterVec
	ItemsConsumed  *prometheus.CounterVec
	ItemLatency    prometheus.Histogram
	SentinelsTotal prometheus.Counter

	// Run metrics
	RunStatus     prometheus.Gauge
	WorkersActive *prometheus.GaugeVec
	RunDuration   prometheus.Histogram
	ErrorsTotal   *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all platform metrics
func NewMetrics() *Metrics {
	return &Metrics{
		ItemsProduced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "prioflow",
				Subsystem: "items",
				Name:      "produced_total",
				Help:      "Total number of items produced",
			},
			[]string{"priority"},
		),

		ItemsConsumed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "prioflow",
				Subsystem: "items",
				Name:      "consumed_total",
				Help:      "Total number of items consumed",
			},
			[]string{"priority"},
		),

		ItemLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "prioflow",
				Subsystem: "items",
				Name:      "latency_seconds",
				Help:      "Time between item production and consumption in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),

		SentinelsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "prioflow",
				Subsystem: "items",
				Name:      "sentinels_total",
				Help:      "Total number of sentinel items consumed",
			},
		),

		RunStatus: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "prioflow",
				Subsystem: "run",
				Name:      "status",
				Help:      "Run status (0=idle, 1=running, 2=draining, 3=done, 4=failed)",
			},
		),

		WorkersActive: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "prioflow",
				Subsystem: "run",
				Name:      "workers_active",
				Help:      "Number of active worker goroutines",
			},
			[]string{"role"},
		),

		RunDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "prioflow",
				Subsystem: "run",
				Name:      "duration_seconds",
				Help:      "Wall-clock duration of complete runs in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),

		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "prioflow",
				Subsystem: "errors",
				Name:      "total",
				Help:      "Total number of errors",
			},
			[]string{"component", "type"},
		),
	}
}

// RecordProduced increments the produced item counter
func (c *Metrics) RecordProduced(priority string) {
	c.ItemsProduced.WithLabelValues(priority).Inc()
}

// RecordConsumed increments the consumed item counter and observes latency
func (c *Metrics) RecordConsumed(priority string, latency time.Duration) {
	c.ItemsConsumed.WithLabelValues(priority).Inc()
	c.ItemLatency.Observe(latency.Seconds())
}

// RecordSentinel increments the sentinel consumption counter
func (c *Metrics) RecordSentinel() {
	c.SentinelsTotal.Inc()
}

// RecordRunStatus updates the run status gauge
func (c *Metrics) RecordRunStatus(status int) {
	c.RunStatus.Set(float64(status))
}

// RecordWorkersActive sets the number of active workers for a role
func (c *Metrics) RecordWorkersActive(role string, count int) {
	c.WorkersActive.WithLabelValues(role).Set(float64(count))
}

// RecordRunDuration observes a completed run's wall-clock time
func (c *Metrics) RecordRunDuration(elapsed time.Duration) {
	c.RunDuration.Observe(elapsed.Seconds())
}

// RecordError increments the error counter
func (c *Metrics) RecordError(component, errorType string) {
	c.ErrorsTotal.WithLabelValues(component, errorType).Inc()
}
