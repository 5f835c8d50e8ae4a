package buffer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/prioflow/metric"
)

// bufferMetrics holds Prometheus metrics for buffer operations.
type bufferMetrics struct {
	// Counter metrics by priority label
	puts  *prometheus.CounterVec
	takes *prometheus.CounterVec

	// Gauge metrics - updated on operations
	size        prometheus.Gauge
	utilization prometheus.Gauge

	// Item latency observed at extraction
	latency prometheus.Histogram
}

// newBufferMetrics creates and registers buffer metrics with the provided registry.
func newBufferMetrics(registry *metric.MetricsRegistry, prefix string) (*bufferMetrics, error) {
	m := &bufferMetrics{
		puts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "prioflow",
			Subsystem:   "buffer",
			Name:        "puts_total",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Total number of items inserted into the buffer",
		}, []string{"priority"}),
		takes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "prioflow",
			Subsystem:   "buffer",
			Name:        "takes_total",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Total number of items extracted from the buffer",
		}, []string{"priority"}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "prioflow",
			Subsystem:   "buffer",
			Name:        "size",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Current number of items in buffer",
		}),
		utilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "prioflow",
			Subsystem:   "buffer",
			Name:        "utilization",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Buffer utilization as a percentage (0.0 to 1.0)",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "prioflow",
			Subsystem:   "buffer",
			Name:        "item_latency_seconds",
			ConstLabels: prometheus.Labels{"component": prefix},
			Help:        "Time items spent in the buffer before extraction",
			Buckets:     prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}

	// Register all metrics with the registry
	if err := registry.RegisterCounterVec(prefix, "buffer_puts", m.puts); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec(prefix, "buffer_takes", m.takes); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(prefix, "buffer_size", m.size); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(prefix, "buffer_utilization", m.utilization); err != nil {
		return nil, err
	}
	if err := registry.RegisterHistogram(prefix, "buffer_item_latency", m.latency); err != nil {
		return nil, err
	}

	return m, nil
}

// recordPut increments the put counter and updates size/utilization.
func (m *bufferMetrics) recordPut(priority string, size, capacity int) {
	m.puts.WithLabelValues(priority).Inc()
	m.size.Set(float64(size))
	m.utilization.Set(float64(size) / float64(capacity))
}

// recordTake increments the take counter and updates size/utilization.
func (m *bufferMetrics) recordTake(priority string, latency time.Duration, size, capacity int) {
	m.takes.WithLabelValues(priority).Inc()
	m.latency.Observe(latency.Seconds())
	m.size.Set(float64(size))
	m.utilization.Set(float64(size) / float64(capacity))
}
