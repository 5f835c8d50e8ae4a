package metric

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/prioflow/errors"
)

func TestNewMetricsRegistry(t *testing.T) {
	registry := NewMetricsRegistry()

	require.NotNil(t, registry)
	require.NotNil(t, registry.PrometheusRegistry())
	require.NotNil(t, registry.CoreMetrics())
}

func TestRegisterCounter(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_ops_total",
		Help: "Test counter",
	})

	err := registry.RegisterCounter("buffer", "test_ops_total", counter)
	require.NoError(t, err)

	// Same name for the same component must be rejected
	dup := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_ops_total_other",
		Help: "Different collector, same registry key",
	})
	err = registry.RegisterCounter("buffer", "test_ops_total", dup)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestRegisterPrometheusConflict(t *testing.T) {
	registry := NewMetricsRegistry()

	first := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "test_depth",
		Help: "Test gauge",
	})
	require.NoError(t, registry.RegisterGauge("buffer", "depth", first))

	// Same prometheus identity under a different registry key
	second := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "test_depth",
		Help: "Test gauge",
	})
	err := registry.RegisterGauge("pipeline", "depth", second)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestUnregister(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_removable_total",
		Help: "Test counter",
	})
	require.NoError(t, registry.RegisterCounter("buffer", "removable", counter))

	assert.True(t, registry.Unregister("buffer", "removable"))
	assert.False(t, registry.Unregister("buffer", "removable"))

	// Name is reusable after unregistration
	again := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_removable_total",
		Help: "Test counter",
	})
	assert.NoError(t, registry.RegisterCounter("buffer", "removable", again))
}

func TestCoreMetricsRecording(t *testing.T) {
	registry := NewMetricsRegistry()
	core := registry.CoreMetrics()

	core.RecordProduced("URGENT")
	core.RecordProduced("NORMAL")
	core.RecordProduced("NORMAL")
	core.RecordConsumed("NORMAL", 5*time.Millisecond)
	core.RecordSentinel()

	assert.Equal(t, 1.0, testutil.ToFloat64(core.ItemsProduced.WithLabelValues("URGENT")))
	assert.Equal(t, 2.0, testutil.ToFloat64(core.ItemsProduced.WithLabelValues("NORMAL")))
	assert.Equal(t, 1.0, testutil.ToFloat64(core.ItemsConsumed.WithLabelValues("NORMAL")))
	assert.Equal(t, 1.0, testutil.ToFloat64(core.SentinelsTotal))
}

func TestServerAddress(t *testing.T) {
	registry := NewMetricsRegistry()

	server := NewServer(0, "", registry)
	assert.Equal(t, "http://localhost:9090/metrics", server.Address())

	server = NewServer(8123, "/prom", registry)
	assert.Equal(t, "http://localhost:8123/prom", server.Address())
}

func TestServerStopWithoutStart(t *testing.T) {
	server := NewServer(9091, "/metrics", NewMetricsRegistry())
	assert.NoError(t, server.Stop())
}
