package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/prioflow/errors"
	"github.com/c360/prioflow/metric"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewValidation(t *testing.T) {
	testCases := []struct {
		name      string
		producers int
		consumers int
		capacity  int
	}{
		{"zero producers", 0, 1, 1},
		{"zero consumers", 1, 0, 1},
		{"negative producers", -1, 1, 1},
		{"zero capacity", 1, 1, 0},
		{"negative capacity", 1, 1, -5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.producers, tc.consumers, tc.capacity)
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err))
		})
	}
}

func TestRunScenarios(t *testing.T) {
	testCases := []struct {
		name      string
		producers int
		consumers int
		capacity  int
		items     int
	}{
		{"baseline", 3, 2, 10, 20},
		{"minimum capacity", 1, 1, 1, 20},
		{"high contention", 8, 8, 2, 20},
		{"more consumers than items", 2, 8, 4, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := New(tc.producers, tc.consumers, tc.capacity,
				WithLogger(quietLogger()),
				WithItemsPerProducer(tc.items),
				WithSeed(42))
			require.NoError(t, err)
			defer p.Shutdown()

			done := make(chan struct{})
			var report Report
			go func() {
				defer close(done)
				report, err = p.Run(context.Background())
			}()

			select {
			case <-done:
			case <-time.After(30 * time.Second):
				t.Fatal("run did not complete (liveness violation)")
			}
			require.NoError(t, err)

			expected := int64(tc.producers * tc.items)
			assert.Equal(t, expected, report.Produced, "no loss on the producer side")
			assert.Equal(t, expected, report.Consumed, "no loss, no duplication")
			assert.Equal(t, int64(tc.consumers), report.Sentinels, "one sentinel per consumer")
			assert.LessOrEqual(t, report.MaxOccupancy, int64(tc.capacity), "occupancy never exceeds capacity")
			assert.GreaterOrEqual(t, report.AverageLatency, time.Duration(0))
			assert.GreaterOrEqual(t, report.MinLatency, time.Duration(0))
		})
	}
}

func TestRunThroughputConsistency(t *testing.T) {
	p, err := New(3, 2, 10,
		WithLogger(quietLogger()),
		WithSeed(7))
	require.NoError(t, err)
	defer p.Shutdown()

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Greater(t, report.Elapsed, time.Duration(0))
	expected := float64(report.Consumed) / report.Elapsed.Seconds()
	assert.InDelta(t, expected, report.Throughput, expected*0.01)
}

func TestRunOnlyOnce(t *testing.T) {
	p, err := New(1, 1, 2, WithLogger(quietLogger()), WithItemsPerProducer(1))
	require.NoError(t, err)
	defer p.Shutdown()

	_, err = p.Run(context.Background())
	require.NoError(t, err)

	_, err = p.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrAlreadyStarted)
}

func TestRunAllUrgent(t *testing.T) {
	p, err := New(4, 2, 5,
		WithLogger(quietLogger()),
		WithUrgentPercent(100),
		WithItemsPerProducer(10),
		WithSeed(1))
	require.NoError(t, err)
	defer p.Shutdown()

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(40), report.Consumed)
	assert.Equal(t, int64(2), report.Sentinels)
}

func TestRunWithMetrics(t *testing.T) {
	registry := metric.NewMetricsRegistry()

	p, err := New(2, 2, 4,
		WithLogger(quietLogger()),
		WithMetricsRegistry(registry),
		WithItemsPerProducer(5),
		WithUrgentPercent(0),
		WithSeed(3))
	require.NoError(t, err)
	defer p.Shutdown()

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(10), report.Consumed)

	core := registry.CoreMetrics()
	assert.Equal(t, 10.0, testutil.ToFloat64(core.ItemsProduced.WithLabelValues("NORMAL")))
	assert.Equal(t, 10.0, testutil.ToFloat64(core.ItemsConsumed.WithLabelValues("NORMAL")))
	assert.Equal(t, 2.0, testutil.ToFloat64(core.SentinelsTotal))
	assert.Equal(t, float64(StatusDone), testutil.ToFloat64(core.RunStatus))
}

func TestRunWithRate(t *testing.T) {
	p, err := New(1, 1, 2,
		WithLogger(quietLogger()),
		WithItemsPerProducer(5),
		WithRate(10000),
		WithSeed(5))
	require.NoError(t, err)
	defer p.Shutdown()

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), report.Consumed)
}

func TestRunCancelledContext(t *testing.T) {
	p, err := New(1, 1, 1,
		WithLogger(quietLogger()),
		WithItemsPerProducer(1000),
		WithRate(10)) // slow enough that cancellation lands mid-run
	require.NoError(t, err)
	defer p.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = p.Run(ctx)
	require.Error(t, err)
}
