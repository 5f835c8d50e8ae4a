package buffer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsCounters(t *testing.T) {
	s := NewStatistics()

	s.RecordProduced()
	s.RecordProduced()
	s.RecordConsumed(10 * time.Millisecond)
	s.RecordSentinel()

	assert.Equal(t, int64(2), s.Produced())
	assert.Equal(t, int64(1), s.Consumed())
	assert.Equal(t, int64(1), s.Sentinels())
}

func TestStatisticsLatency(t *testing.T) {
	s := NewStatistics()

	assert.Equal(t, time.Duration(0), s.AverageLatency(), "no samples means zero average")

	s.RecordConsumed(10 * time.Millisecond)
	s.RecordConsumed(30 * time.Millisecond)
	s.RecordConsumed(20 * time.Millisecond)

	assert.Equal(t, 20*time.Millisecond, s.AverageLatency())
	assert.Equal(t, 10*time.Millisecond, s.MinLatency())
	assert.Equal(t, 30*time.Millisecond, s.MaxLatency())
}

func TestStatisticsSizeWatermark(t *testing.T) {
	s := NewStatistics()

	s.UpdateSize(3)
	s.UpdateSize(7)
	s.UpdateSize(2)

	assert.Equal(t, int64(2), s.CurrentSize())
	assert.Equal(t, int64(7), s.MaxSize())
}

func TestStatisticsThroughput(t *testing.T) {
	s := NewStatistics()

	for i := 0; i < 100; i++ {
		s.RecordConsumed(time.Millisecond)
	}

	assert.Greater(t, s.Throughput(), 0.0)
	assert.GreaterOrEqual(t, s.Uptime(), time.Duration(0))
}

func TestStatisticsReset(t *testing.T) {
	s := NewStatistics()

	s.RecordProduced()
	s.RecordConsumed(5 * time.Millisecond)
	s.RecordSentinel()
	s.UpdateSize(4)

	s.Reset()

	summary := s.Summary()
	assert.Zero(t, summary.Produced)
	assert.Zero(t, summary.Consumed)
	assert.Zero(t, summary.Sentinels)
	assert.Zero(t, summary.MaxSize)
	assert.Zero(t, summary.AverageLatency)
}

func TestStatisticsConcurrentRecording(t *testing.T) {
	s := NewStatistics()

	const workers = 16
	const perWorker = 500

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				s.RecordProduced()
				s.RecordConsumed(time.Millisecond)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(workers*perWorker), s.Produced())
	require.Equal(t, int64(workers*perWorker), s.Consumed())
	assert.Equal(t, time.Millisecond, s.AverageLatency())
}

func TestStatisticsSummary(t *testing.T) {
	s := NewStatistics()

	s.RecordProduced()
	s.RecordConsumed(8 * time.Millisecond)
	s.UpdateSize(1)

	summary := s.Summary()
	assert.Equal(t, int64(1), summary.Produced)
	assert.Equal(t, int64(1), summary.Consumed)
	assert.Equal(t, 8*time.Millisecond, summary.AverageLatency)
	assert.Equal(t, int64(1), summary.MaxSize)
	assert.GreaterOrEqual(t, summary.Throughput, 0.0)
}
