package buffer

import (
	"sync"
	"sync/atomic"
	"time"
)

// Statistics is the run accounting for a buffer: produced/consumed counts and
// per-item latency. It has its own exclusion domain, deliberately independent
// of the buffer guard, so recording never contends with buffer mutations.
type Statistics struct {
	// Atomic counters for thread-safe updates
	produced  int64
	consumed  int64
	sentinels int64

	// Protected by mutex
	mu             sync.RWMutex
	startTime      time.Time
	latencySum     time.Duration
	latencyMin     time.Duration
	latencyMax     time.Duration
	latencySamples int64
	currentSize    int64
	maxSize        int64
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{
		startTime: time.Now(),
	}
}

// RecordProduced records a real (non-sentinel) item entering the buffer.
func (s *Statistics) RecordProduced() {
	atomic.AddInt64(&s.produced, 1)
}

// RecordConsumed records a real item leaving the buffer and its latency.
func (s *Statistics) RecordConsumed(latency time.Duration) {
	atomic.AddInt64(&s.consumed, 1)

	s.mu.Lock()
	s.latencySum += latency
	s.latencySamples++
	if s.latencySamples == 1 || latency < s.latencyMin {
		s.latencyMin = latency
	}
	if latency > s.latencyMax {
		s.latencyMax = latency
	}
	s.mu.Unlock()
}

// RecordSentinel records a sentinel consumption.
func (s *Statistics) RecordSentinel() {
	atomic.AddInt64(&s.sentinels, 1)
}

// UpdateSize updates the current buffer occupancy.
func (s *Statistics) UpdateSize(size int64) {
	s.mu.Lock()
	s.currentSize = size
	if size > s.maxSize {
		s.maxSize = size
	}
	s.mu.Unlock()
}

// Produced returns the total number of real items produced.
func (s *Statistics) Produced() int64 {
	return atomic.LoadInt64(&s.produced)
}

// Consumed returns the total number of real items consumed.
func (s *Statistics) Consumed() int64 {
	return atomic.LoadInt64(&s.consumed)
}

// Sentinels returns the total number of sentinels consumed.
func (s *Statistics) Sentinels() int64 {
	return atomic.LoadInt64(&s.sentinels)
}

// CurrentSize returns the current buffer occupancy.
func (s *Statistics) CurrentSize() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentSize
}

// MaxSize returns the highest occupancy the buffer has reached.
func (s *Statistics) MaxSize() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxSize
}

// AverageLatency returns the mean item latency, 0 if nothing was consumed.
func (s *Statistics) AverageLatency() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latencySamples == 0 {
		return 0
	}
	return s.latencySum / time.Duration(s.latencySamples)
}

// MinLatency returns the smallest recorded latency, 0 if nothing was consumed.
func (s *Statistics) MinLatency() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latencyMin
}

// MaxLatency returns the largest recorded latency.
func (s *Statistics) MaxLatency() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latencyMax
}

// Throughput returns consumed items per second since the tracker started.
func (s *Statistics) Throughput() float64 {
	s.mu.RLock()
	elapsed := time.Since(s.startTime)
	s.mu.RUnlock()

	if elapsed == 0 {
		return 0.0
	}

	return float64(s.Consumed()) / elapsed.Seconds()
}

// Uptime returns how long the tracker has been running.
func (s *Statistics) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.startTime)
}

// Reset resets all statistics to zero.
func (s *Statistics) Reset() {
	atomic.StoreInt64(&s.produced, 0)
	atomic.StoreInt64(&s.consumed, 0)
	atomic.StoreInt64(&s.sentinels, 0)

	s.mu.Lock()
	s.startTime = time.Now()
	s.latencySum = 0
	s.latencyMin = 0
	s.latencyMax = 0
	s.latencySamples = 0
	s.currentSize = 0
	s.maxSize = 0
	s.mu.Unlock()
}

// StatsSummary is a point-in-time snapshot of all statistics.
type StatsSummary struct {
	Produced       int64         `json:"produced"`
	Consumed       int64         `json:"consumed"`
	Sentinels      int64         `json:"sentinels"`
	CurrentSize    int64         `json:"current_size"`
	MaxSize        int64         `json:"max_size"`
	AverageLatency time.Duration `json:"average_latency"`
	MinLatency     time.Duration `json:"min_latency"`
	MaxLatency     time.Duration `json:"max_latency"`
	Throughput     float64       `json:"throughput"`
	Uptime         time.Duration `json:"uptime"`
}

// Summary returns a snapshot of all statistics.
func (s *Statistics) Summary() StatsSummary {
	return StatsSummary{
		Produced:       s.Produced(),
		Consumed:       s.Consumed(),
		Sentinels:      s.Sentinels(),
		CurrentSize:    s.CurrentSize(),
		MaxSize:        s.MaxSize(),
		AverageLatency: s.AverageLatency(),
		MinLatency:     s.MinLatency(),
		MaxLatency:     s.MaxLatency(),
		Throughput:     s.Throughput(),
		Uptime:         s.Uptime(),
	}
}
