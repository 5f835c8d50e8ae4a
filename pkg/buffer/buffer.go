package buffer

import (
	"context"
	"sync"
	"time"

	"github.com/c360/prioflow/errors"
	"github.com/c360/prioflow/types"
)

// PriorityBuffer is a bounded, thread-safe buffer with priority-ordered
// extraction. Producers block when it is full, consumers block when it is
// empty; neither ever spins. Priority ordering is enforced at insert time, so
// extraction always removes the highest-priority resident item in O(1).
//
// Synchronization layering, outermost first:
//
//  1. Flow gates (empty/filled) bound how many items are in flight. A caller
//     always clears its gate before touching the guard, so no goroutine ever
//     blocks on a gate while holding the guard.
//  2. The guard (a mutex) serializes every ring mutation.
//  3. Statistics use their own exclusion domain and are only touched after
//     the guard is released. The two domains are never nested.
type PriorityBuffer struct {
	mu   sync.Mutex // the guard: serializes all ring mutations
	ring *priorityRing

	empty  *gate // permits for producers, starts at capacity
	filled *gate // permits for consumers, starts at zero

	stats   *Statistics
	metrics *bufferMetrics
	clock   func() time.Time

	closeOnce sync.Once
	closed    bool
}

// New creates a PriorityBuffer with the given capacity.
// Stats are always collected; Prometheus metrics are optional via WithMetrics().
func New(capacity int, options ...Option) (*PriorityBuffer, error) {
	if capacity <= 0 {
		return nil, errors.WrapInvalid(errors.ErrInvalidCapacity,
			"Buffer", "New", "capacity validation")
	}

	opts := applyOptions(options...)

	var metrics *bufferMetrics
	if opts.metricsReg != nil && opts.metricsPrefix != "" {
		var err error
		metrics, err = newBufferMetrics(opts.metricsReg, opts.metricsPrefix)
		if err != nil {
			return nil, errors.WrapFatal(err, "Buffer", "New", "metrics registration")
		}
	}

	return &PriorityBuffer{
		ring:    newPriorityRing(capacity),
		empty:   newGate(capacity),
		filled:  newGate(0),
		stats:   NewStatistics(),
		metrics: metrics,
		clock:   opts.clock,
	}, nil
}

// Put inserts an item, blocking while the buffer is full. The item lands in
// priority position: ahead of every strictly lower-rank resident, behind
// every same-or-higher-rank one. Returns an error only if the buffer is
// closed or ctx is cancelled while waiting for a slot.
func (b *PriorityBuffer) Put(ctx context.Context, item types.Item) error {
	if !item.Priority.Valid() {
		return errors.WrapInvalid(errors.ErrInvalidPriority, "Buffer", "Put", "priority validation")
	}

	// Gate first, guard second. Never the other way around.
	if err := b.empty.acquire(ctx); err != nil {
		return errors.Wrap(err, "Buffer", "Put", "slot acquisition")
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return errors.WrapInvalid(errors.ErrBufferClosed, "Buffer", "Put", "insert")
	}
	b.ring.insert(item)
	size := b.ring.len()
	b.mu.Unlock()

	b.filled.release()

	// Accounting happens outside the guard, in its own exclusion domain.
	if !item.IsSentinel() {
		b.stats.RecordProduced()
	}
	b.stats.UpdateSize(int64(size))
	if b.metrics != nil {
		b.metrics.recordPut(item.Priority.String(), size, b.ring.capacity())
	}

	return nil
}

// Take removes and returns the highest-priority resident item, blocking while
// the buffer is empty. Returns an error only if the buffer is closed or ctx
// is cancelled while waiting for an item.
func (b *PriorityBuffer) Take(ctx context.Context) (types.Item, error) {
	var zero types.Item

	if err := b.filled.acquire(ctx); err != nil {
		return zero, errors.Wrap(err, "Buffer", "Take", "item acquisition")
	}

	b.mu.Lock()
	item, ok := b.ring.takeHead()
	size := b.ring.len()
	b.mu.Unlock()

	if !ok {
		// A filled permit with an empty ring means the buffer was closed
		// with waiters still parked.
		return zero, errors.WrapInvalid(errors.ErrBufferClosed, "Buffer", "Take", "extraction")
	}

	b.empty.release()

	latency := item.Latency(b.clock())
	if item.IsSentinel() {
		b.stats.RecordSentinel()
	} else {
		b.stats.RecordConsumed(latency)
	}
	b.stats.UpdateSize(int64(size))
	if b.metrics != nil {
		b.metrics.recordTake(item.Priority.String(), latency, size, b.ring.capacity())
	}

	return item, nil
}

// Peek returns the head item without removing it.
func (b *PriorityBuffer) Peek() (types.Item, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ring.peek()
}

// Size returns the current number of items in the buffer.
func (b *PriorityBuffer) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ring.len()
}

// Capacity returns the fixed buffer capacity.
func (b *PriorityBuffer) Capacity() int {
	return b.ring.capacity() // Immutable, no lock needed
}

// IsEmpty returns true if the buffer contains no items.
func (b *PriorityBuffer) IsEmpty() bool {
	return b.Size() == 0
}

// IsFull returns true if the buffer is at capacity.
func (b *PriorityBuffer) IsFull() bool {
	return b.Size() == b.ring.capacity()
}

// Stats returns the buffer's accounting (always collected).
func (b *PriorityBuffer) Stats() *Statistics {
	return b.stats
}

// Close shuts down the buffer. Blocked and future Put/Take calls fail with
// ErrBufferClosed. Close is idempotent.
func (b *PriorityBuffer) Close() error {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.closed = true
		b.mu.Unlock()

		b.empty.close()
		b.filled.close()
	})
	return nil
}
