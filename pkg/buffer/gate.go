package buffer

import (
	"context"
	"sync"

	"github.com/c360/prioflow/errors"
)

// gate is a counting semaphore backed by a condition variable. A
// PriorityBuffer owns a pair of them: "empty" starts at capacity and bounds
// producers, "filled" starts at zero and bounds consumers. Waiters block on
// the condition variable and never spin.
type gate struct {
	mu     sync.Mutex
	cond   *sync.Cond
	count  int
	closed bool
}

func newGate(count int) *gate {
	g := &gate{count: count}
	g.cond = sync.NewCond(&g.mu)
	return g
}

// acquire blocks until a permit is available, then takes it. It returns an
// error if the gate is closed or the context is cancelled while waiting.
func (g *gate) acquire(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if ctx.Done() != nil {
		// Wake this waiter when the context is cancelled. Broadcast is
		// safe to call without holding the mutex.
		done := make(chan struct{})
		defer close(done)

		go func() {
			select {
			case <-ctx.Done():
				g.cond.Broadcast()
			case <-done:
			}
		}()
	}

	for g.count == 0 && !g.closed {
		if err := ctx.Err(); err != nil {
			return err
		}
		g.cond.Wait()
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	if g.closed {
		return errors.ErrBufferClosed
	}

	g.count--
	return nil
}

// release returns a permit and wakes one waiter.
func (g *gate) release() {
	g.mu.Lock()
	g.count++
	g.mu.Unlock()

	g.cond.Signal()
}

// close fails all current and future waiters.
func (g *gate) close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()

	g.cond.Broadcast()
}
