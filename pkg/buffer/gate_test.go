package buffer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/prioflow/errors"
)

func TestGateAcquireAvailable(t *testing.T) {
	g := newGate(2)

	require.NoError(t, g.acquire(context.Background()))
	require.NoError(t, g.acquire(context.Background()))
}

func TestGateBlocksUntilRelease(t *testing.T) {
	g := newGate(0)

	acquired := make(chan struct{})
	go func() {
		if err := g.acquire(context.Background()); err == nil {
			close(acquired)
		}
	}()

	select {
	case <-acquired:
		t.Fatal("acquire should block on an exhausted gate")
	case <-time.After(50 * time.Millisecond):
	}

	g.release()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("release should wake the waiter")
	}
}

func TestGateContextCancellation(t *testing.T) {
	g := newGate(0)

	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- g.acquire(ctx)
	}()

	// Let the goroutine park first
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled acquire did not return")
	}
}

func TestGateAlreadyCancelledContext(t *testing.T) {
	g := newGate(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, g.acquire(ctx), context.Canceled)
}

func TestGateCloseFailsWaiters(t *testing.T) {
	g := newGate(0)

	errCh := make(chan error, 1)
	go func() {
		errCh <- g.acquire(context.Background())
	}()

	time.Sleep(20 * time.Millisecond)
	g.close()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, errors.ErrBufferClosed)
	case <-time.After(time.Second):
		t.Fatal("close should fail parked waiters")
	}

	// Future acquires fail immediately
	assert.ErrorIs(t, g.acquire(context.Background()), errors.ErrBufferClosed)
}

func TestGateCountingSemantics(t *testing.T) {
	const permits = 64
	g := newGate(0)

	var wg sync.WaitGroup
	acquired := make(chan struct{}, permits)

	for i := 0; i < permits; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := g.acquire(context.Background()); err == nil {
				acquired <- struct{}{}
			}
		}()
	}

	for i := 0; i < permits; i++ {
		g.release()
	}

	wg.Wait()
	assert.Len(t, acquired, permits, "every release admits exactly one waiter")
}
