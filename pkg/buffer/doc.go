// Package buffer provides the bounded, multi-producer/multi-consumer
// priority buffer at the core of PrioFlow.
//
// # Model
//
// A PriorityBuffer holds at most N items in a circular slot store. Items
// carry a priority rank (Urgent > Normal > Sentinel) and the buffer's
// logical order, head to tail, is always non-increasing in rank with FIFO
// ordering inside each rank. The ordering work happens at insert time:
//
//   - Normal items append at the tail (they never jump existing Normals).
//   - Urgent items shift the contiguous trailing run of lower-rank items one
//     slot toward the tail and land in the opened gap, directly behind the
//     last resident Urgent item. Each shifted element moves exactly once,
//     so an insert costs O(k) with k bounded by the occupancy.
//   - Sentinels rank strictly below Normal and therefore always land last.
//     This is the invariant the shutdown protocol depends on: a sentinel can
//     only be extracted after every real item that was resident when it was
//     injected.
//
// Extraction is then a plain head removal.
//
// # Synchronization
//
// Flow control uses a pair of counting gates built on condition variables:
// "empty" starts at capacity and admits producers, "filled" starts at zero
// and admits consumers. Gate waits block, never spin, and a caller always
// clears its gate before acquiring the guard mutex, so nothing blocks on
// flow control while holding the guard. Statistics live in a third,
// independent exclusion domain touched only after the guard is released;
// no goroutine ever holds two domains at once.
//
// # Usage
//
//	buf, err := buffer.New(16)
//	if err != nil { ... }
//	defer buf.Close()
//
//	go func() {
//	    _ = buf.Put(ctx, types.NewItem(42, types.PriorityUrgent))
//	}()
//
//	item, err := buf.Take(ctx)
//
// Statistics are always collected and available via Stats(); Prometheus
// export is opt-in:
//
//	buf, err := buffer.New(16, buffer.WithMetrics(registry, "main-buffer"))
package buffer
