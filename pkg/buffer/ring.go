package buffer

import (
	"github.com/c360/prioflow/types"
)

// priorityRing is a fixed-capacity circular store whose logical order (head
// to tail) is always non-increasing in priority rank, FIFO within a rank.
// Because insert maintains the order, extraction is a plain head removal.
//
// The ring is not safe for concurrent use; PriorityBuffer serializes every
// mutation under its guard.
type priorityRing struct {
	slots []types.Item
	head  int
	tail  int
	count int
}

func newPriorityRing(capacity int) *priorityRing {
	return &priorityRing{
		slots: make([]types.Item, capacity),
	}
}

// index maps a logical offset from head to a physical slot index.
func (r *priorityRing) index(offset int) int {
	return (r.head + offset) % len(r.slots)
}

// insert places the item so the ring's rank ordering holds. Higher-rank items
// shift the contiguous trailing run of strictly lower-rank items one slot
// toward the tail; each element moves at most once per insert. Items of equal
// rank never reorder, which preserves FIFO within a priority band. Sentinels
// rank lowest, so they always land at the logical end.
//
// Returns false if the ring is full; the flow gate makes that unreachable in
// normal operation.
func (r *priorityRing) insert(item types.Item) bool {
	if r.count == len(r.slots) {
		return false
	}

	// Count the trailing run that must give way to this item.
	run := 0
	for run < r.count {
		idx := r.index(r.count - 1 - run)
		if r.slots[idx].Priority >= item.Priority {
			break
		}
		run++
	}

	// Shift the run toward the tail, last element first.
	for i := 0; i < run; i++ {
		src := r.index(r.count - 1 - i)
		dst := r.index(r.count - i)
		r.slots[dst] = r.slots[src]
	}

	r.slots[r.index(r.count-run)] = item
	r.tail = (r.tail + 1) % len(r.slots)
	r.count++
	return true
}

// takeHead removes and returns the highest-priority resident item.
func (r *priorityRing) takeHead() (types.Item, bool) {
	var zero types.Item

	if r.count == 0 {
		return zero, false
	}

	item := r.slots[r.head]
	r.slots[r.head] = zero // Clear for GC
	r.head = (r.head + 1) % len(r.slots)
	r.count--

	return item, true
}

// peek returns the head item without removing it.
func (r *priorityRing) peek() (types.Item, bool) {
	var zero types.Item

	if r.count == 0 {
		return zero, false
	}
	return r.slots[r.head], true
}

func (r *priorityRing) len() int {
	return r.count
}

func (r *priorityRing) capacity() int {
	return len(r.slots)
}

// snapshot returns the occupied slots in logical order. Test helper.
func (r *priorityRing) snapshot() []types.Item {
	out := make([]types.Item, 0, r.count)
	for i := 0; i < r.count; i++ {
		out = append(out, r.slots[r.index(i)])
	}
	return out
}
