package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Priority represents the extraction rank of an item. Higher ranks are
// extracted first. Sentinel is strictly the lowest rank so that sentinels
// drain only after every real item that preceded them.
type Priority int

const (
	// PrioritySentinel marks a synthetic shutdown item. Lowest rank.
	PrioritySentinel Priority = iota
	// PriorityNormal is the default rank for produced items.
	PriorityNormal
	// PriorityUrgent items jump ahead of Normal items while preserving
	// FIFO order among themselves.
	PriorityUrgent
)

// String returns the log label for the priority.
func (p Priority) String() string {
	switch p {
	case PrioritySentinel:
		return "SENTINEL"
	case PriorityNormal:
		return "NORMAL"
	case PriorityUrgent:
		return "URGENT"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(p))
	}
}

// Valid reports whether p is one of the defined priorities.
func (p Priority) Valid() bool {
	return p >= PrioritySentinel && p <= PriorityUrgent
}

// Item is the unit of work that flows through the buffer. ID exists for log
// correlation only; Value and Priority are the payload and must survive the
// buffer round-trip unchanged.
type Item struct {
	ID         uuid.UUID `json:"id"`
	Value      int       `json:"value"`
	Priority   Priority  `json:"priority"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// NewItem builds an item stamped with a fresh ID and enqueue time.
func NewItem(value int, priority Priority) Item {
	return Item{
		ID:         uuid.New(),
		Value:      value,
		Priority:   priority,
		EnqueuedAt: time.Now(),
	}
}

// NewSentinel builds a shutdown item. Sentinels carry no meaningful value.
func NewSentinel() Item {
	return Item{
		ID:         uuid.New(),
		Priority:   PrioritySentinel,
		EnqueuedAt: time.Now(),
	}
}

// IsSentinel reports whether the item signals consumer termination.
func (i Item) IsSentinel() bool {
	return i.Priority == PrioritySentinel
}

// Latency returns how long the item has been in flight as of now.
func (i Item) Latency(now time.Time) time.Duration {
	return now.Sub(i.EnqueuedAt)
}
