package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityOrdering(t *testing.T) {
	// Sentinel must rank strictly below Normal, not merely below Urgent.
	require.Less(t, int(PrioritySentinel), int(PriorityNormal))
	require.Less(t, int(PriorityNormal), int(PriorityUrgent))
}

func TestPriorityString(t *testing.T) {
	testCases := []struct {
		priority Priority
		expected string
	}{
		{PriorityUrgent, "URGENT"},
		{PriorityNormal, "NORMAL"},
		{PrioritySentinel, "SENTINEL"},
		{Priority(42), "UNKNOWN(42)"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.priority.String())
		})
	}
}

func TestPriorityValid(t *testing.T) {
	assert.True(t, PriorityUrgent.Valid())
	assert.True(t, PriorityNormal.Valid())
	assert.True(t, PrioritySentinel.Valid())
	assert.False(t, Priority(-1).Valid())
	assert.False(t, Priority(3).Valid())
}

func TestNewItem(t *testing.T) {
	before := time.Now()
	item := NewItem(42, PriorityUrgent)

	assert.Equal(t, 42, item.Value)
	assert.Equal(t, PriorityUrgent, item.Priority)
	assert.NotEqual(t, item.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.False(t, item.EnqueuedAt.Before(before))
	assert.False(t, item.IsSentinel())
}

func TestNewSentinel(t *testing.T) {
	s := NewSentinel()

	assert.True(t, s.IsSentinel())
	assert.Equal(t, PrioritySentinel, s.Priority)
	assert.Zero(t, s.Value)
}

func TestItemLatency(t *testing.T) {
	item := NewItem(1, PriorityNormal)
	now := item.EnqueuedAt.Add(150 * time.Millisecond)

	assert.Equal(t, 150*time.Millisecond, item.Latency(now))
}
