// Package types defines the shared data model for PrioFlow: the Item that
// flows through the buffer and its Priority ranking.
//
// Priority ordering is the load-bearing contract of the whole system:
// Urgent > Normal > Sentinel. Sentinel ranking strictly below Normal is what
// guarantees that every real item is consumed before any consumer shuts down.
package types
