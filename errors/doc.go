// Package errors provides standardized error handling patterns for PrioFlow.
//
// # Overview
//
// The errors package implements a three-class error classification system:
// Transient (temporary, retryable), Invalid (bad input, non-retryable), and
// Fatal (unrecoverable, stop processing).
//
// In PrioFlow all fatal conditions surface at setup time: buffer allocation,
// configuration validation, and metrics registration happen before any
// producer or consumer goroutine starts. Once the run is in flight, buffer
// operations block but never fail, so the steady state has no recoverable
// runtime errors.
//
// # Usage
//
// Wrap errors at package boundaries with component and operation context:
//
//	if err := cfg.Validate(); err != nil {
//	    return errors.WrapFatal(err, "Pipeline", "New", "config validation")
//	}
//
// Classification can then be inspected without string matching:
//
//	if errors.IsFatal(err) {
//	    // abort before starting workers
//	}
package errors
