// Package metric provides Prometheus metrics for PrioFlow.
//
// The MetricsRegistry owns a private prometheus.Registry pre-populated with
// the core flow metrics (items produced and consumed by priority, item
// latency, sentinel consumption, run status) plus Go runtime collectors.
// Components register their own metrics through the MetricsRegistrar
// interface; duplicate names are rejected with classified errors.
//
// The Server exposes the registry over HTTP at /metrics with a trivial
// /health endpoint. It is optional: the core buffer always collects its own
// Statistics, and Prometheus export is enabled per buffer or pipeline via
// functional options.
package metric
