// Package prioflow implements a bounded multi-producer, multi-consumer
// buffer with priority-ordered extraction and sentinel-based shutdown.
//
// Producers insert items tagged urgent or normal; urgent items are
// extracted before normal ones, FIFO within each band. Flow control is a
// pair of counting semaphores (empty slots, filled slots) so that full
// producers and starved consumers block instead of spinning. Shutdown is
// cooperative: after all producers finish, one sentinel per consumer is
// injected, and sentinels rank below every data item so the buffer drains
// completely before consumers exit.
//
// The module is organized as:
//
//   - types: the Item value and Priority bands
//   - pkg/buffer: the priority ring, semaphore gates, and statistics
//   - pipeline: producer/consumer orchestration and the run Report
//   - config: JSON/YAML run configuration
//   - metric: Prometheus registry and HTTP exposition
//   - errors: classified errors (transient, invalid, fatal)
//   - cmd/prioflow: the command-line runner
package prioflow
