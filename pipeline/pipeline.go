// Package pipeline orchestrates a bounded producer/consumer run over a
// priority buffer: P producers generate items, C consumers drain them, and a
// sentinel per consumer shuts the run down only after every real item has
// been consumed.
package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/c360/prioflow/errors"
	"github.com/c360/prioflow/metric"
	"github.com/c360/prioflow/pkg/buffer"
	"github.com/c360/prioflow/types"
)

// Run status values exported through the run status gauge.
const (
	StatusIdle = iota
	StatusRunning
	StatusDraining
	StatusDone
	StatusFailed
)

// Pipeline coordinates producer and consumer goroutines over one shared
// PriorityBuffer. A Pipeline runs exactly once.
type Pipeline struct {
	producers int
	consumers int

	buf  *buffer.PriorityBuffer
	opts *pipelineOptions

	started bool
}

// Report is the final accounting of a completed run.
type Report struct {
	Produced       int64         `json:"produced"`
	Consumed       int64         `json:"consumed"`
	Sentinels      int64         `json:"sentinels"`
	MaxOccupancy   int64         `json:"max_occupancy"`
	AverageLatency time.Duration `json:"average_latency"`
	MinLatency     time.Duration `json:"min_latency"`
	MaxLatency     time.Duration `json:"max_latency"`
	Elapsed        time.Duration `json:"elapsed"`
	Throughput     float64       `json:"throughput"` // consumed items per wall-clock second
}

// New creates a pipeline with the given worker counts and buffer capacity.
// All three must be positive. Fatal conditions (bad arguments, metrics
// registration) surface here, before any goroutine starts.
func New(producers, consumers, capacity int, options ...Option) (*Pipeline, error) {
	if producers <= 0 || consumers <= 0 {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig,
			"Pipeline", "New", "producer and consumer counts must be positive")
	}

	opts := applyOptions(options...)

	bufOpts := []buffer.Option{}
	if opts.metricsReg != nil {
		bufOpts = append(bufOpts, buffer.WithMetrics(opts.metricsReg, "pipeline"))
	}

	buf, err := buffer.New(capacity, bufOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "Pipeline", "New", "buffer creation")
	}

	return &Pipeline{
		producers: producers,
		consumers: consumers,
		buf:       buf,
		opts:      opts,
	}, nil
}

// Buffer exposes the underlying buffer, primarily for inspection in tests.
func (p *Pipeline) Buffer() *buffer.PriorityBuffer {
	return p.buf
}

// Run executes the full lifecycle: start consumers, start producers, join
// producers, inject one sentinel per consumer, join consumers, snapshot.
// It blocks until the run completes and returns the final Report.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	if p.started {
		return Report{}, errors.WrapInvalid(errors.ErrAlreadyStarted, "Pipeline", "Run", "lifecycle check")
	}
	p.started = true

	logger := p.opts.logger
	core := p.coreMetrics()

	start := time.Now()
	if core != nil {
		core.RecordRunStatus(StatusRunning)
		core.RecordWorkersActive("producer", p.producers)
		core.RecordWorkersActive("consumer", p.consumers)
	}

	logger.Info("starting run",
		"producers", p.producers,
		"consumers", p.consumers,
		"capacity", p.buf.Capacity(),
		"items_per_producer", p.opts.itemsPerProducer)

	// Consumers first so a capacity-1 buffer cannot wedge the producers.
	consumerGroup, consumerCtx := errgroup.WithContext(ctx)
	for i := 1; i <= p.consumers; i++ {
		id := i
		consumerGroup.Go(func() error {
			return p.runConsumer(consumerCtx, id)
		})
	}

	producerGroup, producerCtx := errgroup.WithContext(ctx)
	for i := 1; i <= p.producers; i++ {
		id := i
		producerGroup.Go(func() error {
			return p.runProducer(producerCtx, id)
		})
	}

	if err := producerGroup.Wait(); err != nil {
		p.fail(core)
		// Wake any consumers still parked on an empty buffer.
		_ = p.buf.Close()
		return Report{}, errors.Wrap(err, "Pipeline", "Run", "producer execution")
	}
	logger.Info("all producers finished", "produced", p.buf.Stats().Produced())

	// Termination: one sentinel per consumer. Sentinels rank below Normal,
	// so they drain strictly after every item produced above.
	if core != nil {
		core.RecordRunStatus(StatusDraining)
	}
	logger.Info("injecting sentinels", "count", p.consumers)
	for i := 0; i < p.consumers; i++ {
		if err := p.buf.Put(ctx, types.NewSentinel()); err != nil {
			p.fail(core)
			_ = p.buf.Close()
			return Report{}, errors.Wrap(err, "Pipeline", "Run", "sentinel injection")
		}
	}

	if err := consumerGroup.Wait(); err != nil {
		p.fail(core)
		return Report{}, errors.Wrap(err, "Pipeline", "Run", "consumer execution")
	}

	elapsed := time.Since(start)
	if core != nil {
		core.RecordRunStatus(StatusDone)
		core.RecordWorkersActive("producer", 0)
		core.RecordWorkersActive("consumer", 0)
		core.RecordRunDuration(elapsed)
	}

	report := p.snapshot(elapsed)
	logger.Info("run complete",
		"produced", report.Produced,
		"consumed", report.Consumed,
		"sentinels", report.Sentinels,
		"elapsed", report.Elapsed,
		"avg_latency", report.AverageLatency,
		"throughput", report.Throughput)

	return report, nil
}

// Shutdown releases the pipeline's buffer. Safe to call after Run returns.
func (p *Pipeline) Shutdown() error {
	return p.buf.Close()
}

func (p *Pipeline) fail(core *metric.Metrics) {
	if core != nil {
		core.RecordRunStatus(StatusFailed)
	}
}

// snapshot builds the final report from buffer statistics plus wall-clock
// elapsed time measured by the run itself.
func (p *Pipeline) snapshot(elapsed time.Duration) Report {
	stats := p.buf.Stats().Summary()

	throughput := 0.0
	if elapsed > 0 {
		throughput = float64(stats.Consumed) / elapsed.Seconds()
	}

	return Report{
		Produced:       stats.Produced,
		Consumed:       stats.Consumed,
		Sentinels:      stats.Sentinels,
		MaxOccupancy:   stats.MaxSize,
		AverageLatency: stats.AverageLatency,
		MinLatency:     stats.MinLatency,
		MaxLatency:     stats.MaxLatency,
		Elapsed:        elapsed,
		Throughput:     throughput,
	}
}

func (p *Pipeline) coreMetrics() *metric.Metrics {
	if p.opts.metricsReg == nil {
		return nil
	}
	return p.opts.metricsReg.CoreMetrics()
}
