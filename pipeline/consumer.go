package pipeline

import (
	"context"
	"time"

	"github.com/c360/prioflow/errors"
)

// runConsumer drains the buffer until it extracts a sentinel. Extracting a
// sentinel is the terminal transition: the consumer returns and never
// re-enters extraction.
func (p *Pipeline) runConsumer(ctx context.Context, id int) error {
	logger := p.opts.logger.With("role", "consumer", "worker", id)
	core := p.coreMetrics()

	for {
		item, err := p.buf.Take(ctx)
		if err != nil {
			return errors.Wrap(err, "Consumer", "run", "buffer extract")
		}

		if item.IsSentinel() {
			if core != nil {
				core.RecordSentinel()
			}
			logger.Info("received sentinel, terminating")
			return nil
		}

		latency := item.Latency(time.Now())
		if core != nil {
			core.RecordConsumed(item.Priority.String(), latency)
		}
		logger.Info("consumed item",
			"item", item.ID,
			"value", item.Value,
			"priority", item.Priority.String(),
			"latency", latency)
	}
}
