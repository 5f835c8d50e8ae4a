package pipeline

import (
	"context"
	"math/rand"
	"time"

	"github.com/c360/prioflow/errors"
	"github.com/c360/prioflow/types"
)

// runProducer generates the configured number of items and inserts them into
// the buffer. Each producer owns its own random source so runs stay
// deterministic under WithSeed regardless of goroutine interleaving.
func (p *Pipeline) runProducer(ctx context.Context, id int) error {
	logger := p.opts.logger.With("role", "producer", "worker", id)
	core := p.coreMetrics()

	seed := time.Now().UnixNano() + int64(id)
	if p.opts.seeded {
		seed = p.opts.seed + int64(id)
	}
	rng := rand.New(rand.NewSource(seed))

	for i := 0; i < p.opts.itemsPerProducer; i++ {
		if p.opts.limiter != nil {
			if err := p.opts.limiter.Wait(ctx); err != nil {
				return errors.Wrap(err, "Producer", "run", "rate limit wait")
			}
		}

		priority := types.PriorityNormal
		if rng.Intn(100) < p.opts.urgentPercent {
			priority = types.PriorityUrgent
		}
		item := types.NewItem(rng.Intn(1000)+1, priority)

		if err := p.buf.Put(ctx, item); err != nil {
			return errors.Wrap(err, "Producer", "run", "buffer insert")
		}

		if core != nil {
			core.RecordProduced(item.Priority.String())
		}
		logger.Info("produced item",
			"item", item.ID,
			"value", item.Value,
			"priority", item.Priority.String())
	}

	logger.Info("producer finished", "items", p.opts.itemsPerProducer)
	return nil
}
