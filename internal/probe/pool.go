package probe

import (
	"context"
	"log/slog"
	"sync"
)

// Pool runs a fixed set of workers over a seeded task queue.
//
// Pool implements a worker pool pattern for one-shot batch probing: the
// full target list is seeded into a buffered channel up front, exactly
// `workers` goroutines drain it, and each finished probe is delivered on
// the results channel. A channel receive is the claim operation, so no
// target is ever claimed twice or lost, and the closed channel signals
// workers that no tasks remain.
//
// A Pool is single-use: create one per run with [NewPool] and call
// [Pool.Run] once.
type Pool struct {
	workers int
	prober  *Prober
	logger  *slog.Logger
}

// NewPool creates a [Pool].
//
// Parameters:
//   - workers: number of concurrent workers; values below 1 are raised to 1
//   - prober: resolves each target to its final [Result]
//   - logger: logger for worker lifecycle events
func NewPool(workers int, prober *Prober, logger *slog.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		workers: workers,
		prober:  prober,
		logger:  logger,
	}
}

// Run probes every target and returns the channel of finished results.
//
// Run seeds all targets, spawns the workers, and returns immediately. The
// results channel is buffered to len(targets) so a worker's send never
// blocks and no result is dropped, even if the caller is slow or ctx is
// cancelled mid-run. The channel is closed once every worker has
// terminated, which happens only after all targets are claimed and every
// in-flight probe has finished: draining the channel to its close is the
// pool's completion signal.
//
// Cancelling ctx does not abandon targets. Remaining attempts fail fast
// with the context error, so every seeded target still yields exactly one
// result.
func (p *Pool) Run(ctx context.Context, targets []Target) <-chan Result {
	tasks := make(chan Target, len(targets))
	for _, t := range targets {
		tasks <- t
	}
	close(tasks)

	results := make(chan Result, len(targets))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for t := range tasks {
				results <- p.prober.Probe(ctx, t)
			}
			p.logger.Debug("worker finished", "worker", id)
		}(i)
	}

	go func() {
		wg.Wait()
		p.prober.Close()
		close(results)
	}()

	return results
}
