package collect

import (
	"log/slog"

	"github.com/jpalmerr/urlsweep/internal/probe"
)

// Hooks are the per-arrival side effects a [Collector] performs around the
// append. Either hook may be nil.
type Hooks struct {
	// Live is called before the result is appended. The orchestration
	// layer wires it to write the human-readable live line.
	Live func(probe.Result)

	// Notify is called after the result is appended, so observers only
	// ever see results that are already part of the stored order.
	Notify func(probe.Result)
}

// Collector accumulates finished probe results in arrival order.
//
// Collector is the single serialization point between the worker pool and
// the final result set: results arrive from many workers, but exactly one
// goroutine (the caller of [Collector.Drain]) processes them, so no mutex
// is needed and no arrival can be dropped, duplicated, or reordered
// between the live output and the stored list.
type Collector struct {
	hooks  Hooks
	logger *slog.Logger
}

// NewCollector creates a [Collector].
func NewCollector(hooks Hooks, logger *slog.Logger) *Collector {
	return &Collector{
		hooks:  hooks,
		logger: logger,
	}
}

// Drain consumes results until the channel closes and returns them in
// arrival order.
//
// Drain blocks the calling goroutine; the returned slice is complete and
// frozen once Drain returns. For each arrival, in fixed order: the Live
// hook fires, the result is appended, the Notify hook fires, and the
// completion is logged (Warn for transport failures, Debug otherwise).
func (c *Collector) Drain(results <-chan probe.Result) []probe.Result {
	var collected []probe.Result

	for r := range results {
		if c.hooks.Live != nil {
			c.hooks.Live(r)
		}

		collected = append(collected, r)

		if c.hooks.Notify != nil {
			c.hooks.Notify(r)
		}

		logAttrs := []any{
			"url", r.URL,
			"attempts", r.Attempts,
			"response_time_ms", r.ResponseTime.Milliseconds(),
		}
		if r.Err != nil {
			c.logger.Warn("probe failed", append(logAttrs, "reason", probe.Reason(r.Err))...)
		} else {
			c.logger.Debug("probe completed", append(logAttrs, "status", r.StatusCode)...)
		}
	}

	return collected
}
