package urlsweep

import (
	"errors"
	"io"
	"log/slog"
	"time"
)

// sweepConfig holds mutable state during Sweep construction.
type sweepConfig struct {
	targets         []Target
	workers         int
	timeout         time.Duration
	retries         int
	logger          *slog.Logger
	liveWriter      io.Writer
	resultCallbacks []func(Result)
}

// Option is a function that configures a [Sweep] instance during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithTarget], [WithTargets], [WithWorkers],
// [WithTimeout], [WithRetries], [WithLogger], [WithLiveOutput],
// [WithResultCallback].
type Option func(*sweepConfig) error

// WithTarget adds a single [Target] to the sweep.
//
// Can be called multiple times to add multiple targets. At least one
// target must be configured for [New] to succeed. Adding the same URL
// more than once is legal; each occurrence is probed independently.
//
// Example:
//
//	sw, err := urlsweep.New(
//	    urlsweep.WithTarget(t1),
//	    urlsweep.WithTarget(t2),
//	)
func WithTarget(t Target) Option {
	return func(cfg *sweepConfig) error {
		cfg.targets = append(cfg.targets, t)
		return nil
	}
}

// WithTargets adds multiple [Target] values to the sweep.
//
// This is a convenience function for adding several targets at once.
// Equivalent to calling [WithTarget] multiple times.
func WithTargets(targets ...Target) Option {
	return func(cfg *sweepConfig) error {
		cfg.targets = append(cfg.targets, targets...)
		return nil
	}
}

// WithWorkers sets the number of concurrent workers for the sweep.
//
// This is the sweep's degree of parallelism: at most this many targets
// are probed at once. Defaults to 4 if not specified.
//
// Returns an error if the value is zero or negative.
func WithWorkers(n int) Option {
	return func(cfg *sweepConfig) error {
		if n <= 0 {
			return errors.New("workers must be positive")
		}
		cfg.workers = n
		return nil
	}
}

// WithTimeout sets the per-attempt deadline for all targets.
//
// Each individual attempt, including each retry, is bounded by this
// duration; exceeding it is a transport failure for that attempt.
// Individual targets can override it with [WithTargetTimeout].
// Defaults to 5 seconds if not specified.
//
// Returns an error if the duration is zero or negative.
func WithTimeout(d time.Duration) Option {
	return func(cfg *sweepConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithRetries sets how many additional attempts are made after a
// transport failure, bounding total attempts per target to retries+1.
//
// Only transport failures are retried: a response with any HTTP status
// code, including 4xx and 5xx, ends the attempt sequence. Retries are
// immediate, with no backoff. Defaults to 0 (single attempt).
//
// Returns an error if the value is negative.
func WithRetries(n int) Option {
	return func(cfg *sweepConfig) error {
		if n < 0 {
			return errors.New("retries cannot be negative")
		}
		cfg.retries = n
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the Sweep instance.
//
// This allows SDK consumers to control where logs are written and in what
// format. If not specified, [slog.Default] is used.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	sw, err := urlsweep.New(
//	    urlsweep.WithTarget(t),
//	    urlsweep.WithLogger(logger),
//	)
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *sweepConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithLiveOutput sets the writer that receives one live line per
// completed target (see [Result.Line]).
//
// Lines are written in completion order, which is guaranteed to match the
// order of [Report.Results]. Defaults to os.Stdout. Pass io.Discard to
// suppress live output.
//
// Returns an error if the writer is nil.
func WithLiveOutput(w io.Writer) Option {
	return func(cfg *sweepConfig) error {
		if w == nil {
			return errors.New("live output writer cannot be nil")
		}
		cfg.liveWriter = w
		return nil
	}
}

// WithResultCallback registers a function to be called on every target
// completion.
//
// The callback receives the finalized [Result] after it has been recorded
// in the report and its live line written. Multiple callbacks may be
// registered by calling WithResultCallback multiple times; they execute
// in registration order.
//
// IMPORTANT: Callbacks must be non-blocking. Long-running operations
// should dispatch work to a separate goroutine; blocking callbacks delay
// subsequent result processing.
//
// Callbacks are invoked synchronously from a single goroutine. Panics
// within callbacks are recovered and logged; they do not crash the sweep.
//
// Example:
//
//	sw, err := urlsweep.New(
//	    urlsweep.WithTargets(targets...),
//	    urlsweep.WithResultCallback(func(r urlsweep.Result) {
//	        if !r.Responded() {
//	            log.Printf("ALERT: %s unreachable: %s", r.URL, r.Error)
//	        }
//	    }),
//	)
//
// Nil callbacks are silently ignored.
func WithResultCallback(cb func(Result)) Option {
	return func(cfg *sweepConfig) error {
		if cb == nil {
			return nil // no-op for nil callback (safe to call)
		}
		cfg.resultCallbacks = append(cfg.resultCallbacks, cb)
		return nil
	}
}
