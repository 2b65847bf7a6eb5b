package urlsweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jpalmerr/urlsweep/internal/collect"
	"github.com/jpalmerr/urlsweep/internal/probe"
)

const (
	defaultWorkers = 4
	defaultTimeout = 5 * time.Second
	defaultRetries = 0
)

// Sweep is the orchestrator for one batch probing run.
//
// Sweep seeds a fixed-size worker pool with every configured target,
// collects each finished result in completion order, writes one live line
// per completion, and returns the frozen [Report] once every target has
// been resolved. It is created using [New] with functional options and
// run with [Sweep.Run].
//
// The typical lifecycle is:
//
//	sw, err := urlsweep.New(urlsweep.WithTargets(targets...))
//	if err != nil {
//	    slog.Error("failed to create sweep", "error", err)
//	    os.Exit(1)
//	}
//
//	rep, err := sw.Run(ctx)
//
// A Sweep is reusable: each Run call is an independent sweep over the
// same targets with a fresh run ID.
type Sweep struct {
	targets         []Target
	workers         int
	timeout         time.Duration
	retries         int
	logger          *slog.Logger
	liveWriter      io.Writer
	resultCallbacks []func(Result)
}

// New creates a new [Sweep] instance with the given options.
//
// At least one target must be configured via [WithTarget] or
// [WithTargets]; an empty target list is a configuration error and the
// run never starts. Other options have sensible defaults:
//   - Workers: 4
//   - Per-attempt timeout: 5 seconds
//   - Retries: 0
//   - Live output: os.Stdout
//
// Returns an error if no targets are configured or if any option is
// invalid.
//
// Example:
//
//	sw, err := urlsweep.New(
//	    urlsweep.WithTargets(targets...),
//	    urlsweep.WithWorkers(8),
//	    urlsweep.WithTimeout(2 * time.Second),
//	    urlsweep.WithRetries(2),
//	)
func New(opts ...Option) (*Sweep, error) {
	cfg := &sweepConfig{
		targets: []Target{},
		workers: defaultWorkers,
		timeout: defaultTimeout,
		retries: defaultRetries,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if len(cfg.targets) == 0 {
		return nil, errors.New("at least one target is required")
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	liveWriter := cfg.liveWriter
	if liveWriter == nil {
		liveWriter = os.Stdout
	}

	return &Sweep{
		targets:         cfg.targets,
		workers:         cfg.workers,
		timeout:         cfg.timeout,
		retries:         cfg.retries,
		logger:          logger,
		liveWriter:      liveWriter,
		resultCallbacks: cfg.resultCallbacks,
	}, nil
}

// Run probes every configured target and returns the frozen [Report].
//
// Run is a blocking call. During execution:
//
//   - All targets are seeded into the pool up front, then claimed by
//     exactly the configured number of workers.
//   - Each completion is written as one live line to the live output
//     writer, in the same order it is recorded in the report.
//   - Registered result callbacks fire after each result is recorded.
//
// Run returns only when every target has been resolved; the report always
// holds exactly one result per target, in completion order. Cancelling
// ctx does not abandon targets: remaining attempts fail fast and are
// recorded as transport failures, so the report stays complete.
func (s *Sweep) Run(ctx context.Context) (*Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID)

	startedAt := time.Now().UTC()
	logger.Info("sweep starting",
		"targets", len(s.targets),
		"workers", s.workers,
		"timeout", s.timeout.String(),
		"retries", s.retries,
	)

	prober := probe.NewProber(s.timeout, s.retries, logger)
	pool := probe.NewPool(s.workers, prober, logger)

	collector := collect.NewCollector(collect.Hooks{
		Live: func(r probe.Result) {
			fmt.Fprintln(s.liveWriter, probeResultToPublicResult(r).Line())
		},
		Notify: func(r probe.Result) {
			if len(s.resultCallbacks) == 0 {
				return
			}
			publicResult := probeResultToPublicResult(r)
			for _, cb := range s.resultCallbacks {
				invokeCallbackSafe(cb, publicResult, logger)
			}
		},
	}, logger)

	probeResults := collector.Drain(pool.Run(ctx, s.toProbeTargets()))

	results := make([]Result, len(probeResults))
	for i, pr := range probeResults {
		results[i] = probeResultToPublicResult(pr)
	}

	finishedAt := time.Now().UTC()
	logger.Info("sweep finished",
		"results", len(results),
		"elapsed_ms", finishedAt.Sub(startedAt).Milliseconds(),
	)

	return &Report{
		RunID:      runID,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Results:    results,
	}, nil
}

// Targets returns a copy of the configured targets.
//
// The returned slice is a copy; modifying it does not affect the Sweep.
// Each [Target] in the slice is immutable.
func (s *Sweep) Targets() []Target {
	cp := make([]Target, len(s.targets))
	copy(cp, s.targets)
	return cp
}

// Workers returns the configured worker count.
func (s *Sweep) Workers() int {
	return s.workers
}

// Timeout returns the configured per-attempt timeout.
func (s *Sweep) Timeout() time.Duration {
	return s.timeout
}

// Retries returns the configured retry count.
func (s *Sweep) Retries() int {
	return s.retries
}

// toProbeTargets converts Target slice to probe.Target slice.
func (s *Sweep) toProbeTargets() []probe.Target {
	result := make([]probe.Target, len(s.targets))

	for i, t := range s.targets {
		result[i] = probe.Target{
			URL:     t.url,
			Method:  t.method,
			Headers: copyMap(t.headers),
			Timeout: t.timeout,
		}
	}

	return result
}

// probeResultToPublicResult converts internal probe result to public API type.
func probeResultToPublicResult(pr probe.Result) Result {
	return Result{
		URL:          pr.URL,
		StatusCode:   pr.StatusCode,
		Error:        probe.Reason(pr.Err),
		ResponseTime: pr.ResponseTime,
		Attempts:     pr.Attempts,
		CheckedAt:    pr.CheckedAt,
	}
}

// invokeCallbackSafe calls a result callback with panic recovery.
// Panics are logged but do not propagate.
func invokeCallbackSafe(cb func(Result), result Result, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("result callback panicked",
				"panic", r,
				"url", result.URL,
			)
		}
	}()
	cb(result)
}
