package probe

import (
	"context"
	"log/slog"
	"time"
)

// Target contains everything needed to probe a single URL.
//
// This is the probe-internal representation of a target, decoupled from the
// main urlsweep.Target type to avoid circular dependencies. Duplicate URLs
// are legal; each Target is probed independently.
type Target struct {
	// URL is the address to probe.
	URL string

	// Method is the HTTP method (GET, HEAD, POST). Empty defaults to GET.
	Method string

	// Headers contains custom HTTP headers to send with each attempt.
	Headers map[string]string

	// Timeout is the per-attempt deadline for this target.
	// If 0, the prober's default timeout is used.
	Timeout time.Duration
}

// Result is the finalized, retry-resolved outcome for one target.
//
// It is derived from the last attempt only: ResponseTime never accumulates
// across retries, and Err carries only the final attempt's failure. Exactly
// one of StatusCode/Err is meaningful: StatusCode > 0 when the target
// responded, Err != nil when every permitted attempt failed in transport.
type Result struct {
	// URL is the target URL that was probed.
	URL string

	// StatusCode is the HTTP status code of the final attempt.
	// Zero if the final attempt failed before receiving a response.
	StatusCode int

	// Err is the transport failure of the final attempt, if any.
	Err error

	// ResponseTime is the duration of the final attempt only.
	ResponseTime time.Duration

	// Attempts is the number of attempts made, including the final one.
	Attempts int

	// CheckedAt is the UTC instant the final attempt completed.
	CheckedAt time.Time
}

// Responded reports whether the target ultimately produced an HTTP response.
func (r Result) Responded() bool {
	return r.Err == nil
}

// attempter performs one bounded HTTP attempt. Satisfied by [Client];
// kept as an interface so tests can script attempt sequences.
type attempter interface {
	Do(ctx context.Context, t Target, timeout time.Duration) Attempt
	Close()
}

// Prober resolves targets to final results by wrapping single attempts with
// a bounded retry policy.
//
// The policy retries transport failures only: an attempt that produced any
// HTTP response, whatever the status code, ends the sequence immediately.
// Retries are immediate, with no backoff between attempts.
type Prober struct {
	client  attempter
	timeout time.Duration
	retries int
	logger  *slog.Logger
}

// NewProber creates a [Prober].
//
// Parameters:
//   - timeout: default per-attempt deadline, used when a target has none
//   - retries: additional attempts allowed after a transport failure,
//     bounding the total attempts per target to retries+1
//   - logger: logger for retry events
func NewProber(timeout time.Duration, retries int, logger *slog.Logger) *Prober {
	return &Prober{
		client:  NewClient(),
		timeout: timeout,
		retries: retries,
		logger:  logger,
	}
}

// Probe runs the retry policy for one target and returns its final Result.
//
// At most retries+1 attempts are made, strictly sequentially. The returned
// Result reflects the last attempt alone; earlier failed attempts' timings
// and reasons are discarded.
func (p *Prober) Probe(ctx context.Context, t Target) Result {
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = p.timeout
	}

	var att Attempt
	attempts := 0
	for attempts < p.retries+1 {
		att = p.client.Do(ctx, t, timeout)
		attempts++

		if att.Responded() {
			break
		}
		if attempts < p.retries+1 {
			p.logger.Debug("attempt failed, retrying",
				"url", t.URL,
				"attempt", attempts,
				"reason", Reason(att.Err),
			)
		}
	}

	return Result{
		URL:          t.URL,
		StatusCode:   att.StatusCode,
		Err:          att.Err,
		ResponseTime: att.Duration,
		Attempts:     attempts,
		CheckedAt:    time.Now().UTC(),
	}
}

// Close releases the prober's idle connections.
func (p *Prober) Close() {
	if p == nil {
		return
	}
	p.client.Close()
}
