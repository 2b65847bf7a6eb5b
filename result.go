package urlsweep

import (
	"fmt"
	"time"
)

// Result is the finalized, retry-resolved record for one target.
//
// Result is immutable after creation and derives entirely from the last
// attempt made for its target: ResponseTime never accumulates across
// retries, and Error carries only the final attempt's failure reason.
//
// Exactly one of StatusCode/Error is set. StatusCode > 0 means the target
// responded: any HTTP status counts, 2xx through 5xx alike; an HTTP-level
// error code is not a probe failure. A non-empty Error means every
// permitted attempt failed at the transport layer (DNS resolution,
// connection refused, TLS handshake, deadline exceeded).
type Result struct {
	// URL is the target URL that was probed.
	URL string

	// StatusCode is the HTTP status code of the final attempt.
	// Zero if the final attempt failed before receiving a response.
	StatusCode int

	// Error is the classified reason for the final attempt's transport
	// failure. Empty if the target responded.
	Error string

	// ResponseTime is the duration of the final attempt only.
	ResponseTime time.Duration

	// Attempts is the total number of attempts made, including the final
	// one. At most retries+1.
	Attempts int

	// CheckedAt is the UTC instant the final attempt completed.
	CheckedAt time.Time
}

// Responded reports whether the target ultimately produced an HTTP response.
func (r Result) Responded() bool {
	return r.Error == ""
}

// Line renders the result as one human-readable live output line:
//
//	https://example.com - 200 OK - 123ms
//	https://bad.example.com - error: connection refused - 5000ms
func (r Result) Line() string {
	if r.Responded() {
		return fmt.Sprintf("%s - %d OK - %dms", r.URL, r.StatusCode, r.ResponseTime.Milliseconds())
	}
	return fmt.Sprintf("%s - error: %s - %dms", r.URL, r.Error, r.ResponseTime.Milliseconds())
}

// Report is the frozen result set for one completed sweep.
//
// Results are ordered by completion: the order in which targets finished,
// which is also the order their live lines were written. This is generally
// not the input order. The slice always has exactly one entry per
// configured target, duplicates included, nothing dropped.
type Report struct {
	// RunID is the unique identifier for this sweep, also attached to the
	// sweep's log records for correlation.
	RunID string

	// StartedAt is the UTC instant the sweep began.
	StartedAt time.Time

	// FinishedAt is the UTC instant the last target completed.
	FinishedAt time.Time

	// Results holds one entry per target, in completion order.
	Results []Result
}
