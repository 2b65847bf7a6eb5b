package urlsweep

import (
	"errors"
	"net/http"
	"time"
)

// targetConfig holds mutable state during target construction.
type targetConfig struct {
	method  string
	headers map[string]string
	timeout time.Duration
}

// TargetOption is a function that configures a [Target] during construction.
//
// TargetOption implements the functional options pattern, allowing optional
// configuration to be passed to [NewTarget] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithMethod], [WithHeaders], [WithTargetTimeout].
type TargetOption func(*targetConfig) error

// WithMethod sets the HTTP method for probe requests against this target.
//
// Supported methods are GET (default), HEAD, and POST. HEAD is useful when
// only the status code matters and response bodies are large.
//
// Returns an error if the method is not GET, HEAD, or POST.
func WithMethod(method string) TargetOption {
	return func(cfg *targetConfig) error {
		switch method {
		case http.MethodGet, http.MethodHead, http.MethodPost:
			cfg.method = method
			return nil
		default:
			return errors.New("method must be GET, HEAD, or POST")
		}
	}
}

// WithHeaders adds custom HTTP headers to probe requests for this target.
//
// Use this for targets that require authentication or custom headers.
// Headers are sent with every attempt against this target, including
// retries.
//
// Accepts variadic key-value pairs. The number of arguments must be even.
//
// Example:
//
//	t, err := urlsweep.NewTarget(url,
//	    urlsweep.WithHeaders("Authorization", "Bearer token123"),
//	)
//
// Returns an error if an odd number of arguments is provided.
func WithHeaders(keyValues ...string) TargetOption {
	return func(cfg *targetConfig) error {
		if len(keyValues)%2 != 0 {
			return errors.New("WithHeaders requires an even number of arguments (key-value pairs)")
		}
		for i := 0; i < len(keyValues); i += 2 {
			cfg.headers[keyValues[i]] = keyValues[i+1]
		}
		return nil
	}
}

// WithTargetTimeout overrides the sweep-level per-attempt timeout for this
// target only.
//
// If the target does not respond within this duration, the attempt is a
// transport failure and feeds the retry policy. A zero value means use the
// sweep-level timeout configured via [WithTimeout].
//
// Example:
//
//	t, err := urlsweep.NewTarget("https://slow.example.com",
//	    urlsweep.WithTargetTimeout(30 * time.Second),
//	)
//
// Returns an error if the duration is negative.
func WithTargetTimeout(d time.Duration) TargetOption {
	return func(cfg *targetConfig) error {
		if d < 0 {
			return errors.New("timeout cannot be negative")
		}
		cfg.timeout = d
		return nil
	}
}
