package urlsweep

import (
	"errors"
	"net/url"
	"time"
)

// Target represents one URL queued for probing.
//
// Target is immutable after creation via [NewTarget]. All fields are
// private with getter methods that return copies of mutable data (maps),
// ensuring the target cannot be modified after construction.
//
// Duplicate URLs are legal: each Target is probed independently and
// produces its own [Result], so the same URL can appear any number of
// times in a sweep.
//
// Targets are configured using the functional options pattern with
// [TargetOption] functions such as [WithMethod], [WithHeaders], and
// [WithTargetTimeout].
type Target struct {
	url     string
	method  string
	headers map[string]string
	timeout time.Duration
}

// URL returns the target's URL as a string.
func (t Target) URL() string {
	return t.url
}

// Method returns the HTTP method for probe requests.
// Returns empty string if not explicitly set, which means GET will be used.
func (t Target) Method() string {
	return t.method
}

// Headers returns a copy of the target's custom HTTP headers.
// These headers are sent with every attempt against this target.
// Returns nil if no custom headers are set.
func (t Target) Headers() map[string]string {
	return copyMap(t.headers)
}

// Timeout returns the target's per-attempt timeout override.
// Returns 0 if no override was specified, meaning the sweep-level timeout
// configured via [WithTimeout] applies.
func (t Target) Timeout() time.Duration {
	return t.timeout
}

// NewTarget creates a [Target] for the given URL with the given options.
//
// The rawURL parameter must be a valid URL with an http:// or https://
// scheme. Options are applied in order using the functional options
// pattern. See [WithMethod], [WithHeaders], and [WithTargetTimeout].
//
// Example:
//
//	t, err := urlsweep.NewTarget("https://example.com",
//	    urlsweep.WithMethod(http.MethodHead),
//	    urlsweep.WithTargetTimeout(2 * time.Second),
//	)
func NewTarget(rawURL string, opts ...TargetOption) (Target, error) {
	if rawURL == "" {
		return Target{}, errors.New("target URL cannot be empty")
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return Target{}, errors.New("invalid URL: " + err.Error())
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return Target{}, errors.New("URL must have an http:// or https:// scheme")
	}

	cfg := &targetConfig{
		headers: make(map[string]string),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return Target{}, err
		}
	}

	return Target{
		url:     rawURL,
		method:  cfg.method,
		headers: cfg.headers,
		timeout: cfg.timeout,
	}, nil
}

// copyMap returns a shallow copy of the map.
func copyMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
