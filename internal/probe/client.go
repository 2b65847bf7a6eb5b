package probe

import (
	"context"
	"io"
	"net/http"
	"time"
)

// maxDrainBytes bounds how much of a response body is read before the
// connection is released. The body content is never inspected; draining a
// limited amount lets the transport reuse the connection.
const maxDrainBytes = 1 << 20 // 1MB

// connection pooling limits to prevent resource exhaustion when probing many URLs
const (
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultMaxConnsPerHost     = 10
	defaultIdleConnTimeout     = 60 * time.Second // conservative: matches common ALB defaults
)

// Attempt holds the outcome of a single bounded HTTP attempt against a target.
//
// An attempt either responded (Err == nil, StatusCode holds the HTTP status
// regardless of its class: 2xx through 5xx all count as responded) or failed
// at the transport layer (Err != nil: DNS resolution, connection refusal,
// TLS handshake, deadline exceeded). Duration covers this attempt only.
type Attempt struct {
	// StatusCode is the HTTP status code (e.g., 200, 404, 500).
	// Zero if the attempt failed before receiving a response.
	StatusCode int

	// Err is the transport failure, if any. nil means a response was
	// received, whatever the status code.
	Err error

	// Duration is the wall-clock time taken by this attempt.
	Duration time.Duration
}

// Responded reports whether this attempt received an HTTP response.
func (a Attempt) Responded() bool {
	return a.Err == nil
}

// Client is an HTTP client wrapper optimized for one-shot status probing.
//
// Client uses per-request timeouts via context rather than a global timeout,
// allowing different targets to have different timeout configurations.
// Response bodies are drained up to 1MB and discarded.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new probing [Client].
//
// The client is configured with connection pooling limits to prevent resource
// exhaustion when probing many URLs on the same host. Timeouts are applied
// per-request via the context parameter in [Client.Do], not as a global
// client timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			// no default timeout - we use per-request timeouts via context
			Transport: &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				MaxConnsPerHost:     defaultMaxConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
				DisableKeepAlives:   false, // explicitly enable connection reuse
			},
		},
	}
}

// Do performs exactly one HTTP attempt against the target and returns a
// structured [Attempt].
//
// The request is made with the target's method (GET if empty) and headers,
// bounded by the given timeout via context cancellation. Do always returns an
// Attempt; transport failures are captured in the Err field rather than
// returned separately, which simplifies handling in the retry loop.
func (c *Client) Do(ctx context.Context, t Target, timeout time.Duration) Attempt {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	method := t.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, t.URL, nil)
	if err != nil {
		return Attempt{
			Err:      err,
			Duration: time.Since(start),
		}
	}

	for key, value := range t.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Attempt{
			Err:      err,
			Duration: time.Since(start),
		}
	}

	// A status line was received, so the attempt responded no matter what
	// happens to the body. Drain a bounded amount so the connection can be
	// reused, then close.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))
	_ = resp.Body.Close()

	return Attempt{
		StatusCode: resp.StatusCode,
		Duration:   time.Since(start),
	}
}

// Close closes all idle connections in the client's connection pool.
//
// This should be called when the client is no longer needed to release
// resources immediately rather than waiting for the idle connection timeout.
// Safe to call multiple times. After Close, the client remains usable but
// new connections will be established as needed.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
