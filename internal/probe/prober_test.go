package probe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// scriptedClient replays a fixed attempt sequence, recording each call.
// The last attempt repeats if more calls arrive than were scripted.
type scriptedClient struct {
	mu       sync.Mutex
	script   []Attempt
	delay    time.Duration
	calls    int
	timeouts []time.Duration
}

func (s *scriptedClient) Do(ctx context.Context, t Target, timeout time.Duration) Attempt {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.calls
	if idx >= len(s.script) {
		idx = len(s.script) - 1
	}
	s.calls++
	s.timeouts = append(s.timeouts, timeout)
	return s.script[idx]
}

func (s *scriptedClient) Close() {}

func newTestProber(client attempter, timeout time.Duration, retries int) *Prober {
	return &Prober{
		client:  client,
		timeout: timeout,
		retries: retries,
		logger:  testLogger(),
	}
}

// TestProber_Probe_RespondedFirstAttempt verifies a successful first
// attempt ends the sequence immediately.
func TestProber_Probe_RespondedFirstAttempt(t *testing.T) {
	client := &scriptedClient{script: []Attempt{
		{StatusCode: 200, Duration: 10 * time.Millisecond},
	}}
	prober := newTestProber(client, time.Second, 3)

	result := prober.Probe(context.Background(), Target{URL: "http://example.com"})

	if client.calls != 1 {
		t.Errorf("attempts made = %d, want 1", client.calls)
	}
	if result.Attempts != 1 {
		t.Errorf("result.Attempts = %d, want 1", result.Attempts)
	}
	if result.StatusCode != 200 {
		t.Errorf("result.StatusCode = %d, want 200", result.StatusCode)
	}
	if result.Err != nil {
		t.Errorf("result.Err = %v, want nil", result.Err)
	}
}

// TestProber_Probe_NoRetryOnHTTPError verifies HTTP-level error codes are
// never retried: a 500 response ends the sequence like any other response.
func TestProber_Probe_NoRetryOnHTTPError(t *testing.T) {
	client := &scriptedClient{script: []Attempt{
		{StatusCode: 500, Duration: 10 * time.Millisecond},
	}}
	prober := newTestProber(client, time.Second, 5)

	result := prober.Probe(context.Background(), Target{URL: "http://example.com"})

	if client.calls != 1 {
		t.Errorf("attempts made = %d, want 1 (no retry on HTTP error codes)", client.calls)
	}
	if result.StatusCode != 500 {
		t.Errorf("result.StatusCode = %d, want 500", result.StatusCode)
	}
	if result.Err != nil {
		t.Errorf("result.Err = %v, want nil (a 500 is a response, not a failure)", result.Err)
	}
}

// TestProber_Probe_RetriesThenResponds verifies the [fail, fail, respond]
// sequence under retries=2 produces a responded result from the third
// attempt, with that attempt's timing only.
func TestProber_Probe_RetriesThenResponds(t *testing.T) {
	client := &scriptedClient{script: []Attempt{
		{Err: errors.New("connect: connection refused"), Duration: 100 * time.Millisecond},
		{Err: errors.New("connect: connection refused"), Duration: 100 * time.Millisecond},
		{StatusCode: 200, Duration: 5 * time.Millisecond},
	}}
	prober := newTestProber(client, time.Second, 2)

	result := prober.Probe(context.Background(), Target{URL: "http://example.com"})

	if client.calls != 3 {
		t.Errorf("attempts made = %d, want 3", client.calls)
	}
	if result.Attempts != 3 {
		t.Errorf("result.Attempts = %d, want 3", result.Attempts)
	}
	if result.StatusCode != 200 {
		t.Errorf("result.StatusCode = %d, want 200", result.StatusCode)
	}
	if result.Err != nil {
		t.Errorf("result.Err = %v, want nil", result.Err)
	}
	// final attempt's duration only, never the sum across retries
	if result.ResponseTime != 5*time.Millisecond {
		t.Errorf("result.ResponseTime = %v, want 5ms (last attempt only)", result.ResponseTime)
	}
}

// TestProber_Probe_ExhaustsRetries verifies that with retries=R, exactly
// R+1 attempts are made and the final error is the last attempt's reason.
func TestProber_Probe_ExhaustsRetries(t *testing.T) {
	client := &scriptedClient{script: []Attempt{
		{Err: errors.New("dns failure"), Duration: time.Millisecond},
		{Err: errors.New("dns failure"), Duration: time.Millisecond},
		{Err: errors.New("connection reset by peer"), Duration: 2 * time.Millisecond},
	}}
	prober := newTestProber(client, time.Second, 2)

	result := prober.Probe(context.Background(), Target{URL: "http://example.com"})

	if client.calls != 3 {
		t.Errorf("attempts made = %d, want 3 (retries+1)", client.calls)
	}
	if result.Err == nil {
		t.Fatal("result.Err = nil, want the last attempt's error")
	}
	if result.Err.Error() != "connection reset by peer" {
		t.Errorf("result.Err = %q, want the last attempt's reason only", result.Err)
	}
	if result.ResponseTime != 2*time.Millisecond {
		t.Errorf("result.ResponseTime = %v, want 2ms (last attempt only)", result.ResponseTime)
	}
	if result.StatusCode != 0 {
		t.Errorf("result.StatusCode = %d, want 0", result.StatusCode)
	}
}

// TestProber_Probe_ZeroRetries verifies the default single-attempt policy.
func TestProber_Probe_ZeroRetries(t *testing.T) {
	client := &scriptedClient{script: []Attempt{
		{Err: errors.New("timeout"), Duration: time.Millisecond},
	}}
	prober := newTestProber(client, time.Second, 0)

	result := prober.Probe(context.Background(), Target{URL: "http://example.com"})

	if client.calls != 1 {
		t.Errorf("attempts made = %d, want 1", client.calls)
	}
	if result.Err == nil {
		t.Error("result.Err = nil, want error after single failed attempt")
	}
}

// TestProber_Probe_TargetTimeoutOverride verifies a target's own timeout
// takes precedence over the prober default.
func TestProber_Probe_TargetTimeoutOverride(t *testing.T) {
	client := &scriptedClient{script: []Attempt{{StatusCode: 200}}}
	prober := newTestProber(client, 5*time.Second, 0)

	prober.Probe(context.Background(), Target{URL: "http://example.com", Timeout: 123 * time.Millisecond})
	prober.Probe(context.Background(), Target{URL: "http://example.com"})

	if len(client.timeouts) != 2 {
		t.Fatalf("recorded timeouts = %d, want 2", len(client.timeouts))
	}
	if client.timeouts[0] != 123*time.Millisecond {
		t.Errorf("timeouts[0] = %v, want 123ms (target override)", client.timeouts[0])
	}
	if client.timeouts[1] != 5*time.Second {
		t.Errorf("timeouts[1] = %v, want 5s (prober default)", client.timeouts[1])
	}
}

// TestProber_Probe_CheckedAtIsUTC verifies the completion timestamp is a
// recent UTC instant.
func TestProber_Probe_CheckedAtIsUTC(t *testing.T) {
	client := &scriptedClient{script: []Attempt{{StatusCode: 200}}}
	prober := newTestProber(client, time.Second, 0)

	before := time.Now().UTC()
	result := prober.Probe(context.Background(), Target{URL: "http://example.com"})
	after := time.Now().UTC()

	if result.CheckedAt.Location() != time.UTC {
		t.Errorf("CheckedAt location = %v, want UTC", result.CheckedAt.Location())
	}
	if result.CheckedAt.Before(before) || result.CheckedAt.After(after) {
		t.Errorf("CheckedAt = %v, want between %v and %v", result.CheckedAt, before, after)
	}
}

// TestProber_Probe_RealServerRetry verifies the retry loop against a real
// server that drops the first connections before responding.
func TestProber_Probe_RealServerRetry(t *testing.T) {
	var mu sync.Mutex
	failures := 2
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		failRequest := failures > 0
		if failRequest {
			failures--
		}
		mu.Unlock()

		if failRequest {
			// close the connection without a response
			if conn, _, err := w.(http.Hijacker).Hijack(); err == nil {
				conn.Close()
			}
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	prober := NewProber(time.Second, 2, testLogger())
	defer prober.Close()

	result := prober.Probe(context.Background(), Target{URL: server.URL})

	if result.Err != nil {
		t.Fatalf("result.Err = %v, want nil after retries", result.Err)
	}
	if result.StatusCode != 200 {
		t.Errorf("result.StatusCode = %d, want 200", result.StatusCode)
	}
	if result.Attempts != 3 {
		t.Errorf("result.Attempts = %d, want 3", result.Attempts)
	}
}
