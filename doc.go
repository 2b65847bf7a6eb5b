// Package urlsweep probes a batch of website URLs concurrently and
// reports per-URL status, latency, and completion time.
//
// urlsweep is designed as an SDK-first library: a sweep is configured
// programmatically via the functional options pattern, run to completion
// once, and returns a frozen report. Each URL is probed by a fixed-size
// worker pool with a per-attempt deadline and bounded retries on
// transport failures; every completion is printed as a live line the
// moment it is known, and the final report lists results in exactly that
// completion order.
//
// # Quick Start
//
// Create targets and run a sweep:
//
//	t1, _ := urlsweep.NewTarget("https://example.com")
//	t2, _ := urlsweep.NewTarget("https://api.example.com/health")
//
//	sw, _ := urlsweep.New(urlsweep.WithTargets(t1, t2))
//	rep, _ := sw.Run(context.Background())
//
//	for _, r := range rep.Results {
//	    fmt.Println(r.Line())
//	}
//
// # Configuration
//
// Sweeps use the functional options pattern for configuration:
//
//	sw, err := urlsweep.New(
//	    urlsweep.WithTargets(targets...),
//	    urlsweep.WithWorkers(8),
//	    urlsweep.WithTimeout(2 * time.Second),
//	    urlsweep.WithRetries(2),
//	)
//
// Targets can also be configured with options:
//
//	t, err := urlsweep.NewTarget("https://api.example.com/health",
//	    urlsweep.WithMethod(http.MethodHead),
//	    urlsweep.WithHeaders("Authorization", "Bearer token"),
//	    urlsweep.WithTargetTimeout(5 * time.Second),
//	)
//
// Many similar targets can be declared at once with [NewTargetGrid],
// which expands a URL template over the cartesian product of dimension
// values.
//
// # Outcome Semantics
//
// A target that produced any HTTP response is a success at this layer:
// the status code is recorded as-is, 2xx through 5xx alike, and the
// attempt sequence ends. Only transport failures (DNS resolution,
// connection refused, TLS handshake, deadline exceeded) are retried, and
// a target's final Result always reflects its last attempt alone.
//
// # Architecture
//
// urlsweep consists of two internal packages:
//
//   - internal/probe: the HTTP attempt client, the retry policy, and the
//     worker pool over the seeded task queue
//   - internal/collect: the single-consumer collector that fixes the
//     completion order shared by live output and the report
//
// The config package layers YAML file configuration on top of the SDK,
// and the report package serializes a finished report to JSON.
package urlsweep
