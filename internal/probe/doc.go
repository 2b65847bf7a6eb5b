// Package probe implements the concurrent probing engine for urlsweep.
//
// This package is internal to urlsweep and handles the one-shot probing of
// a batch of URLs. It implements a worker pool pattern over a seeded task
// queue, with bounded per-attempt timeouts and a retry policy for transport
// failures.
//
// The main components are:
//
//   - [Client]: HTTP client wrapper that performs one bounded attempt
//   - [Prober]: resolves a target to a final result via bounded retries
//   - [Pool]: fixed set of workers draining the task queue exactly once
//   - [Result]: the finalized outcome for a single target
//
// Users of the urlsweep library should not need to interact with this
// package directly. Configuration is done through the main urlsweep package.
package probe
