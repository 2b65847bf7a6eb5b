// Package collect owns the ordered result set for a probing run.
//
// A single consumer goroutine drains the pool's results channel, so every
// arrival is processed atomically without locks: the live hook fires, the
// result is appended, and the notify hook fires, in that order. Live output
// order and stored order are therefore identical by construction.
//
// Users of the urlsweep library should not need to interact with this
// package directly.
package collect
