package main

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"sync"
	"time"
)

// StartMockStatusServer runs a mock server with three behaviours:
//
//   - /health responds 200 with small random latency
//   - /flaky drops the first connection, then responds 200
//   - anything else responds 404
//
// Call this in a goroutine before creating urlsweep targets.
func StartMockStatusServer(addr string) {
	var (
		mu      sync.Mutex
		dropped bool
	)

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		// simulate small latency variance
		time.Sleep(time.Duration(50+rand.Intn(150)) * time.Millisecond)

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]string{
			"svc":    r.URL.Query().Get("svc"),
			"env":    r.URL.Query().Get("env"),
			"status": "ok",
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	})

	mux.HandleFunc("/flaky", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		first := !dropped
		dropped = true
		mu.Unlock()

		if first {
			// close the TCP connection without a response so the probe
			// sees a transport failure and retries
			hj, ok := w.(http.Hijacker)
			if !ok {
				http.Error(w, "hijack unsupported", http.StatusInternalServerError)
				return
			}
			conn, _, err := hj.Hijack()
			if err != nil {
				slog.Error("hijack failed", "error", err)
				return
			}
			_ = conn.(*net.TCPConn).SetLinger(0)
			_ = conn.Close()
			return
		}

		w.WriteHeader(http.StatusOK)
	})

	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("mock server error", "error", err)
	}
}
