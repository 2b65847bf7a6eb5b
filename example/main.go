package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jpalmerr/urlsweep"
	"github.com/jpalmerr/urlsweep/report"
)

func main() {
	// start mock server (see mock_server.go)
	go StartMockStatusServer(":9999")
	time.Sleep(100 * time.Millisecond)

	// grid API: 2 services × 2 envs = 4 targets from one declaration
	targets, err := urlsweep.NewTargetGrid(
		urlsweep.WithURLTemplate("http://localhost:9999/health?svc={{.svc}}&env={{.env}}"),
		urlsweep.WithDimensions(map[string][]string{
			"svc": {"users", "orders"},
			"env": {"prod", "staging"},
		}),
	)
	if err != nil {
		slog.Error("failed to create target grid", "error", err)
		os.Exit(1)
	}

	// a flaky endpoint: drops the first connection, so retries matter
	flaky, _ := urlsweep.NewTarget("http://localhost:9999/flaky")
	targets = append(targets, flaky)

	// a port nobody listens on: exhausts retries, lands in the report
	// as an error
	dead, _ := urlsweep.NewTarget("http://localhost:9998/")
	targets = append(targets, dead)

	sw, err := urlsweep.New(
		urlsweep.WithTargets(targets...),
		urlsweep.WithWorkers(3),
		urlsweep.WithTimeout(2*time.Second),
		urlsweep.WithRetries(2),
	)
	if err != nil {
		slog.Error("failed to create sweep", "error", err)
		os.Exit(1)
	}

	fmt.Println("urlsweep demo: probing 6 targets with 3 workers, 2 retries")
	fmt.Println()

	rep, err := sw.Run(context.Background())
	if err != nil {
		slog.Error("sweep failed", "error", err)
		os.Exit(1)
	}

	if err := report.WriteFile("status.json", rep); err != nil {
		slog.Error("failed to write report", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("done: %d results written to status.json (run %s)\n", len(rep.Results), rep.RunID)
}
