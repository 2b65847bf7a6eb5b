package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/urlsweep"
	"github.com/jpalmerr/urlsweep/config"
	"github.com/jpalmerr/urlsweep/report"
)

const defaultTimeout = 5 * time.Second

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// checkCmd runs one sweep over the supplied URLs.
var checkCmd = &cobra.Command{
	Use:   "check [URL ...]",
	Short: "Probe URLs and write a JSON status report",
	Long: `Probe every supplied URL concurrently and write a JSON status report.

URLs are gathered, in order, from positional arguments, from the URL
file given with --file (newline-delimited, # comments and blank lines
skipped), and from the config file given with --config. Supplying no
URLs at all is an error; no report file is written in that case.

Each URL's outcome is printed to stdout the moment it is known:

  https://example.com - 200 OK - 123ms
  https://bad.example.com - error: connection refused - 4ms

Any received HTTP status counts as a response, including 4xx and 5xx;
only transport failures (DNS, connection refused, TLS, timeout) are
retried.

Example:
  urlsweep check https://example.com https://github.com
  urlsweep check -f urls.txt -w 8 -t 2s -r 1 -o status.json
  urlsweep check -c config.yaml`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringP("file", "f", "", "path to a newline-delimited URL file")
	checkCmd.Flags().StringP("config", "c", "", "path to a YAML config file")
	checkCmd.Flags().IntP("workers", "w", runtime.NumCPU(), "number of concurrent workers")
	checkCmd.Flags().DurationP("timeout", "t", defaultTimeout, "per-attempt timeout")
	checkCmd.Flags().IntP("retries", "r", 0, "additional attempts after a transport failure")
	checkCmd.Flags().StringP("output", "o", "status.json", "path for the JSON report")
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	workers, _ := cmd.Flags().GetInt("workers")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	retries, _ := cmd.Flags().GetInt("retries")
	output, _ := cmd.Flags().GetString("output")

	var cfg *config.Config
	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// config file values apply only where the flag was not set explicitly
		if !cmd.Flags().Changed("workers") && cfg.Workers > 0 {
			workers = cfg.Workers
		}
		if !cmd.Flags().Changed("timeout") {
			timeout = cfg.Timeout.Duration()
		}
		if !cmd.Flags().Changed("retries") {
			retries = cfg.Retries
		}
		if !cmd.Flags().Changed("output") {
			output = cfg.Output
		}
	}

	targets, err := gatherTargets(cmd, args, cfg)
	if err != nil {
		return err
	}

	if len(targets) == 0 {
		return fmt.Errorf("no URLs supplied: pass URLs as arguments, or use --file or --config")
	}

	sw, err := urlsweep.New(
		urlsweep.WithTargets(targets...),
		urlsweep.WithWorkers(workers),
		urlsweep.WithTimeout(timeout),
		urlsweep.WithRetries(retries),
		urlsweep.WithLogger(logger),
		urlsweep.WithLiveOutput(os.Stdout),
	)
	if err != nil {
		return fmt.Errorf("failed to create sweep: %w", err)
	}

	// Ctrl+C does not abandon targets: remaining attempts fail fast and
	// the report stays complete, so the file is still written.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rep, err := sw.Run(ctx)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	if err := report.WriteFile(output, rep); err != nil {
		return err
	}
	logger.Info("report written", "path", output, "results", len(rep.Results))

	return nil
}

// gatherTargets builds the target list from positional arguments, the URL
// file, and the config file, concatenated in that order.
func gatherTargets(cmd *cobra.Command, args []string, cfg *config.Config) ([]urlsweep.Target, error) {
	var targets []urlsweep.Target

	for _, raw := range args {
		t, err := urlsweep.NewTarget(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid URL %q: %w", raw, err)
		}
		targets = append(targets, t)
	}

	if urlFile, _ := cmd.Flags().GetString("file"); urlFile != "" {
		urls, err := config.ReadURLFile(urlFile)
		if err != nil {
			return nil, err
		}
		for _, raw := range urls {
			t, err := urlsweep.NewTarget(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid URL %q in %s: %w", raw, urlFile, err)
			}
			targets = append(targets, t)
		}
	}

	if cfg != nil {
		configTargets, err := config.BuildTargets(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to build targets: %w", err)
		}
		targets = append(targets, configTargets...)
	}

	return targets, nil
}
