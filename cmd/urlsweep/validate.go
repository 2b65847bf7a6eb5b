package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/urlsweep/config"
)

// validateCmd validates a config file without running a sweep.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a urlsweep configuration file without probing anything.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  urlsweep validate -c config.yaml
  urlsweep validate --config /etc/urlsweep/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Count total targets (direct + from grids)
	directTargets := len(cfg.Targets)
	gridTargets := 0
	for _, g := range cfg.Grids {
		// Calculate cartesian product size
		size := 1
		for _, vals := range g.Dimensions {
			size *= len(vals)
		}
		gridTargets += size
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Workers: %d\n", cfg.Workers)
	fmt.Printf("  Timeout: %s\n", cfg.Timeout.Duration())
	fmt.Printf("  Retries: %d\n", cfg.Retries)
	fmt.Printf("  Output:  %s\n", cfg.Output)
	fmt.Printf("  Targets: %d direct + %d from grids = %d total\n",
		directTargets, gridTargets, directTargets+gridTargets)

	return nil
}
