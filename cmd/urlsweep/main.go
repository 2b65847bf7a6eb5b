// Package main is the entry point for the urlsweep CLI.
//
// urlsweep can be used either as a library (SDK) or as a standalone
// binary. This CLI provides the standalone binary approach.
//
// Usage:
//
//	urlsweep check https://example.com     # Probe URLs given as arguments
//	urlsweep check -f urls.txt             # Probe URLs from a file
//	urlsweep validate -c config.yaml       # Validate configuration
//	urlsweep version                       # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "urlsweep",
	Short: "A concurrent website status checker",
	Long: `urlsweep probes a list of website URLs concurrently and records
per-URL outcome: HTTP status or transport error, response latency,
and completion timestamp.

Each outcome is printed the moment it is known, and the full result
set is written to a JSON file once every URL has been attempted.

Quick start:
  urlsweep check https://example.com https://github.com
  urlsweep check -f urls.txt -w 8 -t 2s -r 1 -o status.json

URL files are newline-delimited; blank lines and lines starting
with # are skipped.`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this urlsweep binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("urlsweep %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
