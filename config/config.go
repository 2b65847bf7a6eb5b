// Package config provides YAML configuration parsing for urlsweep.
//
// This package enables running urlsweep as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	workers: 8
//	timeout: 5s
//	retries: 2
//	output: status.json
//
//	targets:
//	  - url: https://api.github.com
//	    timeout: 2s
//
//	grids:
//	  - url_template: "https://{{.env}}.example.com/health"
//	    dimensions:
//	      env: [prod, staging]
package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for urlsweep.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
//
// A config file with no targets and no grids is valid: the CLI merges
// config targets with positional and file-sourced URLs, and only the
// combined list must be non-empty.
type Config struct {
	// Workers is the worker pool size. Defaults to 0, meaning the
	// caller's default applies.
	Workers int `yaml:"workers"`

	// Timeout is the per-attempt deadline.
	// Accepts duration strings like "10s", "1m", "500ms".
	// Defaults to 5s.
	Timeout Duration `yaml:"timeout"`

	// Retries is the number of additional attempts after a transport
	// failure. Defaults to 0.
	Retries int `yaml:"retries"`

	// Output is the path the final JSON report is written to.
	// Defaults to "status.json".
	Output string `yaml:"output"`

	// Targets defines individual probe targets.
	Targets []TargetConfig `yaml:"targets"`

	// Grids defines target grids that expand via cartesian product.
	Grids []GridConfig `yaml:"grids"`
}

// TargetConfig defines a single probe target.
type TargetConfig struct {
	// URL is the address to probe.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	URL string `yaml:"url"`

	// Method is the HTTP method (GET, HEAD, POST). Defaults to GET.
	Method string `yaml:"method"`

	// Timeout is the per-attempt deadline override for this target.
	// If not specified, the global timeout applies.
	Timeout Duration `yaml:"timeout"`

	// Headers are custom HTTP headers sent with each attempt.
	// Values support environment variable substitution.
	Headers map[string]string `yaml:"headers"`
}

// GridConfig defines a target grid that expands via cartesian product.
//
// For example, with dimensions {env: [prod, staging], svc: [api, web]},
// the grid expands to 4 targets: prod/api, prod/web, staging/api, staging/web.
type GridConfig struct {
	// URLTemplate is a Go template for generating target URLs.
	// Dimension keys are available as template variables: {{.env}}, {{.svc}}
	// Supports environment variable substitution in the template.
	URLTemplate string `yaml:"url_template"`

	// Dimensions maps dimension names to their possible values.
	// The cartesian product of all dimensions generates the targets.
	Dimensions map[string][]string `yaml:"dimensions"`

	// Method is the HTTP method for all generated targets.
	Method string `yaml:"method"`

	// Timeout is the per-attempt deadline for all generated targets.
	Timeout Duration `yaml:"timeout"`

	// Headers are custom HTTP headers for all generated targets.
	Headers map[string]string `yaml:"headers"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// already have an error, skip processing
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		// submatches[2] is ":-..." (non-empty if default syntax was used)
		// submatches[3] is the actual default value (may be empty for ${VAR:-})
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before parsing.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in URL, URLTemplate, and Header
// values. Defaults are applied for Timeout (5s) and Output
// ("status.json").
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = Duration(5 * time.Second)
	}
	if cfg.Output == "" {
		cfg.Output = "status.json"
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", c.Workers)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries cannot be negative, got %d", c.Retries)
	}
	if c.Timeout.Duration() < 0 {
		return fmt.Errorf("timeout cannot be negative, got %s", c.Timeout.Duration())
	}

	for i := range c.Targets {
		tc := &c.Targets[i]

		if tc.URL == "" {
			return fmt.Errorf("targets[%d]: url is required", i)
		}
		expanded, err := expandEnvVars(tc.URL)
		if err != nil {
			return fmt.Errorf("targets[%d]: url: %w", i, err)
		}
		tc.URL = expanded

		parsedURL, err := url.Parse(tc.URL)
		if err != nil {
			return fmt.Errorf("targets[%d]: invalid url: %w", i, err)
		}
		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return fmt.Errorf("targets[%d]: url scheme must be http or https, got %q", i, parsedURL.Scheme)
		}

		for k, v := range tc.Headers {
			expanded, err := expandEnvVars(v)
			if err != nil {
				return fmt.Errorf("targets[%d]: headers[%s]: %w", i, k, err)
			}
			tc.Headers[k] = expanded
		}

		if tc.Method != "" && tc.Method != "GET" && tc.Method != "HEAD" && tc.Method != "POST" {
			return fmt.Errorf("targets[%d]: method must be GET, HEAD, or POST", i)
		}

		if tc.Timeout.Duration() < 0 {
			return fmt.Errorf("targets[%d]: timeout cannot be negative, got %s", i, tc.Timeout.Duration())
		}
	}

	for i := range c.Grids {
		g := &c.Grids[i]

		if g.URLTemplate == "" {
			return fmt.Errorf("grids[%d]: url_template is required", i)
		}
		expanded, err := expandEnvVars(g.URLTemplate)
		if err != nil {
			return fmt.Errorf("grids[%d]: url_template: %w", i, err)
		}
		g.URLTemplate = expanded

		// fail fast before the SDK tries to use an invalid template
		if _, err := template.New("").Parse(g.URLTemplate); err != nil {
			return fmt.Errorf("grids[%d]: invalid url_template: %w", i, err)
		}

		if len(g.Dimensions) == 0 {
			return fmt.Errorf("grids[%d]: at least one dimension is required", i)
		}
		for dimName, dimValues := range g.Dimensions {
			if len(dimValues) == 0 {
				return fmt.Errorf("grids[%d]: dimension %q has no values", i, dimName)
			}
			seen := make(map[string]struct{}, len(dimValues))
			for _, v := range dimValues {
				if _, exists := seen[v]; exists {
					return fmt.Errorf("grids[%d]: dimension %q has duplicate value %q", i, dimName, v)
				}
				seen[v] = struct{}{}
			}
		}

		for k, v := range g.Headers {
			expanded, err := expandEnvVars(v)
			if err != nil {
				return fmt.Errorf("grids[%d]: headers[%s]: %w", i, k, err)
			}
			g.Headers[k] = expanded
		}

		if g.Method != "" && g.Method != "GET" && g.Method != "HEAD" && g.Method != "POST" {
			return fmt.Errorf("grids[%d]: method must be GET, HEAD, or POST", i)
		}

		if g.Timeout.Duration() < 0 {
			return fmt.Errorf("grids[%d]: timeout cannot be negative, got %s", i, g.Timeout.Duration())
		}
	}

	return nil
}
