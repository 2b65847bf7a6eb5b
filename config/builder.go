package config

import (
	"sort"

	"github.com/jpalmerr/urlsweep"
)

// BuildTargets converts parsed configuration into SDK Target objects.
//
// It processes both direct targets and grids, returning a combined slice.
// Grid dimensions are expanded via cartesian product. Duplicate URLs
// produced by any source remain independent targets.
func BuildTargets(cfg *Config) ([]urlsweep.Target, error) {
	var targets []urlsweep.Target

	// convert direct targets
	for _, tc := range cfg.Targets {
		t, err := buildTarget(tc)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}

	// convert grids (cartesian product expansion)
	for _, gc := range cfg.Grids {
		gridTargets, err := buildGridTargets(gc)
		if err != nil {
			return nil, err
		}
		targets = append(targets, gridTargets...)
	}

	return targets, nil
}

// buildTarget converts a single TargetConfig to an SDK Target.
func buildTarget(tc TargetConfig) (urlsweep.Target, error) {
	var opts []urlsweep.TargetOption

	if tc.Method != "" {
		opts = append(opts, urlsweep.WithMethod(tc.Method))
	}

	if tc.Timeout != 0 {
		opts = append(opts, urlsweep.WithTargetTimeout(tc.Timeout.Duration()))
	}

	if len(tc.Headers) > 0 {
		opts = append(opts, urlsweep.WithHeaders(mapToKeyValuePairs(tc.Headers)...))
	}

	return urlsweep.NewTarget(tc.URL, opts...)
}

// buildGridTargets expands a GridConfig into multiple targets via the SDK grid.
func buildGridTargets(gc GridConfig) ([]urlsweep.Target, error) {
	opts := []urlsweep.GridOption{
		urlsweep.WithURLTemplate(gc.URLTemplate),
		urlsweep.WithDimensions(gc.Dimensions),
	}

	if gc.Method != "" {
		opts = append(opts, urlsweep.WithGridMethod(gc.Method))
	}

	if gc.Timeout != 0 {
		opts = append(opts, urlsweep.WithGridTimeout(gc.Timeout.Duration()))
	}

	if len(gc.Headers) > 0 {
		opts = append(opts, urlsweep.WithGridHeaders(mapToKeyValuePairs(gc.Headers)...))
	}

	return urlsweep.NewTargetGrid(opts...)
}

// mapToKeyValuePairs converts a map to a sorted slice of key-value pairs.
func mapToKeyValuePairs(m map[string]string) []string {
	// sort keys for deterministic ordering
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(m)*2)
	for _, k := range keys {
		pairs = append(pairs, k, m[k])
	}
	return pairs
}
