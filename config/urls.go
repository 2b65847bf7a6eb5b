package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadURLFile reads a newline-delimited list of URLs from path.
//
// Lines are trimmed of surrounding whitespace; blank lines and lines
// starting with '#' are skipped. The returned slice preserves file order
// and keeps duplicates.
//
// Returns an error if the file cannot be read. An existing file with no
// usable lines yields an empty slice and no error; whether an empty URL
// list is acceptable is the caller's decision.
func ReadURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read URL file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL file: %w", err)
	}

	return urls, nil
}
