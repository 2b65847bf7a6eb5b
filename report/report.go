// Package report serializes a finished sweep report to JSON.
//
// This is the persistence boundary of urlsweep: once a sweep has resolved
// every target, the report's results are written as a JSON array of
// records, one per target, in the same completion order the live lines
// were printed in.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jpalmerr/urlsweep"
)

// Record is the JSON shape of one persisted result.
//
// Status and Error are pointers with omitempty so that exactly one of the
// two keys appears in the output: "status" when the target responded
// (whatever the code), "error" when every permitted attempt failed in
// transport.
type Record struct {
	// URL is the target URL that was probed.
	URL string `json:"url"`

	// Status is the HTTP status code of the final attempt.
	// Present only when the target responded.
	Status *int `json:"status,omitempty"`

	// Error is the classified transport failure reason.
	// Present only when the target did not respond.
	Error *string `json:"error,omitempty"`

	// ResponseTimeMs is the duration of the final attempt in milliseconds.
	ResponseTimeMs int64 `json:"response_time_ms"`

	// Timestamp is the UTC instant the final attempt completed, RFC 3339.
	Timestamp time.Time `json:"timestamp"`
}

// Records converts a report's results to their persisted JSON shape,
// preserving completion order.
func Records(rep *urlsweep.Report) []Record {
	records := make([]Record, len(rep.Results))
	for i, r := range rep.Results {
		records[i] = toRecord(r)
	}
	return records
}

// toRecord converts a single result to its JSON shape.
func toRecord(r urlsweep.Result) Record {
	rec := Record{
		URL:            r.URL,
		ResponseTimeMs: r.ResponseTime.Milliseconds(),
		Timestamp:      r.CheckedAt.UTC(),
	}

	if r.Responded() {
		status := r.StatusCode
		rec.Status = &status
	} else {
		reason := r.Error
		rec.Error = &reason
	}

	return rec
}

// Write serializes the report's results to w as indented JSON.
func Write(w io.Writer, rep *urlsweep.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Records(rep)); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteFile serializes the report's results to a JSON file at path,
// creating or truncating it.
func WriteFile(path string, rep *urlsweep.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	if err := Write(f, rep); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}
