package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jpalmerr/urlsweep"
)

func testReport() *urlsweep.Report {
	checkedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	return &urlsweep.Report{
		RunID:      "test-run",
		StartedAt:  checkedAt.Add(-time.Second),
		FinishedAt: checkedAt,
		Results: []urlsweep.Result{
			{
				URL:          "https://example.com",
				StatusCode:   200,
				ResponseTime: 123 * time.Millisecond,
				Attempts:     1,
				CheckedAt:    checkedAt,
			},
			{
				URL:          "https://broken.example.com",
				StatusCode:   503,
				ResponseTime: 40 * time.Millisecond,
				Attempts:     1,
				CheckedAt:    checkedAt,
			},
			{
				URL:          "https://dead.example.com",
				Error:        "connection refused",
				ResponseTime: 4 * time.Millisecond,
				Attempts:     3,
				CheckedAt:    checkedAt,
			},
		},
	}
}

// TestRecords_MutualExclusivity verifies status appears only on responded
// results and error only on failed ones, in completion order.
func TestRecords_MutualExclusivity(t *testing.T) {
	records := Records(testReport())

	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}

	if records[0].Status == nil || *records[0].Status != 200 {
		t.Errorf("records[0].Status = %v, want 200", records[0].Status)
	}
	if records[0].Error != nil {
		t.Errorf("records[0].Error = %v, want nil", records[0].Error)
	}

	// 503 is a response: status present, no error
	if records[1].Status == nil || *records[1].Status != 503 {
		t.Errorf("records[1].Status = %v, want 503", records[1].Status)
	}
	if records[1].Error != nil {
		t.Errorf("records[1].Error = %v, want nil (a 503 responded)", records[1].Error)
	}

	if records[2].Status != nil {
		t.Errorf("records[2].Status = %v, want nil", records[2].Status)
	}
	if records[2].Error == nil || *records[2].Error != "connection refused" {
		t.Errorf("records[2].Error = %v, want connection refused", records[2].Error)
	}

	if records[2].ResponseTimeMs != 4 {
		t.Errorf("records[2].ResponseTimeMs = %d, want 4", records[2].ResponseTimeMs)
	}
}

// TestWrite_KeyPresence verifies the serialized JSON never carries both
// keys, asserted on the raw document rather than Go structs.
func TestWrite_KeyPresence(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("output is not a JSON array: %v", err)
	}

	for i, rec := range raw {
		_, hasStatus := rec["status"]
		_, hasError := rec["error"]
		if hasStatus == hasError {
			t.Errorf("records[%d] hasStatus = %v, hasError = %v: want exactly one key", i, hasStatus, hasError)
		}
		if _, ok := rec["url"]; !ok {
			t.Errorf("records[%d] missing url key", i)
		}
		if _, ok := rec["response_time_ms"]; !ok {
			t.Errorf("records[%d] missing response_time_ms key", i)
		}
		ts, ok := rec["timestamp"].(string)
		if !ok {
			t.Fatalf("records[%d] timestamp is not a string", i)
		}
		if !strings.HasSuffix(ts, "Z") {
			t.Errorf("records[%d] timestamp = %s, want UTC (Z suffix)", i, ts)
		}
		if _, err := time.Parse(time.RFC3339, ts); err != nil {
			t.Errorf("records[%d] timestamp = %s, not RFC 3339: %v", i, ts, err)
		}
	}
}

// TestWriteFile verifies the file round-trip.
func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")

	if err := WriteFile(path, testReport()); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report file: %v", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("file content is not valid JSON: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("records = %d, want 3", len(records))
	}
	if records[0].URL != "https://example.com" {
		t.Errorf("records[0].URL = %s, want https://example.com", records[0].URL)
	}
}

// TestWriteFile_BadPath verifies an unwritable path surfaces an error.
func TestWriteFile_BadPath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "no", "such", "dir", "status.json"), testReport())
	if err == nil {
		t.Fatal("WriteFile() error = nil for unwritable path, want error")
	}
}
