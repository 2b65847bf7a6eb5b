package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestReadURLFile verifies trimming, comment and blank-line skipping, and
// duplicate preservation.
func TestReadURLFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "urls.txt")

	content := `# production endpoints
https://example.com

  https://api.example.com/health
# a duplicate on purpose
https://example.com
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write URL file: %v", err)
	}

	urls, err := ReadURLFile(path)
	if err != nil {
		t.Fatalf("ReadURLFile() error = %v", err)
	}

	want := []string{
		"https://example.com",
		"https://api.example.com/health",
		"https://example.com",
	}
	if len(urls) != len(want) {
		t.Fatalf("urls = %d, want %d", len(urls), len(want))
	}
	for i, w := range want {
		if urls[i] != w {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], w)
		}
	}
}

// TestReadURLFile_Empty verifies an all-comment file yields an empty
// slice without error.
func TestReadURLFile_Empty(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "urls.txt")
	if err := os.WriteFile(path, []byte("# nothing here\n\n"), 0644); err != nil {
		t.Fatalf("failed to write URL file: %v", err)
	}

	urls, err := ReadURLFile(path)
	if err != nil {
		t.Fatalf("ReadURLFile() error = %v", err)
	}
	if len(urls) != 0 {
		t.Errorf("urls = %d, want 0", len(urls))
	}
}

// TestReadURLFile_Missing verifies the unreadable-file error.
func TestReadURLFile_Missing(t *testing.T) {
	_, err := ReadURLFile(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Fatal("ReadURLFile() error = nil for missing file, want error")
	}
}
