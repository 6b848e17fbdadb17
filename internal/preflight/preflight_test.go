package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"retune/internal/config"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("Output directory", dir)
	if !result.Passed {
		t.Fatalf("expected pass for %s: %s", dir, result.Detail)
	}

	missing := filepath.Join(dir, "absent")
	result = CheckDirectoryAccess("Output directory", missing)
	if result.Passed {
		t.Fatal("expected failure for missing directory")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}

	file := filepath.Join(dir, "file.mp3")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	result = CheckDirectoryAccess("Output directory", file)
	if result.Passed {
		t.Fatal("expected failure for non-directory")
	}
}

func TestRunAll(t *testing.T) {
	if results := RunAll(nil); results != nil {
		t.Fatalf("expected nil for nil config, got %v", results)
	}

	cfg := &config.Config{}
	cfg.Paths.OutputDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()

	results := RunAll(cfg)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, result := range results {
		if !result.Passed {
			t.Fatalf("%s failed: %s", result.Name, result.Detail)
		}
	}
}
