package deps

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeStub(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := writeStub(t, binDir, "present")

	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Unset", Command: ""},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}
	if results[2].Detail != "command not configured" {
		t.Fatalf("unexpected detail for empty command: %q", results[2].Detail)
	}
}

func TestResolveFFmpegOverride(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub scripts are not executable on windows")
	}
	binDir := t.TempDir()
	stub := writeStub(t, binDir, "ffmpeg")

	status := ResolveFFmpeg(stub)
	if !status.Available {
		t.Fatalf("expected override to resolve, got %#v", status)
	}
	if status.Command != stub {
		t.Fatalf("unexpected command: %q", status.Command)
	}

	status = ResolveFFmpeg(filepath.Join(binDir, "no-such-ffmpeg"))
	if status.Available {
		t.Fatalf("expected broken override to be unavailable")
	}
	if status.Detail == "" {
		t.Fatalf("expected detail for broken override")
	}
}

func TestResolveFFprobePrefersSidecar(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub scripts are not executable on windows")
	}
	binDir := t.TempDir()
	ffmpeg := writeStub(t, binDir, "ffmpeg")
	ffprobe := writeStub(t, binDir, "ffprobe")

	status := ResolveFFprobe("", ffmpeg)
	if !status.Available {
		t.Fatalf("expected sidecar ffprobe to resolve, got %#v", status)
	}
	if status.Command != ffprobe {
		t.Fatalf("expected sidecar path %q, got %q", ffprobe, status.Command)
	}
}

func TestProbeDetectsRubberband(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub scripts are not executable on windows")
	}
	binDir := t.TempDir()
	ffmpeg := writeStub(t, binDir, "ffmpeg")
	writeStub(t, binDir, "ffprobe")

	restore := listFilters
	defer func() { listFilters = restore }()

	listFilters = func(ctx context.Context, binary string) (string, error) {
		return " ... rubberband        A->A  Apply time-stretching and pitch-shifting\n", nil
	}
	cap := Probe(context.Background(), ffmpeg, "")
	if !cap.Rubberband {
		t.Fatalf("expected rubberband capability, got %#v", cap)
	}

	listFilters = func(ctx context.Context, binary string) (string, error) {
		return " ... atempo ...\n", nil
	}
	cap = Probe(context.Background(), ffmpeg, "")
	if cap.Rubberband {
		t.Fatalf("expected rubberband to be absent")
	}

	listFilters = func(ctx context.Context, binary string) (string, error) {
		return "", errors.New("boom")
	}
	cap = Probe(context.Background(), ffmpeg, "")
	if cap.Rubberband {
		t.Fatalf("probe failure must not claim rubberband support")
	}
	if !cap.FFmpeg.Available {
		t.Fatalf("filter probe failure must not mark ffmpeg unavailable")
	}
}

func TestProbeWithoutFFmpeg(t *testing.T) {
	cap := Probe(context.Background(), "definitely-not-ffmpeg-anywhere", "")
	if cap.FFmpeg.Available {
		t.Fatalf("expected ffmpeg unavailable, got %#v", cap.FFmpeg)
	}
	if cap.Rubberband {
		t.Fatalf("missing ffmpeg cannot have rubberband")
	}
}
