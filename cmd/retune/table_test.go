package main

import (
	"strings"
	"testing"
)

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"Check", "Result"},
		[][]string{
			{"Duration Match", "PASS"},
			{"Sample Rate"},
		},
	)
	for _, want := range []string{"Check", "Result", "Duration Match", "PASS", "Sample Rate"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table:\n%s", want, out)
		}
	}
	lines := strings.Split(out, "\n")
	width := len([]rune(lines[0]))
	for _, line := range lines[1:] {
		if len([]rune(line)) != width {
			t.Fatalf("short row not padded to table width:\n%s", out)
		}
	}
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	if out := renderTable(nil, [][]string{{"row"}}); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestRenderStatusLine(t *testing.T) {
	plain := renderStatusLine("Strategy", statusInfo, "Rubberband (high quality)", false)
	if !strings.Contains(plain, "[INFO] Rubberband (high quality)") {
		t.Fatalf("unexpected status line: %q", plain)
	}
	if strings.Contains(plain, "\x1b[") {
		t.Fatalf("uncolored line carries ANSI codes: %q", plain)
	}

	colored := renderStatusLine("Verification", statusError, "failed", true)
	if !strings.HasPrefix(colored, "\x1b[31m") || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("expected red ANSI wrapping: %q", colored)
	}
}
