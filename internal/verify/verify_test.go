package verify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"retune/internal/logging"
	"retune/internal/media/ffprobe"
	"retune/internal/services"
)

func audioResult(duration string, sampleRate string, size string) ffprobe.Result {
	return ffprobe.Result{
		Streams: []ffprobe.Stream{{
			CodecName:  "mp3",
			CodecType:  "audio",
			SampleRate: sampleRate,
			Channels:   2,
		}},
		Format: ffprobe.Format{
			Duration: duration,
			Size:     size,
		},
	}
}

func swapInspect(t *testing.T, fn func(ctx context.Context, binary, path string) (ffprobe.Result, error)) {
	t.Helper()
	original := inspect
	inspect = fn
	t.Cleanup(func() { inspect = original })
}

func swapProbeDuration(t *testing.T, fn func(ctx context.Context, binary, path string) (float64, error)) {
	t.Helper()
	original := probeDuration
	probeDuration = fn
	t.Cleanup(func() { probeDuration = original })
}

func writePair(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	original := filepath.Join(dir, "song.mp3")
	converted := filepath.Join(dir, "song_432hz.mp3")
	if err := os.WriteFile(original, []byte("original audio bytes"), 0o644); err != nil {
		t.Fatalf("write original: %v", err)
	}
	if err := os.WriteFile(converted, []byte("converted audio bytes"), 0o644); err != nil {
		t.Fatalf("write converted: %v", err)
	}
	return original, converted
}

func newTestVerifier(t *testing.T) *Verifier {
	t.Helper()
	verifier, err := NewVerifier("ffprobe", logging.NewNop())
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	return verifier
}

func TestVerifyPassingPair(t *testing.T) {
	original, converted := writePair(t)
	swapInspect(t, func(ctx context.Context, binary, path string) (ffprobe.Result, error) {
		if path == original {
			return audioResult("180.000000", "44100", "4500000"), nil
		}
		return audioResult("180.050000", "44100", "4600000"), nil
	})

	report, err := newTestVerifier(t).Verify(context.Background(), original, converted)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !report.Passed() {
		t.Fatalf("expected passing report: %+v", report.Checks)
	}
	if report.DurationRatio < 1.000277 || report.DurationRatio > 1.000279 {
		t.Fatalf("duration ratio = %f", report.DurationRatio)
	}
	if len(report.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", report.Warnings)
	}
	if report.Note == "" {
		t.Fatal("expected the tuning note on every report")
	}
}

func TestVerifyDurationOutsideTolerance(t *testing.T) {
	original, converted := writePair(t)
	swapInspect(t, func(ctx context.Context, binary, path string) (ffprobe.Result, error) {
		if path == original {
			return audioResult("180.0", "44100", "4500000"), nil
		}
		return audioResult("185.0", "44100", "4500000"), nil
	})

	report, err := newTestVerifier(t).Verify(context.Background(), original, converted)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if report.Passed() {
		t.Fatal("expected duration check to fail")
	}
	for _, check := range report.Checks {
		if check.Name == "Duration Match" && check.Passed {
			t.Fatal("duration check should have failed")
		}
	}
}

func TestVerifyDurationToleranceBoundary(t *testing.T) {
	cases := []struct {
		converted string
		pass      bool
	}{
		{"183.582000", true},  // ratio 1.0199
		{"183.618000", false}, // ratio 1.0201
	}
	for _, tc := range cases {
		original, converted := writePair(t)
		swapInspect(t, func(ctx context.Context, binary, path string) (ffprobe.Result, error) {
			if path == original {
				return audioResult("180.000000", "44100", "4500000"), nil
			}
			return audioResult(tc.converted, "44100", "4500000"), nil
		})

		report, err := newTestVerifier(t).Verify(context.Background(), original, converted)
		if err != nil {
			t.Fatalf("Verify(%s): %v", tc.converted, err)
		}
		if report.Passed() != tc.pass {
			t.Fatalf("converted duration %s: passed = %v, want %v (ratio %f)",
				tc.converted, report.Passed(), tc.pass, report.DurationRatio)
		}
	}
}

func TestVerifySampleRateMismatch(t *testing.T) {
	original, converted := writePair(t)
	swapInspect(t, func(ctx context.Context, binary, path string) (ffprobe.Result, error) {
		if path == original {
			return audioResult("180.0", "44100", "4500000"), nil
		}
		return audioResult("180.0", "48000", "4500000"), nil
	})

	report, err := newTestVerifier(t).Verify(context.Background(), original, converted)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if report.Passed() {
		t.Fatal("expected sample rate check to fail")
	}
}

func TestVerifyUndeterminedDuration(t *testing.T) {
	original, converted := writePair(t)
	swapInspect(t, func(ctx context.Context, binary, path string) (ffprobe.Result, error) {
		if path == original {
			return audioResult("", "44100", "4500000"), nil
		}
		return audioResult("180.0", "44100", "4500000"), nil
	})
	swapProbeDuration(t, func(ctx context.Context, binary, path string) (float64, error) {
		return 0, nil
	})

	report, err := newTestVerifier(t).Verify(context.Background(), original, converted)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if report.Passed() {
		t.Fatal("expected report to fail when duration is undetermined")
	}
	for _, check := range report.Checks {
		if check.Name == "Duration Match" && check.Detail != "could not determine duration" {
			t.Fatalf("unexpected duration detail: %q", check.Detail)
		}
		if check.Name == "Sample Rate" && !check.Passed {
			t.Fatal("sample rate check should still pass")
		}
	}
}

func TestVerifyDurationFallbackProbe(t *testing.T) {
	original, converted := writePair(t)
	swapInspect(t, func(ctx context.Context, binary, path string) (ffprobe.Result, error) {
		if path == original {
			return audioResult("", "44100", "4500000"), nil
		}
		return audioResult("180.050000", "44100", "4600000"), nil
	})
	swapProbeDuration(t, func(ctx context.Context, binary, path string) (float64, error) {
		if path != original {
			t.Fatalf("fallback probe should only run for the original, got %s", path)
		}
		return 180.0, nil
	})

	report, err := newTestVerifier(t).Verify(context.Background(), original, converted)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !report.Passed() {
		t.Fatalf("expected the single-field probe to recover the duration: %+v", report.Checks)
	}
	if report.DurationRatio < 1.000277 || report.DurationRatio > 1.000279 {
		t.Fatalf("duration ratio = %f", report.DurationRatio)
	}
}

func TestVerifySizeRatioWarning(t *testing.T) {
	original, converted := writePair(t)
	swapInspect(t, func(ctx context.Context, binary, path string) (ffprobe.Result, error) {
		if path == original {
			return audioResult("180.0", "44100", "4500000"), nil
		}
		return audioResult("180.0", "44100", "9000000"), nil
	})

	report, err := newTestVerifier(t).Verify(context.Background(), original, converted)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !report.Passed() {
		t.Fatal("size ratio is advisory and must not fail the report")
	}
	if len(report.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", report.Warnings)
	}
}

func TestVerifyUndecodableConverted(t *testing.T) {
	original, converted := writePair(t)
	swapInspect(t, func(ctx context.Context, binary, path string) (ffprobe.Result, error) {
		if path == original {
			return audioResult("180.0", "44100", "4500000"), nil
		}
		return ffprobe.Result{}, errors.New("invalid data found when processing input")
	})
	swapProbeDuration(t, func(ctx context.Context, binary, path string) (float64, error) {
		return 0, errors.New("invalid data found when processing input")
	})

	report, err := newTestVerifier(t).Verify(context.Background(), original, converted)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if report.Passed() {
		t.Fatal("expected validity check to fail")
	}
}

func TestVerifySameFileRejected(t *testing.T) {
	original, _ := writePair(t)
	_, err := newTestVerifier(t).Verify(context.Background(), original, original)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestVerifyIdenticalFilesRejected(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "song.mp3")
	converted := filepath.Join(dir, "song_432hz.mp3")
	for _, path := range []string{original, converted} {
		if err := os.WriteFile(path, []byte("same bytes everywhere"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	_, err := newTestVerifier(t).Verify(context.Background(), original, converted)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for identical files, got %v", err)
	}
}

func TestVerifyMissingConverted(t *testing.T) {
	original, converted := writePair(t)
	if err := os.Remove(converted); err != nil {
		t.Fatalf("remove converted: %v", err)
	}
	_, err := newTestVerifier(t).Verify(context.Background(), original, converted)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
