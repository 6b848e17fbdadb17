package verify

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"

	"retune/internal/fileutil"
	"retune/internal/logging"
	"retune/internal/media/ffprobe"
	"retune/internal/services"
	"retune/internal/tuning"
)

// prefixHashLimit bounds how much of each file feeds the identity hash.
// Comparing full files would be wasted work: two different conversions never
// share even their first megabyte.
const prefixHashLimit int64 = 1 << 20

// Size ratio bounds outside which the converted file draws a warning. Output
// size varies with encoder settings, so this is advisory only.
const (
	sizeRatioMin = 0.8
	sizeRatioMax = 1.2
)

// Note is appended to every report so listeners know what a passing result
// actually sounds like.
const Note = tuning.NoteShiftDescription

// inspect and probeDuration are swapped out by tests.
var (
	inspect       = ffprobe.Inspect
	probeDuration = ffprobe.ProbeDuration
)

// Check is one named comparison between the original and converted file.
type Check struct {
	Name   string
	Passed bool
	Hard   bool
	Detail string
}

// Report aggregates the verification checks for one file pair.
type Report struct {
	OriginalPath  string
	ConvertedPath string
	Checks        []Check
	Warnings      []string
	DurationRatio float64
	Original      ffprobe.AudioMetadata
	Converted     ffprobe.AudioMetadata
	Note          string
}

// Passed reports whether every hard check succeeded. Warnings never fail a
// report.
func (r Report) Passed() bool {
	for _, check := range r.Checks {
		if check.Hard && !check.Passed {
			return false
		}
	}
	return true
}

// Verifier compares an original file against its retuned counterpart.
type Verifier struct {
	ffprobeBinary string
	logger        *slog.Logger
}

// NewVerifier wires a verifier around the resolved ffprobe binary.
func NewVerifier(ffprobeBinary string, logger *slog.Logger) (*Verifier, error) {
	if ffprobeBinary == "" {
		return nil, services.Wrap(services.ErrConfiguration, "verify", "new", "ffprobe binary required", nil)
	}
	return &Verifier{
		ffprobeBinary: ffprobeBinary,
		logger:        logging.NewComponentLogger(logger, "verify"),
	}, nil
}

// Verify runs every check for the pair. It returns an error only when the
// comparison itself is impossible (same file selected, byte-identical files,
// unreadable inputs); check failures land in the report instead.
func (v *Verifier) Verify(ctx context.Context, originalPath, convertedPath string) (Report, error) {
	report := Report{
		OriginalPath:  originalPath,
		ConvertedPath: convertedPath,
		Note:          Note,
	}

	same, err := fileutil.SameFile(originalPath, convertedPath)
	if err != nil {
		return report, services.Wrap(services.ErrNotFound, "verify", "stat", "", err)
	}
	if same {
		return report, services.Wrap(services.ErrValidation, "verify", "compare",
			"original and converted paths refer to the same file", nil)
	}

	originalHash, err := fileutil.PrefixHash(originalPath, prefixHashLimit)
	if err != nil {
		return report, services.Wrap(services.ErrNotFound, "verify", "hash original", originalPath, err)
	}
	convertedHash, err := fileutil.PrefixHash(convertedPath, prefixHashLimit)
	if err != nil {
		return report, services.Wrap(services.ErrNotFound, "verify", "hash converted", convertedPath, err)
	}
	if bytes.Equal(originalHash, convertedHash) {
		return report, services.Wrap(services.ErrValidation, "verify", "compare",
			"files are byte-identical, no conversion took place", nil)
	}

	originalResult, originalErr := inspect(ctx, v.ffprobeBinary, originalPath)
	if originalErr == nil {
		report.Original = originalResult.Audio()
	}
	convertedResult, convertedErr := inspect(ctx, v.ffprobeBinary, convertedPath)
	if convertedErr == nil {
		report.Converted = convertedResult.Audio()
	}

	// Some encoders omit the container duration; the cheap single-field
	// probe recovers it before the duration check gives up.
	if report.Original.DurationSeconds <= 0 {
		if dur, err := probeDuration(ctx, v.ffprobeBinary, originalPath); err == nil {
			report.Original.DurationSeconds = dur
		}
	}
	if report.Converted.DurationSeconds <= 0 {
		if dur, err := probeDuration(ctx, v.ffprobeBinary, convertedPath); err == nil {
			report.Converted.DurationSeconds = dur
		}
	}

	report.Checks = append(report.Checks, v.validityCheck(convertedResult, convertedErr))
	report.Checks = append(report.Checks, v.durationCheck(&report))
	report.Checks = append(report.Checks, v.sampleRateCheck(report))
	if warning, ok := sizeRatioWarning(report); ok {
		report.Warnings = append(report.Warnings, warning)
	}

	v.logger.Info("verification finished",
		logging.String("converted", convertedPath),
		logging.Bool("passed", report.Passed()),
		logging.Float64("duration_ratio", report.DurationRatio),
	)
	return report, nil
}

func (v *Verifier) validityCheck(result ffprobe.Result, err error) Check {
	check := Check{Name: "File Validity", Hard: true}
	if err != nil {
		check.Detail = "converted file is not decodable: " + err.Error()
		return check
	}
	if result.AudioStreamCount() == 0 {
		check.Detail = "converted file carries no audio stream"
		return check
	}
	check.Passed = true
	check.Detail = fmt.Sprintf("decodable %s stream", result.Audio().CodecName)
	return check
}

func (v *Verifier) durationCheck(report *Report) Check {
	check := Check{Name: "Duration Match", Hard: true}
	if report.Original.DurationSeconds <= 0 || report.Converted.DurationSeconds <= 0 {
		check.Detail = "could not determine duration"
		return check
	}
	report.DurationRatio = report.Converted.DurationSeconds / report.Original.DurationSeconds
	check.Detail = fmt.Sprintf("ratio %.6f (tolerance ±%.2f)", report.DurationRatio, tuning.DurationTolerance)
	check.Passed = math.Abs(report.DurationRatio-1.0) < tuning.DurationTolerance
	return check
}

func (v *Verifier) sampleRateCheck(report Report) Check {
	check := Check{Name: "Sample Rate", Hard: true}
	if report.Original.SampleRateHz <= 0 || report.Converted.SampleRateHz <= 0 {
		check.Detail = "could not determine sample rate"
		return check
	}
	check.Detail = fmt.Sprintf("%d Hz vs %d Hz", report.Converted.SampleRateHz, report.Original.SampleRateHz)
	check.Passed = report.Converted.SampleRateHz == report.Original.SampleRateHz
	return check
}

func sizeRatioWarning(report Report) (string, bool) {
	if report.Original.SizeBytes <= 0 || report.Converted.SizeBytes <= 0 {
		return "", false
	}
	ratio := float64(report.Converted.SizeBytes) / float64(report.Original.SizeBytes)
	if ratio >= sizeRatioMin && ratio <= sizeRatioMax {
		return "", false
	}
	return fmt.Sprintf("size ratio %.2f outside [%.1f, %.1f]", ratio, sizeRatioMin, sizeRatioMax), true
}
