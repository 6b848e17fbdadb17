package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"retune/internal/services"
	"retune/internal/tuning"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (stderr string, err error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Settings carries the encode parameters shared by both strategies.
type Settings struct {
	// FormantPreservation toggles rubberband's formant flag.
	FormantPreservation bool
	// SourceSampleRate parameterizes the asetrate fallback graph.
	SourceSampleRate int
	// TimeoutSeconds bounds a single conversion; 0 disables the deadline.
	TimeoutSeconds int
}

// Client wraps ffmpeg CLI interactions for retuning conversions.
type Client struct {
	binary   string
	settings Settings
	exec     Executor
}

// diagnosticExcerptLimit caps how much of ffmpeg's stderr survives into
// error messages and results.
const diagnosticExcerptLimit = 200

// New constructs an ffmpeg client.
func New(binary string, settings Settings, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	if settings.SourceSampleRate <= 0 {
		settings.SourceSampleRate = 44100
	}
	client := &Client{
		binary:   binary,
		settings: settings,
		exec:     commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// FilterGraph renders the -af argument for the given strategy.
func (c *Client) FilterGraph(strategy tuning.Strategy) string {
	switch strategy {
	case tuning.StrategyHighQuality:
		graph := fmt.Sprintf("rubberband=pitch=%s", tuning.FormatRatio(tuning.PitchRatio))
		if c.settings.FormantPreservation {
			graph += ":formant=preserved"
		}
		return graph
	default:
		rate := c.settings.SourceSampleRate
		return fmt.Sprintf(
			"asetrate=%d*%s,aresample=%d:resampler=soxr:precision=28:cutoff=1:dither_method=triangular,atempo=%s",
			rate,
			tuning.FormatRatio(tuning.PitchRatio),
			rate,
			tuning.FormatRatio(tuning.TempoCompensation),
		)
	}
}

// Convert runs one strategy for one input/output pair. A failed attempt
// removes any partially written output so a later skip-existing scan cannot
// mistake it for a finished conversion.
func (c *Client) Convert(ctx context.Context, strategy tuning.Strategy, inputPath, outputPath string) error {
	if strings.TrimSpace(inputPath) == "" {
		return services.Wrap(services.ErrConfiguration, "ffmpeg", "convert", "input path required", nil)
	}
	if strings.TrimSpace(outputPath) == "" {
		return services.Wrap(services.ErrConfiguration, "ffmpeg", "convert", "output path required", nil)
	}

	runCtx := ctx
	if c.settings.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(c.settings.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputPath,
		"-af", c.FilterGraph(strategy),
		"-acodec", "libmp3lame",
		"-q:a", "0",
		outputPath,
	}

	stderr, err := c.exec.Run(runCtx, c.binary, args)
	if err != nil {
		if removeErr := os.Remove(outputPath); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			stderr = strings.TrimSpace(stderr + "\nremove partial output: " + removeErr.Error())
		}
		excerpt := ExcerptDiagnostics(stderr)
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return services.Wrap(services.ErrTimeout, "ffmpeg", string(strategy), excerpt, err)
		}
		return services.Wrap(services.ErrExternalTool, "ffmpeg", string(strategy), excerpt, err)
	}
	return nil
}

// ExcerptDiagnostics trims a stderr stream to the short excerpt carried in
// results and log lines.
func ExcerptDiagnostics(stderr string) string {
	trimmed := strings.TrimSpace(stderr)
	if len(trimmed) > diagnosticExcerptLimit {
		trimmed = trimmed[:diagnosticExcerptLimit]
	}
	return trimmed
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}
