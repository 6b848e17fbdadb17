package convert

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"retune/internal/logging"
	"retune/internal/services"
	"retune/internal/tuning"
)

// OutputSuffix is appended to the input stem when deriving output names.
const OutputSuffix = "_432hz"

// StrategyRunner executes one conversion attempt. *ffmpeg.Client satisfies it.
type StrategyRunner interface {
	Convert(ctx context.Context, strategy tuning.Strategy, inputPath, outputPath string) error
}

// Request describes one file to retune.
type Request struct {
	InputPath  string
	OutputPath string
	// Selected is the strategy the capability probe picked for this run.
	Selected tuning.Strategy
	// JobID correlates log lines for this file within a batch.
	JobID string
}

// Attempt records the outcome of one strategy try.
type Attempt struct {
	Strategy tuning.Strategy
	Err      error
}

// Result reports a finished conversion.
type Result struct {
	InputPath    string
	OutputPath   string
	StrategyUsed tuning.Strategy
	Attempts     []Attempt
	Elapsed      time.Duration
}

// FellBack reports whether the high-quality attempt failed and the fallback
// produced the output instead.
func (r Result) FellBack() bool {
	return len(r.Attempts) > 1 && r.StrategyUsed == tuning.StrategyFallback
}

// Converter runs the ordered strategy attempts for single files.
type Converter struct {
	runner StrategyRunner
	logger *slog.Logger
}

// NewConverter wires a converter around a strategy runner.
func NewConverter(runner StrategyRunner, logger *slog.Logger) (*Converter, error) {
	if runner == nil {
		return nil, errors.New("strategy runner required")
	}
	return &Converter{
		runner: runner,
		logger: logging.NewComponentLogger(logger, "convert"),
	}, nil
}

// Convert retunes one file, trying each strategy in order until one
// succeeds. The input must exist before any ffmpeg process is spawned.
func (c *Converter) Convert(ctx context.Context, req Request) (Result, error) {
	result := Result{
		InputPath:  req.InputPath,
		OutputPath: req.OutputPath,
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		result.OutputPath = OutputName(req.InputPath)
	}

	if _, err := os.Stat(req.InputPath); err != nil {
		return result, services.Wrap(services.ErrNotFound, "convert", "stat input", req.InputPath, err)
	}

	logger := c.logger
	if req.JobID != "" {
		logger = logger.With(logging.String(logging.FieldJobID, req.JobID))
	}

	started := time.Now()
	order := tuning.AttemptOrder(req.Selected)
	for i, strategy := range order {
		if err := ctx.Err(); err != nil {
			return result, services.Wrap(services.ErrTimeout, "convert", "attempt", "conversion canceled", err)
		}

		logger.Info("converting",
			logging.String("input", req.InputPath),
			logging.String("strategy", string(strategy)),
			logging.Int("attempt", i+1),
		)

		err := c.runner.Convert(ctx, strategy, req.InputPath, result.OutputPath)
		result.Attempts = append(result.Attempts, Attempt{Strategy: strategy, Err: err})
		if err == nil {
			result.StrategyUsed = strategy
			result.Elapsed = time.Since(started)
			if result.FellBack() {
				logger.Warn("high-quality strategy failed, fallback succeeded",
					logging.String("input", req.InputPath),
				)
			}
			logger.Info("converted",
				logging.String("output", result.OutputPath),
				logging.String("strategy", string(strategy)),
				logging.Duration("elapsed", result.Elapsed),
			)
			return result, nil
		}

		logger.Warn("strategy failed",
			logging.String("strategy", string(strategy)),
			logging.Error(err),
		)
	}

	result.Elapsed = time.Since(started)
	last := result.Attempts[len(result.Attempts)-1].Err
	return result, services.Wrap(nil, "convert", "all strategies", req.InputPath, last)
}

// OutputName derives the sibling output path: the input stem with the tuning
// suffix appended before the extension.
func OutputName(inputPath string) string {
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(inputPath, ext)
	return stem + OutputSuffix + ext
}

// OutputNameIn derives the output path placed inside dir instead of next to
// the input.
func OutputNameIn(dir, inputPath string) string {
	return filepath.Join(dir, filepath.Base(OutputName(inputPath)))
}
