package batch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"retune/internal/convert"
	"retune/internal/logging"
	"retune/internal/services"
	"retune/internal/tuning"
)

const (
	// DefaultOutputDirName is the subdirectory created under the input
	// directory when no explicit output directory is given.
	DefaultOutputDirName = "432hz"

	// DefaultWorkers bounds concurrent ffmpeg processes.
	DefaultWorkers = 4

	lockFileName = ".retune.lock"
	audioExt     = ".mp3"
)

// EventKind discriminates batch progress events.
type EventKind string

const (
	EventStarted   EventKind = "started"
	EventConverted EventKind = "converted"
	EventSkipped   EventKind = "skipped"
	EventFailed    EventKind = "failed"
)

// Event is one progress notification emitted while a batch runs.
type Event struct {
	Kind       EventKind
	InputPath  string
	OutputPath string
	Strategy   tuning.Strategy
	FellBack   bool
	Err        error
	Index      int
	Total      int
}

// ProgressFunc receives events as workers report them. Calls are serialized.
type ProgressFunc func(Event)

// Options configures one batch run.
type Options struct {
	InputDir  string
	OutputDir string
	Workers   int
	Selected  tuning.Strategy
	Progress  ProgressFunc
}

// Summary totals one finished batch.
type Summary struct {
	OutputDir  string
	Candidates int
	Converted  int
	Skipped    int
	Failed     int
}

// FileConverter retunes a single file. *convert.Converter satisfies it.
type FileConverter interface {
	Convert(ctx context.Context, req convert.Request) (convert.Result, error)
}

// Runner walks a directory of MP3 files and retunes each one through a
// bounded worker pool. Re-running over the same directory skips files whose
// output already exists, so interrupted batches resume where they stopped.
type Runner struct {
	converter FileConverter
	logger    *slog.Logger
}

// NewRunner wires a batch runner around a file converter.
func NewRunner(converter FileConverter, logger *slog.Logger) (*Runner, error) {
	if converter == nil {
		return nil, errors.New("file converter required")
	}
	return &Runner{
		converter: converter,
		logger:    logging.NewComponentLogger(logger, "batch"),
	}, nil
}

// Run converts every candidate under opts.InputDir. A single failed file
// never aborts the batch; the summary carries the failure count instead.
func (r *Runner) Run(ctx context.Context, opts Options) (Summary, error) {
	summary := Summary{}

	info, err := os.Stat(opts.InputDir)
	if err != nil {
		return summary, services.Wrap(services.ErrNotFound, "batch", "stat input dir", opts.InputDir, err)
	}
	if !info.IsDir() {
		return summary, services.Wrap(services.ErrValidation, "batch", "stat input dir", opts.InputDir+" is not a directory", nil)
	}

	outputDir := strings.TrimSpace(opts.OutputDir)
	if outputDir == "" {
		outputDir = filepath.Join(opts.InputDir, DefaultOutputDirName)
	}
	summary.OutputDir = outputDir

	candidates, err := enumerate(opts.InputDir)
	if err != nil {
		return summary, err
	}
	summary.Candidates = len(candidates)
	if len(candidates) == 0 {
		r.logger.Warn("no candidate files found", logging.String("input_dir", opts.InputDir))
		return summary, nil
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return summary, services.Wrap(services.ErrConfiguration, "batch", "create output dir", outputDir, err)
	}

	lock := flock.New(filepath.Join(outputDir, lockFileName))
	acquired, err := lock.TryLock()
	if err != nil {
		return summary, services.Wrap(services.ErrConfiguration, "batch", "acquire lock", outputDir, err)
	}
	if !acquired {
		return summary, services.Wrap(services.ErrValidation, "batch", "acquire lock",
			"another batch is already writing to "+outputDir, nil)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			r.logger.Warn("failed to release batch lock", logging.Error(unlockErr))
		}
	}()

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}

	r.logger.Info("batch starting",
		logging.String("input_dir", opts.InputDir),
		logging.String("output_dir", outputDir),
		logging.Int("candidates", len(candidates)),
		logging.Int("workers", workers),
	)

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		jobs  = make(chan job)
		total = len(candidates)
	)
	emit := func(Event) {}
	if opts.Progress != nil {
		emit = func(ev Event) {
			mu.Lock()
			defer mu.Unlock()
			opts.Progress(ev)
		}
	}

	record := func(update func(*Summary)) {
		mu.Lock()
		defer mu.Unlock()
		update(&summary)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				r.process(ctx, j, opts.Selected, total, emit, record)
			}
		}()
	}

	for i, input := range candidates {
		if ctx.Err() != nil {
			break
		}
		jobs <- job{index: i + 1, input: input, output: convert.OutputNameIn(outputDir, input)}
	}
	close(jobs)
	wg.Wait()

	if ctx.Err() != nil {
		return summary, services.Wrap(services.ErrTimeout, "batch", "run", "batch canceled", ctx.Err())
	}

	r.logger.Info("batch finished",
		logging.Int("converted", summary.Converted),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
	)
	return summary, nil
}

type job struct {
	index  int
	input  string
	output string
}

func (r *Runner) process(ctx context.Context, j job, selected tuning.Strategy, total int, emit ProgressFunc, record func(func(*Summary))) {
	jobID := uuid.NewString()
	logger := r.logger.With(logging.String(logging.FieldJobID, jobID))

	if _, err := os.Stat(j.output); err == nil {
		logger.Info("output exists, skipping", logging.String("input", j.input))
		record(func(s *Summary) { s.Skipped++ })
		emit(Event{Kind: EventSkipped, InputPath: j.input, OutputPath: j.output, Index: j.index, Total: total})
		return
	}

	emit(Event{Kind: EventStarted, InputPath: j.input, OutputPath: j.output, Index: j.index, Total: total})

	result, err := r.converter.Convert(ctx, convert.Request{
		InputPath:  j.input,
		OutputPath: j.output,
		Selected:   selected,
		JobID:      jobID,
	})
	if err != nil {
		logger.Error("conversion failed", logging.String("input", j.input), logging.Error(err))
		record(func(s *Summary) { s.Failed++ })
		emit(Event{Kind: EventFailed, InputPath: j.input, OutputPath: j.output, Err: err, Index: j.index, Total: total})
		return
	}

	record(func(s *Summary) { s.Converted++ })
	emit(Event{
		Kind:       EventConverted,
		InputPath:  j.input,
		OutputPath: result.OutputPath,
		Strategy:   result.StrategyUsed,
		FellBack:   result.FellBack(),
		Index:      j.index,
		Total:      total,
	})
}

// enumerate lists the MP3 files directly under dir in name order, excluding
// files that already carry the output suffix.
func enumerate(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "batch", "read input dir", dir, err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), audioExt) {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if strings.HasSuffix(stem, convert.OutputSuffix) {
			continue
		}
		candidates = append(candidates, filepath.Join(dir, name))
	}
	sort.Strings(candidates)
	return candidates, nil
}
