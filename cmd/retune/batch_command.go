package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"retune/internal/batch"
	"retune/internal/config"
	"retune/internal/tuning"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var workers int

	cmd := &cobra.Command{
		Use:   "batch <input-dir>",
		Short: "Retune every MP3 file in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputDir, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}

			stack, err := buildConversionStack(cmd.Context(), ctx)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			runner, err := batch.NewRunner(stack.converter, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Batch Conversion", colorize) {
				fmt.Fprintln(out, line)
			}
			target := strings.TrimSpace(outputDir)
			if target == "" {
				target = cfg.Paths.OutputDir
			}
			if target != "" {
				if target, err = config.ExpandPath(target); err != nil {
					return err
				}
			}

			poolSize := workers
			if poolSize <= 0 {
				poolSize = cfg.Conversion.Workers
			}

			fmt.Fprintln(out, renderStatusLine("Input", statusInfo, inputDir, colorize))
			fmt.Fprintln(out, renderStatusLine("FFmpeg", statusInfo, stack.capability.FFmpeg.Command, colorize))
			fmt.Fprintln(out, renderStatusLine("Strategy", statusInfo, stack.selected.DisplayName(), colorize))
			fmt.Fprintln(out, renderStatusLine("Pitch ratio", statusInfo, tuning.FormatRatio(tuning.PitchRatio), colorize))
			fmt.Fprintln(out, renderStatusLine("Workers", statusInfo, fmt.Sprintf("%d", poolSize), colorize))

			summary, err := runner.Run(cmd.Context(), batch.Options{
				InputDir:  inputDir,
				OutputDir: target,
				Workers:   poolSize,
				Selected:  stack.selected,
				Progress:  batchProgressPrinter(out, colorize),
			})
			if err != nil {
				return err
			}

			if summary.Candidates == 0 {
				fmt.Fprintln(out, renderStatusLine("Result", statusWarn, "no MP3 files found in "+inputDir, colorize))
				return nil
			}

			for _, line := range renderSectionHeader("Summary", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Output directory", statusInfo, summary.OutputDir, colorize))
			fmt.Fprintln(out, renderStatusLine("Converted", statusOK, fmt.Sprintf("%d of %d", summary.Converted, summary.Candidates), colorize))
			if summary.Skipped > 0 {
				fmt.Fprintln(out, renderStatusLine("Skipped", statusInfo, fmt.Sprintf("%d (output already exists)", summary.Skipped), colorize))
			}
			if summary.Failed > 0 {
				fmt.Fprintln(out, renderStatusLine("Failed", statusError, fmt.Sprintf("%d", summary.Failed), colorize))
				return fmt.Errorf("%d of %d conversions failed", summary.Failed, summary.Candidates)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Output directory (default: <input-dir>/432hz)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent conversions (default: config value)")
	return cmd
}

// batchProgressPrinter renders one line per finished file. Events arrive
// serialized, so plain writes are safe.
func batchProgressPrinter(out io.Writer, colorize bool) batch.ProgressFunc {
	return func(ev batch.Event) {
		name := filepath.Base(ev.InputPath)
		prefix := fmt.Sprintf("[%d/%d] %s", ev.Index, ev.Total, name)
		switch ev.Kind {
		case batch.EventConverted:
			detail := ev.Strategy.DisplayName()
			if ev.FellBack {
				detail += " (fell back)"
			}
			fmt.Fprintln(out, renderStatusLine(prefix, statusOK, detail, colorize))
		case batch.EventSkipped:
			fmt.Fprintln(out, renderStatusLine(prefix, statusInfo, "output exists, skipped", colorize))
		case batch.EventFailed:
			fmt.Fprintln(out, renderStatusLine(prefix, statusError, ev.Err.Error(), colorize))
		}
	}
}
