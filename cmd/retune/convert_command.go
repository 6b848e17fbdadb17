package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"retune/internal/config"
	"retune/internal/convert"
	"retune/internal/tuning"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var noVerify bool

	cmd := &cobra.Command{
		Use:   "convert <input.mp3>",
		Short: "Retune a single MP3 file to 432 Hz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			if !strings.EqualFold(filepath.Ext(input), ".mp3") {
				return errors.New("only .mp3 inputs are supported")
			}

			stack, err := buildConversionStack(cmd.Context(), ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintln(out, renderStatusLine("Input", statusInfo, input, colorize))
			fmt.Fprintln(out, renderStatusLine("Strategy", statusInfo, stack.selected.DisplayName(), colorize))
			fmt.Fprintln(out, renderStatusLine("Pitch ratio", statusInfo, tuning.FormatRatio(tuning.PitchRatio), colorize))

			target := strings.TrimSpace(outputPath)
			if target != "" {
				if target, err = config.ExpandPath(target); err != nil {
					return err
				}
			}

			result, err := stack.converter.Convert(cmd.Context(), convert.Request{
				InputPath:  input,
				OutputPath: target,
				Selected:   stack.selected,
			})
			if err != nil {
				return err
			}

			if result.FellBack() {
				fmt.Fprintln(out, renderStatusLine("Fallback", statusWarn, "high-quality strategy failed, used "+result.StrategyUsed.DisplayName(), colorize))
			}
			fmt.Fprintln(out, renderStatusLine("Converted", statusOK, result.OutputPath, colorize))

			if noVerify {
				return nil
			}

			verifier, err := buildVerifier(cmd.Context(), ctx)
			if err != nil {
				return err
			}
			report, err := verifier.Verify(cmd.Context(), input, result.OutputPath)
			if err != nil {
				return err
			}
			renderVerificationReport(out, report, colorize)
			if !report.Passed() {
				return errors.New("verification failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path (default: input stem with _432hz suffix)")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip post-conversion verification")
	return cmd
}
