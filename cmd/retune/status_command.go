package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"retune/internal/deps"
	"retune/internal/preflight"
	"retune/internal/tuning"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show toolchain availability and the selected strategy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			capability := ctx.ensureCapability(cmd.Context())

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Toolchain", colorize) {
				fmt.Fprintln(out, line)
			}
			rows := make([][]string, 0, 3)
			for _, status := range []deps.Status{capability.FFmpeg, capability.FFprobe} {
				detail := status.Command
				if !status.Available {
					detail = status.Detail
				}
				rows = append(rows, []string{status.Name, yesNo(status.Available), detail})
			}
			rubberbandDetail := "fallback strategy only"
			if capability.Rubberband {
				rubberbandDetail = "ffmpeg built with rubberband filter"
			}
			rows = append(rows, []string{"Rubberband", yesNo(capability.Rubberband), rubberbandDetail})
			fmt.Fprintln(out, renderTable([]string{"Dependency", "Available", "Detail"}, rows))

			for _, line := range renderSectionHeader("Conversion", colorize) {
				fmt.Fprintln(out, line)
			}
			selected := tuning.Select(capability.Rubberband)
			fmt.Fprintln(out, renderStatusLine("Strategy", statusInfo, selected.DisplayName(), colorize))
			fmt.Fprintln(out, renderStatusLine("Pitch ratio", statusInfo, tuning.FormatRatio(tuning.PitchRatio), colorize))
			fmt.Fprintln(out, renderStatusLine("Tempo factor", statusInfo, tuning.FormatRatio(tuning.TempoCompensation), colorize))
			fmt.Fprintln(out, renderStatusLine("Workers", statusInfo, fmt.Sprintf("%d", cfg.Conversion.Workers), colorize))
			fmt.Fprintln(out, renderStatusLine("Formant preserve", statusInfo, yesNo(cfg.Conversion.FormantPreservation), colorize))

			for _, line := range renderSectionHeader("Directories", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, result := range preflight.RunAll(cfg) {
				kind := statusError
				if result.Passed {
					kind = statusOK
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}
			return nil
		},
	}
}
