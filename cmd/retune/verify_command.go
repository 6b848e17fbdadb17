package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"retune/internal/config"
)

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <original.mp3> <converted.mp3>",
		Short: "Verify a converted file against its original",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			converted, err := config.ExpandPath(strings.TrimSpace(args[1]))
			if err != nil {
				return err
			}

			verifier, err := buildVerifier(cmd.Context(), ctx)
			if err != nil {
				return err
			}

			report, err := verifier.Verify(cmd.Context(), original, converted)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintln(out, renderStatusLine("Original", statusInfo, original, colorize))
			fmt.Fprintln(out, renderStatusLine("Converted", statusInfo, converted, colorize))
			renderVerificationReport(out, report, colorize)
			if !report.Passed() {
				return errors.New("verification failed")
			}
			return nil
		},
	}
}
