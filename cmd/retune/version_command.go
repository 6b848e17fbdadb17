package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"retune/internal/tuning"
)

// version is stamped by the linker on release builds.
var version = "dev"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the retune version",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved := version
			if resolved == "dev" {
				if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
					resolved = info.Main.Version
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "retune %s\n", resolved)
			fmt.Fprintf(out, "pitch ratio %s (%s)\n", tuning.FormatRatio(tuning.PitchRatio), tuning.NoteShiftDescription)
			return nil
		},
	}
}
