package main

import (
	"fmt"
	"io"

	"retune/internal/verify"
)

// renderVerificationReport writes the check table and verdict for one report.
func renderVerificationReport(out io.Writer, report verify.Report, colorize bool) {
	rows := make([][]string, 0, len(report.Checks))
	for _, check := range report.Checks {
		verdict := "FAIL"
		if check.Passed {
			verdict = "PASS"
		}
		severity := "hard"
		if !check.Hard {
			severity = "advisory"
		}
		rows = append(rows, []string{check.Name, verdict, severity, check.Detail})
	}
	fmt.Fprintln(out, renderTable([]string{"Check", "Result", "Severity", "Detail"}, rows))

	for _, warning := range report.Warnings {
		fmt.Fprintln(out, renderStatusLine("Warning", statusWarn, warning, colorize))
	}

	if report.Passed() {
		fmt.Fprintln(out, renderStatusLine("Verification", statusOK, "all checks passed", colorize))
	} else {
		fmt.Fprintln(out, renderStatusLine("Verification", statusError, "one or more checks failed", colorize))
	}
	fmt.Fprintln(out, renderStatusLine("Note", statusInfo, report.Note, colorize))
}
