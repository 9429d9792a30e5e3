package output

import (
	"fmt"

	"github.com/fatih/color"
)

// ConsoleWriter writes the plain text report.
type ConsoleWriter struct{}

// Write outputs the estimate as lines of text:
//
//	Found 3 commits.
//	Grouped into 2 sessions.
//	Session 1: 2 commits, ~17.7 minutes estimated
//	...
//
//	--- Summary ---
//	Total Estimated Coding Time: ~0.3 hours
func (w *ConsoleWriter) Write(report *EstimateReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	fmt.Fprintf(out, "Found %d commits.\n", report.CommitCount)
	fmt.Fprintf(out, "Grouped into %d sessions.\n", report.SessionCount())

	for _, s := range limitTop(report.Result.Sessions, options.Top) {
		fmt.Fprintf(out, "Session %d: %d commits, ~%.1f minutes estimated\n", s.Index, s.CommitCount, s.Minutes)
	}

	heading := color.New(color.FgGreen, color.Bold)
	if file != nil {
		heading.DisableColor()
	}
	fmt.Fprintln(out)
	heading.Fprintln(out, "--- Summary ---")

	_, err = fmt.Fprintf(out, "Total Estimated Coding Time: ~%.1f hours\n", report.Result.Hours())
	return err
}
