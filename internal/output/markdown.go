package output

import (
	"fmt"
	"strings"
)

// MarkdownWriter writes estimate reports as Markdown.
type MarkdownWriter struct{}

// Write outputs the estimate report as Markdown.
func (w *MarkdownWriter) Write(report *EstimateReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Header
	fmt.Fprintln(out, "# Coding Time Estimate")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", escapeMarkdown(report.RepoPath))
	if report.Branch != "" {
		fmt.Fprintf(out, "**Branch:** %s\n\n", escapeMarkdown(report.Branch))
	}
	label, value := dateRangeLabelAndValue(report.Since, report.Until)
	fmt.Fprintf(out, "**%s:** %s\n\n", label, value)
	fmt.Fprintf(out, "**Commits:** %d\n\n", report.CommitCount)
	fmt.Fprintf(out, "**Sessions:** %d\n\n", report.SessionCount())
	fmt.Fprintf(out, "**Total Estimated Coding Time:** ~%.1f hours (%.1f minutes)\n\n",
		report.Result.Hours(), report.Result.TotalMinutes)

	// Table
	fmt.Fprintln(out, "## Sessions")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "| # | Start | End | Commits | Lines | Span (min) | Pre-commit (min) | Estimate (min) |")
	fmt.Fprintln(out, "|---|-------|-----|---------|-------|------------|------------------|----------------|")
	for _, s := range limitTop(report.Result.Sessions, options.Top) {
		fmt.Fprintf(out, "| %d | %s | %s | %d | %d | %.1f | %.1f | %.1f |\n",
			s.Index,
			s.Start.Format(reportDateTimeLayout),
			s.End.Format(reportDateTimeLayout),
			s.CommitCount,
			s.LinesChanged,
			s.SpanMinutes,
			s.PreCommitMinutes,
			s.Minutes)
	}

	p := report.Parameters
	fmt.Fprintln(out)
	_, err = fmt.Fprintf(out, "_Max gap %g min, %g min per line, pre-commit factor %g._\n",
		p.Session.MaxGapMinutes, p.Estimate.TimePerLineMinutes, p.Estimate.PreCommitLineFactor)
	return err
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
