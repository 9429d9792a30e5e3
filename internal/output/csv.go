package output

import (
	"encoding/csv"
	"fmt"
)

// CSVWriter writes one row per session.
type CSVWriter struct{}

// Write outputs the estimate report as CSV.
func (w *CSVWriter) Write(report *EstimateReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	writer := csv.NewWriter(out)

	headers := []string{"Session", "Commits", "Start", "End", "LinesChanged",
		"SpanMinutes", "PreCommitMinutes", "Minutes"}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, s := range limitTop(report.Result.Sessions, options.Top) {
		row := []string{
			fmt.Sprintf("%d", s.Index),
			fmt.Sprintf("%d", s.CommitCount),
			s.Start.Format(reportDateTimeLayout),
			s.End.Format(reportDateTimeLayout),
			fmt.Sprintf("%d", s.LinesChanged),
			fmt.Sprintf("%.6f", s.SpanMinutes),
			fmt.Sprintf("%.6f", s.PreCommitMinutes),
			fmt.Sprintf("%.6f", s.Minutes),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
