package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// CIWriter writes estimate reports as NDJSON (one JSON object per line) for CI pipelines.
type CIWriter struct{}

// CISummary is the first line of CI output, containing aggregate statistics.
type CISummary struct {
	Type          string  `json:"type"`
	TotalCommits  int     `json:"totalCommits"`
	TotalSessions int     `json:"totalSessions"`
	TotalMinutes  float64 `json:"totalMinutes"`
	TotalHours    float64 `json:"totalHours"`
}

// CISessionEntry represents a single session in CI output.
type CISessionEntry struct {
	Type    string  `json:"type"`
	Index   int     `json:"index"`
	Commits int     `json:"commits"`
	Start   string  `json:"start"`
	Minutes float64 `json:"minutes"`
}

// Write outputs the estimate report as NDJSON.
func (w *CIWriter) Write(report *EstimateReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	summary := CISummary{
		Type:          "summary",
		TotalCommits:  report.CommitCount,
		TotalSessions: report.SessionCount(),
		TotalMinutes:  report.Result.TotalMinutes,
		TotalHours:    report.Result.Hours(),
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	for _, s := range limitTop(report.Result.Sessions, options.Top) {
		entry := CISessionEntry{
			Type:    "session",
			Index:   s.Index,
			Commits: s.CommitCount,
			Start:   s.Start.Format(time.RFC3339),
			Minutes: s.Minutes,
		}
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
	}

	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
