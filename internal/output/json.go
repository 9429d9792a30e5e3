package output

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/masmgr/codetime-go/config"
)

// JSONWriter writes estimate reports as JSON.
type JSONWriter struct{}

// JSONReport is the JSON output structure for an estimate.
type JSONReport struct {
	RepoPath      string        `json:"repo"`
	Branch        string        `json:"branch,omitempty"`
	Since         *string       `json:"since,omitempty"`
	Until         string        `json:"until"`
	GeneratedAt   string        `json:"generatedAt"`
	TotalCommits  int           `json:"totalCommits"`
	TotalSessions int           `json:"totalSessions"`
	TotalMinutes  float64       `json:"totalMinutes"`
	TotalHours    float64       `json:"totalHours"`
	Parameters    config.Config `json:"parameters"`
	Sessions      []JSONSession `json:"sessions"`
}

// JSONSession is the JSON output structure for a single session.
type JSONSession struct {
	Index            int     `json:"index"`
	Commits          int     `json:"commits"`
	Start            string  `json:"start"`
	End              string  `json:"end"`
	LinesChanged     int     `json:"linesChanged"`
	SpanMinutes      float64 `json:"spanMinutes"`
	PreCommitMinutes float64 `json:"preCommitMinutes"`
	Minutes          float64 `json:"minutes"`
}

// Write outputs the estimate report as JSON.
func (w *JSONWriter) Write(report *EstimateReport, options OutputOptions) error {
	sessions := limitTop(report.Result.Sessions, options.Top)

	jsonSessions := make([]JSONSession, len(sessions))
	for i, s := range sessions {
		jsonSessions[i] = JSONSession{
			Index:            s.Index,
			Commits:          s.CommitCount,
			Start:            s.Start.Format(time.RFC3339),
			End:              s.End.Format(time.RFC3339),
			LinesChanged:     s.LinesChanged,
			SpanMinutes:      s.SpanMinutes,
			PreCommitMinutes: s.PreCommitMinutes,
			Minutes:          s.Minutes,
		}
	}

	jsonReport := JSONReport{
		RepoPath:      report.RepoPath,
		Branch:        report.Branch,
		Since:         formatSinceDate(report.Since),
		Until:         report.Until.Format(reportDateLayout),
		GeneratedAt:   report.GeneratedAt.Format(time.RFC3339),
		TotalCommits:  report.CommitCount,
		TotalSessions: report.SessionCount(),
		TotalMinutes:  report.Result.TotalMinutes,
		TotalHours:    report.Result.Hours(),
		Parameters:    report.Parameters,
		Sessions:      jsonSessions,
	}

	return writeJSON(jsonReport, options)
}

func writeJSON(data interface{}, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
