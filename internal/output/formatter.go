package output

import (
	"io"
	"time"

	"github.com/masmgr/codetime-go/config"
	"github.com/masmgr/codetime-go/internal/estimate"
)

// Compile-time interface conformance checks.
var (
	_ ReportWriter = (*ConsoleWriter)(nil)
	_ ReportWriter = (*JSONWriter)(nil)
	_ ReportWriter = (*CSVWriter)(nil)
	_ ReportWriter = (*MarkdownWriter)(nil)
	_ ReportWriter = (*CIWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Top        int       // Sessions to list; 0 lists all
	OutputPath string    // Empty writes to Stdout
	Stdout     io.Writer // Defaults to os.Stdout
}

// EstimateReport holds the result of a coding time estimate.
type EstimateReport struct {
	RepoPath    string
	Branch      string
	Since       *time.Time
	Until       time.Time
	GeneratedAt time.Time
	CommitCount int
	Parameters  config.Config
	Result      estimate.Result
}

// SessionCount returns the number of sessions in the report.
func (r *EstimateReport) SessionCount() int {
	return len(r.Result.Sessions)
}

// ReportWriter writes estimate reports.
type ReportWriter interface {
	Write(report *EstimateReport, options OutputOptions) error
}

// NewReportWriter creates a report writer for the specified format.
func NewReportWriter(format OutputFormat) ReportWriter {
	switch format {
	case FormatJSON:
		return &JSONWriter{}
	case FormatCSV:
		return &CSVWriter{}
	case FormatMarkdown:
		return &MarkdownWriter{}
	case FormatCI:
		return &CIWriter{}
	default:
		return &ConsoleWriter{}
	}
}
