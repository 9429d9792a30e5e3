package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/masmgr/codetime-go/config"
	"github.com/masmgr/codetime-go/internal/git"
	"github.com/masmgr/codetime-go/internal/output"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// App creates the CLI application.
// Running it without a subcommand estimates the current repository.
func App() *cli.App {
	return &cli.App{
		Name:    "codetime",
		Usage:   "Estimate coding time from Git commit history",
		Version: "1.0.0",
		Commands: []*cli.Command{
			EstimateCmd(),
		},
		Flags:  estimateFlags(),
		Action: estimateAction,
	}
}

// Flags shared by the root command and the estimate subcommand.
func estimateFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to Git repository",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:    "branch",
			Aliases: []string{"b"},
			Usage:   "Branch or revision to analyze (default: HEAD)",
		},
		&cli.StringFlag{
			Name:  "since",
			Usage: "Only count commits since this date (YYYY-MM-DD)",
		},
		&cli.StringFlag{
			Name:  "until",
			Usage: "Only count commits until this date (YYYY-MM-DD)",
		},
		&cli.Float64Flag{
			Name:  "max-gap",
			Usage: "Minutes between commits that still count as one session",
			Value: config.DefaultMaxGapMinutes,
		},
		&cli.Float64Flag{
			Name:  "time-per-line",
			Usage: "Minutes of work assumed per changed line",
			Value: config.DefaultTimePerLineMinutes,
		},
		&cli.Float64Flag{
			Name:  "pre-commit-factor",
			Usage: "Multiplier for the work assumed before a session's first commit",
			Value: config.DefaultPreCommitLineFactor,
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns of files whose lines count (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns of files whose lines are ignored (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:  "backend",
			Usage: "History backend (git, go-git)",
			Value: string(git.BackendGitCLI),
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ci)",
			Value:   "console",
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Usage:   "Number of sessions to list (0 lists all)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Log diagnostics to stderr",
		},
	}
}

// parseDateFlag parses a date string flag.
func parseDateFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", s)
	}
	return &t, nil
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "json":
		return output.FormatJSON
	case "csv":
		return output.FormatCSV
	case "markdown", "md":
		return output.FormatMarkdown
	case "ci", "ndjson":
		return output.FormatCI
	default:
		return output.FormatConsole
	}
}

// parseBackendFlag parses the history backend flag.
func parseBackendFlag(s string) (git.Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "git", "cli":
		return git.BackendGitCLI, nil
	case "go-git", "gogit":
		return git.BackendGoGit, nil
	default:
		return "", fmt.Errorf("invalid backend %q (expected git or go-git)", s)
	}
}

// loadConfig builds the configuration from defaults and CLI flags.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if c.IsSet("max-gap") {
		cfg.Session.MaxGapMinutes = c.Float64("max-gap")
	}
	if c.IsSet("time-per-line") {
		cfg.Estimate.TimePerLineMinutes = c.Float64("time-per-line")
	}
	if c.IsSet("pre-commit-factor") {
		cfg.Estimate.PreCommitLineFactor = c.Float64("pre-commit-factor")
	}
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	return cfg, nil
}

// configureLogging sends diagnostics to stderr, keeping stdout for the report.
func configureLogging(verbose bool) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}

// exitCode maps an error to the process exit status. A failed git
// invocation passes its own status through.
func exitCode(err error) int {
	var xerr *git.ExtractionError
	if errors.As(err, &xerr) && xerr.ExitCode > 0 {
		return xerr.ExitCode
	}
	return 1
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}
