package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/masmgr/codetime-go/config"
	"github.com/masmgr/codetime-go/internal/estimate"
	"github.com/masmgr/codetime-go/internal/git"
	"github.com/masmgr/codetime-go/internal/output"
	"github.com/masmgr/codetime-go/internal/session"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// EstimateCmd returns the estimate command.
func EstimateCmd() *cli.Command {
	return &cli.Command{
		Name:    "estimate",
		Aliases: []string{"e"},
		Usage:   "Group commits into sessions and estimate coding time",
		Flags:   estimateFlags(),
		Action:  estimateAction,
	}
}

// estimateRun holds everything one estimate needs besides the history itself.
type estimateRun struct {
	Config   *config.Config
	RepoPath string
	Branch   string
	Since    *time.Time
	Until    time.Time
	Output   output.OutputOptions
}

func estimateAction(c *cli.Context) error {
	configureLogging(c.Bool("verbose"))

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	since, err := parseDateFlag(c.String("since"))
	if err != nil {
		return fmt.Errorf("invalid since date: %w", err)
	}
	until, err := parseDateFlag(c.String("until"))
	if err != nil {
		return fmt.Errorf("invalid until date: %w", err)
	}
	untilTime := time.Now()
	if until != nil {
		untilTime = *until
	}

	backend, err := parseBackendFlag(c.String("backend"))
	if err != nil {
		return err
	}

	run := estimateRun{
		Config:   cfg,
		RepoPath: c.String("repo"),
		Branch:   c.String("branch"),
		Since:    since,
		Until:    untilTime,
		Output: output.OutputOptions{
			Format:     getOutputFormat(c.String("format")),
			Top:        c.Int("top"),
			OutputPath: c.String("output"),
		},
	}

	reader, err := git.NewHistoryReader(git.ReadOptions{
		RepoPath: run.RepoPath,
		Branch:   run.Branch,
		Since:    since,
		Until:    until,
		Include:  cfg.Filters.Include,
		Exclude:  cfg.Filters.Exclude,
		Backend:  backend,
	})
	if err != nil {
		return err
	}

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return runEstimate(ctx, reader, run)
}

// runEstimate reads history, groups it into sessions and writes the report.
// Nothing but the progress line is printed unless the whole pipeline succeeds.
func runEstimate(ctx context.Context, reader git.HistoryFetcher, run estimateRun) error {
	start := time.Now()
	stdout := run.Output.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	log := logrus.WithFields(logrus.Fields{"repo": run.RepoPath, "branch": run.Branch})

	progress(stdout, run.Output, "Gathering commit data...")
	commits, err := reader.FetchCommitHistory(ctx)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	log.WithField("commits", len(commits)).Debug("history read")

	if len(commits) == 0 {
		fmt.Fprintln(stdout, "No commit data found.")
		return nil
	}
	warnIfFilteredOut(log, commits, run.Config.Filters)

	grouper := session.NewGrouper(run.Config.Session.MaxGap())
	sessions := grouper.Group(commits)
	log.WithFields(logrus.Fields{"sessions": len(sessions), "maxGap": grouper.MaxGap()}).Debug("commits grouped")

	result := estimate.NewEstimator(run.Config.Estimate).Estimate(sessions)

	report := &output.EstimateReport{
		RepoPath:    run.RepoPath,
		Branch:      run.Branch,
		Since:       run.Since,
		Until:       run.Until,
		GeneratedAt: time.Now(),
		CommitCount: len(commits),
		Parameters:  *run.Config,
		Result:      result,
	}

	opts := run.Output
	opts.Stdout = stdout
	if err := output.NewReportWriter(opts.Format).Write(report, opts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	log.WithField("elapsed", time.Since(start)).Debug("completed")
	return nil
}

// progress prints a status line on stdout for the console report and logs
// it otherwise, so machine-readable formats stay clean.
func progress(stdout io.Writer, opts output.OutputOptions, msg string) {
	if opts.Format == output.FormatConsole || opts.Format == "" {
		fmt.Fprintln(stdout, msg)
		return
	}
	logrus.Info(msg)
}

func warnIfFilteredOut(log *logrus.Entry, commits []git.Commit, filters config.FilterConfig) {
	if len(filters.Include) == 0 && len(filters.Exclude) == 0 {
		return
	}
	for _, c := range commits {
		if c.LinesChanged > 0 {
			return
		}
	}
	log.Warn("path filters excluded every changed line; estimate is span-only")
}
