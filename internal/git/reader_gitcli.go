package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// commitLinePattern matches the pretty header "<epoch> <sha>".
var commitLinePattern = regexp.MustCompile(`^(\d+)\s+([0-9a-f]+)$`)

// CLIReader reads commit history by running the local git binary.
type CLIReader struct {
	opts    ReadOptions
	filter  *pathFilter
	gitPath string
}

// NewCLIReader creates a reader that shells out to git.
func NewCLIReader(opts ReadOptions) (*CLIReader, error) {
	filter, err := newPathFilter(opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}
	return &CLIReader{opts: opts, filter: filter, gitPath: "git"}, nil
}

// FetchCommitHistory runs git log and parses its numstat output.
// Commits are returned oldest first. A repository whose HEAD has no
// commits yet yields no commits and no error.
func (r *CLIReader) FetchCommitHistory(ctx context.Context) ([]Commit, error) {
	out, err := r.run(ctx, "git log", r.logArgs()...)
	if err != nil {
		if r.usesHead() && r.unbornHead(ctx) {
			return nil, nil
		}
		return nil, err
	}

	commits := parseNumstatLog(out)
	return r.applyFilter(commits)
}

// run executes git with args and returns its stdout. Failures carry git's
// exit status and stderr.
func (r *CLIReader) run(ctx context.Context, op string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.gitPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		xerr := &ExtractionError{
			Op:       op,
			Args:     args,
			ExitCode: 1,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			xerr.ExitCode = exitErr.ExitCode()
		} else if errors.Is(err, exec.ErrNotFound) {
			xerr.ExitCode = 127
		}
		return nil, xerr
	}
	return stdout.Bytes(), nil
}

// unbornHead reports whether RepoPath is a repository whose HEAD does not
// point at a commit yet.
func (r *CLIReader) unbornHead(ctx context.Context) bool {
	if _, err := r.run(ctx, "git rev-parse", "-C", r.opts.RepoPath, "rev-parse", "--git-dir"); err != nil {
		return false
	}
	_, err := r.run(ctx, "git rev-parse", "-C", r.opts.RepoPath, "rev-parse", "--verify", "-q", "HEAD")
	var xerr *ExtractionError
	return errors.As(err, &xerr) && xerr.ExitCode == 1
}

func (r *CLIReader) usesHead() bool {
	rev := strings.TrimSpace(r.opts.Branch)
	return rev == "" || strings.EqualFold(rev, "HEAD")
}

func (r *CLIReader) logArgs() []string {
	args := []string{
		"-C", r.opts.RepoPath,
		"log",
		"--no-color",
		"--reverse",
		"--pretty=format:%ct %H",
		"--numstat",
	}

	if r.opts.Since != nil {
		args = append(args, fmt.Sprintf("--since=@%d", r.opts.Since.Unix()))
	}
	if r.opts.Until != nil {
		args = append(args, fmt.Sprintf("--until=@%d", r.opts.Until.Unix()))
	}

	if !r.usesHead() {
		args = append(args, strings.TrimSpace(r.opts.Branch))
	}
	return args
}

func (r *CLIReader) applyFilter(commits []Commit) ([]Commit, error) {
	if r.filter.empty() {
		return commits, nil
	}
	for i := range commits {
		c, err := r.filter.apply(commits[i])
		if err != nil {
			return nil, err
		}
		commits[i] = c
	}
	return commits, nil
}

// parseNumstatLog parses `git log --pretty=format:"%ct %H" --numstat` output.
// A header line starts a new commit; numstat lines following it add their
// counts. Lines that fit neither shape are ignored.
func parseNumstatLog(out []byte) []Commit {
	text := strings.TrimSpace(string(out))
	if text == "" {
		return nil
	}

	commits := make([]Commit, 0, 256)
	current := -1

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")

		if m := commitLinePattern.FindStringSubmatch(line); m != nil {
			epoch, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				continue
			}
			commits = append(commits, Commit{SHA: m[2], When: time.Unix(epoch, 0)})
			current = len(commits) - 1
			continue
		}

		if current < 0 {
			continue
		}
		fs, ok := parseNumstatLine(line)
		if !ok {
			continue
		}
		commits[current].addFile(fs)
	}

	return commits
}

// parseNumstatLine parses "added<TAB>removed<TAB>path". If either count is
// non-numeric (binary files print "-") the file contributes zero.
func parseNumstatLine(line string) (FileStat, bool) {
	parts := strings.Split(strings.TrimSpace(line), "\t")
	if len(parts) != 3 {
		return FileStat{}, false
	}

	added, okA := parseCount(parts[0])
	deleted, okD := parseCount(parts[1])
	if !okA || !okD {
		return FileStat{Path: parts[2], Binary: true}, true
	}

	return FileStat{Path: parts[2], Added: added, Deleted: deleted}, true
}

func parseCount(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
