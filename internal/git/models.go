package git

import "time"

// Commit is a single commit found in history, reduced to what the
// estimator needs.
type Commit struct {
	SHA          string
	When         time.Time
	LinesChanged int // Sum of added and deleted lines over all counted files
	Files        []FileStat
}

// FileStat is one numstat entry of a commit.
type FileStat struct {
	Path    string
	Added   int
	Deleted int
	Binary  bool // Line counts not computable (git prints "-")
}

// Churn returns total lines changed (added + deleted).
func (f FileStat) Churn() int {
	return f.Added + f.Deleted
}

// addFile appends a file stat and accumulates its churn.
func (c *Commit) addFile(fs FileStat) {
	c.Files = append(c.Files, fs)
	c.LinesChanged += fs.Churn()
}

// Backend selects how history is read.
type Backend string

const (
	BackendGitCLI Backend = "git"
	BackendGoGit  Backend = "go-git"
)

// ReadOptions configures the history reader.
type ReadOptions struct {
	RepoPath string
	Branch   string
	Since    *time.Time
	Until    *time.Time
	Include  []string // Glob patterns to include
	Exclude  []string // Glob patterns to exclude
	Backend  Backend
}
