package session

import (
	"time"

	"github.com/masmgr/codetime-go/internal/git"
)

// Session is a run of consecutive commits with no gap above the grouping
// threshold. A session returned by Grouper is never empty.
type Session struct {
	Commits []git.Commit
}

// Len returns the number of commits in the session.
func (s Session) Len() int {
	return len(s.Commits)
}

// First returns the earliest commit.
func (s Session) First() git.Commit {
	return s.Commits[0]
}

// Last returns the latest commit.
func (s Session) Last() git.Commit {
	return s.Commits[len(s.Commits)-1]
}

// Start returns the timestamp of the first commit.
func (s Session) Start() time.Time {
	if len(s.Commits) == 0 {
		return time.Time{}
	}
	return s.First().When
}

// End returns the timestamp of the last commit.
func (s Session) End() time.Time {
	if len(s.Commits) == 0 {
		return time.Time{}
	}
	return s.Last().When
}

// Span returns the time between the first and last commit.
func (s Session) Span() time.Duration {
	if len(s.Commits) == 0 {
		return 0
	}
	return s.End().Sub(s.Start())
}

// LinesChanged returns the total lines changed across all commits.
func (s Session) LinesChanged() int {
	total := 0
	for _, c := range s.Commits {
		total += c.LinesChanged
	}
	return total
}
