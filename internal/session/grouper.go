package session

import (
	"time"

	"github.com/masmgr/codetime-go/internal/git"
)

// DefaultMaxGap is used when a non-positive threshold is given.
const DefaultMaxGap = 90 * time.Minute

// Grouper splits a chronological commit sequence into sessions.
type Grouper struct {
	maxGap time.Duration
}

// NewGrouper creates a grouper with the given inter-commit gap threshold.
func NewGrouper(maxGap time.Duration) *Grouper {
	if maxGap <= 0 {
		maxGap = DefaultMaxGap
	}
	return &Grouper{maxGap: maxGap}
}

// MaxGap returns the threshold in use.
func (g *Grouper) MaxGap() time.Duration {
	return g.maxGap
}

// Group partitions commits into sessions. The gap is measured from the
// immediately preceding commit, not from the session start, and a gap
// equal to the threshold stays in the same session.
//
// Input must already be sorted oldest first; it is not re-sorted.
func (g *Grouper) Group(commits []git.Commit) []Session {
	if len(commits) == 0 {
		return nil
	}

	var sessions []Session
	start := 0
	for i := 1; i < len(commits); i++ {
		if commits[i].When.Sub(commits[i-1].When) > g.maxGap {
			sessions = append(sessions, Session{Commits: commits[start:i:i]})
			start = i
		}
	}

	// The last session is closed unconditionally.
	sessions = append(sessions, Session{Commits: commits[start:len(commits):len(commits)]})
	return sessions
}
