package estimate

import (
	"math"
	"time"

	"github.com/masmgr/codetime-go/config"
	"github.com/masmgr/codetime-go/internal/session"
)

// Estimator turns sessions into estimated coding minutes.
//
// A session's estimate is the time between its first and last commit plus
// a pre-commit buffer for the work done before the first commit was made:
//
//	minutes = span + firstCommitLines * TimePerLineMinutes * PreCommitLineFactor
type Estimator struct {
	cfg config.EstimateConfig
}

// NewEstimator creates an estimator with the given parameters.
func NewEstimator(cfg config.EstimateConfig) *Estimator {
	return &Estimator{cfg: cfg}
}

// SessionEstimate is the estimate for one session.
type SessionEstimate struct {
	Index            int // 1-based
	CommitCount      int
	Start            time.Time
	End              time.Time
	LinesChanged     int
	SpanMinutes      float64
	PreCommitMinutes float64
	Minutes          float64
}

// Result is the estimate for a whole history.
type Result struct {
	Sessions     []SessionEstimate
	TotalMinutes float64
}

// Hours returns the total estimate in hours.
func (r Result) Hours() float64 {
	return r.TotalMinutes / 60.0
}

// CommitCount returns the number of commits across all sessions.
func (r Result) CommitCount() int {
	n := 0
	for _, s := range r.Sessions {
		n += s.CommitCount
	}
	return n
}

// EstimateSession returns the estimated minutes for a single session.
// An empty session is worth zero.
func (e *Estimator) EstimateSession(s session.Session) float64 {
	span, buffer := e.components(s)
	return span + buffer
}

func (e *Estimator) components(s session.Session) (span, buffer float64) {
	if s.Len() == 0 {
		return 0, 0
	}
	// Skewed committer clocks can put a later commit before an earlier one.
	span = math.Max(s.Span().Minutes(), 0)
	// Only the first commit's lines: work after it is covered by the span.
	buffer = float64(s.First().LinesChanged) * e.cfg.TimePerLineMinutes * e.cfg.PreCommitLineFactor
	return span, buffer
}

// Estimate computes per-session estimates and their sum.
func (e *Estimator) Estimate(sessions []session.Session) Result {
	result := Result{Sessions: make([]SessionEstimate, 0, len(sessions))}

	for i, s := range sessions {
		span, buffer := e.components(s)
		minutes := span + buffer

		result.Sessions = append(result.Sessions, SessionEstimate{
			Index:            i + 1,
			CommitCount:      s.Len(),
			Start:            s.Start(),
			End:              s.End(),
			LinesChanged:     s.LinesChanged(),
			SpanMinutes:      span,
			PreCommitMinutes: buffer,
			Minutes:          minutes,
		})
		result.TotalMinutes += minutes
	}

	return result
}
