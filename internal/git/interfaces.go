package git

import "context"

// HistoryFetcher returns the full commit history of a repository,
// oldest commit first.
// This abstraction allows for easier testing and alternative backends.
type HistoryFetcher interface {
	FetchCommitHistory(ctx context.Context) ([]Commit, error)
}

// Compile-time interface conformance checks.
var (
	_ HistoryFetcher = (*CLIReader)(nil)
	_ HistoryFetcher = (*GoGitReader)(nil)
)
