package git

import "context"

// MockHistoryReader is a test double for the history readers.
// It allows tests to provide predefined commit data without needing a real Git repository.
type MockHistoryReader struct {
	Commits []Commit
	Error   error
	Calls   int
}

// NewMockHistoryReader creates a new MockHistoryReader with the given data.
func NewMockHistoryReader(commits []Commit, err error) *MockHistoryReader {
	return &MockHistoryReader{
		Commits: commits,
		Error:   err,
	}
}

// FetchCommitHistory returns the predefined commits or error.
func (m *MockHistoryReader) FetchCommitHistory(_ context.Context) ([]Commit, error) {
	m.Calls++
	return m.Commits, m.Error
}

// Compile-time interface conformance check.
var _ HistoryFetcher = (*MockHistoryReader)(nil)
