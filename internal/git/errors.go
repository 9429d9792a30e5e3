package git

import "strings"

// ExtractionError reports that history could not be read from the
// repository (not a repository, git missing, permission denied, ...).
type ExtractionError struct {
	Op       string   // e.g. "git log", "open repository"
	Args     []string // git arguments, empty for the go-git backend
	ExitCode int      // git exit status, 1 when the failure had none
	Stderr   string
	Err      error
}

func (e *ExtractionError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Op)
	sb.WriteString(" failed")
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	if e.Stderr != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Stderr)
	}
	return sb.String()
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func newExtractionError(op string, err error) *ExtractionError {
	return &ExtractionError{Op: op, ExitCode: 1, Err: err}
}

