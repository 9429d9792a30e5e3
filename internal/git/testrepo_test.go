package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// testRepo is a throwaway repository built with go-git.
type testRepo struct {
	tb   testing.TB
	dir  string
	repo *gogit.Repository
	wt   *gogit.Worktree
}

func newTestRepo(tb testing.TB) *testRepo {
	tb.Helper()

	dir := tb.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		tb.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		tb.Fatalf("Worktree: %v", err)
	}
	return &testRepo{tb: tb, dir: dir, repo: repo, wt: wt}
}

// write replaces rel with n numbered lines and stages it.
func (r *testRepo) write(rel string, n int, tag string) {
	r.tb.Helper()
	full := filepath.Join(r.dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.tb.Fatalf("MkdirAll: %v", err)
	}
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "%s line %d\n", tag, i)
	}
	if err := os.WriteFile(full, []byte(sb.String()), 0o644); err != nil {
		r.tb.Fatalf("WriteFile: %v", err)
	}
	if _, err := r.wt.Add(rel); err != nil {
		r.tb.Fatalf("Add: %v", err)
	}
}

func (r *testRepo) commit(msg string, when time.Time) string {
	r.tb.Helper()
	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: when}
	hash, err := r.wt.Commit(msg, &gogit.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		r.tb.Fatalf("Commit: %v", err)
	}
	return hash.String()
}

