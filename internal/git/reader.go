package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGitReader reads commit history in-process with go-git.
// The repository is opened on the first fetch.
type GoGitReader struct {
	repo   *gogit.Repository
	opts   ReadOptions
	filter *pathFilter
}

// NewGoGitReader creates a go-git backed reader for opts.RepoPath.
func NewGoGitReader(opts ReadOptions) (*GoGitReader, error) {
	filter, err := newPathFilter(opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}
	return &GoGitReader{opts: opts, filter: filter}, nil
}

func (r *GoGitReader) open() error {
	if r.repo != nil {
		return nil
	}
	repo, err := gogit.PlainOpenWithOptions(r.opts.RepoPath, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return newExtractionError("open repository", err)
	}
	r.repo = repo
	return nil
}

// NewHistoryReader creates a reader for the backend selected in opts.
func NewHistoryReader(opts ReadOptions) (HistoryFetcher, error) {
	switch opts.Backend {
	case BackendGoGit:
		return NewGoGitReader(opts)
	case BackendGitCLI, "":
		return NewCLIReader(opts)
	default:
		return nil, fmt.Errorf("unknown history backend %q", opts.Backend)
	}
}

// FetchCommitHistory walks history from the branch tip (or HEAD) and
// returns commits oldest first. Merge commits carry no line counts, which
// matches what git log --numstat prints for them.
func (r *GoGitReader) FetchCommitHistory(ctx context.Context) ([]Commit, error) {
	if err := r.open(); err != nil {
		return nil, err
	}

	from, err := r.resolveStart()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) && r.usesHead() {
			// Repository without commits.
			return nil, nil
		}
		return nil, newExtractionError("resolve revision", err)
	}

	cIter, err := r.repo.Log(&gogit.LogOptions{
		From:  from,
		Order: gogit.LogOrderCommitterTime,
		Since: r.opts.Since,
		Until: r.opts.Until,
	})
	if err != nil {
		return nil, newExtractionError("git log", err)
	}
	defer cIter.Close()

	var newestFirst []Commit
	err = cIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		commit := Commit{SHA: c.Hash.String(), When: c.Committer.When}
		if c.NumParents() <= 1 {
			stats, err := c.StatsContext(ctx)
			if err != nil {
				return fmt.Errorf("stats for %s: %w", c.Hash, err)
			}
			for _, st := range stats {
				commit.addFile(FileStat{Path: st.Name, Added: st.Addition, Deleted: st.Deletion})
			}
		}

		filtered, err := r.filter.apply(commit)
		if err != nil {
			return err
		}
		newestFirst = append(newestFirst, filtered)
		return nil
	})
	if err != nil {
		return nil, newExtractionError("git log", err)
	}

	reverse(newestFirst)
	return newestFirst, nil
}

func (r *GoGitReader) usesHead() bool {
	rev := strings.TrimSpace(r.opts.Branch)
	return rev == "" || strings.EqualFold(rev, "HEAD")
}

func (r *GoGitReader) resolveStart() (plumbing.Hash, error) {
	if r.usesHead() {
		ref, err := r.repo.Head()
		if err != nil {
			return plumbing.ZeroHash, err
		}
		return ref.Hash(), nil
	}
	hash, err := r.repo.ResolveRevision(plumbing.Revision(strings.TrimSpace(r.opts.Branch)))
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return *hash, nil
}

// reverse reverses a slice of commits in place.
func reverse(commits []Commit) {
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}
}
