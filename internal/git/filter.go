package git

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// pathFilter applies include/exclude glob patterns to file paths.
type pathFilter struct {
	include []string
	exclude []string
	cache   map[string]bool
}

func newPathFilter(include, exclude []string) (*pathFilter, error) {
	for _, p := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	return &pathFilter{
		include: include,
		exclude: exclude,
		cache:   make(map[string]bool),
	}, nil
}

// empty reports whether the filter accepts every path.
func (f *pathFilter) empty() bool {
	return len(f.include) == 0 && len(f.exclude) == 0
}

// matches checks if a path matches the include/exclude filters.
func (f *pathFilter) matches(path string) (bool, error) {
	if f.empty() {
		return true, nil
	}
	if v, ok := f.cache[path]; ok {
		return v, nil
	}

	// Normalize path separators
	normalized := strings.ReplaceAll(path, "\\", "/")

	result, err := f.evaluate(normalized)
	if err != nil {
		return false, err
	}
	f.cache[path] = result
	return result, nil
}

func (f *pathFilter) evaluate(path string) (bool, error) {
	// Check exclude patterns first
	for _, pattern := range f.exclude {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("match exclude %q: %w", pattern, err)
		}
		if matched {
			return false, nil
		}
	}

	if len(f.include) == 0 {
		return true, nil
	}

	for _, pattern := range f.include {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("match include %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}

	return false, nil
}

// apply returns a copy of c holding only the file stats that pass the
// filter, with LinesChanged recomputed.
func (f *pathFilter) apply(c Commit) (Commit, error) {
	if f.empty() {
		return c, nil
	}
	out := Commit{SHA: c.SHA, When: c.When}
	for _, fs := range c.Files {
		ok, err := f.matches(fs.Path)
		if err != nil {
			return Commit{}, err
		}
		if ok {
			out.addFile(fs)
		}
	}
	return out, nil
}
