package git

import (
	"testing"
	"time"
)

func TestNewPathFilter_InvalidPatternsReturnError(t *testing.T) {
	t.Run("invalid exclude pattern", func(t *testing.T) {
		if _, err := newPathFilter(nil, []string{"["}); err == nil {
			t.Fatal("expected error for invalid exclude glob, got nil")
		}
	})

	t.Run("invalid include pattern", func(t *testing.T) {
		if _, err := newPathFilter([]string{"["}, nil); err == nil {
			t.Fatal("expected error for invalid include glob, got nil")
		}
	})
}

func TestPathFilter_matches(t *testing.T) {
	tests := []struct {
		name     string
		include  []string
		exclude  []string
		path     string
		expected bool
	}{
		{name: "No filters", path: "a.go", expected: true},
		{name: "Excluded vendor", exclude: []string{"vendor/**"}, path: "vendor/x/y.go", expected: false},
		{name: "Not excluded", exclude: []string{"vendor/**"}, path: "src/y.go", expected: true},
		{name: "Included go", include: []string{"**/*.go"}, path: "src/y.go", expected: true},
		{name: "Not included", include: []string{"**/*.go"}, path: "README.md", expected: false},
		{name: "Exclude wins", include: []string{"**/*.go"}, exclude: []string{"gen/**"}, path: "gen/a.go", expected: false},
		{name: "Backslash normalized", include: []string{"src/*.go"}, path: "src\\a.go", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := newPathFilter(tt.include, tt.exclude)
			if err != nil {
				t.Fatalf("newPathFilter: %v", err)
			}
			got, err := f.matches(tt.path)
			if err != nil {
				t.Fatalf("matches: %v", err)
			}
			if got != tt.expected {
				t.Errorf("matches(%q) = %v, expected %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestPathFilter_apply_KeepsCommit(t *testing.T) {
	f, err := newPathFilter(nil, []string{"docs/**"})
	if err != nil {
		t.Fatalf("newPathFilter: %v", err)
	}

	when := time.Unix(1000, 0)
	c := Commit{SHA: "abc", When: when}
	c.addFile(FileStat{Path: "docs/guide.md", Added: 100})
	c.addFile(FileStat{Path: "main.go", Added: 3, Deleted: 1})

	got, err := f.apply(c)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.SHA != "abc" || !got.When.Equal(when) {
		t.Errorf("apply changed identity: %#v", got)
	}
	if got.LinesChanged != 4 {
		t.Errorf("LinesChanged = %d, expected 4", got.LinesChanged)
	}

	// Everything filtered: the commit survives with zero lines.
	all, err := newPathFilter([]string{"*.rs"}, nil)
	if err != nil {
		t.Fatalf("newPathFilter: %v", err)
	}
	got, err = all.apply(c)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.LinesChanged != 0 || got.SHA != "abc" {
		t.Errorf("apply(all filtered) = %#v, expected zero-line commit abc", got)
	}
}
