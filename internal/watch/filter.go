package watch

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// isEditorNoise reports hidden, swap and backup files written by editors.
func isEditorNoise(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"),
		strings.HasSuffix(base, ".swp"),
		strings.HasSuffix(base, ".swx"),
		strings.HasSuffix(base, ".tmp"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	}
	return false
}

// filter decides which filesystem events trigger a rebuild.
type filter struct {
	roots    []string
	files    []string
	patterns []string
}

func newFilter(roots, files, patterns []string) *filter {
	f := &filter{}
	for _, r := range roots {
		f.roots = append(f.roots, filepath.Clean(r))
	}
	for _, p := range files {
		f.files = append(f.files, filepath.Clean(p))
	}
	for _, p := range patterns {
		if doublestar.ValidatePattern(p) {
			f.patterns = append(f.patterns, p)
		}
	}
	return f
}

// relevant reports whether a change to path should trigger a rebuild.
func (f *filter) relevant(path string) bool {
	path = filepath.Clean(path)
	for _, file := range f.files {
		if path == file {
			return true
		}
	}
	if isEditorNoise(path) {
		return false
	}
	for _, root := range f.roots {
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		return !f.ignored(filepath.ToSlash(rel))
	}
	return false
}

func (f *filter) ignored(rel string) bool {
	for _, p := range f.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
