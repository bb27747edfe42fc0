// Package mounts validates and resolves mount declarations: external directories
// that appear as top-level folders of the pages tree.
package mounts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	ferrors "git.home.luguber.info/inful/sitecontent/internal/foundation/errors"
)

var (
	ErrInvalidSegment    = errors.New("invalid mount segment")
	ErrTargetMissing     = errors.New("mount target does not exist")
	ErrTargetNotDir      = errors.New("mount target is not a directory")
	ErrInsideNodeModules = errors.New("mount target is inside node_modules")
	ErrOverlap           = errors.New("mount target overlaps another tree")
)

// Mount is a validated mount: Segment is the synthetic folder name, Target the
// canonical absolute directory.
type Mount struct {
	Segment string
	Target  string
}

// Resolve validates every declaration against the site root and the pages
// directory. Relative targets resolve against siteRoot. Symlinks are followed before
// any comparison. Mounts come back sorted by segment. The first invalid declaration
// aborts with a fatal config error wrapping one of the package's sentinel errors.
func Resolve(siteRoot, pagesDir string, decls map[string]string) ([]Mount, error) {
	if len(decls) == 0 {
		return nil, nil
	}

	pagesCanon, err := canonical(pagesDir)
	if err != nil {
		return nil, mountError("", pagesDir, fmt.Errorf("resolve pages directory: %w", err))
	}

	segments := make([]string, 0, len(decls))
	for seg := range decls {
		segments = append(segments, seg)
	}
	slices.Sort(segments)

	out := make([]Mount, 0, len(segments))
	for _, seg := range segments {
		target := decls[seg]
		m, err := resolveOne(siteRoot, seg, target)
		if err != nil {
			return nil, mountError(seg, target, err)
		}
		if overlaps(m.Target, pagesCanon) {
			return nil, mountError(seg, target, fmt.Errorf("%w: pages directory %s", ErrOverlap, pagesCanon))
		}
		for _, prev := range out {
			if overlaps(m.Target, prev.Target) {
				return nil, mountError(seg, target, fmt.Errorf("%w: mount %q (%s)", ErrOverlap, prev.Segment, prev.Target))
			}
		}
		out = append(out, m)
	}
	return out, nil
}

// ValidSegment reports whether seg can name a top-level folder.
func ValidSegment(seg string) error {
	switch {
	case seg == "":
		return fmt.Errorf("%w: empty name", ErrInvalidSegment)
	case strings.ContainsAny(seg, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidSegment, seg)
	case strings.HasPrefix(seg, "."), strings.HasPrefix(seg, "_"):
		return fmt.Errorf("%w: %q starts with %q", ErrInvalidSegment, seg, seg[:1])
	}
	return nil
}

func resolveOne(siteRoot, seg, target string) (Mount, error) {
	if err := ValidSegment(seg); err != nil {
		return Mount{}, err
	}
	if strings.TrimSpace(target) == "" {
		return Mount{}, fmt.Errorf("%w: empty target", ErrTargetMissing)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(siteRoot, target)
	}

	fi, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Mount{}, fmt.Errorf("%w: %s", ErrTargetMissing, target)
		}
		return Mount{}, err
	}
	if !fi.IsDir() {
		return Mount{}, fmt.Errorf("%w: %s", ErrTargetNotDir, target)
	}

	canon, err := canonical(target)
	if err != nil {
		return Mount{}, err
	}
	if insideNodeModules(canon) {
		return Mount{}, fmt.Errorf("%w: %s", ErrInsideNodeModules, canon)
	}
	return Mount{Segment: seg, Target: canon}, nil
}

// canonical returns the absolute, symlink-free form of path. Paths that do not exist
// yet are only made absolute.
func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return filepath.Clean(abs), nil
		}
		return "", err
	}
	return resolved, nil
}

func overlaps(a, b string) bool {
	return a == b || within(a, b) || within(b, a)
}

// within reports whether child lies strictly below parent.
func within(child, parent string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func insideNodeModules(path string) bool {
	return slices.Contains(strings.Split(filepath.ToSlash(path), "/"), "node_modules")
}

func mountError(seg, target string, cause error) error {
	return ferrors.ConfigError(fmt.Sprintf("invalid mount %q", seg)).
		WithCause(cause).
		WithContext("segment", seg).
		WithContext("path", target).
		Fatal().
		Build()
}
