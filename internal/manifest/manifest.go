// Package manifest holds the side tables collected while building site content:
// the asset manifest and the icon set. Both merge through pure functions so partial
// results from concurrent subtrees can be combined in any grouping.
package manifest

import (
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitecontent/internal/util/sets"
)

// Kind classifies an asset by extension.
type Kind string

const (
	KindImage    Kind = "image"
	KindVideo    Kind = "video"
	KindDocument Kind = "document"
	KindOther    Kind = "other"
)

// AssetInfo describes one referenced file.
type AssetInfo struct {
	Resolved     string   `json:"resolved"`
	Exists       bool     `json:"exists"`
	Size         int64    `json:"size,omitempty"`
	Kind         Kind     `json:"kind"`
	Optimize     bool     `json:"optimize"`
	ReferencedBy []string `json:"referencedBy"`
}

// Assets maps a resolved path to its info.
type Assets map[string]AssetInfo

var kindByExt = map[string]Kind{
	".png": KindImage, ".jpg": KindImage, ".jpeg": KindImage, ".gif": KindImage,
	".svg": KindImage, ".webp": KindImage, ".avif": KindImage, ".ico": KindImage,
	".mp4": KindVideo, ".webm": KindVideo, ".mov": KindVideo,
	".pdf": KindDocument, ".zip": KindDocument, ".csv": KindDocument,
	".xlsx": KindDocument, ".docx": KindDocument, ".pptx": KindDocument,
}

// KindOf classifies a path by extension.
func KindOf(path string) Kind {
	if k, ok := kindByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return k
	}
	return KindOther
}

// IsAsset reports whether a link destination points to a known asset type.
func IsAsset(path string) bool {
	return KindOf(path) != KindOther
}

// Optimizable reports whether a raster image could be re-encoded.
func Optimizable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".webp":
		return true
	}
	return false
}

// Merge combines two manifests without modifying either. Entries for the same
// resolved path union their referrers; Exists and Optimize are OR-ed and the larger
// size wins, which keeps the operation associative and commutative.
func Merge(a, b Assets) Assets {
	out := make(Assets, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		cur, ok := out[k]
		if !ok {
			out[k] = v
			continue
		}
		out[k] = mergeInfo(cur, v)
	}
	return out
}

func mergeInfo(a, b AssetInfo) AssetInfo {
	out := a
	out.Exists = a.Exists || b.Exists
	out.Optimize = a.Optimize || b.Optimize
	if b.Size > out.Size {
		out.Size = b.Size
	}
	refs := sets.Union(sets.New(a.ReferencedBy...), sets.New(b.ReferencedBy...))
	out.ReferencedBy = sets.Sorted(refs)
	return out
}

// MergeIcons unions two icon sets into a new one.
func MergeIcons(a, b sets.Set[string]) sets.Set[string] {
	return sets.Union(a, b)
}

// SortedIcons returns the icon identifiers in lexical order.
func SortedIcons(icons sets.Set[string]) []string {
	return sets.Sorted(icons)
}
