// Package ordering implements the wildcard ordering lists used by folder, page and
// site configuration, and the numeric-prefix comparison applied to file names.
package ordering

import (
	"slices"
)

// Mode is the interpretation of an ordering list.
type Mode string

const (
	// ModeStrict lists the items to show, in order. Unlisted items follow.
	ModeStrict Mode = "strict"
	// ModeInclusive pins items around a wildcard; everything else keeps its order.
	ModeInclusive Mode = "inclusive"
	// ModeAll is a list made only of wildcards. It leaves the order untouched.
	ModeAll Mode = "all"
)

// Wildcards accepted inside ordering lists.
var Wildcards = []string{"...", "*"}

// Spec is a parsed ordering list.
type Spec struct {
	Mode   Mode
	Before []string
	After  []string
}

// IsWildcard reports whether an entry is a wildcard marker.
func IsWildcard(s string) bool {
	return slices.Contains(Wildcards, s)
}

// EntryName extracts the item name from a list entry. Entries are either plain
// strings or single-key mappings whose value lists nested children.
func EntryName(entry any) (string, bool) {
	switch v := entry.(type) {
	case string:
		return v, v != ""
	case map[string]any:
		if len(v) != 1 {
			return "", false
		}
		for k := range v {
			return k, k != ""
		}
	}
	return "", false
}

// Parse interprets a raw configuration value. It returns nil for anything that is
// not a non-empty list. Items between two wildcards are dropped and fall into the
// unlisted remainder.
func Parse(raw any) *Spec {
	list, ok := raw.([]any)
	if !ok || len(list) == 0 {
		return nil
	}

	names := make([]string, 0, len(list))
	for _, e := range list {
		if n, ok := EntryName(e); ok {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return nil
	}

	first, last := -1, -1
	for i, n := range names {
		if IsWildcard(n) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}

	if first < 0 {
		return &Spec{Mode: ModeStrict, Before: dedupe(names)}
	}
	if allWildcards(names) {
		return &Spec{Mode: ModeAll}
	}
	return &Spec{
		Mode:   ModeInclusive,
		Before: dedupe(names[:first]),
		After:  dedupe(names[last+1:]),
	}
}

// ParseStrings is Parse for lists already decoded as strings.
func ParseStrings(list []string) *Spec {
	raw := make([]any, len(list))
	for i, s := range list {
		raw[i] = s
	}
	return Parse(raw)
}

// Lists reports whether name is explicitly pinned by the spec.
func (s *Spec) Lists(name string) bool {
	if s == nil {
		return false
	}
	return slices.Contains(s.Before, name) || slices.Contains(s.After, name)
}

// First returns the first non-wildcard entry of the original list.
func (s *Spec) First() (string, bool) {
	if s == nil {
		return "", false
	}
	if len(s.Before) > 0 {
		return s.Before[0], true
	}
	if len(s.After) > 0 {
		return s.After[0], true
	}
	return "", false
}

// Hides reports whether an unlisted item is hidden from navigation.
func (s *Spec) Hides(name string) bool {
	return s != nil && s.Mode == ModeStrict && !s.Lists(name)
}

// Apply returns a reordered copy of items. With a nil or ModeAll spec the result
// equals the input. In strict mode listed items come first in list order followed by
// the rest in their original order; in inclusive mode the rest sits between the
// leading and trailing pins. Names that match nothing are ignored, and several items
// sharing a name keep their relative order.
func Apply[T any](items []T, key func(T) string, spec *Spec) []T {
	out := make([]T, 0, len(items))
	if spec == nil || spec.Mode == ModeAll {
		return append(out, items...)
	}

	taken := make([]bool, len(items))
	pin := func(names []string) []T {
		var pinned []T
		for _, n := range names {
			for i, it := range items {
				if !taken[i] && key(it) == n {
					taken[i] = true
					pinned = append(pinned, it)
				}
			}
		}
		return pinned
	}

	before := pin(spec.Before)
	after := pin(spec.After)

	out = append(out, before...)
	for i, it := range items {
		if !taken[i] {
			out = append(out, it)
		}
	}
	return append(out, after...)
}

// Names applies spec to a plain list of names.
func Names(names []string, spec *Spec) []string {
	return Apply(names, func(s string) string { return s }, spec)
}

func allWildcards(names []string) bool {
	for _, n := range names {
		if !IsWildcard(n) {
			return false
		}
	}
	return true
}

func dedupe(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if IsWildcard(n) {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
