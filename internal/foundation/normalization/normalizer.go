// Package normalization maps loosely written configuration values onto typed
// enumerations.
package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Normalizer converts raw strings to values of T. Keys are matched after
// trimming and lower-casing.
type Normalizer[T comparable] struct {
	values       map[string]T
	defaultValue T
	keys         []string
}

// NewNormalizer creates a normalizer with a map of valid string->value pairs.
func NewNormalizer[T comparable](values map[string]T, defaultValue T) *Normalizer[T] {
	n := &Normalizer[T]{
		values:       make(map[string]T, len(values)),
		defaultValue: defaultValue,
		keys:         make([]string, 0, len(values)),
	}
	for k, v := range values {
		key := clean(k)
		n.values[key] = v
		n.keys = append(n.keys, key)
	}
	sort.Strings(n.keys)
	return n
}

// Normalize returns the value for raw, or the default when raw is unknown.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.values[clean(raw)]; ok {
		return v
	}
	return n.defaultValue
}

// Lookup reports whether raw names a known value.
func (n *Normalizer[T]) Lookup(raw string) (T, bool) {
	v, ok := n.values[clean(raw)]
	return v, ok
}

// NormalizeWithError is Normalize that rejects unknown input instead of
// falling back to the default.
func (n *Normalizer[T]) NormalizeWithError(raw string) (T, error) {
	if v, ok := n.Lookup(raw); ok {
		return v, nil
	}
	return n.defaultValue, fmt.Errorf("invalid value %q, valid values are: %s", raw, strings.Join(n.keys, ", "))
}

// NormalizeField normalizes a named config field and returns a human readable
// warning when the input was rewritten or unknown. An empty raw value yields
// the default without a warning.
func (n *Normalizer[T]) NormalizeField(field, raw string) (T, string) {
	if strings.TrimSpace(raw) == "" {
		return n.defaultValue, ""
	}
	v, ok := n.Lookup(raw)
	switch {
	case !ok:
		return n.defaultValue, fmt.Sprintf("unknown %s '%s', defaulting to %v", field, raw, n.defaultValue)
	case clean(raw) != raw:
		return v, fmt.Sprintf("normalized %s from '%s' to '%s'", field, raw, clean(raw))
	default:
		return v, ""
	}
}

// ValidKeys returns all valid normalized keys, sorted.
func (n *Normalizer[T]) ValidKeys() []string {
	return append([]string(nil), n.keys...)
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
