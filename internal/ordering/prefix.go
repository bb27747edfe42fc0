package ordering

import (
	"regexp"
	"strconv"
	"strings"
)

// A numeric prefix is a run of digit groups joined by "." or "," and separated from
// the rest of the name by "-" or "_", or making up the whole name.
var prefixPattern = regexp.MustCompile(`^(\d+(?:[.,]\d+)*)(?:[-_](.*))?$`)

// SplitPrefix separates the numeric prefix from a base name (without extension).
// Names without a prefix return "" and the name unchanged. A name made only of a
// prefix returns the prefix as rest too.
func SplitPrefix(name string) (prefix, rest string) {
	m := prefixPattern.FindStringSubmatch(name)
	if m == nil {
		return "", name
	}
	if m[2] == "" {
		return m[1], m[1]
	}
	return m[1], m[2]
}

// ComparePrefix compares two numeric prefixes component-wise. Missing components
// count as zero, so "1" equals "1.0" and sorts before "1.5".
func ComparePrefix(a, b string) int {
	pa, pb := components(a), components(b)
	n := max(len(pa), len(pb))
	for i := 0; i < n; i++ {
		var x, y int
		if i < len(pa) {
			x = pa[i]
		}
		if i < len(pb) {
			y = pb[i]
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	}
	return 0
}

// CompareNames orders names by numeric prefix first. Prefixed names sort before
// unprefixed ones and ties fall back to lexical order.
func CompareNames(a, b string) int {
	pa, _ := SplitPrefix(a)
	pb, _ := SplitPrefix(b)
	switch {
	case pa != "" && pb != "":
		if c := ComparePrefix(pa, pb); c != 0 {
			return c
		}
	case pa != "":
		return -1
	case pb != "":
		return 1
	}
	return strings.Compare(a, b)
}

func components(prefix string) []int {
	if prefix == "" {
		return nil
	}
	parts := strings.FieldsFunc(prefix, func(r rune) bool { return r == '.' || r == ',' })
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			n = 0
		}
		out[i] = n
	}
	return out
}
