// Package sections decodes positional section ids and nests flat section lists.
//
// A positional id is a list of levels separated by ",". Each level is a sibling
// position made of "." separated numbers: "1,2" is the second child of section 1,
// "1.5" sorts between 1 and 2 at the top level.
package sections

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is the decoded form of a positional id.
type Position struct {
	// Levels holds the numeric components of each nesting level.
	Levels [][]int
	raw    []string
}

// Decode parses a positional id.
func Decode(id string) (Position, error) {
	if id == "" {
		return Position{}, fmt.Errorf("empty section id")
	}
	raw := strings.Split(id, ",")
	levels := make([][]int, len(raw))
	for i, l := range raw {
		if l == "" {
			return Position{}, fmt.Errorf("section id %q has an empty level", id)
		}
		parts := strings.Split(l, ".")
		nums := make([]int, len(parts))
		for j, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil || n < 0 {
				return Position{}, fmt.Errorf("section id %q: level %q is not numeric", id, l)
			}
			nums[j] = n
		}
		levels[i] = nums
	}
	return Position{Levels: levels, raw: raw}, nil
}

// Depth is the nesting level; top-level sections have depth 1.
func (p Position) Depth() int {
	return len(p.Levels)
}

// OrderPath is the position among siblings at the deepest level.
func (p Position) OrderPath() []int {
	if len(p.Levels) == 0 {
		return nil
	}
	return p.Levels[len(p.Levels)-1]
}

// ParentID returns the id of the enclosing section, or "" at the top level.
func (p Position) ParentID() string {
	if len(p.raw) <= 1 {
		return ""
	}
	return strings.Join(p.raw[:len(p.raw)-1], ",")
}

// String re-encodes the position.
func (p Position) String() string {
	return strings.Join(p.raw, ",")
}

// Compare orders two positions level by level; missing components count as zero
// and a parent sorts before its children.
func (p Position) Compare(o Position) int {
	n := min(len(p.Levels), len(o.Levels))
	for i := 0; i < n; i++ {
		if c := compareLevel(p.Levels[i], o.Levels[i]); c != 0 {
			return c
		}
	}
	return len(p.Levels) - len(o.Levels)
}

func compareLevel(a, b []int) int {
	for i := 0; i < max(len(a), len(b)); i++ {
		var x, y int
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Child returns the id of the n-th (1-based) child of parent.
func Child(parent string, n int) string {
	if parent == "" {
		return strconv.Itoa(n)
	}
	return parent + "," + strconv.Itoa(n)
}
