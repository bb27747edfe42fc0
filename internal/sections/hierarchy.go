package sections

import (
	"log/slog"

	"git.home.luguber.info/inful/sitecontent/internal/content"
	"git.home.luguber.info/inful/sitecontent/internal/logfields"
)

// Build nests a flat list of sections by positional id. A section whose parent id is
// absent from the list stays at the top level. Sibling order follows the input order
// and the input sections are left untouched: the result holds fresh copies.
func Build(flat []*content.Section) []*content.Section {
	copies := make([]*content.Section, len(flat))
	byID := make(map[string]*content.Section, len(flat))
	for i, s := range flat {
		cp := *s
		cp.Subsections = nil
		copies[i] = &cp
		if _, dup := byID[cp.ID]; !dup {
			byID[cp.ID] = &cp
		}
	}

	top := make([]*content.Section, 0, len(copies))
	for _, s := range copies {
		pos, err := Decode(s.ID)
		if err != nil {
			slog.Warn("Invalid section id", logfields.Section(s.ID), logfields.Error(err))
			top = append(top, s)
			continue
		}
		parent, ok := byID[pos.ParentID()]
		if pos.Depth() == 1 || !ok || parent == s {
			top = append(top, s)
			continue
		}
		parent.Subsections = append(parent.Subsections, s)
	}

	ensureSubsections(top)
	return top
}

// Flatten returns sections depth-first, parents before children.
func Flatten(tree []*content.Section) []*content.Section {
	var out []*content.Section
	var walk func([]*content.Section)
	walk = func(list []*content.Section) {
		for _, s := range list {
			out = append(out, s)
			walk(s.Subsections)
		}
	}
	walk(tree)
	return out
}

func ensureSubsections(list []*content.Section) {
	for _, s := range list {
		if s.Subsections == nil {
			s.Subsections = []*content.Section{}
		}
		ensureSubsections(s.Subsections)
	}
}
