package pagetree

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/sitecontent/internal/content"
	"git.home.luguber.info/inful/sitecontent/internal/docmodel"
	"git.home.luguber.info/inful/sitecontent/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecontent/internal/logfields"
	"git.home.luguber.info/inful/sitecontent/internal/ordering"
	"git.home.luguber.info/inful/sitecontent/internal/sections"
	"git.home.luguber.info/inful/sitecontent/internal/util/sets"
)

// planned is a content file assigned to a positional id.
type planned struct {
	file entry
	id   string
}

// declared is one entry of a page's sections list.
type declared struct {
	name     string
	children []declared
}

func parseDeclared(raw []any) []declared {
	out := make([]declared, 0, len(raw))
	for _, e := range raw {
		name, ok := ordering.EntryName(e)
		if !ok {
			continue
		}
		d := declared{name: name}
		if m, ok := e.(map[string]any); ok {
			if kids, ok := m[name].([]any); ok {
				d.children = parseDeclared(kids)
			}
		}
		out = append(out, d)
	}
	return out
}

// fileIndex finds section files by full base name ("1-hero") or by name without
// numeric prefix ("hero").
type fileIndex map[string]entry

func newFileIndex(files []entry) fileIndex {
	idx := make(fileIndex, 2*len(files))
	for _, f := range files {
		base := docmodel.BaseName(f.name)
		_, rest := ordering.SplitPrefix(base)
		if _, taken := idx[rest]; !taken {
			idx[rest] = f
		}
		idx[base] = f
	}
	return idx
}

// resolve rewrites the names pinned by spec to the file names they refer to, so
// "3-c" and "c" pin the same file. Names matching no file are dropped.
func (idx fileIndex) resolve(spec *ordering.Spec) *ordering.Spec {
	names := func(list []string) []string {
		out := make([]string, 0, len(list))
		for _, n := range list {
			if f, ok := idx[n]; ok {
				out = append(out, f.name)
			}
		}
		return out
	}
	return &ordering.Spec{Mode: spec.Mode, Before: names(spec.Before), After: names(spec.After)}
}

// collectSections loads the section files of a sections-mode directory and nests
// them. Declared files that do not exist are skipped with a warning.
func (b *builder) collectSections(ctx context.Context, st dirState, files []entry) ([]*content.Section, Result, error) {
	res := emptyResult()
	plan, warnings := planSections(st, files)
	res.Warnings += warnings
	if len(plan) == 0 {
		return []*content.Section{}, res, nil
	}

	loaded := make([]*content.Section, len(plan))
	partial := make([]Result, len(plan))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.limit)
	for i, p := range plan {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sec, r, err := b.loadSection(p.file, p.id)
			if err != nil {
				return err
			}
			loaded[i], partial[i] = sec, r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Result{}, err
	}

	flat := make([]*content.Section, 0, len(loaded))
	for i, s := range loaded {
		res = res.Merge(partial[i])
		if s != nil {
			flat = append(flat, s)
		}
	}
	return sections.Build(flat), res, nil
}

// planSections assigns positional ids to section files. An explicit list pins
// exactly the listed files; a list with a wildcard orders discovered files around
// the pinned ones and nests declared children; without a list the numeric file
// prefixes decide.
func planSections(st dirState, files []entry) ([]planned, int) {
	spec := ordering.Parse(st.cfg.Sections)
	idx := newFileIndex(files)
	list, _ := st.cfg.Sections.([]any)
	decl := parseDeclared(list)

	switch {
	case spec != nil && spec.Mode == ordering.ModeStrict:
		return planExplicit(st, decl, "", idx)
	case spec != nil && spec.Mode == ordering.ModeInclusive:
		return planInclusive(st, files, decl, spec, idx)
	default:
		return planPrefixed(files), 0
	}
}

func planExplicit(st dirState, decl []declared, parent string, idx fileIndex) ([]planned, int) {
	var out []planned
	warnings := 0
	for i, d := range decl {
		if ordering.IsWildcard(d.name) {
			continue
		}
		id := sections.Child(parent, i+1)
		if f, ok := idx[d.name]; ok {
			out = append(out, planned{file: f, id: id})
		} else {
			warnings += warn(errors.MissingContentError(fmt.Sprintf("section %q not found", d.name)).
				WithContext("path", st.path).
				WithContext("section", d.name).
				Build())
		}
		kids, w := planExplicit(st, d.children, id, idx)
		out = append(out, kids...)
		warnings += w
	}
	return out, warnings
}

func planInclusive(st dirState, files []entry, decl []declared, spec *ordering.Spec, idx fileIndex) ([]planned, int) {
	nested := sets.New[string]()
	childrenOf := map[string][]declared{}
	var markNested func([]declared)
	markNested = func(list []declared) {
		for _, d := range list {
			if f, ok := idx[d.name]; ok {
				nested.Add(f.name)
			}
			markNested(d.children)
		}
	}
	for _, d := range decl {
		if len(d.children) > 0 {
			childrenOf[d.name] = d.children
			markNested(d.children)
		}
	}

	top := make([]entry, 0, len(files))
	for _, f := range files {
		if !nested.Has(f.name) {
			top = append(top, f)
		}
	}
	top = ordering.Apply(top, func(f entry) string { return f.name }, idx.resolve(spec))

	var out []planned
	warnings := 0
	for i, f := range top {
		id := sections.Child("", i+1)
		out = append(out, planned{file: f, id: id})
		kids := childrenOf[sectionKey(f)]
		if kids == nil {
			kids = childrenOf[docmodel.BaseName(f.name)]
		}
		sub, w := planExplicit(st, kids, id, idx)
		out = append(out, sub...)
		warnings += w
	}
	return out, warnings
}

// planPrefixed derives ids from numeric file prefixes. Files without a prefix, or
// whose prefix repeats an id already taken, continue after the highest top-level id.
func planPrefixed(files []entry) []planned {
	next := 0
	for _, f := range files {
		prefix, _ := ordering.SplitPrefix(docmodel.BaseName(f.name))
		if pos, err := sections.Decode(prefix); err == nil {
			next = max(next, pos.Levels[0][0])
		}
	}

	used := sets.New[string]()
	out := make([]planned, 0, len(files))
	for _, f := range files {
		prefix, _ := ordering.SplitPrefix(docmodel.BaseName(f.name))
		id := prefix
		if _, err := sections.Decode(id); err != nil || used.Has(id) {
			if id != "" {
				slog.Warn("Duplicate section position, appending", logfields.File(f.rel), logfields.Section(id))
			}
			next++
			id = sections.Child("", next)
		}
		used.Add(id)
		out = append(out, planned{file: f, id: id})
	}
	return out
}

func sectionKey(f entry) string {
	_, rest := ordering.SplitPrefix(docmodel.BaseName(f.name))
	return rest
}
