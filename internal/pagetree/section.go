package pagetree

import (
	"context"
	stderrors "errors"
	"os"

	"git.home.luguber.info/inful/sitecontent/internal/content"
	"git.home.luguber.info/inful/sitecontent/internal/docmodel"
	"git.home.luguber.info/inful/sitecontent/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecontent/internal/frontmatter"
	"git.home.luguber.info/inful/sitecontent/internal/ordering"
)

// loadSection reads one content file into a section with the given positional id.
// A file that vanished is a missing-content warning and yields a nil section.
func (b *builder) loadSection(f entry, id string) (*content.Section, Result, error) {
	res := emptyResult()

	cf, err := docmodel.LoadContentFile(b.fs, f.path)
	if err != nil {
		switch {
		case stderrors.Is(err, os.ErrNotExist):
			res.Warnings += warn(errors.MissingContentError("section file disappeared").
				WithContext("path", f.path).Build())
			return nil, res, nil
		case errors.SeverityOf(err) == errors.SeverityWarning:
			res.Warnings += warn(err)
		default:
			return nil, Result{}, err
		}
	}

	reserved := docmodel.SplitReserved(cf.Fields)

	doc, err := b.conv.Convert(cf.Body)
	if err != nil || doc == nil {
		res.Warnings += warn(errors.WrapError(err, errors.CategoryParse, "failed to convert markdown").
			WithContext("path", f.path).Warning().Build())
		doc = &content.Node{Type: "doc"}
	}
	doc, insets := content.ExtractInsets(doc)

	fetch, err := content.ParseFetch(reserved.Fetch)
	if err != nil {
		res.Warnings += warn(errors.WrapError(err, errors.CategoryParse, "invalid section fetch").
			WithContext("path", f.path).Warning().Build())
		fetch = nil
	}

	stableID := reserved.ID
	if stableID == "" {
		_, rest := ordering.SplitPrefix(docmodel.BaseName(f.name))
		stableID = content.StableID(rest)
	}

	hash, err := frontmatter.Fingerprint(cf.Fields, cf.Body)
	if err != nil {
		res.Warnings += warn(errors.WrapError(err, errors.CategoryParse, "failed to fingerprint section").
			WithContext("path", f.path).Warning().Build())
	}

	refs := b.collectRefs(f, doc, reserved.Params)
	res.Assets = refs.Assets
	res.Icons = refs.Icons

	return &content.Section{
		ID:          id,
		StableID:    stableID,
		Type:        reserved.Type,
		Preset:      reserved.Preset,
		Input:       reserved.Input,
		Props:       reserved.Props,
		Params:      reserved.Params,
		Data:        reserved.Data,
		Content:     doc,
		Fetch:       fetch,
		Subsections: []*content.Section{},
		Insets:      insets,
		Hash:        hash,
		Source:      f.rel,
	}, res, nil
}

// filePage turns a content file in a pages-mode directory into a single-section page.
func (b *builder) filePage(ctx context.Context, c child) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	sec, res, err := b.loadSection(*c.file, "1")
	if err != nil || sec == nil {
		return res, err
	}

	page := content.Page{
		Route:      c.route,
		SourcePath: c.route,
		Sections:   []*content.Section{sec},
		Layout:     c.layout,
		Hidden:     c.hidden,
		Fetch:      c.fetch,
		Source:     c.file.rel,
	}
	params := sec.Params
	page.Title, _ = params["title"].(string)
	page.Description, _ = params["description"].(string)
	page.Label, _ = params["label"].(string)
	if h, ok := params["hidden"].(bool); ok && h {
		page.Hidden = true
	}
	if o, ok := intParam(params["order"]); ok {
		page.Order = &o
	}
	if l, ok := params["layout"].(string); ok && l != "" {
		page.Layout.Name = l
	}
	if c.parent != nil {
		applyVersion(&page, c.parent.version)
	}
	res.Pages = append(res.Pages, page)
	return res, nil
}

func intParam(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
