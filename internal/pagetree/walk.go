package pagetree

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/sitecontent/internal/content"
	"git.home.luguber.info/inful/sitecontent/internal/docmodel"
	"git.home.luguber.info/inful/sitecontent/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecontent/internal/logfields"
	"git.home.luguber.info/inful/sitecontent/internal/ordering"
	"git.home.luguber.info/inful/sitecontent/internal/versioning"
)

var dynamicPattern = regexp.MustCompile(`^\[([^\[\]/]+)\]$`)

// versionCtx is the version scope a subtree belongs to.
type versionCtx struct {
	id    string
	scope string
	meta  *content.VersionMeta
}

// dirState carries everything a directory inherits from its parent. It is passed
// by value and never shared between branches. base is the route prefix of the
// directory's children ("" at the root).
type dirState struct {
	path       string
	rel        string
	name       string
	route      string
	sourcePath string
	base       string
	parentMode content.Mode
	fetch      *content.FetchSpec
	layout     content.Layout
	version    *versionCtx

	root         bool
	index        bool
	hidden       bool
	param        string
	parentSchema string
	layoutArea   bool

	cfg       docmodel.DirConfig
	kind      docmodel.ConfigKind
	cfgErr    error
	cfgLoaded bool
}

type entry struct {
	name string
	path string
	rel  string
}

// entries lists content files and subdirectories of st, skipping hidden, private,
// configuration and ignored names. At the root, mounts are injected as folders.
func (b *builder) entries(st dirState) (files, dirs []entry, err error) {
	infos, err := b.fs.ReadDir(st.path)
	if err != nil && !stderrors.Is(err, os.ErrNotExist) {
		return nil, nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to list directory").
			WithContext("path", st.path).
			Build()
	}

	for _, fi := range infos {
		name := fi.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || docmodel.IsConfigFile(name) {
			continue
		}
		e := entry{name: name, path: filepath.Join(st.path, name), rel: path.Join(st.rel, name)}
		if b.ignored(e.rel) {
			slog.Debug("Ignoring entry", logfields.Path(e.rel))
			continue
		}
		if fi.Mode()&os.ModeSymlink != 0 {
			target, err := b.fs.Stat(e.path)
			if err != nil {
				slog.Warn("Skipping broken symlink", logfields.Path(e.path), logfields.Error(err))
				continue
			}
			fi = target
		}
		switch {
		case fi.IsDir():
			dirs = append(dirs, e)
		case docmodel.IsContentFile(name):
			files = append(files, e)
		}
	}

	if st.root {
		dirs = b.injectMounts(dirs)
	}

	slices.SortFunc(files, func(a, b entry) int {
		return ordering.CompareNames(docmodel.BaseName(a.name), docmodel.BaseName(b.name))
	})
	slices.SortFunc(dirs, func(a, b entry) int { return strings.Compare(a.name, b.name) })
	return files, dirs, nil
}

func (b *builder) injectMounts(dirs []entry) []entry {
	for _, m := range b.opts.Mounts {
		e := entry{name: m.Segment, path: m.Target, rel: m.Segment}
		i := slices.IndexFunc(dirs, func(d entry) bool { return d.name == m.Segment })
		if i >= 0 {
			slog.Warn("Mount replaces a local folder", logfields.Mount(m.Segment), logfields.Path(dirs[i].path))
			dirs[i] = e
			continue
		}
		dirs = append(dirs, e)
	}
	return dirs
}

// processDir turns one directory into its own page (when it has one), its
// single-file pages and the results of its subdirectories, in navigation order.
func (b *builder) processDir(ctx context.Context, st dirState) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	files, dirs, err := b.entries(st)
	if err != nil {
		return Result{}, err
	}

	own := emptyResult()
	if !st.cfgLoaded {
		st.cfg, st.kind, st.cfgErr = docmodel.LoadDirConfig(b.fs, st.path)
	}
	if st.cfgErr != nil {
		own.Warnings += warn(st.cfgErr)
	}

	mode := st.kind.Mode(st.parentMode)
	fetch := st.fetch
	if st.cfg.Fetch != nil {
		f, err := content.ParseFetch(st.cfg.Fetch)
		if err != nil {
			own.Warnings += warn(errors.WrapError(err, errors.CategoryParse, "invalid fetch declaration").
				WithContext("path", st.path).Warning().Build())
		} else {
			fetch = f
		}
	}
	layout := st.layout.Cascade(st.cfg.Layout.Layout)

	var scope *versioning.Scope
	if st.version == nil {
		overrides := st.cfg.Versions
		if st.root && len(overrides) == 0 {
			overrides = b.opts.Versions
		}
		scope = versioning.Detect(st.base, entryNames(dirs), overrides)
		if scope != nil {
			own.VersionScopes[scope.Route] = scope.Meta
			slog.Debug("Detected version scope", logfields.Route(scope.Route), logfields.Version(scope.Meta.LatestID))
		}
	}

	if !st.root || len(files) > 0 || st.kind == docmodel.KindPage {
		page := b.dirPage(st, fetch, layout)
		if scope != nil {
			meta := scope.Meta
			page.VersionScope = scope.Route
			page.VersionMeta = &meta
		}
		if mode == content.ModeSections {
			secs, sres, err := b.collectSections(ctx, st, files)
			if err != nil {
				return Result{}, err
			}
			page.Sections = secs
			own = own.Merge(sres)
		}
		own.Pages = append(own.Pages, page)
	}

	children := b.children(st, mode, files, dirs, fetch, layout, scope)
	results := make([]Result, len(children))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.limit)
	for i, c := range children {
		g.Go(func() error {
			var r Result
			var err error
			if c.dir != nil {
				r, err = b.processDir(gctx, *c.dir)
			} else {
				r, err = b.filePage(gctx, c)
			}
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	out := own
	for _, r := range results {
		out = out.Merge(r)
	}
	return out, nil
}

func (b *builder) dirPage(st dirState, fetch *content.FetchSpec, layout content.Layout) content.Page {
	cfg := st.cfg
	p := content.Page{
		Route:        st.route,
		SourcePath:   st.sourcePath,
		ID:           cfg.ID,
		Title:        cfg.Title,
		Description:  cfg.Description,
		Label:        cfg.Label,
		Sections:     []*content.Section{},
		IsIndex:      st.index,
		IsDynamic:    st.param != "",
		ParamName:    st.param,
		ParentSchema: st.parentSchema,
		LayoutArea:   st.layoutArea,
		Layout:       layout,
		Hidden:       cfg.Hidden || st.hidden,
		HideInHeader: cfg.HideInHeader,
		HideInFooter: cfg.HideInFooter,
		SEO:          cfg.SEO,
		Order:        cfg.Order,
		Fetch:        fetch,
		Source:       sourceOf(st.rel),
	}
	applyVersion(&p, st.version)
	return p
}

func applyVersion(p *content.Page, v *versionCtx) {
	if v == nil {
		return
	}
	p.Version = v.id
	p.VersionScope = v.scope
	p.VersionMeta = v.meta
}

func sourceOf(rel string) string {
	if rel == "" {
		return "."
	}
	return rel
}

func entryNames(list []entry) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.name
	}
	return out
}
