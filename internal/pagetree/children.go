package pagetree

import (
	"cmp"
	"slices"
	"strings"

	"git.home.luguber.info/inful/sitecontent/internal/content"
	"git.home.luguber.info/inful/sitecontent/internal/docmodel"
	"git.home.luguber.info/inful/sitecontent/internal/ordering"
	"git.home.luguber.info/inful/sitecontent/internal/routes"
	"git.home.luguber.info/inful/sitecontent/internal/versioning"
)

// child is one navigable entry below a directory: a single-file page (pages mode)
// or a subdirectory.
type child struct {
	key    string
	sort   string
	order  *int
	hidden bool

	file   *entry
	parent *dirState
	route  string
	fetch  *content.FetchSpec
	layout content.Layout

	dir *dirState
}

// children lists st's child pages in navigation order with their routes resolved.
func (b *builder) children(st dirState, mode content.Mode, files, dirs []entry, fetch *content.FetchSpec, layout content.Layout, scope *versioning.Scope) []child {
	var items []child
	if mode == content.ModePages {
		for i := range files {
			base := docmodel.BaseName(files[i].name)
			_, key := ordering.SplitPrefix(base)
			items = append(items, child{key: key, sort: base, file: &files[i], parent: &st, fetch: fetch, layout: layout})
		}
	}

	for _, d := range dirs {
		cfg, kind, err := docmodel.LoadDirConfig(b.fs, d.path)
		ds := &dirState{
			path:       d.path,
			rel:        d.rel,
			name:       d.name,
			parentMode: mode,
			fetch:      fetch,
			layout:     layout,
			version:    st.version,
			cfg:        cfg,
			kind:       kind,
			cfgErr:     err,
			cfgLoaded:  true,
		}
		items = append(items, child{key: d.name, sort: d.name, order: cfg.Order, dir: ds})
	}

	slices.SortStableFunc(items, compareChildren)

	spec := ordering.Parse(st.cfg.Pages)
	if st.root && spec == nil {
		spec = ordering.Parse(b.opts.Pages)
	}
	items = ordering.Apply(items, func(c child) string { return c.key }, spec)

	indexName := st.cfg.Index
	if st.root && indexName == "" {
		indexName = b.opts.Index
	}
	var index *child
	if len(files) == 0 {
		index = selectIndex(items, spec, indexName, scope)
	}

	for i := range items {
		c := &items[i]
		c.hidden = spec.Hides(c.key)
		if c.file != nil {
			c.route = routes.Join(st.base, c.key)
			continue
		}
		placeChild(st, c, c == index, scope, fetch)
	}
	return items
}

// placeChild computes the route, source path and child base of a subdirectory.
func placeChild(st dirState, c *child, isIndex bool, scope *versioning.Scope, fetch *content.FetchSpec) {
	ds := c.dir
	ds.hidden = c.hidden
	folderRoute := routes.Join(st.base, ds.name)

	switch {
	case dynamicPattern.MatchString(ds.name):
		param := dynamicPattern.FindStringSubmatch(ds.name)[1]
		ds.param = param
		ds.parentSchema = fetch.SchemaName()
		ds.route = routes.Join(st.base, ":"+param)
		ds.sourcePath = ds.route
		ds.base = ds.route
	case strings.HasPrefix(ds.name, "@"):
		ds.layoutArea = true
		ds.route, ds.sourcePath, ds.base = folderRoute, folderRoute, folderRoute
	case scope.Has(ds.name):
		ds.version = &versionCtx{id: ds.name, scope: scope.Route, meta: &scope.Meta}
		ds.sourcePath = folderRoute
		if scope.IsLatest(ds.name) {
			ds.route = scope.Route
			ds.base = routes.Base(scope.Route)
		} else {
			ds.route, ds.base = folderRoute, folderRoute
		}
	case isIndex:
		ds.index = true
		ds.route = st.route
		ds.sourcePath, ds.base = folderRoute, folderRoute
	default:
		ds.route, ds.sourcePath, ds.base = folderRoute, folderRoute, folderRoute
	}
}

// selectIndex picks the child folder promoted onto the parent's route: the first
// ordering entry, then the configured index name, then the lowest explicit order
// with alphabetical tie-break. Dynamic, layout-area and version folders never
// qualify.
func selectIndex(items []child, spec *ordering.Spec, indexName string, scope *versioning.Scope) *child {
	var candidates []*child
	for i := range items {
		c := &items[i]
		if c.dir == nil {
			continue
		}
		name := c.dir.name
		if dynamicPattern.MatchString(name) || strings.HasPrefix(name, "@") || scope.Has(name) || versioning.IsVersionFolder(name) {
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return nil
	}

	find := func(key string) *child {
		for _, c := range candidates {
			if c.key == key {
				return c
			}
		}
		return nil
	}
	if first, ok := spec.First(); ok {
		if c := find(first); c != nil {
			return c
		}
	}
	if indexName != "" {
		if c := find(indexName); c != nil {
			return c
		}
	}
	return slices.MinFunc(candidates, func(a, b *child) int {
		if c := compareOrder(a.order, b.order); c != 0 {
			return c
		}
		return strings.Compare(a.key, b.key)
	})
}

// compareChildren is the discovery order: explicit order first, then numeric
// prefix and name.
func compareChildren(a, b child) int {
	if c := compareOrder(a.order, b.order); c != 0 {
		return c
	}
	return ordering.CompareNames(a.sort, b.sort)
}

// compareOrder sorts explicit orders ascending and missing ones last.
func compareOrder(a, b *int) int {
	switch {
	case a != nil && b != nil:
		return cmp.Compare(*a, *b)
	case a != nil:
		return -1
	case b != nil:
		return 1
	}
	return 0
}
