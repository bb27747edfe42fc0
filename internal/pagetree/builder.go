package pagetree

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"git.home.luguber.info/inful/sitecontent/internal/content"
	"git.home.luguber.info/inful/sitecontent/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecontent/internal/logfields"
	"git.home.luguber.info/inful/sitecontent/internal/manifest"
	"git.home.luguber.info/inful/sitecontent/internal/mounts"
	"git.home.luguber.info/inful/sitecontent/internal/routes"
	"git.home.luguber.info/inful/sitecontent/internal/util/sets"
)

const defaultConcurrency = 8

// Capabilities describes optional tooling detected for the current build.
type Capabilities struct {
	ImageOptimizer bool
}

// Options configures a tree build.
type Options struct {
	// FS is the filesystem all reads go through. Defaults to the OS filesystem.
	FS billy.Filesystem
	// PagesDir is the absolute pages directory.
	PagesDir string
	// AssetRoot resolves site-absolute asset references ("/img/x.png").
	// Defaults to the "public" directory next to PagesDir.
	AssetRoot string
	// Mounts are injected as top-level folders. They must already be validated.
	Mounts []mounts.Mount

	// Site-level settings for the pages root.
	Index    string
	Pages    []any
	Layout   string
	Versions map[string]content.VersionOverride
	Ignore   []string

	Converter    content.Converter
	Capabilities Capabilities
	// Concurrency bounds concurrent reads per directory level.
	Concurrency int
}

// Result is the output of processing one directory subtree.
type Result struct {
	Pages         []content.Page
	Assets        manifest.Assets
	Icons         sets.Set[string]
	VersionScopes map[string]content.VersionMeta
	Warnings      int
}

func emptyResult() Result {
	return Result{
		Assets:        manifest.Assets{},
		Icons:         sets.New[string](),
		VersionScopes: map[string]content.VersionMeta{},
	}
}

// Merge returns the combination of r and o: pages are concatenated, side tables
// merged and warnings summed. Neither operand is modified.
func (r Result) Merge(o Result) Result {
	pages := make([]content.Page, 0, len(r.Pages)+len(o.Pages))
	pages = append(pages, r.Pages...)
	pages = append(pages, o.Pages...)

	scopes := make(map[string]content.VersionMeta, len(r.VersionScopes)+len(o.VersionScopes))
	for k, v := range r.VersionScopes {
		scopes[k] = v
	}
	for k, v := range o.VersionScopes {
		scopes[k] = v
	}

	return Result{
		Pages:         pages,
		Assets:        manifest.Merge(r.Assets, o.Assets),
		Icons:         manifest.MergeIcons(r.Icons, o.Icons),
		VersionScopes: scopes,
		Warnings:      r.Warnings + o.Warnings,
	}
}

type builder struct {
	opts   Options
	fs     billy.Filesystem
	conv   content.Converter
	ignore []string
	limit  int
}

// Build walks the pages directory and returns the finalized result. Missing
// directories yield no pages. Content problems are logged and counted in
// Result.Warnings; only filesystem failures other than absence are returned.
func Build(ctx context.Context, opts Options) (*Result, error) {
	b, err := newBuilder(opts)
	if err != nil {
		return nil, err
	}

	root := dirState{
		path:       opts.PagesDir,
		rel:        "",
		route:      routes.Root,
		sourcePath: routes.Root,
		base:       "",
		parentMode: content.ModeSections,
		layout:     content.Layout{Name: opts.Layout},
		root:       true,
	}
	res, err := b.processDir(ctx, root)
	if err != nil {
		return nil, err
	}
	var dropped int
	res.Pages, dropped = Finalize(res.Pages)
	res.Warnings += dropped
	return &res, nil
}

func newBuilder(opts Options) (*builder, error) {
	if opts.Converter == nil {
		return nil, errors.InternalError("pagetree: converter is required").Build()
	}
	if opts.PagesDir == "" {
		return nil, errors.ConfigError("pagetree: pages directory is required").Build()
	}
	b := &builder{
		opts:  opts,
		fs:    opts.FS,
		conv:  opts.Converter,
		limit: opts.Concurrency,
	}
	if b.fs == nil {
		b.fs = osfs.New("/")
	}
	if b.limit <= 0 {
		b.limit = defaultConcurrency
	}
	if b.opts.AssetRoot == "" {
		b.opts.AssetRoot = filepath.Join(filepath.Dir(opts.PagesDir), "public")
	}
	for _, p := range opts.Ignore {
		if !doublestar.ValidatePattern(p) {
			slog.Warn("Ignoring invalid ignore pattern", logfields.Name(p))
			continue
		}
		b.ignore = append(b.ignore, p)
	}
	return b, nil
}

func (b *builder) ignored(rel string) bool {
	for _, p := range b.ignore {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// warn logs a recoverable problem and returns the number of warnings to count.
func warn(err error) int {
	if ce, ok := errors.AsClassified(err); ok {
		slog.Warn(ce.Message(), logfields.Path(ce.Path()), slog.String("category", string(ce.Category())), logfields.Error(ce.Cause()))
		return 1
	}
	slog.Warn("Content warning", logfields.Error(err))
	return 1
}
