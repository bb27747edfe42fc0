package pagetree

import (
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitecontent/internal/content"
	"git.home.luguber.info/inful/sitecontent/internal/manifest"
	"git.home.luguber.info/inful/sitecontent/internal/markdown"
	"git.home.luguber.info/inful/sitecontent/internal/util/sets"
)

type refs struct {
	Assets manifest.Assets
	Icons  sets.Set[string]
}

// collectRefs gathers the asset and icon references of one section.
func (b *builder) collectRefs(f entry, doc *content.Node, params map[string]any) refs {
	out := refs{Assets: manifest.Assets{}, Icons: sets.New[string]()}
	if icon, ok := params["icon"].(string); ok && markdown.IsIconRef(icon) {
		out.Icons.Add(icon)
	}

	for _, l := range markdown.CollectLinks(doc) {
		dest := l.Destination
		if l.Kind == markdown.LinkKindImage && markdown.IsIconRef(dest) {
			out.Icons.Add(dest)
			continue
		}
		if !markdown.IsLocal(dest) {
			continue
		}
		dest = stripQuery(dest)
		if l.Kind == markdown.LinkKindInline && !manifest.IsAsset(dest) {
			continue
		}
		info := b.resolveAsset(filepath.Dir(f.path), dest)
		info.ReferencedBy = []string{f.rel}
		out.Assets = manifest.Merge(out.Assets, manifest.Assets{info.Resolved: info})
	}
	return out
}

func (b *builder) resolveAsset(dir, dest string) manifest.AssetInfo {
	var resolved string
	if strings.HasPrefix(dest, "/") {
		resolved = filepath.Join(b.opts.AssetRoot, filepath.FromSlash(dest))
	} else {
		resolved = filepath.Join(dir, filepath.FromSlash(dest))
	}

	info := manifest.AssetInfo{Resolved: resolved, Kind: manifest.KindOf(resolved)}
	if fi, err := b.fs.Stat(resolved); err == nil && !fi.IsDir() {
		info.Exists = true
		info.Size = fi.Size()
	}
	info.Optimize = info.Exists && b.opts.Capabilities.ImageOptimizer && manifest.Optimizable(resolved)
	return info
}

func stripQuery(dest string) string {
	if i := strings.IndexAny(dest, "?#"); i >= 0 {
		return dest[:i]
	}
	return dest
}
