package pagetree

import (
	"log/slog"

	"git.home.luguber.info/inful/sitecontent/internal/content"
	"git.home.luguber.info/inful/sitecontent/internal/logfields"
	"git.home.luguber.info/inful/sitecontent/internal/routes"
)

// Finalize removes route collisions and links pages to their parents. It returns
// the surviving pages and the number of content-bearing pages it had to drop.
//
// When several pages share a route, a page carrying sections beats one without.
// Between two pages with sections, a promoted page (the latest version or an
// index) beats the folder it was promoted onto; otherwise the first one wins.
// When no page carries sections the first-seen page is kept.
//
// Parents are found by dropping the last route segment and looking the result up
// by route, then by source path. Source paths of dropped pages point at the page
// that replaced them, so children of a collapsed folder still find a parent.
// Pages with at most one route segment have no parent.
//
// The input slice is not modified; the returned pages are copies.
func Finalize(pages []content.Page) ([]content.Page, int) {
	winner := make(map[string]int, len(pages))
	dropped := 0
	for i := range pages {
		route := pages[i].Route
		cur, seen := winner[route]
		switch {
		case !seen:
			winner[route] = i
		case !pages[i].HasContent():
		case !pages[cur].HasContent():
			winner[route] = i
		default:
			keep, drop := cur, i
			if promoted(&pages[i]) && !promoted(&pages[cur]) {
				keep, drop = i, cur
				winner[route] = i
			}
			dropped++
			slog.Warn("Dropping page with a duplicate route",
				logfields.Route(route), logfields.Path(pages[drop].Source), slog.String("kept", pages[keep].Source))
		}
	}

	out := make([]content.Page, 0, len(winner))
	for i := range pages {
		if winner[pages[i].Route] == i {
			out = append(out, pages[i])
		}
	}

	lookup := make(map[string]string, 2*len(pages))
	for i := range out {
		lookup[out[i].Route] = out[i].Route
	}
	for i := range pages {
		sp := pages[i].SourcePath
		if _, taken := lookup[sp]; !taken && sp != "" {
			lookup[sp] = pages[i].Route
		}
	}

	for i := range out {
		out[i].Parent = nil
		parentRoute, ok := routes.Parent(out[i].Route)
		if !ok {
			continue
		}
		if r, ok := lookup[parentRoute]; ok {
			out[i].Parent = &r
		}
	}
	return out, dropped
}

// promoted reports whether p sits on a route borrowed from its parent folder.
func promoted(p *content.Page) bool {
	if p.IsIndex {
		return true
	}
	return p.Version != "" && p.VersionMeta != nil && p.Version == p.VersionMeta.LatestID
}
