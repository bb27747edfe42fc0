package markdown

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/sitecontent/internal/content"
)

type LinkKind string

const (
	LinkKindInline LinkKind = "inline"
	LinkKindImage  LinkKind = "image"
)

type Link struct {
	Kind        LinkKind
	Destination string
}

// CollectLinks lists image sources and link targets of a converted document in
// document order.
func CollectLinks(doc *content.Node) []Link {
	links := make([]Link, 0)
	doc.Walk(func(n *content.Node) bool {
		if n.Type == "image" {
			links = append(links, Link{Kind: LinkKindImage, Destination: n.Attr("src")})
		}
		for _, m := range n.Marks {
			if m.Type != "link" {
				continue
			}
			href, _ := m.Attrs["href"].(string)
			if len(links) > 0 && links[len(links)-1].Destination == href && links[len(links)-1].Kind == LinkKindInline {
				continue
			}
			links = append(links, Link{Kind: LinkKindInline, Destination: href})
		}
		return true
	})
	return links
}

var iconPattern = regexp.MustCompile(`^[a-z][a-z0-9]*:[a-z0-9][a-z0-9-]*$`)

// IsIconRef reports whether a destination names an icon as "library:name".
func IsIconRef(dest string) bool {
	return iconPattern.MatchString(dest)
}

// IsLocal reports whether a destination points into the site rather than to an
// external resource, an anchor or a component.
func IsLocal(dest string) bool {
	switch {
	case dest == "",
		strings.HasPrefix(dest, "#"),
		strings.HasPrefix(dest, content.InsetPrefix),
		strings.HasPrefix(dest, "//"),
		strings.Contains(dest, "://"),
		strings.HasPrefix(dest, "mailto:"),
		strings.HasPrefix(dest, "tel:"),
		strings.HasPrefix(dest, "data:"),
		IsIconRef(dest):
		return false
	}
	return true
}
