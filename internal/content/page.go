package content

import (
	"git.home.luguber.info/inful/sitecontent/internal/manifest"
)

// Mode decides how a directory's children are interpreted.
type Mode string

const (
	// ModePages treats child entries as independent pages.
	ModePages Mode = "pages"
	// ModeSections treats content files as sections of the directory's own page.
	ModeSections Mode = "sections"
)

// Page is one navigable unit of the site.
type Page struct {
	Route        string         `json:"route"`
	SourcePath   string         `json:"sourcePath"`
	ID           string         `json:"id,omitempty"`
	Title        string         `json:"title,omitempty"`
	Description  string         `json:"description,omitempty"`
	Label        string         `json:"label,omitempty"`
	Sections     []*Section     `json:"sections"`
	IsIndex      bool           `json:"isIndex,omitempty"`
	IsDynamic    bool           `json:"isDynamic,omitempty"`
	ParamName    string         `json:"paramName,omitempty"`
	ParentSchema string         `json:"parentSchema,omitempty"`
	LayoutArea   bool           `json:"layoutArea,omitempty"`
	Version      string         `json:"version,omitempty"`
	VersionMeta  *VersionMeta   `json:"versionMeta,omitempty"`
	VersionScope string         `json:"versionScope,omitempty"`
	Layout       Layout         `json:"layout"`
	Hidden       bool           `json:"hidden,omitempty"`
	HideInHeader bool           `json:"hideInHeader,omitempty"`
	HideInFooter bool           `json:"hideInFooter,omitempty"`
	SEO          map[string]any `json:"seo,omitempty"`
	Order        *int           `json:"order,omitempty"`
	Fetch        *FetchSpec     `json:"fetch,omitempty"`
	Source       string         `json:"source"`
	Parent       *string        `json:"parent"`
}

// HasContent reports whether the page carries at least one section.
func (p *Page) HasContent() bool {
	return len(p.Sections) > 0
}

// SectionCount counts sections at every nesting level.
func (p *Page) SectionCount() int {
	n := 0
	var count func([]*Section)
	count = func(list []*Section) {
		for _, s := range list {
			n++
			count(s.Subsections)
		}
	}
	count(p.Sections)
	return n
}

// Layout is the layout assignment of a page. Panel flags are nil when the page
// does not override the layout's default.
type Layout struct {
	Name   string `json:"name,omitempty"`
	Header *bool  `json:"header,omitempty"`
	Footer *bool  `json:"footer,omitempty"`
	Left   *bool  `json:"left,omitempty"`
	Right  *bool  `json:"right,omitempty"`
}

// Cascade returns the layout a child inherits: the child's own name wins when set,
// panel flags never cascade.
func (l Layout) Cascade(local Layout) Layout {
	out := local
	if out.Name == "" {
		out.Name = l.Name
	}
	return out
}

// BuildInfo describes the run that produced a SiteContent document.
type BuildInfo struct {
	ID         string  `json:"id"`
	StartedAt  string  `json:"startedAt"`
	DurationMS float64 `json:"durationMs"`
	Commit     string  `json:"commit,omitempty"`
	Warnings   int     `json:"warnings"`
}

// SiteContent is the single normalized document handed to downstream collaborators.
type SiteContent struct {
	Pages         []Page                 `json:"pages"`
	Assets        manifest.Assets        `json:"assets"`
	Icons         []string               `json:"icons"`
	VersionScopes map[string]VersionMeta `json:"versionScopes"`
	Build         BuildInfo              `json:"build"`
}

// PageByRoute returns the first page with the given route.
func (s *SiteContent) PageByRoute(route string) (*Page, bool) {
	for i := range s.Pages {
		if s.Pages[i].Route == route {
			return &s.Pages[i], true
		}
	}
	return nil, false
}
