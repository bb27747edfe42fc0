// Package events announces finished builds on NATS so that downstream
// renderers and caches can react without polling the output document.
package events

import (
	"time"

	"git.home.luguber.info/inful/sitecontent/internal/content"
)

// BuildCompleted is the payload published after a successful build.
type BuildCompleted struct {
	BuildID     string    `json:"build_id"`
	Site        string    `json:"site,omitempty"`
	Commit      string    `json:"commit,omitempty"`
	StartedAt   string    `json:"started_at"`
	DurationMS  float64   `json:"duration_ms"`
	Pages       int       `json:"pages"`
	Sections    int       `json:"sections"`
	Assets      int       `json:"assets"`
	Versions    int       `json:"version_scopes"`
	Warnings    int       `json:"warnings"`
	PublishedAt time.Time `json:"published_at"`
}

// NewBuildCompleted summarizes sc.
func NewBuildCompleted(site string, sc *content.SiteContent, now time.Time) BuildCompleted {
	sections := 0
	for i := range sc.Pages {
		sections += sc.Pages[i].SectionCount()
	}
	return BuildCompleted{
		BuildID:     sc.Build.ID,
		Site:        site,
		Commit:      sc.Build.Commit,
		StartedAt:   sc.Build.StartedAt,
		DurationMS:  sc.Build.DurationMS,
		Pages:       len(sc.Pages),
		Sections:    sections,
		Assets:      len(sc.Assets),
		Versions:    len(sc.VersionScopes),
		Warnings:    sc.Build.Warnings,
		PublishedAt: now.UTC(),
	}
}
