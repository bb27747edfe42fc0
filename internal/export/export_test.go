package export

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitecontent/internal/content"
	ferrors "git.home.luguber.info/inful/sitecontent/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecontent/internal/manifest"
)

func strPtr(s string) *string { return &s }

func sample() *content.SiteContent {
	return &content.SiteContent{
		Pages: []content.Page{
			{
				Route:      "/",
				SourcePath: "/",
				Title:      "Home <b>",
				Source:     "pages",
				Sections: []*content.Section{
					{
						ID: "1", StableID: "hero", Hash: "h1", Source: "pages/1-hero.md",
						Params:  map[string]any{"tone": "bold"},
						Content: &content.Node{Type: "doc"},
						Subsections: []*content.Section{
							{ID: "1,1", StableID: "hero-cta", Hash: "h2", Source: "pages/1,1-cta.md"},
						},
					},
					{ID: "2", StableID: "features", Hash: "h3", Source: "pages/2-features.md"},
				},
			},
			{Route: "/docs", SourcePath: "/docs", Source: "pages/docs", Parent: strPtr("/"), VersionScope: "/docs"},
		},
		Assets: manifest.Assets{
			"/site/public/logo.png": {Resolved: "/site/public/logo.png", Exists: true, Size: 12, Kind: manifest.KindImage, ReferencedBy: []string{"1-hero.md"}},
		},
		Icons: []string{"lucide:star"},
		VersionScopes: map[string]content.VersionMeta{
			"/docs": {LatestID: "v2", Versions: []content.VersionEntry{
				{ID: "v2", Label: "v2", Latest: true, Route: "/docs"},
				{ID: "v1", Label: "1.x", Deprecated: true, Route: "/docs/v1"},
			}},
		},
		Build: content.BuildInfo{ID: "b-1", Warnings: 2},
	}
}

func TestJSONWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "site-content.json")
	w := NewJSONWriter(path)
	require.NoError(t, w.Write(context.Background(), sample()))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"title": "Home <b>"`)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, err := ReadJSON(f)
	require.NoError(t, err)
	require.Len(t, got.Pages, 2)
	assert.Equal(t, "/", *got.Pages[1].Parent)
	assert.Equal(t, "hero-cta", got.Pages[0].Sections[0].Subsections[0].StableID)
	assert.Equal(t, []string{"lucide:star"}, got.Icons)
	assert.Equal(t, "v2", got.VersionScopes["/docs"].LatestID)
}

func TestJSONWriterUnwritableDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := NewJSONWriter(filepath.Join(blocker, "out.json")).Write(context.Background(), sample())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryExport))
}

func TestReadJSONMalformed(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "bad*.json")
	require.NoError(t, err)
	_, _ = f.WriteString("{not json")
	_, _ = f.Seek(0, 0)
	defer f.Close()

	_, err = ReadJSON(f)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryParse))
}

func count(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(query, args...).Scan(&n))
	return n
}

func TestSQLiteWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.db")
	w := NewSQLiteWriter(path)
	ctx := context.Background()
	require.NoError(t, w.Write(ctx, sample()))

	db, err := w.Open()
	require.NoError(t, err)

	assert.Equal(t, 2, count(t, db, `SELECT COUNT(*) FROM pages`))
	assert.Equal(t, 3, count(t, db, `SELECT COUNT(*) FROM sections`))
	assert.Equal(t, 1, count(t, db, `SELECT COUNT(*) FROM assets WHERE present = 1 AND optimize = 0`))
	assert.Equal(t, 2, count(t, db, `SELECT COUNT(*) FROM version_scopes WHERE scope = ?`, "/docs"))
	assert.Equal(t, 1, count(t, db, `SELECT COUNT(*) FROM pages WHERE parent IS NULL`))

	var parent string
	require.NoError(t, db.QueryRow(`SELECT parent_section FROM sections WHERE stable_id = ?`, "hero-cta").Scan(&parent))
	assert.Equal(t, "1", parent)

	var params string
	require.NoError(t, db.QueryRow(`SELECT params FROM sections WHERE stable_id = ?`, "hero").Scan(&params))
	assert.JSONEq(t, `{"tone":"bold"}`, params)

	require.NoError(t, db.Close())

	next := sample()
	next.Pages = next.Pages[:1]
	next.Build.ID = "b-2"
	require.NoError(t, w.Write(ctx, next))

	db, err = w.Open()
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, 1, count(t, db, `SELECT COUNT(*) FROM pages WHERE build_id = ?`, "b-2"))
	assert.Equal(t, 0, count(t, db, `SELECT COUNT(*) FROM pages WHERE build_id = ?`, "b-1"))
}
