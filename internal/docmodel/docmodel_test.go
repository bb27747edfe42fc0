package docmodel

import (
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitecontent/internal/content"
	"git.home.luguber.info/inful/sitecontent/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecontent/internal/frontmatter"
)

func writeFile(t *testing.T, fs billy.Filesystem, path, data string) {
	t.Helper()
	require.NoError(t, util.WriteFile(fs, path, []byte(data), 0o644))
}

func TestLoadContentFileYAML(t *testing.T) {
	fs := memfs.New()
	writeFile(t, fs, "/pages/1-hero.md", "---\ntype: Hero\ntitle: Welcome\n---\n# Hello\n")

	cf, err := LoadContentFile(fs, "/pages/1-hero.md")
	require.NoError(t, err)
	assert.Equal(t, frontmatter.FormatYAML, cf.Format)
	assert.Equal(t, "Hero", cf.Fields["type"])
	assert.Equal(t, "# Hello\n", string(cf.Body))
	assert.NotNil(t, cf.FrontmatterRaw)
}

func TestLoadContentFileTOML(t *testing.T) {
	fs := memfs.New()
	writeFile(t, fs, "/a.md", "+++\ntitle = \"T\"\n+++\nbody\n")

	cf, err := LoadContentFile(fs, "/a.md")
	require.NoError(t, err)
	assert.Equal(t, frontmatter.FormatTOML, cf.Format)
	assert.Equal(t, "T", cf.Fields["title"])
}

func TestLoadContentFileWithoutFrontmatter(t *testing.T) {
	fs := memfs.New()
	writeFile(t, fs, "/a.md", "just text\n")

	cf, err := LoadContentFile(fs, "/a.md")
	require.NoError(t, err)
	assert.Empty(t, cf.Fields)
	assert.Nil(t, cf.FrontmatterRaw)
	assert.Equal(t, "just text\n", string(cf.Body))
}

func TestLoadContentFileMalformed(t *testing.T) {
	fs := memfs.New()
	writeFile(t, fs, "/open.md", "---\ntitle: x\n# body\n")
	writeFile(t, fs, "/bad.md", "---\ntitle: [unclosed\n---\nbody\n")

	cf, err := LoadContentFile(fs, "/open.md")
	require.Error(t, err)
	assert.ErrorIs(t, err, frontmatter.ErrMissingClosingDelimiter)
	assert.Equal(t, errors.SeverityWarning, errors.SeverityOf(err))
	assert.Empty(t, cf.Fields)
	assert.Equal(t, "---\ntitle: x\n# body\n", string(cf.Body))

	cf, err = LoadContentFile(fs, "/bad.md")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryParse))
	assert.Empty(t, cf.Fields)
	assert.Equal(t, "body\n", string(cf.Body))
}

func TestLoadContentFileMissing(t *testing.T) {
	_, err := LoadContentFile(memfs.New(), "/nope.md")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestLoadDirConfig(t *testing.T) {
	fs := memfs.New()
	writeFile(t, fs, "/docs/folder.yml", "title: Docs\norder: 2\npages: [intro, '...']\nhide_in_header: true\nlayout: docs\n")
	writeFile(t, fs, "/home/page.yml", "title: Home\nlayout:\n  name: landing\n  header: false\nversions:\n  v1:\n    label: Legacy\n    deprecated: true\n")
	writeFile(t, fs, "/both/folder.yml", "title: Folder\n")
	writeFile(t, fs, "/both/page.yml", "title: Page\n")

	cfg, kind, err := LoadDirConfig(fs, "/docs")
	require.NoError(t, err)
	assert.Equal(t, KindFolder, kind)
	assert.Equal(t, "Docs", cfg.Title)
	require.NotNil(t, cfg.Order)
	assert.Equal(t, 2, *cfg.Order)
	assert.Equal(t, []any{"intro", "..."}, cfg.Pages)
	assert.True(t, cfg.HideInHeader)
	assert.Equal(t, "docs", cfg.Layout.Name)

	cfg, kind, err = LoadDirConfig(fs, "/home")
	require.NoError(t, err)
	assert.Equal(t, KindPage, kind)
	assert.Equal(t, "landing", cfg.Layout.Name)
	require.NotNil(t, cfg.Layout.Header)
	assert.False(t, *cfg.Layout.Header)
	assert.Equal(t, content.VersionOverride{Label: "Legacy", Deprecated: true}, cfg.Versions["v1"])

	cfg, kind, err = LoadDirConfig(fs, "/both")
	require.NoError(t, err)
	assert.Equal(t, KindFolder, kind)
	assert.Equal(t, "Folder", cfg.Title)

	_, kind, err = LoadDirConfig(fs, "/missing")
	require.NoError(t, err)
	assert.Equal(t, KindNone, kind)
}

func TestLoadDirConfigMalformed(t *testing.T) {
	fs := memfs.New()
	writeFile(t, fs, "/x/page.yml", "title: [oops\n")

	cfg, kind, err := LoadDirConfig(fs, "/x")
	require.Error(t, err)
	assert.Equal(t, KindPage, kind)
	assert.Equal(t, DirConfig{}, cfg)
	assert.Equal(t, errors.SeverityWarning, errors.SeverityOf(err))
}

func TestLoadDirConfigScalarOrderingList(t *testing.T) {
	fs := memfs.New()
	writeFile(t, fs, "/blog/folder.yml", "title: Blog\nindex: about\npages: about\nsections: 7\n")

	cfg, kind, err := LoadDirConfig(fs, "/blog")
	require.NoError(t, err)
	assert.Equal(t, KindFolder, kind)
	assert.Equal(t, "Blog", cfg.Title)
	assert.Equal(t, "about", cfg.Index)
	assert.Equal(t, "about", cfg.Pages)
	assert.Equal(t, 7, cfg.Sections)
}

func TestConfigKindMode(t *testing.T) {
	assert.Equal(t, content.ModePages, KindFolder.Mode(content.ModeSections))
	assert.Equal(t, content.ModeSections, KindPage.Mode(content.ModePages))
	assert.Equal(t, content.ModePages, KindNone.Mode(content.ModePages))
	assert.Equal(t, "folder", KindFolder.String())
}

func TestSplitReserved(t *testing.T) {
	r := SplitReserved(map[string]any{
		"component": "Hero",
		"preset":    "dark",
		"props":     map[string]any{"align": "center"},
		"id":        "intro",
		"data":      []any{1, 2},
		"title":     "Welcome",
		"tags":      []any{"a"},
	})
	assert.Equal(t, "Hero", r.Type)
	assert.Equal(t, "dark", r.Preset)
	assert.Equal(t, "intro", r.ID)
	assert.Equal(t, map[string]any{"align": "center"}, r.Props)
	assert.Equal(t, map[string]any{"title": "Welcome", "tags": []any{"a"}}, r.Params)

	r = SplitReserved(map[string]any{"type": "A", "component": "B"})
	assert.Equal(t, "A", r.Type)
	assert.Empty(t, r.Params)
	assert.NotNil(t, r.Params)
}

func TestContentFileNames(t *testing.T) {
	assert.True(t, IsContentFile("a.md"))
	assert.True(t, IsContentFile("a.Markdown"))
	assert.False(t, IsContentFile("a.txt"))
	assert.Equal(t, "1-hero", BaseName("1-hero.md"))
	assert.True(t, IsConfigFile("page.yaml"))
	assert.False(t, IsConfigFile("site.yml"))
}
