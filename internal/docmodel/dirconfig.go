package docmodel

import (
	stderrors "errors"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitecontent/internal/content"
	"git.home.luguber.info/inful/sitecontent/internal/foundation/errors"
)

// ConfigKind says which directory configuration file, if any, a directory carries.
type ConfigKind int

const (
	KindNone ConfigKind = iota
	// KindFolder is folder.yml: the directory's children are pages.
	KindFolder
	// KindPage is page.yml: the directory's content files are sections.
	KindPage
)

func (k ConfigKind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindPage:
		return "page"
	default:
		return "none"
	}
}

// Mode maps a kind to the content mode it selects. KindNone returns the inherited mode.
func (k ConfigKind) Mode(inherited content.Mode) content.Mode {
	switch k {
	case KindFolder:
		return content.ModePages
	case KindPage:
		return content.ModeSections
	default:
		return inherited
	}
}

var configFiles = []struct {
	name string
	kind ConfigKind
}{
	{"folder.yml", KindFolder},
	{"folder.yaml", KindFolder},
	{"page.yml", KindPage},
	{"page.yaml", KindPage},
}

// IsConfigFile reports whether name is one of the directory configuration files.
func IsConfigFile(name string) bool {
	for _, c := range configFiles {
		if c.name == name {
			return true
		}
	}
	return false
}

// DirConfig is the decoded content of folder.yml or page.yml.
type DirConfig struct {
	ID           string                             `yaml:"id"`
	Title        string                             `yaml:"title"`
	Description  string                             `yaml:"description"`
	Label        string                             `yaml:"label"`
	Order        *int                               `yaml:"order"`
	Index        string                             `yaml:"index"`
	// Pages and Sections are ordering lists. Any other shape means "no list".
	Pages        any                                `yaml:"pages"`
	Sections     any                                `yaml:"sections"`
	Hidden       bool                               `yaml:"hidden"`
	HideInHeader bool                               `yaml:"hide_in_header"`
	HideInFooter bool                               `yaml:"hide_in_footer"`
	Layout       LayoutConfig                       `yaml:"layout"`
	SEO          map[string]any                     `yaml:"seo"`
	Fetch        any                                `yaml:"fetch"`
	Versions     map[string]content.VersionOverride `yaml:"versions"`
}

// LayoutConfig accepts either a layout name or a mapping with a name and panel flags.
type LayoutConfig struct {
	content.Layout
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *LayoutConfig) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&l.Name)
	}
	var m struct {
		Name   string `yaml:"name"`
		Header *bool  `yaml:"header"`
		Footer *bool  `yaml:"footer"`
		Left   *bool  `yaml:"left"`
		Right  *bool  `yaml:"right"`
	}
	if err := value.Decode(&m); err != nil {
		return err
	}
	l.Layout = content.Layout{Name: m.Name, Header: m.Header, Footer: m.Footer, Left: m.Left, Right: m.Right}
	return nil
}

// LoadDirConfig looks for a directory configuration file in dir. folder.yml wins
// over page.yml when both exist. Missing files yield KindNone and an empty config.
// Malformed YAML keeps the kind, returns an empty config and a parse warning.
func LoadDirConfig(fs billy.Filesystem, dir string) (DirConfig, ConfigKind, error) {
	for _, c := range configFiles {
		path := filepath.Join(dir, c.name)
		data, err := util.ReadFile(fs, path)
		if err != nil {
			if stderrors.Is(err, os.ErrNotExist) {
				continue
			}
			return DirConfig{}, KindNone, errors.WrapError(err, errors.CategoryFileSystem, "failed to read directory config").
				WithContext("path", path).
				Warning().
				Build()
		}

		var cfg DirConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DirConfig{}, c.kind, errors.WrapError(err, errors.CategoryParse, "malformed directory config").
				WithContext("path", path).
				Warning().
				Build()
		}
		return cfg, c.kind, nil
	}
	return DirConfig{}, KindNone, nil
}
