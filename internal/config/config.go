// Package config loads the site configuration file (site.yml).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitecontent/internal/content"
	ferrors "git.home.luguber.info/inful/sitecontent/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecontent/internal/logfields"
)

// SiteConfig is the decoded site.yml.
type SiteConfig struct {
	Name     string `yaml:"name"`
	PagesDir string `yaml:"pages_dir"`
	// AssetDir resolves site-absolute asset references ("/img/logo.png").
	AssetDir string `yaml:"asset_dir"`

	Index    string                             `yaml:"index,omitempty"`
	Pages    []any                              `yaml:"pages,omitempty"`
	Layout   string                             `yaml:"layout,omitempty"`
	Mounts   map[string]string                  `yaml:"mounts,omitempty"`
	Ignore   []string                           `yaml:"ignore,omitempty"`
	Versions map[string]content.VersionOverride `yaml:"versions,omitempty"`

	Build   BuildConfig   `yaml:"build"`
	Logging LoggingConfig `yaml:"logging"`
	Export  ExportConfig  `yaml:"export"`
	Events  EventsConfig  `yaml:"events"`
	Metrics MetricsConfig `yaml:"metrics"`
	Watch   WatchConfig   `yaml:"watch"`

	// Warnings collects non-fatal problems found while loading.
	Warnings []string `yaml:"-"`

	root string
}

// Root is the site root: the directory holding the config file.
func (c *SiteConfig) Root() string { return c.root }

// PagesPath returns the absolute pages directory.
func (c *SiteConfig) PagesPath() string { return c.resolve(c.PagesDir) }

// AssetPath returns the absolute asset directory.
func (c *SiteConfig) AssetPath() string { return c.resolve(c.AssetDir) }

// OutputPath returns the absolute JSON document path.
func (c *SiteConfig) OutputPath() string { return c.resolve(c.Build.Output) }

// ExportPath returns the absolute path for the secondary export sink.
func (c *SiteConfig) ExportPath() string { return c.resolve(c.Export.Path) }

func (c *SiteConfig) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.root, p)
}

// Load reads the configuration at path. A missing file yields defaults rooted
// at the file's directory; malformed YAML yields defaults plus a warning.
// Only Validate failures are returned as errors.
func Load(path string) (*SiteConfig, error) {
	loadEnvFiles(filepath.Dir(path))

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "resolve config path").
			WithContext("path", path).Build()
	}

	cfg := &SiteConfig{}
	data, err := os.ReadFile(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug("No site configuration found, using defaults", logfields.Path(abs))
	case err != nil:
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "read site configuration").
			WithContext("path", abs).Build()
	default:
		if uerr := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); uerr != nil {
			cfg = &SiteConfig{}
			cfg.warn(fmt.Sprintf("malformed site configuration %s: %v", abs, uerr))
		}
	}
	cfg.root = filepath.Dir(abs)

	cfg.normalize()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, w := range cfg.Warnings {
		slog.Warn("Site configuration", slog.String("warning", w), logfields.Path(abs))
	}
	return cfg, nil
}

func (c *SiteConfig) warn(msg string) {
	c.Warnings = append(c.Warnings, msg)
}

func (c *SiteConfig) normalize() {
	var w string
	c.Logging.Level, w = logLevelNormalizer.NormalizeField("logging.level", string(c.Logging.Level))
	if w != "" {
		c.warn(w)
	}
	c.Logging.Format, w = logFormatNormalizer.NormalizeField("logging.format", string(c.Logging.Format))
	if w != "" {
		c.warn(w)
	}
	c.Export.Driver, w = exportDriverNormalizer.NormalizeField("export.driver", string(c.Export.Driver))
	if w != "" {
		c.warn(w)
	}
}

// loadEnvFiles loads .env and .env.local from dir when present. Existing
// process variables are never overwritten.
func loadEnvFiles(dir string) {
	for _, name := range []string{".env", ".env.local"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			slog.Warn("Failed to load environment file", logfields.Path(p), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(p))
	}
}

// Init writes an example configuration file to path.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", path)).Build()
	}

	example := SiteConfig{
		Name:     "My Site",
		PagesDir: DefaultPagesDir,
		AssetDir: DefaultAssetDir,
		Index:    "home",
		Pages:    []any{"home", "...", "about"},
		Layout:   "default",
		Mounts:   map[string]string{"docs": "../docs"},
		Ignore:   []string{"**/drafts/**"},
		Versions: map[string]content.VersionOverride{
			"v1": {Label: "1.x", Deprecated: true},
		},
		Build:   BuildConfig{Output: DefaultOutput, Concurrency: DefaultConcurrency, Optimizer: DefaultOptimizer},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
		Export:  ExportConfig{Driver: ExportJSON},
		Events:  EventsConfig{Enabled: false, URL: "${NATS_URL}", Subject: DefaultEventsSubject},
		Metrics: MetricsConfig{Enabled: false, Listen: DefaultMetricsListen},
		Watch:   WatchConfig{Debounce: DefaultDebounce, Ignore: []string{"**/*.tmp"}},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "marshal example configuration").Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "write configuration file").
			WithContext("path", path).Build()
	}
	return nil
}
