package config

import (
	"time"

	"git.home.luguber.info/inful/sitecontent/internal/foundation/normalization"
)

// ExportDriver selects the secondary export sink.
type ExportDriver string

const (
	ExportJSON   ExportDriver = "json"
	ExportSQLite ExportDriver = "sqlite"
)

var exportDriverNormalizer = normalization.NewNormalizer(map[string]ExportDriver{
	"json":    ExportJSON,
	"sqlite":  ExportSQLite,
	"sqlite3": ExportSQLite,
}, ExportJSON)

// BuildConfig is the `build` block.
type BuildConfig struct {
	// Output is the JSON document path, relative to the site root.
	Output      string `yaml:"output"`
	Concurrency int    `yaml:"concurrency"`
	// Optimizer names the image optimizer binary probed on PATH.
	Optimizer string `yaml:"optimizer"`
}

// ExportConfig is the `export` block. The JSON document is always written;
// the sqlite driver additionally writes tables to Path.
type ExportConfig struct {
	Driver ExportDriver `yaml:"driver"`
	Path   string       `yaml:"path"`
}

// EventsConfig is the `events` block.
type EventsConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// MetricsConfig is the `metrics` block.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// WatchConfig is the `watch` block.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
	// Interval schedules a full rebuild; zero disables it.
	Interval time.Duration `yaml:"interval"`
	Ignore   []string      `yaml:"ignore"`
}
