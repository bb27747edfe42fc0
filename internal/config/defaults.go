package config

import "time"

const (
	DefaultConfigFile    = "site.yml"
	DefaultPagesDir      = "pages"
	DefaultAssetDir      = "public"
	DefaultOutput        = "site-content.json"
	DefaultSQLitePath    = "site-content.db"
	DefaultConcurrency   = 8
	DefaultOptimizer     = "cwebp"
	DefaultEventsSubject = "sitecontent.build.completed"
	DefaultMetricsListen = ":9464"
	DefaultDebounce      = 300 * time.Millisecond
)

// Default returns a configuration with every default applied.
func Default() *SiteConfig {
	c := &SiteConfig{}
	c.applyDefaults()
	return c
}

func (c *SiteConfig) applyDefaults() {
	if c.PagesDir == "" {
		c.PagesDir = DefaultPagesDir
	}
	if c.AssetDir == "" {
		c.AssetDir = DefaultAssetDir
	}
	if c.Build.Output == "" {
		c.Build.Output = DefaultOutput
	}
	if c.Build.Concurrency <= 0 {
		c.Build.Concurrency = DefaultConcurrency
	}
	if c.Build.Optimizer == "" {
		c.Build.Optimizer = DefaultOptimizer
	}
	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelInfo
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
	if c.Export.Driver == "" {
		c.Export.Driver = ExportJSON
	}
	if c.Export.Driver == ExportSQLite && c.Export.Path == "" {
		c.Export.Path = DefaultSQLitePath
	}
	if c.Events.Subject == "" {
		c.Events.Subject = DefaultEventsSubject
	}
	if c.Metrics.Listen == "" {
		c.Metrics.Listen = DefaultMetricsListen
	}
	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = DefaultDebounce
	}
}
