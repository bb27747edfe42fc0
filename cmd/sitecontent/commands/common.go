// Package commands implements the sitecontent CLI subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitecontent/internal/build"
	"git.home.luguber.info/inful/sitecontent/internal/config"
	"git.home.luguber.info/inful/sitecontent/internal/events"
	"git.home.luguber.info/inful/sitecontent/internal/export"
	"git.home.luguber.info/inful/sitecontent/internal/metrics"
)

// Global carries state shared by all subcommands.
type Global struct {
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Site configuration file" default:"site.yml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build the site content document"`
	Watch   WatchCmd   `cmd:"" help:"Rebuild whenever pages change"`
	Inspect InspectCmd `cmd:"" help:"Print the route tree of the site"`
	Init    InitCmd    `cmd:"" help:"Write an example site configuration"`
}

// loadConfig loads the site configuration and installs the configured logger.
func loadConfig(root *CLI) (*config.SiteConfig, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(cfg.Logging.NewLogger(os.Stderr, root.Verbose))
	return cfg, nil
}

// pipeline holds the long-lived parts of a build: metrics and the event
// publisher. Sinks follow the configuration of each run.
type pipeline struct {
	base     []build.Option
	registry *prom.Registry
	close    func()
}

// newPipeline wires the publisher and metrics configured in cfg.
func newPipeline(cfg *config.SiteConfig) (*pipeline, error) {
	p := &pipeline{close: func() {}}
	if cfg.Metrics.Enabled {
		p.registry = prom.NewRegistry()
		p.base = append(p.base, build.WithRecorder(metrics.NewPrometheusRecorder(p.registry)))
	}
	if cfg.Events.Enabled {
		pub, err := events.Connect(cfg.Events.URL, cfg.Events.Subject, cfg.Name)
		if err != nil {
			return nil, err
		}
		p.base = append(p.base, build.WithPublisher(pub))
		p.close = pub.Close
	}
	return p, nil
}

// service returns a build service writing to the sinks configured in cfg.
func (p *pipeline) service(cfg *config.SiteConfig) *build.Service {
	opts := append(slices.Clone(p.base), build.WithSinks(sinks(cfg)...))
	return build.NewService(opts...)
}

func sinks(cfg *config.SiteConfig) []build.Sink {
	out := []build.Sink{export.NewJSONWriter(cfg.OutputPath())}
	if cfg.Export.Driver == config.ExportSQLite {
		out = append(out, export.NewSQLiteWriter(cfg.ExportPath()))
	}
	return out
}
