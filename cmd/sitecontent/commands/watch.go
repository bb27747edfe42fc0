package commands

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitecontent/internal/build"
	"git.home.luguber.info/inful/sitecontent/internal/config"
	"git.home.luguber.info/inful/sitecontent/internal/logfields"
	"git.home.luguber.info/inful/sitecontent/internal/metrics"
	"git.home.luguber.info/inful/sitecontent/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Interval time.Duration `help:"Override watch.interval (periodic full rebuild)"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if w.Interval > 0 {
		cfg.Watch.Interval = w.Interval
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	defer p.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if p.registry != nil {
		srv := &http.Server{Addr: cfg.Metrics.Listen, Handler: metricsMux(p.registry), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Metrics server failed", logfields.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		slog.Info("Metrics endpoint listening", slog.String("addr", cfg.Metrics.Listen))
	}

	rebuild := func(ctx context.Context, trigger string) error {
		// Reload so edits to site.yml, output paths included, apply without a
		// restart. Metrics and events stay as configured at startup.
		current, err := config.Load(root.Config)
		if err != nil {
			return err
		}
		_, err = p.service(current).Run(ctx, build.Request{Config: current, Trigger: trigger})
		return err
	}

	return watch.New(watchOptions(cfg, root.Config), rebuild).Run(ctx)
}

func watchOptions(cfg *config.SiteConfig, configPath string) watch.Options {
	roots := []string{cfg.PagesPath(), cfg.AssetPath()}
	for _, seg := range slices.Sorted(maps.Keys(cfg.Mounts)) {
		target := cfg.Mounts[seg]
		if !filepath.IsAbs(target) {
			target = filepath.Join(cfg.Root(), target)
		}
		roots = append(roots, target)
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		abs = configPath
	}
	return watch.Options{
		Roots:    roots,
		Files:    []string{abs},
		Ignore:   append(append([]string(nil), cfg.Ignore...), cfg.Watch.Ignore...),
		Debounce: cfg.Watch.Debounce,
		Interval: cfg.Watch.Interval,
	}
}

func metricsMux(reg *prom.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	return mux
}
