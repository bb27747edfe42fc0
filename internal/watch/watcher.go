package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/sitecontent/internal/logfields"
)

const (
	TriggerInitial  = "initial"
	TriggerChange   = "change"
	TriggerSchedule = "schedule"
)

// Options configures a Watcher.
type Options struct {
	// Roots are watched recursively.
	Roots []string
	// Files are individual files watched through their parent directory.
	Files []string
	// Ignore holds doublestar patterns relative to the matching root.
	Ignore   []string
	Debounce time.Duration
	// Interval schedules a full rebuild; zero disables it.
	Interval time.Duration
}

// Watcher drives rebuilds from filesystem events and the schedule.
type Watcher struct {
	opts   Options
	filter *filter
	runner *runner
}

// New creates a Watcher calling build for every rebuild.
func New(opts Options, build BuildFunc) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	return &Watcher{
		opts:   opts,
		filter: newFilter(opts.Roots, opts.Files, opts.Ignore),
		runner: newRunner(build),
	}
}

// Run performs an initial build and then rebuilds until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer fsw.Close()

	for _, root := range w.opts.Roots {
		addDirsRecursive(fsw, root)
	}
	for _, file := range w.opts.Files {
		if err := fsw.Add(filepath.Dir(file)); err != nil {
			slog.Warn("Watch add failed", logfields.Path(file), logfields.Error(err))
		}
	}

	w.runner.request(ctx, TriggerInitial)

	deb := newDebouncer(w.opts.Debounce, func() { w.runner.request(ctx, TriggerChange) })
	defer deb.stop()

	if w.opts.Interval > 0 {
		sched, err := NewScheduler(w.opts.Interval, func() { w.runner.request(ctx, TriggerSchedule) })
		if err != nil {
			return err
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				slog.Warn("Scheduler shutdown error", logfields.Error(err))
			}
		}()
	}

	slog.Info("Watching for changes", slog.Int("roots", len(w.opts.Roots)), slog.Duration("debounce", w.opts.Debounce))
	for {
		select {
		case <-ctx.Done():
			deb.stop()
			w.runner.wait()
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handle(fsw, ev, deb)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handle(fsw *fsnotify.Watcher, ev fsnotify.Event, deb *debouncer) {
	if !w.filter.relevant(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			addDirsRecursive(fsw, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	deb.trigger()
}

func addDirsRecursive(w *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && isEditorNoise(path) {
				return filepath.SkipDir
			}
			if err := w.Add(path); err != nil {
				slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}
