package watch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"git.home.luguber.info/inful/sitecontent/internal/logfields"
)

// BuildFunc runs one build. trigger names what caused it.
type BuildFunc func(ctx context.Context, trigger string) error

// runner serializes builds. A request arriving while a build runs is folded
// into a single pending rebuild.
type runner struct {
	build BuildFunc

	mu      sync.Mutex
	running bool
	pending string
	wg      sync.WaitGroup
}

func newRunner(build BuildFunc) *runner {
	return &runner{build: build}
}

func (r *runner) request(ctx context.Context, trigger string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ctx.Err() != nil {
		return
	}
	if r.running {
		r.pending = trigger
		return
	}
	r.running = true
	r.wg.Add(1)
	go r.loop(ctx, trigger)
}

func (r *runner) loop(ctx context.Context, trigger string) {
	defer r.wg.Done()
	for {
		start := time.Now()
		if err := r.build(ctx, trigger); err != nil {
			slog.Warn("Rebuild failed", slog.String("trigger", trigger), logfields.Error(err))
		} else {
			slog.Debug("Rebuild finished", slog.String("trigger", trigger), slog.Duration("took", time.Since(start)))
		}

		r.mu.Lock()
		if r.pending == "" || ctx.Err() != nil {
			r.running = false
			r.pending = ""
			r.mu.Unlock()
			return
		}
		trigger, r.pending = r.pending, ""
		r.mu.Unlock()
	}
}

// wait blocks until no build is running.
func (r *runner) wait() {
	r.wg.Wait()
}

// debouncer coalesces bursts of triggers into one call after a quiet window.
type debouncer struct {
	delay time.Duration
	fire  func()

	mu    sync.Mutex
	timer *time.Timer
}

func newDebouncer(delay time.Duration, fire func()) *debouncer {
	return &debouncer{delay: delay, fire: fire}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
