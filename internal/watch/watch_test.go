package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterRelevant(t *testing.T) {
	f := newFilter([]string{"/site/pages", "/docs"}, []string{"/site/site.yml"}, []string{"**/drafts/**", "["})

	tests := []struct {
		path string
		want bool
	}{
		{"/site/pages/1-hero.md", true},
		{"/site/pages/about/page.yml", true},
		{"/docs/guide/intro.md", true},
		{"/site/site.yml", true},
		{"/site/other.yml", false},
		{"/site/pages/.DS_Store", false},
		{"/site/pages/1-hero.md.swp", false},
		{"/site/pages/1-hero.md~", false},
		{"/site/pages/#1-hero.md#", false},
		{"/site/pages/blog/drafts/x.md", false},
		{"/site/pagesx/a.md", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, f.relevant(tt.path))
		})
	}
	assert.Len(t, f.patterns, 1)
}

func TestDebouncerCoalesces(t *testing.T) {
	var fired atomic.Int32
	d := newDebouncer(30*time.Millisecond, func() { fired.Add(1) })
	for i := 0; i < 5; i++ {
		d.trigger()
		time.Sleep(5 * time.Millisecond)
	}
	assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestRunnerFoldsRequestsWhileBusy(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	var triggers []string
	r := newRunner(func(_ context.Context, trigger string) error {
		mu.Lock()
		triggers = append(triggers, trigger)
		first := len(triggers) == 1
		mu.Unlock()
		if first {
			<-release
		}
		return nil
	})

	ctx := context.Background()
	r.request(ctx, "initial")
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(triggers) == 1
	}, time.Second, 5*time.Millisecond)

	r.request(ctx, "change")
	r.request(ctx, "schedule")
	close(release)
	r.wait()

	assert.Equal(t, []string{"initial", "schedule"}, triggers)
}

func TestRunnerIgnoresCanceledContext(t *testing.T) {
	var calls atomic.Int32
	r := newRunner(func(context.Context, string) error { calls.Add(1); return nil })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r.request(ctx, "change")
	r.wait()
	assert.Zero(t, calls.Load())
}

func TestWatcherRebuildsOnChange(t *testing.T) {
	root := t.TempDir()
	pages := filepath.Join(root, "pages")
	require.NoError(t, os.MkdirAll(pages, 0o750))

	var mu sync.Mutex
	var triggers []string
	w := New(Options{Roots: []string{pages}, Debounce: 20 * time.Millisecond}, func(_ context.Context, trigger string) error {
		mu.Lock()
		defer mu.Unlock()
		triggers = append(triggers, trigger)
		return nil
	})
	seen := func(n int) func() bool {
		return func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(triggers) >= n
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, seen(1), 2*time.Second, 10*time.Millisecond)
	// Give the watcher time to register before writing.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.MkdirAll(filepath.Join(pages, "about"), 0o750))
	require.Eventually(t, seen(2), 2*time.Second, 10*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(pages, "about", "1-intro.md"), []byte("hi"), 0o600))
	require.Eventually(t, seen(3), 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, TriggerInitial, triggers[0])
	assert.Equal(t, TriggerChange, triggers[len(triggers)-1])
}

func TestWatcherSchedule(t *testing.T) {
	var calls atomic.Int32
	w := New(Options{Interval: 50 * time.Millisecond}, func(context.Context, string) error {
		calls.Add(1)
		return nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}
