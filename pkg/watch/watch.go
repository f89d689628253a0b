// Package watch re-runs a callback whenever a file changes on disk.
//
// The parent directory is watched rather than the file itself so that editors
// which save by rename-and-replace keep triggering events. Bursts of events
// are coalesced with a debounce interval.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when Watcher.Debounce is zero.
const DefaultDebounce = 100 * time.Millisecond

// Watcher calls OnChange after Path is written, created or renamed into place.
type Watcher struct {
	Path     string
	Debounce time.Duration
	OnChange func(ctx context.Context) error
	Logger   *slog.Logger
}

// Run blocks until ctx is cancelled. OnChange calls never overlap. Errors are
// logged, not returned, so one bad edit does not stop the watch.
func (w *Watcher) Run(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	target, err := filepath.Abs(w.Path)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", w.Path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fsw.Close()
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %q: %w", filepath.Dir(target), err)
	}
	logger.Info("watching job file", "path", target, "debounce_ms", debounce.Milliseconds())

	var (
		mu    sync.Mutex
		timer *time.Timer
		wg    sync.WaitGroup
		// held for the whole OnChange call; a timer firing during a slow
		// callback waits for it instead of running alongside
		runMu sync.Mutex
	)
	defer func() {
		mu.Lock()
		if timer != nil && timer.Stop() {
			wg.Done()
		}
		mu.Unlock()
		wg.Wait()
	}()

	fire := func() {
		defer wg.Done()
		runMu.Lock()
		defer runMu.Unlock()
		if ctx.Err() != nil {
			return
		}
		start := time.Now()
		if err := w.OnChange(ctx); err != nil {
			logger.Error("re-render failed", "path", target, "error", err)
			return
		}
		logger.Info("re-rendered", "path", target, "duration_ms", time.Since(start).Milliseconds())
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !relevant(ev, target) {
				continue
			}
			logger.Debug("file event", "path", ev.Name, "op", ev.Op.String())
			mu.Lock()
			if timer == nil || !timer.Stop() {
				wg.Add(1)
			}
			timer = time.AfterFunc(debounce, fire)
			mu.Unlock()

		case err, ok := <-fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("file watcher error", "error", err)
		}
	}
}

func relevant(ev fsnotify.Event, target string) bool {
	name, err := filepath.Abs(ev.Name)
	if err != nil || name != target {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
