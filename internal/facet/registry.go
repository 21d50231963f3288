package facet

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay is how long the definitions file must stay quiet after a
// change before it is reloaded. Editors often write a file in several steps.
const settleDelay = 200 * time.Millisecond

// Registry holds the active facet definitions and optionally reloads them
// when the backing file changes.
//
// Thread safety: all methods are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	defs     Definitions
	path     string
	loadedAt time.Time
	logger   *slog.Logger
	wg       sync.WaitGroup
}

// NewRegistry loads definitions from path, or uses DefaultDefinitions when
// path is empty.
func NewRegistry(path string, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{
		path:   path,
		logger: logger,
	}

	if path == "" {
		r.defs = DefaultDefinitions()
		r.loadedAt = time.Now()
		return r, nil
	}

	r.path = filepath.Clean(path)
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Definitions returns the active definitions. Callers must not modify the
// returned slice.
func (r *Registry) Definitions() Definitions {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defs
}

// Path returns the backing file, or "" when built-in definitions are used.
func (r *Registry) Path() string {
	return r.path
}

// LoadedAt returns when the active definitions were loaded.
func (r *Registry) LoadedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loadedAt
}

// Reload re-reads the backing file. On error the previous definitions stay
// active.
func (r *Registry) Reload() error {
	if r.path == "" {
		return nil
	}

	defs, err := LoadDefinitions(r.path)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.defs = defs
	r.loadedAt = time.Now()
	r.mu.Unlock()

	r.logger.Info("facet definitions loaded", "path", r.path, "groups", len(defs))
	return nil
}

// Watch starts reloading the definitions whenever the backing file changes.
// It returns once the watch is established; the watch stops when ctx is
// canceled. Use Wait to block until it has fully stopped.
func (r *Registry) Watch(ctx context.Context) error {
	if r.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create definitions watcher: %w", err)
	}

	// Watch the directory: editors that save via rename replace the inode.
	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch definitions directory: %w", err)
	}

	r.wg.Add(1)
	go r.watchLoop(ctx, watcher)

	r.logger.Debug("watching facet definitions", "path", r.path)
	return nil
}

// Wait blocks until a watch started by Watch has stopped.
func (r *Registry) Wait() {
	r.wg.Wait()
}

func (r *Registry) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer r.wg.Done()
	defer watcher.Close()

	settle := time.NewTimer(settleDelay)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != r.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			settle.Reset(settleDelay)

		case <-settle.C:
			if err := r.Reload(); err != nil {
				r.logger.Error("facet definitions reload failed, keeping previous",
					"path", r.path,
					"error", err,
				)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			r.logger.Warn("facet definitions watcher error", "error", err)
		}
	}
}
