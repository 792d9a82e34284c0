// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package assets

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/juzzbott/lightframe-engine/resource"
)

// Watcher watches resource files for changes.
// Changed files are only recorded; the resources loaded
// from them are recreated when Apply is called, which the
// caller does between frames.
type Watcher struct {
	reg *resource.Registry
	log *zap.Logger
	fsw *fsnotify.Watcher

	mu      sync.Mutex
	dirs    map[string]bool
	pending map[string]bool

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher creates a new Watcher that reloads resources
// of reg.
func NewWatcher(reg *resource.Registry, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("assets: creating watcher: %w", err)
	}
	w := &Watcher{
		reg:     reg,
		log:     log.Named("watcher"),
		fsw:     fsw,
		dirs:    make(map[string]bool),
		pending: make(map[string]bool),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Add starts watching path.
// The directory containing path is watched, since editors
// often replace files instead of writing to them.
func (w *Watcher) Add(path string) error {
	dir := filepath.Dir(filepath.Clean(path))
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.dirs[dir] {
		return nil
	}
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("assets: watching %q: %w", dir, err)
	}
	w.dirs[dir] = true
	w.log.Debug("watching", zap.String("dir", dir))
	return nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Clean(ev.Name)
			if len(w.reg.ByPath(name)) == 0 {
				continue
			}
			w.mu.Lock()
			w.pending[name] = true
			w.mu.Unlock()
			w.log.Debug("file changed", zap.String("path", name), zap.Stringer("op", ev.Op))
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

// Pending returns the number of changed files not yet
// applied.
func (w *Watcher) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

// Apply reloads every resource whose file changed since
// the last call.
// It returns the number of resources reloaded.
// Apply must not be called during a frame.
func (w *Watcher) Apply() int {
	w.mu.Lock()
	paths := w.pending
	w.pending = make(map[string]bool)
	w.mu.Unlock()

	n := 0
	for p := range paths {
		for _, ref := range w.reg.ByPath(p) {
			if err := w.reg.Reload(ref.Kind, ref.Handle); err != nil {
				w.log.Warn("reload failed", zap.String("path", p), zap.Error(err))
				continue
			}
			n++
		}
	}
	return n
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}
