// Package fsnotify keeps the document set in step with the filesystem.
package fsnotify

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/fwojciec/viewdocs"
)

// DefaultDebounce is how long the watcher waits for changes to settle
// before rescanning.
const DefaultDebounce = 250 * time.Millisecond

// DocumentSet is the part of the document service the watcher drives.
type DocumentSet interface {
	// Refresh rescans the document set.
	Refresh(ctx context.Context) error

	// Invalidate drops any cached rendering of the document at path.
	Invalidate(path string)
}

// Watcher watches the served root and updates a DocumentSet. Edits to a
// markdown file invalidate its cached rendering; files or directories being
// added, removed or renamed trigger a debounced rescan.
type Watcher struct {
	root string
	set  DocumentSet

	// Exclude lists directory names that are not watched.
	Exclude viewdocs.ExcludeSet

	// Shallow watches the root directory only.
	Shallow bool

	// Debounce is the quiet period before a rescan.
	Debounce time.Duration

	Logger *slog.Logger

	mu      sync.Mutex
	pending time.Time // zero when no rescan is pending
}

// NewWatcher creates a new Watcher for root.
func NewWatcher(root string, set DocumentSet) *Watcher {
	return &Watcher{
		root:     root,
		set:      set,
		Debounce: DefaultDebounce,
		Logger:   slog.New(slog.DiscardHandler),
	}
}

// Run watches until ctx is cancelled. It returns an error only if watching
// cannot start.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.root); err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}
	if !w.Shallow {
		w.addRecursive(fw, w.root)
	}

	tick := max(w.Debounce/4, 10*time.Millisecond)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handle(fw, event)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn("watch error", "err", err)

		case now := <-ticker.C:
			if w.due(now) {
				if err := w.set.Refresh(ctx); err != nil {
					w.Logger.Warn("rescan failed", "err", err)
				} else {
					w.Logger.Debug("document set refreshed")
				}
			}
		}
	}
}

// addRecursive watches every non-excluded directory below dir.
func (w *Watcher) addRecursive(fw *fsnotify.Watcher, dir string) {
	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if p != dir && w.Exclude.Contains(d.Name()) {
			return filepath.SkipDir
		}
		if err := fw.Add(p); err != nil {
			w.Logger.Debug("cannot watch directory", "dir", p, "err", err)
		}
		return nil
	})
}

func (w *Watcher) handle(fw *fsnotify.Watcher, event fsnotify.Event) {
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)
	if w.Exclude.MatchPath(rel) || w.Exclude.Contains(path.Base(rel)) {
		return
	}

	markdown := viewdocs.IsMarkdown(rel)

	switch {
	case event.Has(fsnotify.Create):
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.Shallow {
				w.addRecursive(fw, event.Name)
				w.schedule()
			}
			return
		}
		if markdown {
			w.set.Invalidate(rel)
			w.schedule()
		}

	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		if markdown {
			w.set.Invalidate(rel)
		}
		// A removed directory has no extension left to inspect.
		if markdown || path.Ext(rel) == "" {
			w.schedule()
		}

	case event.Has(fsnotify.Write):
		if markdown {
			w.Logger.Debug("document changed", "path", rel)
			w.set.Invalidate(rel)
		}
	}
}

// schedule requests a rescan once changes have settled.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = time.Now()
}

// due reports whether a scheduled rescan should run now, clearing it if so.
func (w *Watcher) due(now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending.IsZero() || now.Sub(w.pending) < w.Debounce {
		return false
	}
	w.pending = time.Time{}
	return true
}
