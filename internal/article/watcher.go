package article

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce batches bursts of editor saves into a single reload.
const DefaultDebounce = 300 * time.Millisecond

// Watcher reloads a Catalog when markdown files under its directory change.
// Subdirectories are watched too, including ones created while it runs.
type Watcher struct {
	catalog  *Catalog
	dir      string
	debounce time.Duration
	logger   *zap.Logger

	// reloaded, when set, receives the result of every reload. Used by tests.
	reloaded func(error)
}

// NewWatcher creates a watcher for dir. A zero debounce means DefaultDebounce.
func NewWatcher(catalog *Catalog, dir string, debounce time.Duration, logger *zap.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		catalog:  catalog,
		dir:      dir,
		debounce: debounce,
		logger:   logger.Named("watcher"),
	}
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := addTree(fw, w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	w.logger.Info("Watching articles", zap.String("dir", w.dir))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 && isDir(event.Name) {
				// Files may land in a new directory before it is watched.
				if err := addTree(fw, event.Name); err != nil {
					w.logger.Warn("Watching new directory", zap.String("dir", event.Name), zap.Error(err))
				}
				timer.Reset(w.debounce)
				continue
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debug("Article changed", zap.String("file", filepath.Base(event.Name)), zap.Stringer("op", event.Op))
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", zap.Error(err))

		case <-timer.C:
			err := w.catalog.Reload()
			if err != nil {
				w.logger.Error("Reloading articles", zap.Error(err))
			} else {
				w.logger.Info("Articles reloaded", zap.Int("articles", w.catalog.Len()))
			}
			if w.reloaded != nil {
				w.reloaded(err)
			}
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, ".md") {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

// addTree watches root and every directory below it. Hidden directories are skipped.
func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
