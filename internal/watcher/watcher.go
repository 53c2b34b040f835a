// Package watcher rescans a project when its source files change.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"pydeps/internal/logging"
	"pydeps/internal/paths"
)

// Watcher observes a project tree and invokes a callback after each quiet
// burst of relevant changes. Relevant means Python sources, package markers,
// and the project manifest.
type Watcher struct {
	root      string
	ignore    map[string]struct{}
	debouncer *Debouncer
	logger    *logging.Logger
	fsw       *fsnotify.Watcher
}

// New creates a watcher over root. Directories named in ignore are not
// watched.
func New(root string, ignore []string, debounce time.Duration, logger *logging.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ignoreSet := make(map[string]struct{}, len(ignore))
	for _, name := range ignore {
		ignoreSet[name] = struct{}{}
	}

	w := &Watcher{
		root:      root,
		ignore:    ignoreSet,
		debouncer: NewDebouncer(debounce),
		logger:    logger,
		fsw:       fsw,
	}

	if err := w.addRecursive(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return w, nil
}

// Run dispatches change events until the context is cancelled. onChange runs
// once per settled burst of relevant events.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer func() { _ = w.fsw.Close() }()
	defer w.debouncer.Cancel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event, onChange)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event, onChange func()) {
	// New directories need their own watches
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.ignored(event.Name) {
				_ = w.addRecursive(event.Name)
			}
		}
	}

	if !w.relevant(event.Name) {
		return
	}

	w.logger.Debug("Source change detected", map[string]interface{}{
		"file": event.Name,
		"op":   event.Op.String(),
	})
	w.debouncer.Trigger(onChange)
}

// relevant reports whether a change to the given path can affect the module
// graph.
func (w *Watcher) relevant(path string) bool {
	if w.ignored(path) {
		return false
	}
	base := filepath.Base(path)
	return strings.HasSuffix(base, ".py") || base == "pyproject.toml"
}

func (w *Watcher) ignored(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return true
	}
	for _, part := range strings.Split(paths.NormalizePath(rel), "/") {
		if _, ok := w.ignore[part]; ok {
			return true
		}
	}
	return false
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir {
			if _, skip := w.ignore[d.Name()]; skip {
				return filepath.SkipDir
			}
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", map[string]interface{}{
				"dir":   path,
				"error": err.Error(),
			})
		}
		return nil
	})
}
