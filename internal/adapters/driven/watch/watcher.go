// Package watch implements the driven.Watcher port with fsnotify.
//
// Directories are watched recursively: fsnotify only watches single
// directories, so the adapter walks each root and registers every
// subdirectory, and registers newly created directories as they appear.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/zenith-framework/zendev/internal/core/ports/driven"
	"github.com/zenith-framework/zendev/internal/logger"
)

// skippedDirs are directory names never worth watching in a Python
// project tree.
var skippedDirs = map[string]bool{
	"__pycache__":   true,
	".git":          true,
	".venv":         true,
	"venv":          true,
	"node_modules":  true,
	".mypy_cache":   true,
	".ruff_cache":   true,
	".pytest_cache": true,
}

// Ensure Watcher implements the interface.
var _ driven.Watcher = (*Watcher)(nil)

// Watcher delivers recursive file change notifications.
type Watcher struct {
	fsw *fsnotify.Watcher
}

// NewWatcher creates a filesystem watcher.
func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	return &Watcher{fsw: fsw}, nil
}

// Watch begins watching the given directories recursively. Changed file
// paths are delivered on the returned channel until the context is
// cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context, paths []string) (<-chan string, error) {
	for _, path := range paths {
		if err := w.addRecursive(path); err != nil {
			return nil, err
		}
	}

	changes := make(chan string)
	go w.forward(ctx, changes)
	return changes, nil
}

// Close releases watcher resources.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// forward relays fsnotify events as changed paths.
func (w *Watcher) forward(ctx context.Context, changes chan<- string) {
	defer close(changes)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			// New directories need their own watch.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						logger.Warn("watching new directory %s: %v", event.Name, err)
					}
					continue
				}
			}

			select {
			case changes <- event.Name:
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// addRecursive registers a directory and all its subdirectories.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (skippedDirs[name] || strings.HasPrefix(name, ".")) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}
