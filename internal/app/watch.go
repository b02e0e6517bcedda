package app

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/bddgrid/internal/ctxlog"
)

var graphExtensions = []string{".hcl", ".yaml", ".yml"}

// Watch generates the feature files, then regenerates them whenever a graph
// file changes, until ctx is cancelled. Failed generations are logged and
// reported by the health check, they do not stop the watch.
func (a *App) Watch(ctx context.Context) error {
	ctx = a.Context(ctx)
	logger := ctxlog.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	for _, p := range a.config.GraphPaths {
		if err := addWatch(watcher, p); err != nil {
			return err
		}
	}

	if _, err := a.startHealthCheckServer(ctx); err != nil {
		return err
	}
	defer a.closeHealthCheckServer(ctx)

	a.regenerate(ctx)

	debounce := a.config.Debounce
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	timer := time.NewTimer(debounce)
	timer.Stop()

	logger.Info("👀 Watching graph files for changes.", "paths", a.config.GraphPaths)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Watch stopped.")
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addWatch(watcher, ev.Name); err != nil {
						logger.Warn("Could not watch new directory.", "path", ev.Name, "error", err)
					}
					continue
				}
			}
			if !isGraphFile(ev.Name) || ev.Op == fsnotify.Chmod {
				continue
			}
			logger.Debug("Graph file changed.", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error.", "error", err)

		case <-timer.C:
			a.regenerate(ctx)
		}
	}
}

func (a *App) regenerate(ctx context.Context) {
	paths, err := a.Generate(ctx)
	a.setLastErr(err)
	if err != nil {
		ctxlog.FromContext(ctx).Error("Feature generation failed.", "error", err)
		return
	}
	ctxlog.FromContext(ctx).Info("🏁 Features regenerated.", "files", len(paths))
}

// addWatch watches p and, for a directory, every directory below it. A plain
// file is watched through its parent directory.
func addWatch(w *fsnotify.Watcher, p string) error {
	info, err := os.Stat(p)
	if err != nil {
		return fmt.Errorf("watching %q: %w", p, err)
	}
	if !info.IsDir() {
		return w.Add(filepath.Dir(p))
	}
	return filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}

func isGraphFile(name string) bool {
	return slices.Contains(graphExtensions, strings.ToLower(filepath.Ext(name)))
}
