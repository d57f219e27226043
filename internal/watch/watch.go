// Package watch reports changes to a single file.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the write+rename bursts of an atomic save.
const DefaultDebounce = 200 * time.Millisecond

// File calls fn once per burst of changes to path. The parent directory is
// watched rather than the file, because atomic saves replace the file and
// a watch on the old inode would go quiet. The directory is created if
// missing. File blocks until ctx is cancelled.
func File(ctx context.Context, path string, debounce time.Duration, fn func()) error {
	dir := filepath.Dir(path)
	name := filepath.Base(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	logger := slog.With("component", "watch", "file", path)
	logger.Debug("watching for changes")

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("file changed", "op", event.Op)

			// Debounce: reset timer on each event
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, func() {
				if ctx.Err() != nil {
					return
				}
				fn()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("file watcher error", "error", err)
		}
	}
}
