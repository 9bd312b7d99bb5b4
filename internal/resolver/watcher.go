package resolver

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/naudiz/internal/checksum"
)

// Watch observes the user mapping file and reloads the resolver table when
// its content changes, until ctx is cancelled. The parent directory is
// watched (editors replace files via rename, which would drop a file-level
// watch) and reloads are debounced and gated on a content checksum so that
// touch-without-change events are ignored.
func (r *Resolver) Watch(ctx context.Context, logger *slog.Logger) error {
	if r.userPath == "" {
		<-ctx.Done()
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(r.userPath)
	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("resolver: watching mapping file", slog.String("path", r.userPath))

	last := fileChecksum(r.userPath)

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("resolver: watcher stopped")
			return nil

		case <-reloadCh:
			cs := fileChecksum(r.userPath)
			if cs == last {
				continue
			}
			last = cs
			r.Reload()
			logger.Info("resolver: mapping reloaded", slog.String("path", r.userPath))

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Name != r.userPath {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0 {
				scheduleReload()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("resolver: watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

// fileChecksum returns the content digest, or "" when the file is unreadable.
func fileChecksum(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return checksum.Sum(data)
}
