package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/Fl0zWer/Paibot/logging"
)

// Watch blocks reloading the reference whenever documentation files in its
// directory are created, modified, renamed or removed. It returns when ctx is
// done or the underlying watcher fails to start. Failed reloads are logged
// and watching continues; the previously loaded set stays in effect.
func (r *Reference) Watch(ctx context.Context, logger logging.Logger) error {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create documentation watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(r.dir); err != nil {
		return fmt.Errorf("watch documentation directory %s: %w", r.dir, err)
	}
	logger.Debug("watching documentation directory", "dir", r.dir)

	const reloadOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, r.ext) || ev.Op&reloadOps == 0 {
				continue
			}
			if err := r.Refresh(); err != nil {
				logger.Warn("documentation reload failed", "trigger", ev.Name, "error", err)
				continue
			}
			logger.Info("documentation reloaded", "trigger", ev.Name, "documents", r.Len())
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("documentation watch error", "error", err)
		}
	}
}
