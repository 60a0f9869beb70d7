package dataset

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher invalidates the loader cache when a local dataset file
// changes, so edits to the tables show up without waiting for the
// TTL to lapse.
type Watcher struct {
	loader  *Loader
	watcher *fsnotify.Watcher
	files   map[string]bool
	logger  *zap.Logger
	stopCh  chan struct{}
}

// WatchSources starts watching the loader's local files. It returns
// nil when the source has no local files to watch.
func WatchSources(loader *Loader, logger *zap.Logger) (*Watcher, error) {
	paths := loader.source.LocalPaths()
	if len(paths) == 0 {
		return nil, nil
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		loader:  loader,
		watcher: fsWatcher,
		files:   make(map[string]bool, len(paths)),
		logger:  logger,
		stopCh:  make(chan struct{}),
	}

	// Watch parent directories: editors replace files on save, which
	// drops a watch registered on the file itself.
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsWatcher.Add(dir); err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	go w.watchLoop()

	logger.Info("dataset hot reloading enabled", zap.Strings("files", paths))
	return w, nil
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.files[abs] {
				continue
			}
			w.logger.Info("dataset file changed, invalidating cache",
				zap.String("file", event.Name),
				zap.String("op", event.Op.String()),
			)
			w.loader.Invalidate()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("dataset watcher error", zap.Error(err))

		case <-w.stopCh:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.stopCh)
	return w.watcher.Close()
}
