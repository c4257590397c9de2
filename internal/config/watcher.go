package config

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a configuration tree and signals when any file in it
// changes, so the daemon can recompile without an explicit signal.
//
// Directories are watched rather than the files themselves: editors
// replace files by rename, which would silently detach a file-level
// watch. Events for unrelated files in those directories are filtered
// out by path.
type Watcher struct {
	watcher *fsnotify.Watcher
	reloads chan struct{}
	done    chan struct{}
	log     *slog.Logger
	watched map[string]bool
}

// NewWatcher creates a watcher over the given configuration files
// (typically the root config plus its includes).
func NewWatcher(files []File, log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	watched := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		watched[canonicalPath(f.Path)] = true
		dirs[filepath.Dir(canonicalPath(f.Path))] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching config directory %s: %w", dir, err)
		}
	}
	log.Debug("config watcher started", "files", len(watched), "dirs", len(dirs))

	self := &Watcher{
		watcher: fsw,
		reloads: make(chan struct{}, 1),
		done:    make(chan struct{}),
		log:     log,
		watched: watched,
	}

	go self.filterEvents()

	return self, nil
}

// Reloads returns a channel that receives a value whenever a watched
// configuration file changes. Bursts coalesce into a single value.
func (w *Watcher) Reloads() <-chan struct{} {
	return w.reloads
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("closing fsnotify watcher: %w", err)
	}

	return nil
}

func (w *Watcher) filterEvents() {
	defer close(w.reloads)

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if !w.watched[canonicalPath(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			w.log.Debug("config change detected", "path", event.Name, "op", event.Op.String())

			// Non-blocking send: a pending reload already covers this change.
			select {
			case w.reloads <- struct{}{}:
			default:
			}
		case err := <-w.watcher.Errors:
			if err != nil {
				w.log.Warn("config watcher error", "err", err)
			}
		}
	}
}
