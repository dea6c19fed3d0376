package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"github.com/prettymuchbryce/typocheck/internal/pathutil"
)

// eventSource is the subset of *fsnotify.Watcher the Watcher drives.
type eventSource interface {
	fsnotifyWatcher
	Close() error
}

// Watcher monitors roots for changes and calls onChange for each changed
// file once it has been quiet for the debounce delay.
type Watcher struct {
	source eventSource
	events <-chan fsnotify.Event
	errors <-chan error

	fs       afero.Fs
	dirs     *watchedDirs
	onChange func(path string)

	// Debounce delay between the last event for a file and onChange
	debounceDelay time.Duration

	// Per-path timers for debounced changes
	timers map[string]*time.Timer
	fired  chan string

	// Closed when the watcher is stopping to unblock timer goroutines
	done chan struct{}
}

// New creates a Watcher for the given roots. Roots that are directories are
// watched recursively.
func New(afs afero.Fs, roots []string, debounce time.Duration, onChange func(path string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return newWatcher(afs, fsw, fsw.Events, fsw.Errors, roots, debounce, onChange), nil
}

func newWatcher(afs afero.Fs, source eventSource, events <-chan fsnotify.Event, errors <-chan error, roots []string, debounce time.Duration, onChange func(path string)) *Watcher {
	w := &Watcher{
		source:        source,
		events:        events,
		errors:        errors,
		fs:            afs,
		dirs:          newWatchedDirs(afs, source),
		onChange:      onChange,
		debounceDelay: debounce,
		timers:        make(map[string]*time.Timer),
		fired:         make(chan string),
		done:          make(chan struct{}),
	}
	for _, root := range roots {
		if _, err := afs.Stat(root); err != nil {
			slog.Warn("cannot watch root", "path", root, "error", err)
			continue
		}
		w.dirs.add(root)
	}
	return w
}

// WatchCount returns the number of paths currently being watched.
func (w *Watcher) WatchCount() int {
	return w.dirs.count()
}

// Run processes events and blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	slog.Info("watcher started", "debounce", w.debounceDelay, "watches", w.WatchCount())

	for {
		select {
		case <-ctx.Done():
			slog.Info("watcher stopping")
			close(w.done)
			for _, timer := range w.timers {
				timer.Stop()
			}
			return w.source.Close()

		case event, ok := <-w.events:
			if !ok {
				return nil
			}
			w.processEvent(event)

		case err, ok := <-w.errors:
			if !ok {
				return nil
			}
			slog.Error("watcher error", "error", err)

		case path := <-w.fired:
			delete(w.timers, path)
			w.evaluate(path)
		}
	}
}

// processEvent updates watches and schedules changed files.
func (w *Watcher) processEvent(event fsnotify.Event) {
	path := event.Name
	slog.Debug("processEvent", "path", path, "op", event.Op)

	switch {
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		w.dirs.remove(path)
		w.cancel(path)

	case event.Op&fsnotify.Create != 0:
		info, err := w.fs.Stat(path)
		if err != nil {
			return
		}
		if !info.IsDir() {
			w.schedule(path)
			return
		}
		if pathutil.IsHidden(filepath.Base(path)) {
			return
		}
		// Files may have been created before the watch was in place.
		for _, file := range w.dirs.add(path) {
			w.schedule(file)
		}

	case event.Op&fsnotify.Write != 0:
		w.schedule(path)
	}
}

// schedule starts or restarts the debounce timer for path.
func (w *Watcher) schedule(path string) {
	if timer, ok := w.timers[path]; ok {
		timer.Reset(w.debounceDelay)
		return
	}
	w.timers[path] = time.AfterFunc(w.debounceDelay, func() {
		select {
		case w.fired <- path:
		case <-w.done:
		}
	})
}

func (w *Watcher) cancel(path string) {
	if timer, ok := w.timers[path]; ok {
		timer.Stop()
		delete(w.timers, path)
	}
}

// evaluate calls onChange if path is still a regular file.
func (w *Watcher) evaluate(path string) {
	info, err := w.fs.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		slog.Debug("ignoring change to missing or irregular file", "path", path)
		return
	}
	w.onChange(path)
}
