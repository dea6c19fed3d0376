package watcher

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/prettymuchbryce/typocheck/internal/pathutil"
)

// fsnotifyWatcher is the interface for fsnotify operations, allowing mocking in tests.
type fsnotifyWatcher interface {
	Add(name string) error
	Remove(name string) error
}

// watchedDirs tracks which paths have an fsnotify watch.
// Directories are watched recursively; hidden directories below a root are
// skipped. A root that is a regular file is watched on its own.
type watchedDirs struct {
	fs        afero.Fs
	fsWatcher fsnotifyWatcher

	// paths holds every watched path.
	paths map[string]struct{}
}

func newWatchedDirs(afs afero.Fs, fsWatcher fsnotifyWatcher) *watchedDirs {
	return &watchedDirs{
		fs:        afs,
		fsWatcher: fsWatcher,
		paths:     make(map[string]struct{}),
	}
}

// count returns the number of paths currently being watched.
func (w *watchedDirs) count() int {
	return len(w.paths)
}

func (w *watchedDirs) isWatched(path string) bool {
	_, ok := w.paths[path]
	return ok
}

// add watches path and, for a directory, every non-hidden directory below it.
// It returns the regular files found under path, so callers can treat a
// directory that appeared all at once as a batch of changed files.
func (w *watchedDirs) add(path string) []string {
	var files []string
	err := afero.Walk(w.fs, path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			slog.Warn("failed to walk directory while adding watches", "path", p, "error", err)
			return nil
		}

		if !info.IsDir() {
			if info.Mode().IsRegular() {
				files = append(files, p)
				if p == path {
					w.watch(p)
				}
			}
			return nil
		}

		if p != path && pathutil.IsHidden(info.Name()) {
			return filepath.SkipDir
		}
		if !w.watch(p) {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		slog.Warn("failed to add watches", "path", path, "error", err)
	}
	return files
}

// watch adds a single fsnotify watch. It reports whether path is watched.
func (w *watchedDirs) watch(path string) bool {
	if w.isWatched(path) {
		return true
	}
	if err := w.fsWatcher.Add(path); err != nil {
		slog.Warn("fswatcher failed to add watch", "path", path, "error", err)
		return false
	}
	slog.Debug("watching", "path", path)
	w.paths[path] = struct{}{}
	return true
}

// remove stops watching path and everything below it.
// fsnotify drops watches on deleted paths itself, so a failing Remove is
// only logged at debug level.
func (w *watchedDirs) remove(path string) {
	prefix := path + string(filepath.Separator)
	for p := range w.paths {
		if p != path && !strings.HasPrefix(p, prefix) {
			continue
		}
		if err := w.fsWatcher.Remove(p); err != nil {
			slog.Debug("fswatcher failed to remove watch", "path", p, "error", err)
		}
		delete(w.paths, p)
	}
}
