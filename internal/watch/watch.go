// Package watch re-runs work when changelog files change on disk.
// Parent directories are watched rather than the files themselves so that
// editors which save by renaming a temporary file keep triggering events.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports debounced changes to a fixed set of files.
type Watcher struct {
	fs       *fsnotify.Watcher
	targets  map[string]string // absolute path -> path as given
	debounce time.Duration

	// ErrorHandler receives watcher errors. Nil drops them.
	ErrorHandler func(error)
}

// New watches the given files. A debounce of zero reports every event batch immediately.
func New(paths []string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fs:       fsw,
		targets:  make(map[string]string, len(paths)),
		debounce: debounce,
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		w.targets[abs] = p

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching directory %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	return w, nil
}

// Run blocks until ctx is done, calling onChange with the changed paths
// (as given to New, sorted) once events have been quiet for the debounce period.
func (w *Watcher) Run(ctx context.Context, onChange func(changed []string)) error {
	defer w.fs.Close()

	pending := make(map[string]bool)
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			name, tracked := w.match(event)
			if !tracked {
				continue
			}
			pending[name] = true
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			if w.ErrorHandler != nil {
				w.ErrorHandler(err)
			}

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			sort.Strings(changed)
			clear(pending)
			onChange(changed)
		}
	}
}

// Close stops watching without running.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) match(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return "", false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return "", false
	}
	name, ok := w.targets[abs]
	return name, ok
}
