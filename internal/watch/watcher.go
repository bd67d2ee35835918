// Package watch reports changes under an asset root. The root and its
// immediate subdirectories are watched; bursts of events are coalesced into
// a single notification once the tree has been quiet for the debounce period.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/modelmanifest/internal/ctxlog"
	"github.com/specialistvlad/modelmanifest/internal/fsutil"
)

// DefaultDebounce is used when no debounce period is configured.
const DefaultDebounce = 250 * time.Millisecond

type Watcher struct {
	watcher  *fsnotify.Watcher
	root     string
	debounce time.Duration
	ignore   map[string]struct{}

	// Changes receives one value per quiet period following a change.
	// Notifications are dropped if the previous one is still unread.
	Changes chan struct{}
	Errors  chan error

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// New starts watching root. Events on any of the ignore paths, such as the
// manifest file itself, never trigger a notification.
func New(ctx context.Context, root string, debounce time.Duration, ignore ...string) (*Watcher, error) {
	logger := ctxlog.FromContext(ctx)
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	entries, err := fsutil.ReadDirUnordered(root)
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}
	for _, entry := range entries {
		if !fsutil.IsDir(root, entry) {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if err := fsw.Add(dir); err != nil {
			logger.Warn("Could not watch model folder.", "path", dir, "error", err)
		}
	}

	w := &Watcher{
		watcher:  fsw,
		root:     cleanAbs(root),
		debounce: debounce,
		ignore:   make(map[string]struct{}, len(ignore)),
		Changes:  make(chan struct{}, 1),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, p := range ignore {
		w.ignore[cleanAbs(p)] = struct{}{}
	}
	logger.Debug("Watching asset root.", "root", w.root, "folders", len(fsw.WatchList())-1, "debounce", debounce)

	go w.run(ctx)
	return w, nil
}

// Close stops the watcher and closes its channels. It is safe to call more
// than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Changes)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	logger := ctxlog.FromContext(ctx)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("Asset root changed.", "path", event.Name, "op", event.Op.String())
			if event.Has(fsnotify.Create) {
				w.follow(ctx, event.Name)
			}
			timer.Reset(w.debounce)
		case <-timer.C:
			select {
			case w.Changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	_, ignored := w.ignore[cleanAbs(event.Name)]
	return !ignored
}

// follow adds newly created folders directly under the root to the watch
// set. Deeper directories are not model folders and stay unwatched.
func (w *Watcher) follow(ctx context.Context, path string) {
	if filepath.Dir(cleanAbs(path)) != w.root {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.watcher.Add(path); err != nil {
		ctxlog.FromContext(ctx).Warn("Could not watch new model folder.", "path", path, "error", err)
	}
}

func cleanAbs(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
