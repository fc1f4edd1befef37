package catalog

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/justyntemme/launchgrid/internal/debug"
)

// DefaultDebounce is how long the application directories must be quiet
// before a change is reported. Installers touch many files in a burst.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reports when applications are installed or removed in the
// scanner's directories. Watching is not recursive: bundles and desktop
// entries live directly under the watched directories.
type Watcher struct {
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	watching map[string]bool
	notify   chan struct{}
	done     chan struct{}
	debounce time.Duration
	closed   sync.Once
}

// NewWatcher starts watching dirs. Directories that cannot be watched are
// skipped.
func NewWatcher(dirs []string, debounce time.Duration) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	cw := &Watcher{
		watcher:  w,
		watching: make(map[string]bool),
		notify:   make(chan struct{}, 1),
		done:     make(chan struct{}),
		debounce: debounce,
	}
	for _, dir := range dirs {
		if err := cw.watch(dir); err != nil {
			debug.Log(debug.WATCH, "cannot watch %q: %v", dir, err)
		}
	}

	go cw.run()
	return cw, nil
}

// Changes delivers one value per debounced burst of relevant changes.
func (cw *Watcher) Changes() <-chan struct{} {
	return cw.notify
}

// Watching returns the directories currently watched.
func (cw *Watcher) Watching() []string {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	dirs := make([]string, 0, len(cw.watching))
	for dir := range cw.watching {
		dirs = append(dirs, dir)
	}
	return dirs
}

// Close stops the watcher.
func (cw *Watcher) Close() error {
	var err error
	cw.closed.Do(func() {
		close(cw.done)
		err = cw.watcher.Close()
	})
	return err
}

func (cw *Watcher) watch(dir string) error {
	dir = filepath.Clean(dir)
	if err := cw.watcher.Add(dir); err != nil {
		return err
	}
	cw.mu.Lock()
	cw.watching[dir] = true
	cw.mu.Unlock()
	debug.Log(debug.WATCH, "watching %s", dir)
	return nil
}

func (cw *Watcher) run() {
	var (
		pending   bool
		lastEvent time.Time
	)
	ticker := time.NewTicker(cw.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-cw.done:
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			debug.Log(debug.WATCH, "event: %s on %s", event.Op, event.Name)
			pending = true
			lastEvent = time.Now()

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			debug.Log(debug.WATCH, "fsnotify error: %v", err)

		case <-ticker.C:
			if pending && time.Since(lastEvent) >= cw.debounce {
				pending = false
				select {
				case cw.notify <- struct{}{}:
				default:
					// A notification is already queued.
				}
			}
		}
	}
}

// relevant reports whether event can change the set of installed apps.
func relevant(event fsnotify.Event) bool {
	if !(event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Write)) {
		return false
	}
	name := filepath.Base(event.Name)
	return strings.HasSuffix(name, bundleExt) || strings.HasSuffix(name, desktopExt)
}
