package tileset

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDedupe = 100 * time.Millisecond

// catalogOps are the fsnotify operations that can change a catalog's contents.
const catalogOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Change names a catalog file that was written, created, renamed or removed.
type Change struct {
	Path    string
	Removed bool
}

// changeFilter drops repeat notifications for a file inside the dedupe window.
type changeFilter struct {
	window time.Duration
	seen   map[string]time.Time
}

func newChangeFilter(window time.Duration) *changeFilter {
	return &changeFilter{window: window, seen: make(map[string]time.Time)}
}

func (f *changeFilter) admit(ev fsnotify.Event, now time.Time) (Change, bool) {
	if ev.Op&catalogOps == 0 || !IsCatalogFile(ev.Name) {
		return Change{}, false
	}
	if at, ok := f.seen[ev.Name]; ok && now.Sub(at) < f.window {
		return Change{}, false
	}
	f.seen[ev.Name] = now
	return Change{Path: ev.Name, Removed: ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0}, true
}

// Watcher reports catalog file changes in a set of directories. Changes is
// closed when the watcher stops; Errors is closed after it.
type Watcher struct {
	fs      *fsnotify.Watcher
	Changes chan Change
	Errors  chan error
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fw,
		Changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		done:    make(chan struct{}),
	}
	go w.loop(newChangeFilter(watchDedupe))
	return w, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) loop(filter *changeFilter) {
	defer close(w.Errors)
	defer close(w.Changes)

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			change, keep := filter.admit(ev, time.Now())
			if !keep {
				continue
			}
			select {
			case w.Changes <- change:
			case <-w.done:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			// only the latest error matters to the reader
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.done:
			return
		}
	}
}
