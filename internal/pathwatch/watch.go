// Package pathwatch provides file system change notifications.
package pathwatch

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// A Watcher keeps track of a set of paths and sends notifications on user-provided
// channels whenever the file at one of them changes in any way.
// The specific nature of the change is not reported; it is up to the user to determine
// what happened.
//
// Paths are watched through their parent directories, so files that are replaced by
// renaming another file over them are still followed. The parent directory must exist
// when the path is added.
//
// Any errors that the Watcher encounters while monitoring the paths are delivered on the
// channel returned by Errors.
type Watcher struct {
	fs      *fsnotify.Watcher
	files   map[string][]chan<- struct{}
	dirs    map[string]int
	errors  chan error
	control chan func()
	done    chan struct{}
}

// NewWatcher starts a new watcher.
// When no longer in use, the user should call Close to release resources associated with it.
func NewWatcher() (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "pathwatch: start watcher")
	}
	w := &Watcher{
		fs:      fs,
		files:   map[string][]chan<- struct{}{},
		dirs:    map[string]int{},
		errors:  make(chan error, 10),
		control: make(chan func(), 10),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Normally we don't want a notification when we add a file, since it's redundant,
// but for testing we need it in order to be able to reliably detect modifications without
// races.
var notifyOnAdd = false

// Add begins sending change notifications for a path on the given channel.
// Multiple calls to Add for the same path, but different channels, are permitted;
// in that case, the notifications will be sent on all of them.
//
// Notifications are not queued: if ch is full when a change happens, that notification
// is dropped, since the pending one already tells the receiver to look again.
func (w *Watcher) Add(path string, ch chan<- struct{}) {
	w.control <- func() {
		path, err := filepath.Abs(path)
		if err != nil {
			w.reportError(err)
			return
		}
		dir := filepath.Dir(path)
		if w.dirs[dir] == 0 {
			if err := w.fs.Add(dir); err != nil {
				w.reportError(errors.Wrapf(err, "pathwatch: watch %s", path))
				return
			}
		}
		w.dirs[dir]++
		w.files[path] = append(w.files[path], ch)
		if notifyOnAdd {
			notify(ch)
		}
	}
}

// Remove stops sending change notifications for a path on the given channel.
// It does not cancel other calls to Add made for the same path, but different
// channels.
func (w *Watcher) Remove(path string, ch chan<- struct{}) {
	w.control <- func() {
		path, err := filepath.Abs(path)
		if err != nil {
			return
		}
		observers := w.files[path]
		for i, ob := range observers {
			if ob != ch {
				continue
			}
			if len(observers) == 1 {
				delete(w.files, path)
			} else {
				n := len(observers) - 1
				observers[i] = observers[n]
				w.files[path] = observers[:n]
			}
			dir := filepath.Dir(path)
			if w.dirs[dir]--; w.dirs[dir] == 0 {
				delete(w.dirs, dir)
				w.fs.Remove(dir)
			}
			return
		}
	}
}

// Errors returns a channel on which the Watcher delivers errors it encounters.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Close stops delivering change notifications for any paths and releases all resources
// associated with the watcher.
func (w *Watcher) Close() error {
	w.control <- nil
	<-w.done
	return w.fs.Close()
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			for _, ob := range w.files[filepath.Clean(ev.Name)] {
				notify(ob)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		case f := <-w.control:
			if f == nil {
				return
			}
			f()
		}
	}
}

func (w *Watcher) reportError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}

func notify(ch chan<- struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
