package mapfile

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Watcher reports changes to map files so a running game can pick up edits
// made with the map editor. It never blocks: pending events are drained
// when Changed is called.
type Watcher struct {
	w       *fsnotify.Watcher
	log     zerolog.Logger
	changed map[string]bool
}

// Watch starts watching the store's directory.
func (s *Store) Watch() (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}
	if err := w.Add(s.dir); err != nil {
		w.Close()
		return nil, errors.Wrapf(err, "watch %s", s.dir)
	}
	return &Watcher{w: w, log: s.log, changed: make(map[string]bool)}, nil
}

// Changed reports whether the named map was created, written or renamed
// into place since the last call that returned true for it.
func (w *Watcher) Changed(name string) bool {
	w.drain()
	if w.changed[name] {
		delete(w.changed, name)
		return true
	}
	return false
}

func (w *Watcher) drain() {
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.changed[filepath.Base(ev.Name)] = true
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("map watcher")
		default:
			return
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.w.Close()
}
