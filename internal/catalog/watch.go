package catalog

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher signals when the animations in a user directory change. Bursts of
// events (an editor saving, a copy of many files) collapse into one signal
// once the directory has been quiet for the settle period.
type Watcher struct {
	fsw     *fsnotify.Watcher
	dir     string
	settle  time.Duration
	changes chan struct{}
	stop    chan struct{}
	once    sync.Once
}

// NewWatcher starts watching dir. The directory must exist.
func NewWatcher(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		dir:     dir,
		settle:  100 * time.Millisecond,
		changes: make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Changes delivers one value per settled burst of changes. A pending signal
// that has not been received absorbs later ones.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.fsw.Close()
	})
	return err
}

// relevant reports whether ev can alter the catalog.
func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(ev.Name)
	return base == descriptionsFile || isAssetName(base)
}

func (w *Watcher) run() {
	// The timer is armed only while a burst is in progress.
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.stop:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			slog.Debug("animation dir changed", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(w.settle)

		case <-timer.C:
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("watch animation dir", "dir", w.dir, "err", err)
		}
	}
}
