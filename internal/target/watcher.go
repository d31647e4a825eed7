package target

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a target list whenever the file changes on disk. Editors
// often replace files rather than write in place, so the parent directory
// is watched and events are filtered by base name.
type Watcher struct {
	path     string
	debounce time.Duration
	fw       *fsnotify.Watcher
	updates  chan *List
	errs     chan error
	done     chan struct{}
}

// NewWatcher starts watching the target list at path. Updates carrying the
// freshly parsed list arrive on Updates; parse or watch failures on Errors.
// Call Close to stop.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w := &Watcher{
		path:     path,
		debounce: 250 * time.Millisecond,
		fw:       fw,
		updates:  make(chan *List, 1),
		errs:     make(chan error, 1),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Updates delivers reloaded lists.
func (w *Watcher) Updates() <-chan *List { return w.updates }

// Errors delivers reload failures. The watcher keeps running after one.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	base := filepath.Base(w.path)
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			// Coalesce bursts of events from a single save.
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-fire:
			timer = nil
			fire = nil
			list, err := LoadFile(w.path)
			if err != nil {
				select {
				case w.errs <- err:
				case <-w.done:
					return
				}
				continue
			}
			select {
			case w.updates <- list:
			case <-w.done:
				return
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			case <-w.done:
				return
			}
		}
	}
}
