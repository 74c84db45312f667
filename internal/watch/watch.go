// Package watch emits change events for the collection file so the stats
// cache can invalidate without polling.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounceDelay batches editor write bursts into one event.
const debounceDelay = 100 * time.Millisecond

// Watcher monitors one file for changes. It watches the parent directory
// because editors and atomic writers replace the file by rename, which
// drops a watch placed on the file itself.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	logger    *zap.Logger
	events    chan struct{}
	stop      chan struct{}
	debounce  *time.Timer
	mu        sync.Mutex
	closed    bool
}

// New creates a watcher for the file at path. The parent directory must
// exist; the file itself may not yet.
func New(path string, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	dir := filepath.Dir(abs)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		fsWatcher: fsw,
		path:      abs,
		logger:    logger,
		events:    make(chan struct{}, 1),
		stop:      make(chan struct{}),
	}

	go w.run()
	return w, nil
}

// Events returns a channel that signals when the file changes. It is
// closed when the watcher stops.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Stop shuts down the watcher and closes the events channel.
func (w *Watcher) Stop() {
	close(w.stop)
	w.fsWatcher.Close()
}

// run processes file system events.
func (w *Watcher) run() {
	defer func() {
		w.mu.Lock()
		w.closed = true
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.mu.Unlock()
		close(w.events)
	}()

	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.matches(event.Name) {
				continue
			}
			w.logger.Debug("collection file event",
				zap.String("op", event.Op.String()))
			w.schedule()
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

// matches reports whether the event refers to the watched file. The parent
// directory watch also surfaces events for sibling files, including our own
// temp file during atomic saves.
func (w *Watcher) matches(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == w.path
}

// schedule arms the debounce timer, restarting it if already armed. A full
// signal channel means an event is already pending and the new one folds
// into it.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debounceDelay, func() {
		w.mu.Lock()
		defer w.mu.Unlock()

		if w.closed {
			return
		}
		select {
		case w.events <- struct{}{}:
		default:
		}
	})
}
