// Package watch notifies the UI when the directory on screen changes on disk.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultCoalesce is the quiet period used when none is given.
const DefaultCoalesce = 250 * time.Millisecond

// Watcher follows one directory at a time. A burst of events is reported as
// a single change once the directory has been quiet for the coalesce period.
type Watcher struct {
	fsw      *fsnotify.Watcher
	log      *zap.Logger
	coalesce time.Duration
	changes  chan string
	cancel   context.CancelFunc
	done     chan struct{}

	mu  sync.Mutex
	dir string
}

// New starts a watcher with nothing watched yet.
func New(coalesce time.Duration, log *zap.Logger) (*Watcher, error) {
	if coalesce <= 0 {
		coalesce = DefaultCoalesce
	}
	if log == nil {
		log = zap.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		fsw:      fsw,
		log:      log,
		coalesce: coalesce,
		changes:  make(chan string, 1),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go w.run(ctx)
	return w, nil
}

// Watch switches the watcher to dir. Watching the current directory again is
// a no-op.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if dir == w.dir {
		return nil
	}
	if w.dir != "" {
		_ = w.fsw.Remove(w.dir)
		w.dir = ""
	}
	if err := w.fsw.Add(dir); err != nil {
		return err
	}
	w.dir = dir
	return nil
}

// Dir returns the directory currently watched.
func (w *Watcher) Dir() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

// Changes delivers the path of the watched directory after it changed.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Close stops watching and releases the OS handles.
func (w *Watcher) Close() error {
	w.cancel()
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	var timer *time.Timer
	var timerC <-chan time.Time
	pending := ""

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			dir := w.Dir()
			if dir == "" || (event.Name != dir && filepath.Dir(event.Name) != dir) {
				continue
			}
			pending = dir
			if timer == nil {
				timer = time.NewTimer(w.coalesce)
			} else {
				timer.Reset(w.coalesce)
			}
			timerC = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.String("path", w.Dir()), zap.Error(err))

		case <-timerC:
			timerC = nil
			select {
			case w.changes <- pending:
			default:
			}
		}
	}
}
