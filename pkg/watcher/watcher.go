package watcher

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Dicklesworthstone/panelnav/pkg/loader"
	"github.com/Dicklesworthstone/panelnav/pkg/model"
)

// ErrClosed is returned when operations are called on a closed ContentWatcher.
var ErrClosed = errors.New("watcher: watcher is closed")

// ReloadFunc receives freshly loaded panels.
type ReloadFunc func(panels []model.PanelRecord)

// ErrorFunc receives load and watch errors. Errors never stop the watcher.
type ErrorFunc func(err error)

// ContentWatcher watches one panel content file and reloads it, debounced.
type ContentWatcher struct {
	path      string
	fs        *fsnotify.Watcher
	debouncer *Debouncer
	onReload  ReloadFunc
	onError   ErrorFunc
	load      func(string) ([]model.PanelRecord, error)

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// Option configures a ContentWatcher.
type Option func(*ContentWatcher)

// WithDebounceDuration sets the quiet period before reloading.
func WithDebounceDuration(d time.Duration) Option {
	return func(w *ContentWatcher) {
		if d > 0 {
			w.debouncer = NewDebouncer(d)
		}
	}
}

// WithErrorHandler sets the error callback.
func WithErrorHandler(fn ErrorFunc) Option {
	return func(w *ContentWatcher) {
		w.onError = fn
	}
}

// Watch starts watching path. The parent directory is watched so that
// editors replacing the file via rename are still seen.
func Watch(path string, onReload ReloadFunc, opts ...Option) (*ContentWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving content path: %w", err)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating content watcher: %w", err)
	}

	w := &ContentWatcher{
		path:      abs,
		fs:        fs,
		debouncer: NewDebouncer(DefaultDebounceDuration),
		onReload:  onReload,
		load:      loader.LoadPanelsFromFile,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	go w.run()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *ContentWatcher) Path() string { return w.path }

func (w *ContentWatcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename) {
				w.debouncer.Trigger(w.reload)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.report(fmt.Errorf("watch %s: %w", w.path, err))
		}
	}
}

func (w *ContentWatcher) reload() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	panels, err := w.load(w.path)
	if err != nil {
		w.report(err)
		return
	}
	log.Printf("[watcher] reloaded %d panels from %s", len(panels), w.path)
	if w.onReload != nil {
		w.onReload(panels)
	}
}

func (w *ContentWatcher) report(err error) {
	log.Printf("[watcher] %v", err)
	if w.onError != nil {
		w.onError(err)
	}
}

// Close stops watching and drops any pending reload.
func (w *ContentWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	w.closed = true
	w.mu.Unlock()

	w.debouncer.Cancel()
	err := w.fs.Close()
	<-w.done
	return err
}
