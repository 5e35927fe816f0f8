package keymapfile

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/keychord"
)

// DefaultDebounce is the delay used to coalesce rapid writes to the
// watched file (editors often emit several events per save).
const DefaultDebounce = 250 * time.Millisecond

// Watcher keeps a registry in sync with a keymap file on disk. When the file
// is written, the previously-applied groups are unregistered and the new
// definitions applied in their place.
type Watcher struct {
	mu sync.Mutex

	path     string
	reg      *keychord.Registry
	actions  map[string]keychord.Callback
	debounce time.Duration

	fsw     *fsnotify.Watcher
	pending *time.Timer

	// groups applied by the last successful load; removed before a reload.
	groups []string

	errors  chan error
	closeCh chan struct{}
	wg      sync.WaitGroup
	closed  bool
}

// WatchFile loads path into reg immediately, then watches it for changes.
// The returned watcher must be closed to release the fsnotify handle.
func WatchFile(path string, reg *keychord.Registry, actions map[string]keychord.Callback) (*Watcher, error) {
	return WatchFileDebounced(path, reg, actions, DefaultDebounce)
}

// WatchFileDebounced is WatchFile with an explicit debounce delay.
func WatchFileDebounced(path string, reg *keychord.Registry, actions map[string]keychord.Callback, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		path:     path,
		reg:      reg,
		actions:  actions,
		debounce: debounce,
		errors:   make(chan error, 16),
		closeCh:  make(chan struct{}),
	}

	if err := w.reload(); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	// Watch the directory: editors replace files on save, which drops a
	// watch placed on the file itself.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}
	w.fsw = fsw

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

// Errors returns the channel on which reload failures are reported.
// Failed reloads leave the previously-applied bindings in place.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops watching and cancels any pending reload. The registry and its
// applied bindings are left as-is. Idempotent.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.pending != nil {
		w.pending.Stop()
		w.pending = nil
	}
	close(w.closeCh)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.reportError(err)

		case <-w.closeCh:
			return
		}
	}
}

// scheduleReload re-arms the debounce timer; only the last write in a burst
// triggers a reload.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, func() {
		if err := w.reload(); err != nil {
			w.reportError(err)
		}
	})
}

// reload parses the file, swaps out the previously-applied groups, and
// applies the new definitions. On a parse failure nothing is swapped.
func (w *Watcher) reload() error {
	f, err := LoadFile(w.path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	for _, name := range w.groups {
		w.reg.Unregister(name)
	}
	w.groups = f.GroupNames()
	w.mu.Unlock()

	return Apply(f, w.reg, w.actions)
}

func (w *Watcher) reportError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}
