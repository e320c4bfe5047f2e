package fsys

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/LFroesch/pathfinder/internal/logger"
)

// debounceDelay coalesces bursts of filesystem events into one refresh.
const debounceDelay = 200 * time.Millisecond

// Watcher follows the single directory being browsed and emits a
// debounced refresh signal when its contents change on disk.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	refresh   chan string
	stopChan  chan struct{}

	mutex   sync.Mutex
	dir     string
	running bool
}

// NewWatcher creates a watcher. Call SetDir to point it somewhere and
// Start to begin delivering refresh signals.
func NewWatcher() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		refresh:   make(chan string, 1),
		stopChan:  make(chan struct{}),
	}, nil
}

// SetDir moves the watch to dir, dropping the previous directory. The
// watch follows the session on every directory change.
func (w *Watcher) SetDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.dir == dir {
		return nil
	}
	if w.dir != "" {
		// Best effort; the old directory may already be gone
		w.fsWatcher.Remove(w.dir)
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		w.dir = ""
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.dir = dir
	return nil
}

// Refresh returns the channel delivering the path of a directory whose
// contents changed.
func (w *Watcher) Refresh() <-chan string {
	return w.refresh
}

// Start begins the event loop.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mutex.Unlock()

	go func() {
		var timer *time.Timer
		var timerC <-chan time.Time
		pending := ""

		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}
				// Only name-set changes matter for the listing
				if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
					continue
				}
				w.mutex.Lock()
				pending = w.dir
				w.mutex.Unlock()
				if timer == nil {
					timer = time.NewTimer(debounceDelay)
					timerC = timer.C
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(debounceDelay)
				}

			case <-timerC:
				timer = nil
				timerC = nil
				if pending == "" {
					continue
				}
				select {
				case w.refresh <- pending:
				default:
					// A refresh is already queued
				}
				pending = ""

			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher error: %v", err)

			case <-w.stopChan:
				return
			}
		}
	}()

	return nil
}

// Stop halts the watcher and closes its channels.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		return
	}
	close(w.stopChan)
	if err := w.fsWatcher.Close(); err != nil {
		logger.Warn("error closing watcher: %v", err)
	}
	w.running = false
}

// IsRunning reports whether the event loop is active.
func (w *Watcher) IsRunning() bool {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.running
}
