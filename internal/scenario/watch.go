package scenario

import (
	"os"
	"time"
)

// Watcher polls file modification times and triggers a callback on
// change. Polling keeps the dependency surface flat; scenario files
// change rarely.
type Watcher struct {
	Paths    []string
	Interval time.Duration

	onChange  func(string) // called with the path that changed
	stopCh    chan struct{}
	lastMTime map[string]time.Time
}

// NewWatcher creates a watcher for the given paths and interval.
func NewWatcher(paths []string, interval time.Duration, onChange func(string)) *Watcher {
	return &Watcher{
		Paths:     paths,
		Interval:  interval,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// Start begins polling in a goroutine.
func (w *Watcher) Start() {
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		// prime the mtime cache
		w.scanAll(true)
		for {
			select {
			case <-ticker.C:
				w.scanAll(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher.
func (w *Watcher) Stop() {
	close(w.stopCh)
}

func (w *Watcher) scanAll(prime bool) {
	for _, p := range w.Paths {
		fi, err := os.Stat(p)
		if err != nil {
			// missing file: keep going, it may appear later
			continue
		}
		mt := fi.ModTime()
		last, ok := w.lastMTime[p]
		if !ok {
			w.lastMTime[p] = mt
			continue
		}
		if mt.After(last) {
			w.lastMTime[p] = mt
			if !prime && w.onChange != nil {
				w.onChange(p)
			}
		}
	}
}
