// Package watcher turns file system notifications into debounced change
// batches for the definition directories.
package watcher

import (
	"sync"
	"time"
	"unique"

	"github.com/interactive-instruments/etf-spi/internal/core/ports"
)

// Debouncer coalesces rapid file system events. The last operation seen for
// a path wins.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[unique.Handle[string]]ports.WatchOp
	timer    *time.Timer
	window   time.Duration
	callback func(changes map[string]ports.WatchOp)
}

// NewDebouncer creates a debouncer that calls callback once no event has
// arrived for window.
func NewDebouncer(window time.Duration, callback func(changes map[string]ports.WatchOp)) *Debouncer {
	return &Debouncer{
		pending:  make(map[unique.Handle[string]]ports.WatchOp),
		window:   window,
		callback: callback,
	}
}

// Add records an event and restarts the window.
func (d *Debouncer) Add(ev ports.WatchEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[unique.Make(ev.Path)] = ev.Operation
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	d.timer = nil
	changes := d.takeLocked()
	d.mu.Unlock()

	if len(changes) > 0 && d.callback != nil {
		d.callback(changes)
	}
}

// Flush hands all pending events to the callback and blocks until it
// returns. It does nothing if the timer has already fired.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}
	changes := d.takeLocked()
	d.mu.Unlock()

	if len(changes) > 0 && d.callback != nil {
		d.callback(changes)
	}
}

func (d *Debouncer) takeLocked() map[string]ports.WatchOp {
	if len(d.pending) == 0 {
		return nil
	}
	changes := make(map[string]ports.WatchOp, len(d.pending))
	for h, op := range d.pending {
		changes[h.Value()] = op
	}
	d.pending = make(map[unique.Handle[string]]ports.WatchOp)
	return changes
}
