// Package debounce coalesces bursts of events into a single delivery of the
// most recent value once a quiet window elapses with no further events.
package debounce

import (
	"sync"
	"time"
)

// Debouncer holds the latest value handed to Trigger and calls fn with it
// after the quiet window passes without another Trigger. If events keep
// arriving faster than the window, nothing is delivered until they pause.
//
// fn runs on the timer's goroutine, never on a Trigger caller's, so callers
// are never blocked by slow delivery.
type Debouncer[T any] struct {
	quiet time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   *time.Timer
	latest  T
	pending bool
}

func New[T any](quiet time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{quiet: quiet, fn: fn}
}

// Trigger records v as the latest value, superseding any value not yet
// delivered, and restarts the quiet window.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.latest = v
	d.pending = true
	if d.timer == nil {
		d.timer = time.AfterFunc(d.quiet, d.fire)
	} else {
		d.timer.Reset(d.quiet)
	}
}

func (d *Debouncer[T]) fire() {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return
	}
	v := d.latest
	d.pending = false
	d.mu.Unlock()
	d.fn(v)
}

// Flush delivers any pending value immediately, on the calling goroutine.
// Meant for shutdown, where waiting out the quiet window would lose the
// final state.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	if !d.pending {
		d.mu.Unlock()
		return
	}
	v := d.latest
	d.pending = false
	d.mu.Unlock()
	d.fn(v)
}
