package search

import (
	"sync"
	"time"
)

// DefaultQuiescence is the pause that must elapse after the last
// keystroke before a query fires.
const DefaultQuiescence = 300 * time.Millisecond

// Debouncer coalesces bursts of triggers into a single callback once
// the quiescence interval passes with no further triggers. Only the
// function from the last Trigger runs.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer creates a debouncer. A non-positive delay uses
// DefaultQuiescence.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultQuiescence
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the quiescence interval, cancelling any
// previously scheduled call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
