package editor

import "time"

// Debouncer holds at most one pending call. Scheduling again replaces the
// pending call and restarts the quiet period. It never fires on its own;
// Poll must be called from the event loop.
type Debouncer struct {
	delay    time.Duration
	now      func() time.Time
	deadline time.Time
	pending  func()
}

// NewDebouncer returns a debouncer using now as its clock; nil means time.Now.
func NewDebouncer(delay time.Duration, now func() time.Time) *Debouncer {
	if now == nil {
		now = time.Now
	}
	return &Debouncer{delay: delay, now: now}
}

// Schedule replaces any pending call with fn.
func (d *Debouncer) Schedule(fn func()) {
	d.pending = fn
	d.deadline = d.now().Add(d.delay)
}

// Pending reports whether a call is waiting.
func (d *Debouncer) Pending() bool {
	return d.pending != nil
}

// Cancel drops the pending call.
func (d *Debouncer) Cancel() {
	d.pending = nil
}

// Poll runs the pending call once its quiet period has elapsed.
func (d *Debouncer) Poll() bool {
	if d.pending == nil || d.now().Before(d.deadline) {
		return false
	}
	fn := d.pending
	d.pending = nil
	fn()
	return true
}
