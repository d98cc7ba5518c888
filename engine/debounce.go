package engine

import "time"

// ============================================================================
// DEBOUNCE — Cancellable Delayed Tasks
// ============================================================================
// Free-text search is the only debounced input: rapid keystrokes collapse
// into a single re-filter fired after a quiet period, canceling any pending
// one. This is the only cancellation semantics in the system.
// ============================================================================

// SearchDebounce is the quiet period before a search edit re-filters.
const SearchDebounce = 200 * time.Millisecond

// Handle is a scheduled task that can be canceled before it fires.
type Handle interface {
	// Cancel stops the task if it has not fired; reports whether it did.
	Cancel() bool
}

// Scheduler runs a function after a delay.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Handle
}

// TimerScheduler schedules on the runtime timer heap.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(delay time.Duration, fn func()) Handle {
	return timerHandle{time.AfterFunc(delay, fn)}
}

type timerHandle struct{ t *time.Timer }

func (h timerHandle) Cancel() bool { return h.t.Stop() }

// Debouncer collapses rapid triggers into one: each Trigger cancels the
// pending task, so only the last one within the quiet period fires.
// Not safe for concurrent use — the dashboard has one logical thread.
type Debouncer struct {
	sched   Scheduler
	delay   time.Duration
	pending Handle
}

// NewDebouncer creates a debouncer with the given scheduler and quiet period.
func NewDebouncer(sched Scheduler, delay time.Duration) *Debouncer {
	return &Debouncer{sched: sched, delay: delay}
}

// Trigger schedules fn after the quiet period, canceling any pending task.
func (d *Debouncer) Trigger(fn func()) {
	if d.pending != nil {
		d.pending.Cancel()
	}
	d.pending = d.sched.Schedule(d.delay, fn)
}

// Stop cancels any pending task.
func (d *Debouncer) Stop() {
	if d.pending != nil {
		d.pending.Cancel()
		d.pending = nil
	}
}
