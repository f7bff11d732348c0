package refine

import (
	"sync"
	"time"
)

// Debounce defers execution of a wrapped function until delay has elapsed
// with no new call. Every call restarts the timer with that call's
// arguments; there is no leading-edge execution.
type Debounce[T any] struct {
	fn    func(T)
	delay time.Duration
	sch   Scheduler

	mu    sync.Mutex
	armed bool
	gen   uint64 // incremented on every Call/Cancel; stale timers see a mismatch
	args  T
	timer TimerHandle
}

// NewDebounce wraps fn with a debounce of the given delay. A nil scheduler
// means the wall clock.
func NewDebounce[T any](sch Scheduler, delay time.Duration, fn func(T)) *Debounce[T] {
	if sch == nil {
		sch = WallScheduler()
	}
	return &Debounce[T]{fn: fn, delay: delay, sch: sch}
}

// Call cancels any armed timer and arms a fresh one for the full delay,
// carrying this call's arguments.
func (d *Debounce[T]) Call(args T) {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.armed = true
	d.args = args
	gen := d.gen
	d.timer = d.sch.ScheduleOnce(d.delay, func() { d.fire(gen) })
	d.mu.Unlock()
}

// fire executes fn with the arguments of the last Call, unless the timer
// was superseded or cancelled after it was armed.
func (d *Debounce[T]) fire(gen uint64) {
	d.mu.Lock()
	if !d.armed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	args := d.args
	d.clearLocked()
	d.mu.Unlock()
	d.fn(args)
}

// Cancel clears the armed timer. Nothing executes until a new Call.
func (d *Debounce[T]) Cancel() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.clearLocked()
	d.mu.Unlock()
}

func (d *Debounce[T]) clearLocked() {
	d.armed = false
	d.timer = nil
	var zero T
	d.args = zero
}
