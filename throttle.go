package refine

import (
	"sync"
	"time"
)

// Throttle rate-limits calls to a wrapped function. The first call of a
// window executes immediately (leading edge); calls arriving inside the
// window are coalesced into one deferred execution with the latest arguments
// (trailing edge). At most one trailing timer is armed per window.
type Throttle[T any] struct {
	fn    func(T)
	delay time.Duration
	sch   Scheduler

	mu       sync.Mutex
	lastCall time.Time // time of the last *executed* call
	hasLast  bool
	pending  bool   // a trailing execution is armed
	gen      uint64 // incremented on arm/cancel; stale timers see a mismatch
	args     T      // latest arguments seen while pending
	timer    TimerHandle
}

// NewThrottle wraps fn with a throttle of the given delay. A nil scheduler
// means the wall clock.
func NewThrottle[T any](sch Scheduler, delay time.Duration, fn func(T)) *Throttle[T] {
	if sch == nil {
		sch = WallScheduler()
	}
	return &Throttle[T]{fn: fn, delay: delay, sch: sch}
}

// Call requests an execution of the wrapped function with args.
//
// If at least delay has passed since the last executed call (or this is the
// first call ever), fn runs synchronously. Otherwise args replace any
// previously stored trailing arguments, and a trailing timer is armed for
// the remainder of the window unless one already is.
func (t *Throttle[T]) Call(args T) {
	t.mu.Lock()
	now := t.sch.Now()
	// The !t.pending guard closes a wall-clock race: an overdue trailing
	// timer may be about to run, and it must stay the window's one
	// execution rather than double-firing with a fresh leading edge.
	if (!t.hasLast || now.Sub(t.lastCall) >= t.delay) && !t.pending {
		t.lastCall = now
		t.hasLast = true
		t.mu.Unlock()
		t.fn(args)
		return
	}

	t.args = args
	if !t.pending {
		t.pending = true
		t.gen++
		gen := t.gen
		remaining := t.delay - now.Sub(t.lastCall)
		t.timer = t.sch.ScheduleOnce(remaining, func() { t.fire(gen) })
	}
	t.mu.Unlock()
}

// fire is the trailing-edge timer callback. It executes fn with the latest
// stored arguments and starts a new window.
func (t *Throttle[T]) fire(gen uint64) {
	t.mu.Lock()
	if !t.pending || gen != t.gen {
		// Cancelled or superseded after this timer was armed.
		t.mu.Unlock()
		return
	}
	args := t.args
	t.clearPendingLocked()
	t.lastCall = t.sch.Now()
	t.mu.Unlock()
	t.fn(args)
}

// Cancel clears any armed trailing timer and discards pending arguments.
// The last-execution time is untouched, so a subsequent Call inside the
// still-open window goes back on the trailing path.
func (t *Throttle[T]) Cancel() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.gen++
	t.clearPendingLocked()
	t.mu.Unlock()
}

func (t *Throttle[T]) clearPendingLocked() {
	t.pending = false
	t.timer = nil
	var zero T
	t.args = zero
}
