package sched

import (
	"sync"
	"time"
)

// Fake is a Scheduler driven by a virtual clock. Time only moves when
// Advance is called, which makes timer-dependent behavior fully
// deterministic under test.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Time
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

// NewFake creates a Fake whose clock starts at the given instant.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the current virtual time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// ScheduleOnce arms a virtual timer due at now+d.
func (f *Fake) ScheduleOnce(d time.Duration, fn func()) Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t := &fakeTimer{at: f.now.Add(d), seq: f.seq, fn: fn}
	f.timers = append(f.timers, t)
	return &fakeHandle{f: f, t: t}
}

// Advance moves the virtual clock forward by d, running every due timer in
// deadline order (arming order on ties). The clock is set to each timer's
// deadline before its callback runs, so callbacks that schedule follow-up
// timers see a consistent now and their timers participate in the same
// Advance when due.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	for {
		t := f.popDueLocked(target)
		if t == nil {
			break
		}
		f.now = t.at
		t.fired = true
		fn := t.fn
		// Run outside the lock: callbacks call back into the scheduler.
		f.mu.Unlock()
		fn()
		f.mu.Lock()
	}
	f.now = target
	f.mu.Unlock()
}

// Pending reports the number of armed timers.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// popDueLocked removes and returns the earliest live timer due at or before
// target, or nil when none remain.
func (f *Fake) popDueLocked(target time.Time) *fakeTimer {
	best := -1
	for i, t := range f.timers {
		if t.stopped || t.fired || t.at.After(target) {
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		b := f.timers[best]
		if t.at.Before(b.at) || (t.at.Equal(b.at) && t.seq < b.seq) {
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	t := f.timers[best]
	f.timers = append(f.timers[:best], f.timers[best+1:]...)
	return t
}

type fakeHandle struct {
	f *Fake
	t *fakeTimer
}

func (h *fakeHandle) Stop() bool {
	h.f.mu.Lock()
	defer h.f.mu.Unlock()
	if h.t.stopped || h.t.fired {
		return false
	}
	h.t.stopped = true
	return true
}
