// Package sched defines the one-shot timer capability the refine core is
// built on. Production code uses the wall clock; tests inject a Fake with a
// virtual clock so timing behavior is deterministic.
package sched

import "time"

// Handle identifies an armed one-shot timer.
type Handle interface {
	// Stop cancels the timer. It returns false if the timer already fired
	// or was already stopped.
	Stop() bool
}

// Scheduler provides a monotonic clock and cancellable one-shot timers.
type Scheduler interface {
	// Now returns the scheduler's current time.
	Now() time.Time

	// ScheduleOnce arms a timer that runs fn once after d has elapsed.
	ScheduleOnce(d time.Duration, fn func()) Handle
}

// Wall returns the production Scheduler backed by the process clock.
func Wall() Scheduler { return wall{} }

type wall struct{}

func (wall) Now() time.Time { return time.Now() }

func (wall) ScheduleOnce(d time.Duration, fn func()) Handle {
	return wallHandle{t: time.AfterFunc(d, fn)}
}

type wallHandle struct {
	t *time.Timer
}

func (h wallHandle) Stop() bool { return h.t.Stop() }
