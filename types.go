// Package refine schedules progressive refinement for interactive editing
// surfaces: cheap draft renders while the user is actively adjusting
// parameters, and a single full-quality render once input settles.
package refine

import (
	"time"

	"github.com/quietframe/refine/internal/sched"
)

// Re-export the scheduling capability from internal/sched for the public API
type (
	// Scheduler provides the monotonic clock and cancellable one-shot
	// timers the core runs on. Inject a FakeScheduler in tests.
	Scheduler = sched.Scheduler
	// TimerHandle identifies an armed one-shot timer.
	TimerHandle = sched.Handle
	// FakeScheduler is a Scheduler driven by a virtual clock.
	FakeScheduler = sched.Fake
)

// WallScheduler returns the production Scheduler backed by the process clock.
func WallScheduler() Scheduler { return sched.Wall() }

// NewFakeScheduler creates a FakeScheduler whose clock starts at start.
func NewFakeScheduler(start time.Time) *FakeScheduler { return sched.NewFake(start) }

// RenderCallback is a render hook supplied by the consuming surface.
// The core passes no arguments; the timing of calls is the only signal.
type RenderCallback func()
