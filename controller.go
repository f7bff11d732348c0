package refine

import (
	"time"

	"github.com/rs/zerolog"
)

// Resolution fractions reported to the consuming renderer.
const (
	// DraftResolution is reported while the user is interacting.
	DraftResolution = 0.5
	// FullResolution is reported in every other state.
	FullResolution = 1.0
)

// Default timing for controllers. One throttle window is roughly a frame at
// 30fps; the debounce window is the quiet period required before committing
// to a full-quality render.
const (
	DefaultThrottleDelay = 33 * time.Millisecond
	DefaultDebounceDelay = 400 * time.Millisecond
)

// Options configures a Controller. The zero value is usable: callbacks
// default to no-ops, delays to the package defaults, the scheduler to the
// wall clock and the logger to a no-op.
type Options struct {
	// OnDraftRender runs on every throttled draft render.
	OnDraftRender RenderCallback

	// OnFullRender runs once input has settled for DebounceDelay.
	OnFullRender RenderCallback

	// ThrottleDelay is the minimum spacing between draft renders.
	ThrottleDelay time.Duration

	// DebounceDelay is the quiet period before a full render.
	DebounceDelay time.Duration

	// Scheduler supplies the clock and one-shot timers.
	Scheduler Scheduler

	// Logger receives debug-level transition and render-dispatch events.
	Logger zerolog.Logger
}

// withDefaults fills in zero-valued fields.
func (o Options) withDefaults() Options {
	if o.OnDraftRender == nil {
		o.OnDraftRender = func() {}
	}
	if o.OnFullRender == nil {
		o.OnFullRender = func() {}
	}
	if o.ThrottleDelay <= 0 {
		o.ThrottleDelay = DefaultThrottleDelay
	}
	if o.DebounceDelay <= 0 {
		o.DebounceDelay = DefaultDebounceDelay
	}
	if o.Scheduler == nil {
		o.Scheduler = WallScheduler()
	}
	return o
}

// signal is the empty argument type the controller feeds its primitives.
type signal struct{}

// Controller coordinates draft and full-quality rendering for one
// interactive surface. It throttles user input into draft renders and
// debounces the same input into a single full render once it settles.
// Separate Controller instances are fully independent.
type Controller struct {
	machine  *Machine
	throttle *Throttle[signal]
	debounce *Debounce[signal]

	onDraft RenderCallback
	onFull  RenderCallback
	log     zerolog.Logger
}

// NewController creates a Controller from opts.
func NewController(opts Options) *Controller {
	o := opts.withDefaults()
	c := &Controller{
		machine: NewMachine(),
		onDraft: o.OnDraftRender,
		onFull:  o.OnFullRender,
		log:     o.Logger,
	}
	c.throttle = NewThrottle(o.Scheduler, o.ThrottleDelay, c.draft)
	c.debounce = NewDebounce(o.Scheduler, o.DebounceDelay, c.refine)
	return c
}

// OnUserInput signals one interaction event (a pointer move, a slider tick).
// It is the sole inbound entry point; the timing of calls is the signal.
func (c *Controller) OnUserInput() {
	c.throttle.Call(signal{})
}

// State returns a snapshot of the render state machine.
func (c *Controller) State() RenderState {
	return c.machine.Current()
}

// TargetResolution returns the resolution fraction the renderer should use:
// DraftResolution while interacting, FullResolution otherwise. Refining and
// complete both report full resolution because a full-quality render is in
// flight or just finished.
func (c *Controller) TargetResolution() float64 {
	if c.machine.Current() == StateInteracting {
		return DraftResolution
	}
	return FullResolution
}

// Cancel stops both timing primitives. It is idempotent, does not change
// the current state, and does not undo renders that already ran. A later
// OnUserInput resumes normal operation.
func (c *Controller) Cancel() {
	c.throttle.Cancel()
	c.debounce.Cancel()
}

// Reset cancels all pending work and forces the machine back to idle.
// Teardown/reinitialization hook, not part of the normal flow.
func (c *Controller) Reset() {
	c.Cancel()
	c.machine.Reset()
}

// draft runs on every throttle execution (leading or trailing). Entering
// interacting is legal from every state, so this also covers interrupting
// an in-flight or just-finished full render.
func (c *Controller) draft(signal) {
	c.machine.Transition(StateInteracting)
	c.log.Debug().Stringer("state", StateInteracting).Msg("draft render")
	c.onDraft()
	c.debounce.Call(signal{})
}

// refine runs when input has been quiet for the full debounce window. The
// refining transition is committed before the render callback runs, so a
// panicking callback cannot corrupt the machine; complete and idle follow
// synchronously.
func (c *Controller) refine(signal) {
	c.machine.Transition(StateRefining)
	c.log.Debug().Stringer("state", StateRefining).Msg("full render")
	c.onFull()
	c.machine.Transition(StateComplete)
	c.machine.Transition(StateIdle)
	c.log.Debug().Stringer("state", StateIdle).Msg("render settled")
}
