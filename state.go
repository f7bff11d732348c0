package refine

import "sync"

// RenderState is the render-quality phase of an interactive surface.
type RenderState int

const (
	// StateIdle means no interaction is in progress and the surface is at
	// full quality.
	StateIdle RenderState = iota
	// StateInteracting means the user is actively adjusting parameters and
	// the surface shows draft renders.
	StateInteracting
	// StateRefining means input has settled and a full-quality render is in
	// flight.
	StateRefining
	// StateComplete means a full-quality render just finished. The state is
	// transient: the controller forces idle immediately after entering it.
	StateComplete
)

// String returns the human-readable name of the state.
func (s RenderState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInteracting:
		return "interacting"
	case StateRefining:
		return "refining"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// transitions is the single source of truth for legal moves.
//
// idle->refining and idle->complete are forbidden: a full render must be
// preceded by at least one draft interaction. refining has no self loop: a
// second refine request while one is in flight must be modeled as an
// interrupt back to interacting, never as "refining again".
var transitions = map[RenderState][]RenderState{
	StateIdle:        {StateInteracting},
	StateInteracting: {StateInteracting, StateRefining},
	StateRefining:    {StateComplete, StateInteracting},
	StateComplete:    {StateIdle, StateInteracting},
}

// AllowedTargets returns the legal transition targets from the given state.
// The returned slice is a copy and safe to mutate.
func AllowedTargets(from RenderState) []RenderState {
	targets := transitions[from]
	out := make([]RenderState, len(targets))
	copy(out, targets)
	return out
}

// Machine is the render-quality state machine. A fresh Machine starts in
// StateIdle. It is safe for concurrent use; each instance is independent.
type Machine struct {
	mu    sync.Mutex
	state RenderState
}

// NewMachine creates a Machine in StateIdle.
func NewMachine() *Machine {
	return &Machine{state: StateIdle}
}

// Current returns the current state.
func (m *Machine) Current() RenderState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Transition moves to target iff the move is legal from the current state.
// It returns false and leaves the state unchanged otherwise.
func (m *Machine) Transition(target RenderState) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !legal(m.state, target) {
		return false
	}
	m.state = target
	return true
}

// CanTransition reports whether Transition(target) would succeed right now.
func (m *Machine) CanTransition(target RenderState) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return legal(m.state, target)
}

// Reset unconditionally forces the machine back to StateIdle. It is a
// teardown/reinitialization hook, not part of the normal flow.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateIdle
}

func legal(from, to RenderState) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}
