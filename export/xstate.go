// Package export converts the refine render state machine to external
// formats like XState JSON, for visualization and documentation tooling.
package export

import (
	"encoding/json"

	"github.com/quietframe/refine"
)

// XStateMachine represents an XState machine configuration.
// The exported JSON can be used with:
// - XState Visualizer (stately.ai/viz)
// - XState Inspector
// - XState v5 compatible tools
type XStateMachine struct {
	ID      string                `json:"id"`
	Initial string                `json:"initial,omitempty"`
	States  map[string]XStateNode `json:"states"`
}

// XStateNode represents a single state in XState format.
type XStateNode struct {
	On map[string]XStateTransition `json:"on,omitempty"`
}

// XStateTransition represents a transition in XState format.
type XStateTransition struct {
	Target string `json:"target,omitempty"`
}

// allStates lists the render states in declaration order so the export is
// stable across runs.
var allStates = []refine.RenderState{
	refine.StateIdle,
	refine.StateInteracting,
	refine.StateRefining,
	refine.StateComplete,
}

// eventName names the trigger for an edge of the transition table. Every
// edge into interacting is driven by user input; the rest follow the
// settle/render/finish flow of the controller.
func eventName(from, to refine.RenderState) string {
	switch {
	case to == refine.StateInteracting:
		return "INPUT"
	case to == refine.StateRefining:
		return "SETTLE"
	case from == refine.StateRefining && to == refine.StateComplete:
		return "RENDERED"
	default:
		return "DONE"
	}
}

// Export builds the XState representation of the render state machine.
func Export() *XStateMachine {
	machine := &XStateMachine{
		ID:      "renderQuality",
		Initial: refine.StateIdle.String(),
		States:  make(map[string]XStateNode),
	}

	for _, from := range allStates {
		node := XStateNode{}
		for _, to := range refine.AllowedTargets(from) {
			if node.On == nil {
				node.On = make(map[string]XStateTransition)
			}
			node.On[eventName(from, to)] = XStateTransition{Target: to.String()}
		}
		machine.States[from.String()] = node
	}

	return machine
}

// ExportJSON returns the render state machine as a JSON string.
func ExportJSON() (string, error) {
	data, err := json.Marshal(Export())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ExportJSONIndent returns the render state machine as a formatted JSON string.
func ExportJSONIndent(prefix, indent string) (string, error) {
	data, err := json.MarshalIndent(Export(), prefix, indent)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
