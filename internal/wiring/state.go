package wiring

import (
	"github.com/bracketlab/core/internal/bracket"
	"github.com/bracketlab/core/internal/editor"
)

// Phase is the machine's current mode.
type Phase string

const (
	PhaseIdle   Phase = "idle"
	PhaseWiring Phase = "wiring"
)

// State is the machine state. The zero value is not meaningful; use Idle.
//
// Anchor is an opaque value captured at session start for the presentation
// layer (typically a screen position). This package never inspects it.
type State struct {
	Phase        Phase
	SourceNodeID string
	SourcePort   bracket.OutputPort
	Anchor       any
}

// Idle returns the resting state.
func Idle() State {
	return State{Phase: PhaseIdle}
}

// Event is one discrete interaction gesture. The set is closed.
type Event interface {
	isEvent()
}

// ActivateOutput is a click on a node's output port.
type ActivateOutput struct {
	NodeID string
	Port   bracket.OutputPort
	Anchor any
}

// ActivateInput is a click on a node's input port.
type ActivateInput struct {
	NodeID string
	Port   bracket.InputPort
}

// Cancel is an explicit cancel gesture: escape, or an empty-canvas click.
type Cancel struct{}

func (ActivateOutput) isEvent() {}
func (ActivateInput) isEvent()  {}
func (Cancel) isEvent()         {}

// Step processes one event as a single atomic transition. It returns the
// next state and, when a valid input activation completes the session, the
// AddEdge action the caller should dispatch to the editor. Invalid events
// leave the state unchanged and emit nothing.
func Step(g *bracket.Graph, s State, ev Event) (State, *editor.AddEdge) {
	switch e := ev.(type) {
	case ActivateOutput:
		return stepOutput(g, s, e), nil
	case ActivateInput:
		return stepInput(g, s, e)
	case Cancel:
		return Idle(), nil
	}
	return s, nil
}

func stepOutput(g *bracket.Graph, s State, e ActivateOutput) State {
	if !bracket.ValidOutputPort(e.Port) {
		return s
	}
	if _, ok := g.Node(e.NodeID); !ok {
		return s
	}

	// Re-clicking the pending source is a cancel gesture. Any other
	// output activation while wiring implicitly cancels and re-enters
	// with the new source.
	if s.Phase == PhaseWiring && s.SourceNodeID == e.NodeID && s.SourcePort == e.Port {
		return Idle()
	}

	return State{
		Phase:        PhaseWiring,
		SourceNodeID: e.NodeID,
		SourcePort:   e.Port,
		Anchor:       e.Anchor,
	}
}

func stepInput(g *bracket.Graph, s State, e ActivateInput) (State, *editor.AddEdge) {
	if !IsValidTarget(g, s, e.NodeID, e.Port) {
		return s, nil
	}
	action := &editor.AddEdge{Candidate: bracket.EdgeEndpoints{
		FromNode: s.SourceNodeID,
		FromPort: s.SourcePort,
		ToNode:   e.NodeID,
		ToPort:   e.Port,
	}}
	return Idle(), action
}
