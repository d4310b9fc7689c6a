package harness

import (
	"context"
	"fmt"

	"github.com/bracketlab/core/internal/bracket"
	"github.com/bracketlab/core/internal/editor"
	"github.com/bracketlab/core/internal/ruleset"
	"github.com/bracketlab/core/internal/session"
	"github.com/bracketlab/core/internal/validate"
	"github.com/bracketlab/core/internal/wiring"
)

// Result holds everything a scenario produced.
type Result struct {
	Graph       bracket.Graph
	Diagnostics []validate.Diagnostic
	Rules       ruleset.Ruleset
}

// Run executes a scenario against a fresh session and checks its Expect
// clause. The exported ruleset in the result is unconditional (not gated
// on validation), since scenarios frequently script broken intermediate
// states on purpose.
func Run(scenario *Scenario) (*Result, error) {
	sess, err := newSession(scenario)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	for i, step := range scenario.Steps {
		if err := runStep(ctx, sess, &step); err != nil {
			return nil, fmt.Errorf("steps[%d] (%s): %w", i, step.Action, err)
		}
	}

	graph := sess.Graph()
	result := &Result{
		Graph:       graph,
		Diagnostics: sess.Diagnostics(),
		Rules:       ruleset.ToRuleset(&graph),
	}

	if err := checkExpect(scenario, result.Diagnostics); err != nil {
		return result, err
	}
	return result, nil
}

func newSession(scenario *Scenario) (*session.Session, error) {
	if scenario.Ruleset == "" {
		return session.New(), nil
	}
	r, err := ruleset.Load(scenario.Ruleset)
	if err != nil {
		return nil, fmt.Errorf("load scenario ruleset: %w", err)
	}
	return session.NewFromRuleset(*r), nil
}

func runStep(ctx context.Context, sess *session.Session, step *Step) error {
	if step.Action == StepWire {
		return runWireStep(ctx, sess, step)
	}
	if step.Action == StepRemoveEdge {
		return runRemoveEdgeStep(ctx, sess, step)
	}

	var action editor.Action
	switch step.Action {
	case StepSetSeedCount:
		action = editor.SetQualifyingSeedCount{Count: step.Count}
	case StepAddLayer:
		action = editor.AddLayer{}
	case StepRemoveLayer:
		action = editor.RemoveLayer{Index: step.Index}
	case StepAddNode:
		action = editor.AddNode{LayerIndex: step.LayerIndex}
	case StepRemoveNode:
		action = editor.RemoveNode{NodeID: step.Node}
	case StepUpdateNode:
		act := editor.UpdateNode{NodeID: step.Node, Label: step.Label, Elimination: step.Elimination}
		if step.Category != nil {
			c := bracket.Category(*step.Category)
			act.Category = &c
		}
		action = act
	case StepSetSeed:
		action = editor.SetSeedSource{
			NodeID: step.Node,
			Port:   bracket.InputPort(step.Port),
			Rank:   step.Rank,
		}
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
	return sess.Dispatch(ctx, action)
}

// runWireStep drives the wiring state machine with an output activation
// followed by an input activation, the way a presentation layer would.
// An invalid target leaves the pending session dangling; it is cancelled
// so the next step starts clean.
func runWireStep(ctx context.Context, sess *session.Session, step *Step) error {
	if err := sess.HandleWiring(ctx, wiring.ActivateOutput{
		NodeID: step.FromNode,
		Port:   bracket.OutputPort(step.FromPort),
	}); err != nil {
		return err
	}
	if err := sess.HandleWiring(ctx, wiring.ActivateInput{
		NodeID: step.ToNode,
		Port:   bracket.InputPort(step.ToPort),
	}); err != nil {
		return err
	}
	return sess.HandleWiring(ctx, wiring.Cancel{})
}

// runRemoveEdgeStep resolves the inbound edge on the addressed slot and
// removes it. A slot with no inbound edge makes the step a no-op, matching
// the editor's tolerance.
func runRemoveEdgeStep(ctx context.Context, sess *session.Session, step *Step) error {
	graph := sess.Graph()
	edge, ok := graph.InboundEdge(step.ToNode, bracket.InputPort(step.ToPort))
	if !ok {
		return nil
	}
	return sess.Dispatch(ctx, editor.RemoveEdge{EdgeID: edge.ID})
}

func checkExpect(scenario *Scenario, diags []validate.Diagnostic) error {
	errs, warns := 0, 0
	for _, d := range diags {
		switch d.Severity {
		case validate.SeverityError:
			errs++
		case validate.SeverityWarning:
			warns++
		}
	}
	if errs != scenario.Expect.Errors {
		return fmt.Errorf("expected %d error(s), got %d: %v", scenario.Expect.Errors, errs, diags)
	}
	if warns != scenario.Expect.Warnings {
		return fmt.Errorf("expected %d warning(s), got %d: %v", scenario.Expect.Warnings, warns, diags)
	}

	if len(scenario.Expect.Codes) > 0 {
		if len(diags) != len(scenario.Expect.Codes) {
			return fmt.Errorf("expected codes %v, got %v", scenario.Expect.Codes, diags)
		}
		for i, code := range scenario.Expect.Codes {
			if diags[i].Code != code {
				return fmt.Errorf("expected code %s at position %d, got %s", code, i, diags[i].Code)
			}
		}
	}
	return nil
}
