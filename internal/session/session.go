package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/bracketlab/core/internal/bracket"
	"github.com/bracketlab/core/internal/editor"
	"github.com/bracketlab/core/internal/ruleset"
	"github.com/bracketlab/core/internal/validate"
	"github.com/bracketlab/core/internal/wiring"
)

// ErrExportBlocked is returned by ExportRuleset while error-severity
// diagnostics are outstanding.
var ErrExportBlocked = errors.New("export blocked by validation errors")

// Recorder receives committed edits. *store.Journal implements it; tests
// substitute their own.
type Recorder interface {
	RecordEdit(ctx context.Context, rec bracket.EditRecord) error
}

// Session owns one graph and one wiring state. It is not safe for
// concurrent use; the interaction model is single-threaded and each
// dispatched action or wiring event is one atomic step.
type Session struct {
	token    string
	clock    *Clock
	graph    bracket.Graph
	wiring   wiring.State
	diags    []validate.Diagnostic
	recorder Recorder
}

// New starts a session on the starter graph.
func New() *Session {
	return fromGraph(bracket.NewStarterGraph())
}

// NewFromRuleset starts a session on an imported ruleset.
func NewFromRuleset(r ruleset.Ruleset) *Session {
	return fromGraph(ruleset.FromRuleset(r))
}

// Resume continues a previously journaled session on its replayed graph.
// The token is kept and the clock picks up after lastSeq (the journal's
// LastSeq, or a ReplayResult's step count), so edits dispatched after
// resuming extend the same journal without seq collisions.
func Resume(token string, lastSeq int64, g bracket.Graph) *Session {
	s := &Session{
		token:  token,
		clock:  NewClockAt(lastSeq),
		graph:  g,
		wiring: wiring.Idle(),
	}
	s.diags = validate.Validate(&s.graph)
	return s
}

func fromGraph(g bracket.Graph) *Session {
	s := &Session{
		token:  NewToken(),
		clock:  NewClock(),
		graph:  g,
		wiring: wiring.Idle(),
	}
	s.diags = validate.Validate(&s.graph)
	return s
}

// AttachRecorder wires an edit journal into the session. Only edits
// committed after attachment are recorded.
func (s *Session) AttachRecorder(r Recorder) {
	s.recorder = r
}

// Token returns the session token.
func (s *Session) Token() string { return s.token }

// Seq returns the logical clock position (number of committed edits).
func (s *Session) Seq() int64 { return s.clock.Current() }

// Graph returns a deep copy of the current graph, so callers can never
// mutate session-owned state.
func (s *Session) Graph() bracket.Graph {
	return s.graph.Clone()
}

// Diagnostics returns the report from the last committed edit.
func (s *Session) Diagnostics() []validate.Diagnostic {
	out := make([]validate.Diagnostic, len(s.diags))
	copy(out, s.diags)
	return out
}

// Dispatch applies one editor action. Illegal actions are no-ops and are
// not journaled; committed edits are seq-stamped, recorded, and followed
// by a full re-validation. The returned error only ever concerns the
// recorder; the edit itself cannot fail.
func (s *Session) Dispatch(ctx context.Context, a editor.Action) error {
	before := bracket.MustGraphHash(&s.graph)
	next := editor.Apply(s.graph, a)
	after := bracket.MustGraphHash(&next)
	if after == before {
		return nil // no-op, nothing committed
	}

	s.graph = next
	s.diags = validate.Validate(&s.graph)
	seq := s.clock.Next()

	// A committed edit may have re-derived node ids, so any pending wiring
	// session would be anchored to stale identity. Cancel it.
	s.wiring = wiring.Idle()

	if s.recorder == nil {
		return nil
	}
	kind, payload, err := editor.MarshalAction(a)
	if err != nil {
		return fmt.Errorf("dispatch: %w", err)
	}
	id, err := bracket.EditRecordID(s.token, seq, kind, string(payload))
	if err != nil {
		return fmt.Errorf("dispatch: %w", err)
	}
	rec := bracket.EditRecord{
		ID:           id,
		SessionToken: s.token,
		Seq:          seq,
		Kind:         kind,
		Payload:      string(payload),
		GraphHash:    after,
	}
	if err := s.recorder.RecordEdit(ctx, rec); err != nil {
		return fmt.Errorf("dispatch: record edit: %w", err)
	}
	return nil
}

// HandleWiring feeds one interaction event to the wiring state machine.
// When a transition completes an edge, the resulting AddEdge action is
// dispatched in the same call.
func (s *Session) HandleWiring(ctx context.Context, ev wiring.Event) error {
	next, action := wiring.Step(&s.graph, s.wiring, ev)
	s.wiring = next
	if action == nil {
		return nil
	}
	return s.Dispatch(ctx, *action)
}

// WiringState returns the current wiring state.
func (s *Session) WiringState() wiring.State { return s.wiring }

// IsValidTarget exposes the oracle against the session's own graph and
// wiring state, for presentation layers to drive target highlighting.
func (s *Session) IsValidTarget(nodeID string, port bracket.InputPort) bool {
	return wiring.IsValidTarget(&s.graph, s.wiring, nodeID, port)
}

// ExportRuleset converts the graph for the external scheduler. Export is
// refused while any error-severity diagnostic is outstanding; warnings do
// not block.
func (s *Session) ExportRuleset() (ruleset.Ruleset, error) {
	if validate.HasErrors(s.diags) {
		n := 0
		for _, d := range s.diags {
			if d.Severity == validate.SeverityError {
				n++
			}
		}
		return ruleset.Ruleset{}, fmt.Errorf("%w: %d error(s)", ErrExportBlocked, n)
	}
	return ruleset.ToRuleset(&s.graph), nil
}
