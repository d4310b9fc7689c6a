package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bracketlab/core/internal/bracket"
	"github.com/bracketlab/core/internal/editor"
	"github.com/bracketlab/core/internal/ruleset"
	"github.com/bracketlab/core/internal/testutil"
	"github.com/bracketlab/core/internal/validate"
	"github.com/bracketlab/core/internal/wiring"
)

func intPtr(n int) *int { return &n }

func TestNewStartsOnCleanStarter(t *testing.T) {
	s := New()

	assert.NotEmpty(t, s.Token())
	assert.Zero(t, s.Seq())
	assert.Empty(t, s.Diagnostics())
	assert.Equal(t, wiring.PhaseIdle, s.WiringState().Phase)
	g := s.Graph()
	assert.Equal(t, 2, g.NodeCount())
}

func TestNewFromRulesetValidatesImmediately(t *testing.T) {
	r := testutil.EightSeedRuleset()
	r.Layers[2].Matches[0].Home = ruleset.SlotSource{}

	s := NewFromRuleset(r)
	diags := s.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, validate.ErrUnboundSlot, diags[0].Code)
}

func TestResumeContinuesJournal(t *testing.T) {
	ctx := context.Background()
	rec := &testutil.MemoryRecorder{}

	first := New()
	first.AttachRecorder(rec)
	require.NoError(t, first.Dispatch(ctx, editor.SetQualifyingSeedCount{Count: 8}))
	require.NoError(t, first.Dispatch(ctx, editor.AddLayer{}))

	resumed := Resume(first.Token(), first.Seq(), first.Graph())
	resumed.AttachRecorder(rec)
	assert.Equal(t, first.Token(), resumed.Token())
	assert.Equal(t, first.Seq(), resumed.Seq())
	g1, g2 := first.Graph(), resumed.Graph()
	assert.Equal(t, bracket.MustGraphHash(&g1), bracket.MustGraphHash(&g2))

	require.NoError(t, resumed.Dispatch(ctx, editor.AddLayer{}))

	records := rec.Records()
	require.Len(t, records, 3)
	assert.Equal(t, int64(3), records[2].Seq)
	assert.Equal(t, first.Token(), records[2].SessionToken)
}

func TestDispatchCommitsAndRevalidates(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Dispatch(ctx, editor.SetSeedSource{
		NodeID: "m0-0", Port: bracket.PortHome, Rank: intPtr(9),
	}))

	assert.Equal(t, int64(1), s.Seq())
	diags := s.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, validate.WarnSeedOutOfRange, diags[0].Code)
}

func TestDispatchNoOpIsNotCommitted(t *testing.T) {
	ctx := context.Background()
	s := New()
	rec := &testutil.MemoryRecorder{}
	s.AttachRecorder(rec)

	// Removing a nonexistent node changes nothing.
	require.NoError(t, s.Dispatch(ctx, editor.RemoveNode{NodeID: "m9-9"}))

	assert.Zero(t, s.Seq())
	assert.Empty(t, rec.Records())
}

func TestDispatchJournalsCommittedEdits(t *testing.T) {
	ctx := context.Background()
	s := New()
	rec := &testutil.MemoryRecorder{}
	s.AttachRecorder(rec)

	require.NoError(t, s.Dispatch(ctx, editor.AddLayer{}))
	require.NoError(t, s.Dispatch(ctx, editor.AddNode{LayerIndex: 2}))

	records := rec.Records()
	require.Len(t, records, 2)

	assert.Equal(t, s.Token(), records[0].SessionToken)
	assert.Equal(t, int64(1), records[0].Seq)
	assert.Equal(t, editor.KindAddLayer, records[0].Kind)
	assert.Equal(t, int64(2), records[1].Seq)

	// Each record's hash matches the graph state after that edit; the last
	// one matches the session's current graph.
	g := s.Graph()
	assert.Equal(t, bracket.MustGraphHash(&g), records[1].GraphHash)
	assert.NotEqual(t, records[0].GraphHash, records[1].GraphHash)

	// Ids are content-addressed and reproducible.
	id, err := bracket.EditRecordID(records[0].SessionToken, records[0].Seq, records[0].Kind, records[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, records[0].ID, id)
}

func TestDispatchRecorderFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	s := New()
	sentinel := errors.New("disk full")
	s.AttachRecorder(&testutil.FailingRecorder{Err: sentinel})

	err := s.Dispatch(ctx, editor.AddLayer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}

func TestDispatchResetsPendingWiring(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.HandleWiring(ctx, wiring.ActivateOutput{
		NodeID: "m0-0", Port: bracket.PortWinner,
	}))
	require.Equal(t, wiring.PhaseWiring, s.WiringState().Phase)

	// A committed structural edit may re-derive ids; the pending wiring
	// session must not survive it.
	require.NoError(t, s.Dispatch(ctx, editor.AddLayer{}))
	assert.Equal(t, wiring.PhaseIdle, s.WiringState().Phase)
}

func TestHandleWiringCompletesEdge(t *testing.T) {
	ctx := context.Background()
	s := New()

	// Clear the final's away seed so it becomes a wireable target.
	require.NoError(t, s.Dispatch(ctx, editor.SetSeedSource{
		NodeID: "m1-0", Port: bracket.PortAway,
	}))

	require.NoError(t, s.HandleWiring(ctx, wiring.ActivateOutput{
		NodeID: "m0-0", Port: bracket.PortLoser,
	}))
	assert.True(t, s.IsValidTarget("m1-0", bracket.PortAway))

	require.NoError(t, s.HandleWiring(ctx, wiring.ActivateInput{
		NodeID: "m1-0", Port: bracket.PortAway,
	}))

	g := s.Graph()
	edge, ok := g.InboundEdge("m1-0", bracket.PortAway)
	require.True(t, ok)
	assert.Equal(t, bracket.PortLoser, edge.FromPort)
	assert.Equal(t, wiring.PhaseIdle, s.WiringState().Phase)
	assert.Empty(t, s.Diagnostics())
}

func TestSeedBindingDisplacesWiredEdge(t *testing.T) {
	ctx := context.Background()
	s := New()

	// The final's home slot arrives pre-wired from the opener. Binding a
	// seed rank on it drops the edge in the same atomic edit.
	require.NoError(t, s.Dispatch(ctx, editor.SetSeedSource{
		NodeID: "m1-0", Port: bracket.PortHome, Rank: intPtr(4),
	}))

	g := s.Graph()
	node, _ := g.Node("m1-0")
	assert.Equal(t, 4, node.Home.SeedRank)
	assert.False(t, node.Home.HasEdge())
	assert.Empty(t, g.Edges)

	// The opener's winner now feeds nothing.
	diags := s.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, validate.WarnResultDiscarded, diags[0].Code)
}

func TestExportRulesetGatedOnErrors(t *testing.T) {
	ctx := context.Background()
	s := New()

	// Warnings alone do not block export.
	require.NoError(t, s.Dispatch(ctx, editor.SetSeedSource{
		NodeID: "m0-0", Port: bracket.PortHome, Rank: intPtr(40),
	}))
	_, err := s.ExportRuleset()
	require.NoError(t, err)

	// An unbound slot does.
	require.NoError(t, s.Dispatch(ctx, editor.SetSeedSource{
		NodeID: "m0-0", Port: bracket.PortHome,
	}))
	_, err = s.ExportRuleset()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExportBlocked)
}

func TestExportRulesetRoundTrips(t *testing.T) {
	s := New()
	r, err := s.ExportRuleset()
	require.NoError(t, err)

	reimported := NewFromRuleset(r)
	a, b := s.Graph(), reimported.Graph()
	assert.Equal(t, bracket.MustGraphHash(&a), bracket.MustGraphHash(&b))
}

func TestGraphReturnsCopy(t *testing.T) {
	s := New()
	g := s.Graph()
	g.Layers[0].Nodes[0].Label = "mutated"

	fresh := s.Graph()
	assert.Equal(t, "Match 1", fresh.Layers[0].Nodes[0].Label)
}
