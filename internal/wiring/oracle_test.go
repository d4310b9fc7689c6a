package wiring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bracketlab/core/internal/bracket"
	"github.com/bracketlab/core/internal/testutil"
)

func wiringFrom(nodeID string, port bracket.OutputPort) State {
	return State{Phase: PhaseWiring, SourceNodeID: nodeID, SourcePort: port}
}

func TestIsValidTargetRequiresPendingSession(t *testing.T) {
	g := testutil.EightSeedGraph()
	assert.False(t, IsValidTarget(&g, Idle(), "m2-0", bracket.PortHome))
}

func TestIsValidTargetForwardOnly(t *testing.T) {
	g := testutil.EightSeedGraph()
	s := wiringFrom("m1-0", bracket.PortWinner)

	// Earlier layer and same layer are both out.
	assert.False(t, IsValidTarget(&g, s, "m0-0", bracket.PortHome))
	assert.False(t, IsValidTarget(&g, s, "m1-1", bracket.PortHome))
	// Later layer is in (slot is edge-bound, which displacement allows).
	assert.True(t, IsValidTarget(&g, s, "m2-0", bracket.PortHome))
}

func TestIsValidTargetSelfExcluded(t *testing.T) {
	g := testutil.EightSeedGraph()
	s := wiringFrom("m1-0", bracket.PortWinner)
	assert.False(t, IsValidTarget(&g, s, "m1-0", bracket.PortAway))
}

func TestIsValidTargetSeedBlocksEdgeDoesNot(t *testing.T) {
	g := bracket.NewStarterGraph()
	s := wiringFrom("m0-0", bracket.PortLoser)

	// The final's home slot holds an edge: rewiring may displace it.
	assert.True(t, IsValidTarget(&g, s, "m1-0", bracket.PortHome))
	// The away slot holds a seed rank: seeds must be cleared explicitly.
	assert.False(t, IsValidTarget(&g, s, "m1-0", bracket.PortAway))
}

func TestIsValidTargetMissingPieces(t *testing.T) {
	g := testutil.EightSeedGraph()

	tests := []struct {
		name   string
		state  State
		nodeID string
		port   bracket.InputPort
	}{
		{"unknown input port", wiringFrom("m0-0", bracket.PortWinner), "m1-0", "center"},
		{"source node gone", wiringFrom("m9-9", bracket.PortWinner), "m1-0", bracket.PortHome},
		{"target node gone", wiringFrom("m0-0", bracket.PortWinner), "m9-9", bracket.PortHome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, IsValidTarget(&g, tt.state, tt.nodeID, tt.port))
		})
	}
}

func TestOracleAgreesWithStep(t *testing.T) {
	// Every input activation the oracle rejects must leave Step inert, and
	// every one it accepts must produce an action.
	g := testutil.EightSeedGraph()
	s := wiringFrom("m0-2", bracket.PortWinner)

	for _, layer := range g.Layers {
		for _, node := range layer.Nodes {
			for _, port := range []bracket.InputPort{bracket.PortHome, bracket.PortAway} {
				valid := IsValidTarget(&g, s, node.ID, port)
				_, action := Step(&g, s, ActivateInput{NodeID: node.ID, Port: port})
				assert.Equal(t, valid, action != nil, "node %s port %s", node.ID, port)
			}
		}
	}
}
