package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bracketlab/core/internal/bracket"
	"github.com/bracketlab/core/internal/testutil"
)

func TestReindexRederivesNodeIDs(t *testing.T) {
	g := testutil.EightSeedGraph()

	// Drop the second opening match; everything after it shifts down a slot.
	out := Apply(g, RemoveNode{NodeID: "m0-1"})

	for si, node := range out.Layers[0].Nodes {
		assert.Equal(t, bracket.NodeID(0, si), node.ID)
		assert.Equal(t, 0, node.Layer)
		assert.Equal(t, si, node.Slot)
	}

	// Labels travel with the nodes, so the shift is observable.
	assert.Equal(t, "Match 1", out.Layers[0].Nodes[0].Label)
	assert.Equal(t, "Match 3", out.Layers[0].Nodes[1].Label)
	assert.Equal(t, "Match 4", out.Layers[0].Nodes[2].Label)
}

func TestReindexRewritesEdgesWithFreshIDs(t *testing.T) {
	g := testutil.EightSeedGraph()

	// m0-3 feeds semifinal 2's away slot. After removing m0-1, m0-3
	// becomes m0-2 and the edge must follow under a fresh content id.
	sf2Before, _ := g.NodeAt(1, 1)
	oldEdgeID := sf2Before.Away.EdgeID

	out := Apply(g, RemoveNode{NodeID: "m0-1"})

	sf2, ok := out.NodeAt(1, 1)
	require.True(t, ok)
	require.True(t, sf2.Away.HasEdge())
	assert.NotEqual(t, oldEdgeID, sf2.Away.EdgeID)

	edge, ok := out.Edge(sf2.Away.EdgeID)
	require.True(t, ok)
	assert.Equal(t, "m0-2", edge.FromNode)
	assert.Equal(t, sf2.ID, edge.ToNode)

	// Rewritten ids still match their content derivation.
	assert.Equal(t, bracket.EdgeID(bracket.EdgeEndpoints{
		FromNode: edge.FromNode,
		FromPort: edge.FromPort,
		ToNode:   edge.ToNode,
		ToPort:   edge.ToPort,
	}), edge.ID)
}

func TestReindexDropsEdgesOfDeletedNodes(t *testing.T) {
	g := testutil.EightSeedGraph()

	out := Apply(g, RemoveLayer{Index: 1}) // semifinals

	// Opening-to-semifinal and semifinal-to-final edges all had a deleted
	// endpoint; nothing survives.
	assert.Empty(t, out.Edges)

	final, ok := out.NodeAt(1, 0)
	require.True(t, ok)
	assert.False(t, final.Home.Bound())
	assert.False(t, final.Away.Bound())
}

func TestReindexConsistencyAfterChainedRemovals(t *testing.T) {
	g := testutil.EightSeedGraph()

	out := Apply(g, RemoveNode{NodeID: "m0-0"})
	out = Apply(out, RemoveNode{NodeID: "m0-0"}) // formerly m0-1
	out = Apply(out, RemoveLayer{Index: 0})

	// Whatever survived, every slot edge reference must resolve and every
	// edge destination slot must point back at it.
	for li := range out.Layers {
		for si := range out.Layers[li].Nodes {
			node := &out.Layers[li].Nodes[si]
			require.Equal(t, bracket.NodeID(li, si), node.ID)
			for _, port := range []bracket.InputPort{bracket.PortHome, bracket.PortAway} {
				slot := node.Input(port)
				if !slot.HasEdge() {
					continue
				}
				edge, ok := out.Edge(slot.EdgeID)
				require.True(t, ok, "slot %s/%s references missing edge", node.ID, port)
				assert.Equal(t, node.ID, edge.ToNode)
				assert.Equal(t, port, edge.ToPort)
			}
		}
	}
}
