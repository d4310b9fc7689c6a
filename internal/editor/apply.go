package editor

import (
	"fmt"

	"github.com/bracketlab/core/internal/bracket"
	"github.com/bracketlab/core/internal/ruleset"
)

// Apply reduces one action into a new graph. The input graph is never
// mutated; illegal actions return the input unchanged.
func Apply(g bracket.Graph, a Action) bracket.Graph {
	switch act := a.(type) {
	case InitFromRuleset:
		return ruleset.FromRuleset(act.Rules)
	case SetQualifyingSeedCount:
		return applySetSeedCount(g, act)
	case AddLayer:
		return applyAddLayer(g)
	case RemoveLayer:
		return applyRemoveLayer(g, act)
	case AddNode:
		return applyAddNode(g, act)
	case RemoveNode:
		return applyRemoveNode(g, act)
	case UpdateNode:
		return applyUpdateNode(g, act)
	case SetSeedSource:
		return applySetSeedSource(g, act)
	case AddEdge:
		return applyAddEdge(g, act)
	case RemoveEdge:
		return applyRemoveEdge(g, act)
	}
	return g
}

func applySetSeedCount(g bracket.Graph, act SetQualifyingSeedCount) bracket.Graph {
	if act.Count < 1 {
		return g
	}
	out := g.Clone()
	out.SeedCount = act.Count
	return out
}

func applyAddLayer(g bracket.Graph) bracket.Graph {
	out := g.Clone()
	out.Layers = append(out.Layers, bracket.Layer{
		Label: fmt.Sprintf("Round %d", len(out.Layers)+1),
	})
	return out
}

func applyRemoveLayer(g bracket.Graph, act RemoveLayer) bracket.Graph {
	if act.Index < 0 || act.Index >= len(g.Layers) {
		return g
	}
	out := g.Clone()
	out.Layers = append(out.Layers[:act.Index], out.Layers[act.Index+1:]...)
	reindex(&out)
	return out
}

func applyAddNode(g bracket.Graph, act AddNode) bracket.Graph {
	if act.LayerIndex < 0 || act.LayerIndex >= len(g.Layers) {
		return g
	}
	out := g.Clone()
	layer := &out.Layers[act.LayerIndex]
	slot := len(layer.Nodes)

	// The sole node of the final layer defaults to the terminal class;
	// everything else defaults to the generic elimination class.
	category := bracket.CategoryElimination
	if act.LayerIndex == len(out.Layers)-1 && slot == 0 {
		category = bracket.CategoryFinal
	}

	layer.Nodes = append(layer.Nodes, bracket.Node{
		ID:          bracket.NodeID(act.LayerIndex, slot),
		Layer:       act.LayerIndex,
		Slot:        slot,
		Label:       fmt.Sprintf("Match %d", slot+1),
		Category:    category,
		Elimination: true,
	})
	return out
}

func applyRemoveNode(g bracket.Graph, act RemoveNode) bracket.Graph {
	node, ok := g.Node(act.NodeID)
	if !ok {
		return g
	}
	out := g.Clone()
	layer := &out.Layers[node.Layer]
	layer.Nodes = append(layer.Nodes[:node.Slot], layer.Nodes[node.Slot+1:]...)
	reindex(&out)
	return out
}

func applyUpdateNode(g bracket.Graph, act UpdateNode) bracket.Graph {
	node, ok := g.Node(act.NodeID)
	if !ok {
		return g
	}
	out := g.Clone()
	target := &out.Layers[node.Layer].Nodes[node.Slot]
	if act.Label != nil {
		target.Label = *act.Label
	}
	if act.Category != nil && bracket.ValidCategory(*act.Category) {
		target.Category = *act.Category
	}
	if act.Elimination != nil {
		target.Elimination = *act.Elimination
	}
	return out
}

func applySetSeedSource(g bracket.Graph, act SetSeedSource) bracket.Graph {
	node, ok := g.Node(act.NodeID)
	if !ok || !bracket.ValidInputPort(act.Port) {
		return g
	}
	if act.Rank != nil && *act.Rank < 1 {
		return g
	}

	out := g.Clone()
	slot := out.Layers[node.Layer].Nodes[node.Slot].Input(act.Port)

	if act.Rank == nil {
		slot.SeedRank = 0
		return out
	}

	// Binding a seed evicts any inbound edge on the slot.
	if slot.EdgeID != "" {
		dropEdge(&out, slot.EdgeID)
		slot.EdgeID = ""
	}
	slot.SeedRank = *act.Rank
	return out
}

func applyAddEdge(g bracket.Graph, act AddEdge) bracket.Graph {
	cand := act.Candidate
	if !bracket.ValidOutputPort(cand.FromPort) || !bracket.ValidInputPort(cand.ToPort) {
		return g
	}
	if cand.FromNode == cand.ToNode {
		return g
	}
	if _, ok := g.Node(cand.FromNode); !ok {
		return g
	}
	dst, ok := g.Node(cand.ToNode)
	if !ok {
		return g
	}

	out := g.Clone()
	slot := out.Layers[dst.Layer].Nodes[dst.Slot].Input(cand.ToPort)

	// Explicitly added edges displace whatever holds the slot, edge or seed.
	if slot.EdgeID != "" {
		dropEdge(&out, slot.EdgeID)
		slot.EdgeID = ""
	}
	slot.SeedRank = 0

	edge := bracket.NewEdge(cand)
	out.Edges = append(out.Edges, edge)
	slot.EdgeID = edge.ID
	return out
}

func applyRemoveEdge(g bracket.Graph, act RemoveEdge) bracket.Graph {
	edge, ok := g.Edge(act.EdgeID)
	if !ok {
		return g
	}
	out := g.Clone()
	dropEdge(&out, edge.ID)
	if dst, ok := out.Node(edge.ToNode); ok {
		slot := out.Layers[dst.Layer].Nodes[dst.Slot].Input(edge.ToPort)
		if slot.EdgeID == edge.ID {
			slot.EdgeID = ""
		}
	}
	return out
}

// dropEdge removes an edge from the edge set and clears the destination
// slot reference if the destination node still exists.
func dropEdge(g *bracket.Graph, edgeID string) {
	for i, e := range g.Edges {
		if e.ID == edgeID {
			if dst, ok := g.Node(e.ToNode); ok {
				slot := g.Layers[dst.Layer].Nodes[dst.Slot].Input(e.ToPort)
				if slot.EdgeID == edgeID {
					slot.EdgeID = ""
				}
			}
			g.Edges = append(g.Edges[:i], g.Edges[i+1:]...)
			return
		}
	}
}
