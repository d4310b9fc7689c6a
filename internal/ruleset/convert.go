package ruleset

import (
	"github.com/bracketlab/core/internal/bracket"
)

// ToRuleset converts a graph to its declarative ruleset form. Conversion is
// total: an unbound input slot exports as an empty slot source, a slot whose
// edge cannot be resolved exports as unbound. Nodes are walked in layer/slot
// order so output is deterministic.
//
// Callers that hand the result to the external scheduler must gate on the
// validator first; ToRuleset itself never refuses a graph.
func ToRuleset(g *bracket.Graph) Ruleset {
	r := Ruleset{SeedCount: g.SeedCount}
	r.Layers = make([]Layer, len(g.Layers))
	for li, layer := range g.Layers {
		out := Layer{Label: layer.Label}
		out.Matches = make([]Match, len(layer.Nodes))
		for si, node := range layer.Nodes {
			out.Matches[si] = Match{
				Label:       node.Label,
				Category:    string(node.Category),
				Elimination: node.Elimination,
				Home:        slotSource(g, node.Home),
				Away:        slotSource(g, node.Away),
			}
		}
		r.Layers[li] = out
	}
	return r
}

// slotSource derives the declarative source for one input slot.
func slotSource(g *bracket.Graph, slot bracket.InputSlot) SlotSource {
	if slot.HasSeed() {
		return Seed(slot.SeedRank)
	}
	if !slot.HasEdge() {
		return SlotSource{}
	}

	edge, ok := g.Edge(slot.EdgeID)
	if !ok {
		return SlotSource{}
	}
	src, ok := g.Node(edge.FromNode)
	if !ok {
		return SlotSource{}
	}

	outcome := OutcomeWinner
	if edge.FromPort == bracket.PortLoser {
		outcome = OutcomeLoser
	}
	// LayerRef is 1-based per the scheduler's convention.
	return Result(src.Layer+1, src.Slot, outcome)
}

// FromRuleset converts a ruleset back into a graph, materializing an edge
// for every resolvable result reference. Import is tolerant: a reference to
// a match that does not exist, or with an unknown outcome, leaves the slot
// unbound instead of failing.
func FromRuleset(r Ruleset) bracket.Graph {
	g := bracket.Graph{SeedCount: r.SeedCount}

	// First pass: nodes with position-derived ids.
	g.Layers = make([]bracket.Layer, len(r.Layers))
	for li, layer := range r.Layers {
		out := bracket.Layer{Label: layer.Label}
		out.Nodes = make([]bracket.Node, len(layer.Matches))
		for si, m := range layer.Matches {
			out.Nodes[si] = bracket.Node{
				ID:          bracket.NodeID(li, si),
				Layer:       li,
				Slot:        si,
				Label:       m.Label,
				Category:    bracket.ParseCategory(m.Category),
				Elimination: m.Elimination,
			}
		}
		g.Layers[li] = out
	}

	// Second pass: bind slots, synthesizing edges for result sources.
	for li, layer := range r.Layers {
		for si, m := range layer.Matches {
			node := &g.Layers[li].Nodes[si]
			bindSlot(&g, node, bracket.PortHome, m.Home)
			bindSlot(&g, node, bracket.PortAway, m.Away)
		}
	}
	return g
}

// bindSlot applies one declarative slot source to a node input.
func bindSlot(g *bracket.Graph, node *bracket.Node, port bracket.InputPort, src SlotSource) {
	slot := node.Input(port)

	switch src.Kind {
	case KindSeed:
		if src.Rank > 0 {
			slot.SeedRank = src.Rank
		}
	case KindResult:
		// LayerRef is 1-based in the wire format.
		from, ok := g.NodeAt(src.LayerRef-1, src.MatchRef)
		if !ok {
			return // dangling reference degrades to unbound
		}
		var fromPort bracket.OutputPort
		switch src.Outcome {
		case OutcomeWinner:
			fromPort = bracket.PortWinner
		case OutcomeLoser:
			fromPort = bracket.PortLoser
		default:
			return
		}
		edge := bracket.NewEdge(bracket.EdgeEndpoints{
			FromNode: from.ID,
			FromPort: fromPort,
			ToNode:   node.ID,
			ToPort:   port,
		})
		g.Edges = append(g.Edges, edge)
		slot.EdgeID = edge.ID
	}
}
