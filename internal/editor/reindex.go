package editor

import "github.com/bracketlab/core/internal/bracket"

// reindex re-derives every surviving node id from its post-edit position
// and repairs the edge set through the resulting old-to-new id map. An
// edge whose endpoint has no mapping referenced a deleted node and is
// dropped rather than rewritten. Runs in O(nodes + edges).
//
// Triggered by any layer or node removal; completes inside the same Apply
// call, so ids never straddle two edits.
func reindex(g *bracket.Graph) {
	// Pass 1: re-derive node ids and build the old-to-new map.
	nodeMap := make(map[string]string, g.NodeCount())
	for li := range g.Layers {
		for si := range g.Layers[li].Nodes {
			node := &g.Layers[li].Nodes[si]
			newID := bracket.NodeID(li, si)
			nodeMap[node.ID] = newID
			node.ID = newID
			node.Layer = li
			node.Slot = si
		}
	}

	// Pass 2: rewrite edges through the map. Edge ids are derived from
	// endpoint ids, so every rewritten edge gets a fresh id too.
	edgeMap := make(map[string]string, len(g.Edges))
	kept := g.Edges[:0]
	for _, e := range g.Edges {
		from, okFrom := nodeMap[e.FromNode]
		to, okTo := nodeMap[e.ToNode]
		if !okFrom || !okTo {
			continue // endpoint deleted, drop the edge
		}
		rewritten := bracket.NewEdge(bracket.EdgeEndpoints{
			FromNode: from,
			FromPort: e.FromPort,
			ToNode:   to,
			ToPort:   e.ToPort,
		})
		edgeMap[e.ID] = rewritten.ID
		kept = append(kept, rewritten)
	}
	g.Edges = kept

	// Pass 3: repair slot bindings. Slots referencing a dropped edge
	// become unbound; the rest pick up the rewritten edge id.
	for li := range g.Layers {
		for si := range g.Layers[li].Nodes {
			node := &g.Layers[li].Nodes[si]
			for _, port := range []bracket.InputPort{bracket.PortHome, bracket.PortAway} {
				slot := node.Input(port)
				if slot.EdgeID == "" {
					continue
				}
				if newID, ok := edgeMap[slot.EdgeID]; ok {
					slot.EdgeID = newID
				} else {
					slot.EdgeID = ""
				}
			}
		}
	}
}
