package bracket

// DefaultSeedCount is the qualifying-seed count for a freshly created graph.
const DefaultSeedCount = 4

// NewStarterGraph builds the smallest well-formed bracket: one seed-layer
// match, one final match, and a pre-wired winner edge into the final's home
// slot. The remaining final input is seeded so the starter validates clean.
func NewStarterGraph() Graph {
	opener := Node{
		ID:          NodeID(0, 0),
		Layer:       0,
		Slot:        0,
		Label:       "Match 1",
		Category:    CategoryElimination,
		Elimination: true,
		Home:        InputSlot{SeedRank: 1},
		Away:        InputSlot{SeedRank: 2},
	}

	final := Node{
		ID:          NodeID(1, 0),
		Layer:       1,
		Slot:        0,
		Label:       "Final",
		Category:    CategoryFinal,
		Elimination: true,
		Away:        InputSlot{SeedRank: 3},
	}

	edge := NewEdge(EdgeEndpoints{
		FromNode: opener.ID,
		FromPort: PortWinner,
		ToNode:   final.ID,
		ToPort:   PortHome,
	})
	final.Home = InputSlot{EdgeID: edge.ID}

	return Graph{
		SeedCount: DefaultSeedCount,
		Layers: []Layer{
			{Label: "Round 1", Nodes: []Node{opener}},
			{Label: "Final", Nodes: []Node{final}},
		},
		Edges: []Edge{edge},
	}
}
