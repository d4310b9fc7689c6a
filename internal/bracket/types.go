package bracket

// OutputPort names which result of a match an outbound edge carries.
type OutputPort string

const (
	PortWinner OutputPort = "winner"
	PortLoser  OutputPort = "loser"
)

// ValidOutputPort reports whether p is a known output port.
func ValidOutputPort(p OutputPort) bool {
	return p == PortWinner || p == PortLoser
}

// InputPort names which side of a match an edge or seed rank feeds.
type InputPort string

const (
	PortHome InputPort = "home"
	PortAway InputPort = "away"
)

// ValidInputPort reports whether p is a known input port.
func ValidInputPort(p InputPort) bool {
	return p == PortHome || p == PortAway
}

// Category classifies a match. The set is closed so the validator and
// converter can handle every value exhaustively; exactly one value
// (CategoryFinal) is the terminal class.
type Category string

const (
	// CategoryElimination is the generic knockout class and the default
	// for newly added nodes.
	CategoryElimination Category = "elimination"

	// CategoryQualifier marks a preliminary qualification match.
	CategoryQualifier Category = "qualifier"

	// CategoryConsolation marks a placement match fed by loser outputs.
	CategoryConsolation Category = "consolation"

	// CategoryFinal is the terminal class. A well-formed graph contains
	// exactly one final node, and it sits in the last layer.
	CategoryFinal Category = "final"
)

// Terminal reports whether the category is the designated terminal class.
func (c Category) Terminal() bool {
	return c == CategoryFinal
}

// ValidCategory reports whether c is a known match category.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryElimination, CategoryQualifier, CategoryConsolation, CategoryFinal:
		return true
	}
	return false
}

// ParseCategory maps external category text onto the closed enum. Unknown
// text degrades to the generic elimination class rather than failing, per
// the tolerant-import policy.
func ParseCategory(s string) Category {
	c := Category(s)
	if ValidCategory(c) {
		return c
	}
	return CategoryElimination
}

// InputSlot is one input side of a node. It holds at most one of a static
// seed rank or one inbound edge, never both. The zero value is unbound.
type InputSlot struct {
	SeedRank int    `json:"seed_rank,omitempty"` // 0 means no seed
	EdgeID   string `json:"edge_id,omitempty"`   // "" means no inbound edge
}

// HasSeed reports whether the slot is bound to a static seed rank.
func (s InputSlot) HasSeed() bool { return s.SeedRank > 0 }

// HasEdge reports whether the slot is bound to an inbound edge.
func (s InputSlot) HasEdge() bool { return s.EdgeID != "" }

// Bound reports whether the slot is bound at all.
func (s InputSlot) Bound() bool { return s.HasSeed() || s.HasEdge() }

// Node is one match slot within a layer. Its ID is derived from its
// (layer, slot) position and is re-derived on every structural edit.
type Node struct {
	ID          string    `json:"id"`
	Layer       int       `json:"layer"`
	Slot        int       `json:"slot"`
	Label       string    `json:"label"`
	Category    Category  `json:"category"`
	Elimination bool      `json:"elimination"`
	Home        InputSlot `json:"home"`
	Away        InputSlot `json:"away"`
}

// Input returns a pointer to the slot behind the given input port.
// Unknown ports return nil.
func (n *Node) Input(port InputPort) *InputSlot {
	switch port {
	case PortHome:
		return &n.Home
	case PortAway:
		return &n.Away
	}
	return nil
}

// Edge is a directed binding from one node's output port to another
// node's input slot. Its ID is content-addressed over the endpoint tuple.
type Edge struct {
	ID       string     `json:"id"`
	FromNode string     `json:"from_node"`
	FromPort OutputPort `json:"from_port"`
	ToNode   string     `json:"to_node"`
	ToPort   InputPort  `json:"to_port"`
}

// Layer is one temporal round of the bracket, holding an ordered node
// sequence. Layers are totally ordered by their position in Graph.Layers.
type Layer struct {
	Label string `json:"label"`
	Nodes []Node `json:"nodes"`
}

// Graph is the whole bracket structure: an ordered layer sequence, the
// edge set, and the qualifying-seed count bounding valid seed ranks.
type Graph struct {
	SeedCount int     `json:"seed_count"`
	Layers    []Layer `json:"layers"`
	Edges     []Edge  `json:"edges"`
}

// Node returns the node with the given id, if present.
func (g *Graph) Node(id string) (Node, bool) {
	for li := range g.Layers {
		for si := range g.Layers[li].Nodes {
			if g.Layers[li].Nodes[si].ID == id {
				return g.Layers[li].Nodes[si], true
			}
		}
	}
	return Node{}, false
}

// NodeAt returns the node at (layer, slot), if present.
func (g *Graph) NodeAt(layer, slot int) (Node, bool) {
	if layer < 0 || layer >= len(g.Layers) {
		return Node{}, false
	}
	if slot < 0 || slot >= len(g.Layers[layer].Nodes) {
		return Node{}, false
	}
	return g.Layers[layer].Nodes[slot], true
}

// Edge returns the edge with the given id, if present.
func (g *Graph) Edge(id string) (Edge, bool) {
	for _, e := range g.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return Edge{}, false
}

// InboundEdge returns the edge bound to the given node input slot, if any.
func (g *Graph) InboundEdge(nodeID string, port InputPort) (Edge, bool) {
	for _, e := range g.Edges {
		if e.ToNode == nodeID && e.ToPort == port {
			return e, true
		}
	}
	return Edge{}, false
}

// NodeCount returns the total number of nodes across all layers.
func (g *Graph) NodeCount() int {
	n := 0
	for i := range g.Layers {
		n += len(g.Layers[i].Nodes)
	}
	return n
}

// Clone returns a deep copy. The structural editor clones before mutating
// so that Apply behaves as a pure function over immutable inputs.
func (g Graph) Clone() Graph {
	out := Graph{SeedCount: g.SeedCount}
	out.Layers = make([]Layer, len(g.Layers))
	for i, l := range g.Layers {
		nodes := make([]Node, len(l.Nodes))
		copy(nodes, l.Nodes)
		out.Layers[i] = Layer{Label: l.Label, Nodes: nodes}
	}
	out.Edges = make([]Edge, len(g.Edges))
	copy(out.Edges, g.Edges)
	return out
}
