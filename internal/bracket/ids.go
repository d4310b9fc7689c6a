package bracket

import "fmt"

// NodeID derives a node id from its position. Ids are dense and
// deterministic: any structural edit that moves nodes re-derives every
// surviving id through this function before the edit commits.
func NodeID(layer, slot int) string {
	return fmt.Sprintf("m%d-%d", layer, slot)
}

// EdgeEndpoints is the identity tuple of an edge. Rulesets carry no edge
// ids, so the importer and the editor both synthesize ids from this tuple
// to keep edge identity stable across a round trip.
type EdgeEndpoints struct {
	FromNode string
	FromPort OutputPort
	ToNode   string
	ToPort   InputPort
}

// EdgeID computes the content-addressed id for an edge with the given
// endpoints. The same endpoints always produce the same id.
func EdgeID(ep EdgeEndpoints) string {
	canonical, err := MarshalCanonical(map[string]any{
		"from_node": ep.FromNode,
		"from_port": string(ep.FromPort),
		"to_node":   ep.ToNode,
		"to_port":   string(ep.ToPort),
	})
	if err != nil {
		// The endpoint tuple is strings only; canonical marshal cannot
		// fail on it.
		panic(fmt.Sprintf("edge id: %v", err))
	}
	return hashWithDomain(DomainEdge, canonical)
}

// NewEdge builds an edge with its derived id.
func NewEdge(ep EdgeEndpoints) Edge {
	return Edge{
		ID:       EdgeID(ep),
		FromNode: ep.FromNode,
		FromPort: ep.FromPort,
		ToNode:   ep.ToNode,
		ToPort:   ep.ToPort,
	}
}
