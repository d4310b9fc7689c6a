package wiring

import "github.com/bracketlab/core/internal/bracket"

// IsValidTarget reports whether completing the pending wiring session at
// the given input port would produce a committable edge. The predicate is
// shared with the presentation layer so hover highlighting and the actual
// transition can never disagree.
//
// A target is valid only when a session is pending, the candidate is a
// different node in a strictly later layer, and the candidate slot holds no
// seed rank. A slot already bound by an inbound edge IS a valid target:
// AddEdge displaces the prior edge. Seed bindings are the stronger signal
// and must be cleared explicitly before rewiring.
func IsValidTarget(g *bracket.Graph, s State, nodeID string, port bracket.InputPort) bool {
	if s.Phase != PhaseWiring {
		return false
	}
	if !bracket.ValidInputPort(port) {
		return false
	}
	if nodeID == s.SourceNodeID {
		return false
	}

	src, ok := g.Node(s.SourceNodeID)
	if !ok {
		return false
	}
	dst, ok := g.Node(nodeID)
	if !ok {
		return false
	}
	if dst.Layer <= src.Layer {
		return false
	}

	return !dst.Input(port).HasSeed()
}
