package validate

import (
	"fmt"

	"github.com/bracketlab/core/internal/bracket"
)

// Diagnostic codes (E2xx errors, W3xx warnings).
const (
	ErrEmptyGraph        = "E201" // graph has no nodes
	ErrMissingTerminal   = "E202" // no terminal node
	ErrDuplicateTerminal = "E203" // more than one terminal node
	ErrTerminalMisplaced = "E204" // terminal node outside the final layer
	ErrUnboundSlot       = "E205" // input slot with no seed and no edge
	ErrDanglingEdge      = "E206" // edge endpoint references a missing node
	ErrBackwardEdge      = "E207" // edge not forward-flowing
	ErrSlotFanIn         = "E208" // destination slot receives multiple edges

	WarnSeedOutOfRange  = "W301" // seed rank outside [1, seed count]
	WarnResultDiscarded = "W302" // winner output with no outbound edge
)

// Severity of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one validation finding.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	NodeID   string   `json:"node_id,omitempty"`
}

func errorDiag(code, nodeID, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityError, Code: code, NodeID: nodeID, Message: fmt.Sprintf(format, args...)}
}

func warnDiag(code, nodeID, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Code: code, NodeID: nodeID, Message: fmt.Sprintf(format, args...)}
}

// HasErrors reports whether any diagnostic is error severity. Errors gate
// ruleset export; warnings do not.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate runs the full invariant scan in a fixed check order and returns
// every finding. An empty graph short-circuits with a single fatal error.
func Validate(g *bracket.Graph) []Diagnostic {
	// Check 1: the graph must have at least one node.
	if g.NodeCount() == 0 {
		return []Diagnostic{errorDiag(ErrEmptyGraph, "", "graph has no nodes")}
	}

	var diags []Diagnostic
	diags = append(diags, checkTerminal(g)...)
	diags = append(diags, checkBoundSlots(g)...)
	diags = append(diags, checkEdgeFlow(g)...)
	diags = append(diags, checkSlotFanIn(g)...)
	diags = append(diags, checkSeedRanges(g)...)
	diags = append(diags, checkDiscardedResults(g)...)
	return diags
}

// checkTerminal enforces exactly one terminal node, placed in the final layer.
func checkTerminal(g *bracket.Graph) []Diagnostic {
	var diags []Diagnostic
	var terminals []bracket.Node
	for _, layer := range g.Layers {
		for _, node := range layer.Nodes {
			if node.Category.Terminal() {
				terminals = append(terminals, node)
			}
		}
	}

	if len(terminals) == 0 {
		return []Diagnostic{errorDiag(ErrMissingTerminal, "", "missing terminal: no %s match declared", bracket.CategoryFinal)}
	}
	for _, extra := range terminals[1:] {
		diags = append(diags, errorDiag(ErrDuplicateTerminal, extra.ID,
			"duplicate terminal: %q is a second %s match", extra.Label, bracket.CategoryFinal))
	}
	finalLayer := len(g.Layers) - 1
	for _, t := range terminals {
		if t.Layer != finalLayer {
			diags = append(diags, errorDiag(ErrTerminalMisplaced, t.ID,
				"terminal misplaced: %q sits in layer %d, expected final layer %d", t.Label, t.Layer, finalLayer))
		}
	}
	return diags
}

// checkBoundSlots flags every unbound input slot, one error per slot.
func checkBoundSlots(g *bracket.Graph) []Diagnostic {
	var diags []Diagnostic
	for _, layer := range g.Layers {
		for _, node := range layer.Nodes {
			for _, port := range []bracket.InputPort{bracket.PortHome, bracket.PortAway} {
				if !node.Input(port).Bound() {
					diags = append(diags, errorDiag(ErrUnboundSlot, node.ID,
						"unbound slot: %s input of %q has no source", port, node.Label))
				}
			}
		}
	}
	return diags
}

// checkEdgeFlow enforces the forward-only rule; an edge with a missing
// endpoint is reported too, since its direction cannot even be established.
func checkEdgeFlow(g *bracket.Graph) []Diagnostic {
	var diags []Diagnostic
	for _, e := range g.Edges {
		src, okSrc := g.Node(e.FromNode)
		dst, okDst := g.Node(e.ToNode)
		if !okSrc || !okDst {
			diags = append(diags, errorDiag(ErrDanglingEdge, "",
				"dangling edge: %s -> %s references a missing node", e.FromNode, e.ToNode))
			continue
		}
		if src.Layer >= dst.Layer {
			diags = append(diags, errorDiag(ErrBackwardEdge, dst.ID,
				"edge not forward-flowing: %q (layer %d) -> %q (layer %d)", src.Label, src.Layer, dst.Label, dst.Layer))
		}
	}
	return diags
}

// checkSlotFanIn flags destination slots receiving more than one edge.
func checkSlotFanIn(g *bracket.Graph) []Diagnostic {
	var diags []Diagnostic
	seen := make(map[string]int, len(g.Edges))
	for _, e := range g.Edges {
		key := e.ToNode + "/" + string(e.ToPort)
		seen[key]++
		if seen[key] == 2 {
			node, _ := g.Node(e.ToNode)
			diags = append(diags, errorDiag(ErrSlotFanIn, e.ToNode,
				"multiple edges feed the %s input of %q", e.ToPort, node.Label))
		}
	}
	return diags
}

// checkSeedRanges warns about seed ranks outside [1, seed count].
func checkSeedRanges(g *bracket.Graph) []Diagnostic {
	var diags []Diagnostic
	for _, layer := range g.Layers {
		for _, node := range layer.Nodes {
			for _, port := range []bracket.InputPort{bracket.PortHome, bracket.PortAway} {
				slot := node.Input(port)
				if slot.HasSeed() && (slot.SeedRank < 1 || slot.SeedRank > g.SeedCount) {
					diags = append(diags, warnDiag(WarnSeedOutOfRange, node.ID,
						"seed rank %d on %s input of %q is outside [1, %d]", slot.SeedRank, port, node.Label, g.SeedCount))
				}
			}
		}
	}
	return diags
}

// checkDiscardedResults warns when a non-final-layer node's winner output
// feeds nothing, since that match's result would be silently discarded.
func checkDiscardedResults(g *bracket.Graph) []Diagnostic {
	outbound := make(map[string]bool, len(g.Edges))
	for _, e := range g.Edges {
		if e.FromPort == bracket.PortWinner {
			outbound[e.FromNode] = true
		}
	}

	var diags []Diagnostic
	finalLayer := len(g.Layers) - 1
	for _, layer := range g.Layers {
		for _, node := range layer.Nodes {
			if node.Layer == finalLayer {
				continue
			}
			if !outbound[node.ID] {
				diags = append(diags, warnDiag(WarnResultDiscarded, node.ID,
					"result discarded: winner of %q feeds no later match", node.Label))
			}
		}
	}
	return diags
}
