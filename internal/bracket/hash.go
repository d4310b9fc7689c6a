package bracket

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity. The version suffix
// enables future algorithm migration without colliding with old ids.
const (
	DomainEdge  = "bracket/edge/v1"
	DomainGraph = "bracket/graph/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// GraphHash computes a content hash over the whole graph. Two graphs with
// identical structure hash identically regardless of how they were built,
// which is what journal replay verification relies on.
func GraphHash(g *Graph) (string, error) {
	layers := make([]any, len(g.Layers))
	for i, l := range g.Layers {
		nodes := make([]any, len(l.Nodes))
		for j, n := range l.Nodes {
			nodes[j] = map[string]any{
				"id":          n.ID,
				"label":       n.Label,
				"category":    string(n.Category),
				"elimination": n.Elimination,
				"home":        slotMap(n.Home),
				"away":        slotMap(n.Away),
			}
		}
		layers[i] = map[string]any{
			"label": l.Label,
			"nodes": nodes,
		}
	}

	// Edge identity is already captured by the slot edge_id fields, but
	// the edge list is hashed too so a dangling edge changes the hash.
	edgeIDs := make([]any, len(g.Edges))
	for i, e := range g.Edges {
		edgeIDs[i] = e.ID
	}

	canonical, err := MarshalCanonical(map[string]any{
		"seed_count": g.SeedCount,
		"layers":     layers,
		"edges":      edgeIDs,
	})
	if err != nil {
		return "", fmt.Errorf("graph hash: %w", err)
	}
	return hashWithDomain(DomainGraph, canonical), nil
}

// MustGraphHash is like GraphHash but panics on error.
// Use only in tests or when the graph is known to be well-formed.
func MustGraphHash(g *Graph) string {
	h, err := GraphHash(g)
	if err != nil {
		panic(err)
	}
	return h
}

func slotMap(s InputSlot) map[string]any {
	m := map[string]any{}
	if s.HasSeed() {
		m["seed_rank"] = s.SeedRank
	}
	if s.HasEdge() {
		m["edge_id"] = s.EdgeID
	}
	return m
}
