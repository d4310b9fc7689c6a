package editor

import (
	"github.com/bracketlab/core/internal/bracket"
	"github.com/bracketlab/core/internal/ruleset"
)

// Action kind strings, used by the edit journal.
const (
	KindInitFromRuleset        = "init_from_ruleset"
	KindSetQualifyingSeedCount = "set_qualifying_seed_count"
	KindAddLayer               = "add_layer"
	KindRemoveLayer            = "remove_layer"
	KindAddNode                = "add_node"
	KindRemoveNode             = "remove_node"
	KindUpdateNode             = "update_node"
	KindSetSeedSource          = "set_seed_source"
	KindAddEdge                = "add_edge"
	KindRemoveEdge             = "remove_edge"
)

// Action is one structural edit. The set is closed; Apply handles every
// variant exhaustively.
type Action interface {
	// Kind returns the stable action kind string for journaling.
	Kind() string
}

// InitFromRuleset replaces the whole graph with the imported form of the
// given ruleset.
type InitFromRuleset struct {
	Rules ruleset.Ruleset
}

// SetQualifyingSeedCount stores a new qualifying-seed count. Existing
// out-of-range seed ranks are not touched; the validator flags them.
type SetQualifyingSeedCount struct {
	Count int
}

// AddLayer appends an empty labeled layer.
type AddLayer struct{}

// RemoveLayer deletes a layer, its nodes, and every edge touching a
// deleted node, then reindexes everything positioned after it.
type RemoveLayer struct {
	Index int
}

// AddNode appends a node with both input slots unbound to the given layer.
type AddNode struct {
	LayerIndex int
}

// RemoveNode deletes a node and its incident edges, compacting the
// remaining slot indices in its layer.
type RemoveNode struct {
	NodeID string
}

// UpdateNode shallow-merges label, category, and elimination flag.
// Nil fields are left unchanged. No structural consequence.
type UpdateNode struct {
	NodeID      string
	Label       *string
	Category    *bracket.Category
	Elimination *bool
}

// SetSeedSource binds or clears a static seed rank on an input slot.
// A non-nil rank clears any inbound edge on that slot first; a nil rank
// just clears the seed.
type SetSeedSource struct {
	NodeID string
	Port   bracket.InputPort
	Rank   *int
}

// AddEdge commits a wiring candidate. The reducer re-derives the canonical
// edge id and displaces any prior edge or seed bound to the destination
// slot; edges take precedence over seeds when explicitly added.
type AddEdge struct {
	Candidate bracket.EdgeEndpoints
}

// RemoveEdge deletes an edge. Any seed the edge displaced earlier is not
// restored.
type RemoveEdge struct {
	EdgeID string
}

func (InitFromRuleset) Kind() string        { return KindInitFromRuleset }
func (SetQualifyingSeedCount) Kind() string { return KindSetQualifyingSeedCount }
func (AddLayer) Kind() string               { return KindAddLayer }
func (RemoveLayer) Kind() string            { return KindRemoveLayer }
func (AddNode) Kind() string                { return KindAddNode }
func (RemoveNode) Kind() string             { return KindRemoveNode }
func (UpdateNode) Kind() string             { return KindUpdateNode }
func (SetSeedSource) Kind() string          { return KindSetSeedSource }
func (AddEdge) Kind() string                { return KindAddEdge }
func (RemoveEdge) Kind() string             { return KindRemoveEdge }
