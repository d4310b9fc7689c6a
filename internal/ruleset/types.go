package ruleset

// Slot source kinds. An empty kind means the slot is unbound; exporting an
// unvalidated graph can produce it, and the importer accepts it back.
const (
	KindSeed   = "seed"
	KindResult = "result"
)

// Outcome values for result sources.
const (
	OutcomeWinner = "winner"
	OutcomeLoser  = "loser"
)

// Ruleset is the declarative serialization of a bracket. It is the only
// form the owning application persists and the only form the external
// fixture scheduler accepts.
type Ruleset struct {
	SeedCount int     `json:"seed_count" yaml:"seed_count"`
	Layers    []Layer `json:"layers" yaml:"layers"`
}

// Layer is one round of matches.
type Layer struct {
	Label   string  `json:"label" yaml:"label"`
	Matches []Match `json:"matches" yaml:"matches"`
}

// Match declares one fixture and where each of its sides comes from.
type Match struct {
	Label       string     `json:"label" yaml:"label"`
	Category    string     `json:"category" yaml:"category"`
	Elimination bool       `json:"elimination" yaml:"elimination"`
	Home        SlotSource `json:"home" yaml:"home"`
	Away        SlotSource `json:"away" yaml:"away"`
}

// SlotSource says where one side of a match comes from: a static seed rank
// (kind "seed") or the outcome of an earlier match (kind "result").
//
// LayerRef is 1-based and MatchRef is 0-based; both conventions are fixed
// by the consuming scheduler and must be honored exactly.
type SlotSource struct {
	Kind     string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Rank     int    `json:"rank,omitempty" yaml:"rank,omitempty"`
	LayerRef int    `json:"layer_ref,omitempty" yaml:"layer_ref,omitempty"`
	MatchRef int    `json:"match_ref,omitempty" yaml:"match_ref,omitempty"`
	Outcome  string `json:"outcome,omitempty" yaml:"outcome,omitempty"`
}

// Seed builds a seed slot source.
func Seed(rank int) SlotSource {
	return SlotSource{Kind: KindSeed, Rank: rank}
}

// Result builds a result slot source. layerRef is 1-based, matchRef 0-based.
func Result(layerRef, matchRef int, outcome string) SlotSource {
	return SlotSource{Kind: KindResult, LayerRef: layerRef, MatchRef: matchRef, Outcome: outcome}
}

// IsSeed reports whether the source is a seed rank.
func (s SlotSource) IsSeed() bool { return s.Kind == KindSeed }

// IsResult reports whether the source is a match result.
func (s SlotSource) IsResult() bool { return s.Kind == KindResult }
