package ruleset

import "encoding/json"

// CanonicalMap flattens a ruleset into the map form accepted by the
// canonical JSON marshaller, for journal payloads and golden snapshots.
func CanonicalMap(r Ruleset) map[string]any {
	layers := make([]any, len(r.Layers))
	for i, l := range r.Layers {
		matches := make([]any, len(l.Matches))
		for j, m := range l.Matches {
			matches[j] = map[string]any{
				"label":       m.Label,
				"category":    m.Category,
				"elimination": m.Elimination,
				"home":        slotSourceMap(m.Home),
				"away":        slotSourceMap(m.Away),
			}
		}
		layers[i] = map[string]any{"label": l.Label, "matches": matches}
	}
	return map[string]any{"seed_count": r.SeedCount, "layers": layers}
}

func slotSourceMap(s SlotSource) map[string]any {
	switch s.Kind {
	case KindSeed:
		return map[string]any{"kind": s.Kind, "rank": s.Rank}
	case KindResult:
		return map[string]any{
			"kind":      s.Kind,
			"layer_ref": s.LayerRef,
			"match_ref": s.MatchRef,
			"outcome":   s.Outcome,
		}
	}
	return map[string]any{}
}

// FromMap is the inverse of CanonicalMap. Missing or mistyped fields
// degrade to zero values; the journal is trusted input, and tolerance
// matches the import policy everywhere else.
func FromMap(m map[string]any) Ruleset {
	if m == nil {
		return Ruleset{}
	}
	r := Ruleset{SeedCount: mapInt(m, "seed_count")}
	layers, _ := m["layers"].([]any)
	for _, lv := range layers {
		lm, _ := lv.(map[string]any)
		layer := Layer{Label: mapString(lm, "label")}
		matches, _ := lm["matches"].([]any)
		for _, mv := range matches {
			mm, _ := mv.(map[string]any)
			elim, _ := mm["elimination"].(bool)
			layer.Matches = append(layer.Matches, Match{
				Label:       mapString(mm, "label"),
				Category:    mapString(mm, "category"),
				Elimination: elim,
				Home:        slotSourceFromMap(mm["home"]),
				Away:        slotSourceFromMap(mm["away"]),
			})
		}
		r.Layers = append(r.Layers, layer)
	}
	return r
}

func slotSourceFromMap(v any) SlotSource {
	m, _ := v.(map[string]any)
	if m == nil {
		return SlotSource{}
	}
	switch mapString(m, "kind") {
	case KindSeed:
		return Seed(mapInt(m, "rank"))
	case KindResult:
		return Result(mapInt(m, "layer_ref"), mapInt(m, "match_ref"), mapString(m, "outcome"))
	}
	return SlotSource{}
}

func mapString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func mapInt(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return int(n)
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
