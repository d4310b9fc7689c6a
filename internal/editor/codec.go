package editor

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bracketlab/core/internal/bracket"
	"github.com/bracketlab/core/internal/ruleset"
)

// MarshalAction serializes an action to its kind string and canonical JSON
// payload for the edit journal. The payload is deterministic so journal
// entries can be content-addressed.
func MarshalAction(a Action) (string, []byte, error) {
	m, err := actionToMap(a)
	if err != nil {
		return "", nil, err
	}
	payload, err := bracket.MarshalCanonical(m)
	if err != nil {
		return "", nil, fmt.Errorf("marshal action %s: %w", a.Kind(), err)
	}
	return a.Kind(), payload, nil
}

// UnmarshalAction reverses MarshalAction. Unknown kinds and malformed
// payloads return an error; the journal is append-only and trusted, so a
// failure here means corruption, not user input.
func UnmarshalAction(kind string, payload []byte) (Action, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("unmarshal action %s: %w", kind, err)
	}
	return actionFromMap(kind, m)
}

func actionToMap(a Action) (map[string]any, error) {
	switch act := a.(type) {
	case InitFromRuleset:
		return map[string]any{"ruleset": ruleset.CanonicalMap(act.Rules)}, nil
	case SetQualifyingSeedCount:
		return map[string]any{"count": act.Count}, nil
	case AddLayer:
		return map[string]any{}, nil
	case RemoveLayer:
		return map[string]any{"index": act.Index}, nil
	case AddNode:
		return map[string]any{"layer_index": act.LayerIndex}, nil
	case RemoveNode:
		return map[string]any{"node_id": act.NodeID}, nil
	case UpdateNode:
		m := map[string]any{"node_id": act.NodeID}
		if act.Label != nil {
			m["label"] = *act.Label
		}
		if act.Category != nil {
			m["category"] = string(*act.Category)
		}
		if act.Elimination != nil {
			m["elimination"] = *act.Elimination
		}
		return m, nil
	case SetSeedSource:
		m := map[string]any{
			"node_id": act.NodeID,
			"port":    string(act.Port),
		}
		if act.Rank != nil {
			m["rank"] = *act.Rank
		}
		return m, nil
	case AddEdge:
		return map[string]any{
			"from_node": act.Candidate.FromNode,
			"from_port": string(act.Candidate.FromPort),
			"to_node":   act.Candidate.ToNode,
			"to_port":   string(act.Candidate.ToPort),
		}, nil
	case RemoveEdge:
		return map[string]any{"edge_id": act.EdgeID}, nil
	}
	return nil, fmt.Errorf("unsupported action type: %T", a)
}

func actionFromMap(kind string, m map[string]any) (Action, error) {
	switch kind {
	case KindInitFromRuleset:
		rm, ok := m["ruleset"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("init_from_ruleset: missing ruleset payload")
		}
		return InitFromRuleset{Rules: ruleset.FromMap(rm)}, nil
	case KindSetQualifyingSeedCount:
		return SetQualifyingSeedCount{Count: intField(m, "count")}, nil
	case KindAddLayer:
		return AddLayer{}, nil
	case KindRemoveLayer:
		return RemoveLayer{Index: intField(m, "index")}, nil
	case KindAddNode:
		return AddNode{LayerIndex: intField(m, "layer_index")}, nil
	case KindRemoveNode:
		return RemoveNode{NodeID: stringField(m, "node_id")}, nil
	case KindUpdateNode:
		act := UpdateNode{NodeID: stringField(m, "node_id")}
		if v, ok := m["label"].(string); ok {
			act.Label = &v
		}
		if v, ok := m["category"].(string); ok {
			c := bracket.Category(v)
			act.Category = &c
		}
		if v, ok := m["elimination"].(bool); ok {
			act.Elimination = &v
		}
		return act, nil
	case KindSetSeedSource:
		act := SetSeedSource{
			NodeID: stringField(m, "node_id"),
			Port:   bracket.InputPort(stringField(m, "port")),
		}
		if _, ok := m["rank"]; ok {
			rank := intField(m, "rank")
			act.Rank = &rank
		}
		return act, nil
	case KindAddEdge:
		return AddEdge{Candidate: bracket.EdgeEndpoints{
			FromNode: stringField(m, "from_node"),
			FromPort: bracket.OutputPort(stringField(m, "from_port")),
			ToNode:   stringField(m, "to_node"),
			ToPort:   bracket.InputPort(stringField(m, "to_port")),
		}}, nil
	case KindRemoveEdge:
		return RemoveEdge{EdgeID: stringField(m, "edge_id")}, nil
	}
	return nil, fmt.Errorf("unknown action kind: %q", kind)
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func intField(m map[string]any, key string) int {
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
