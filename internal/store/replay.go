package store

import (
	"context"
	"fmt"

	"github.com/bracketlab/core/internal/bracket"
	"github.com/bracketlab/core/internal/editor"
)

// ReplayResult reports a verified journal replay.
type ReplayResult struct {
	SessionToken string
	Steps        int
	Graph        bracket.Graph
	FinalHash    string
}

// MismatchError reports a replay divergence: re-applying a journaled
// action produced a graph whose hash differs from the recorded one. This
// means either the journal is corrupt or editor semantics changed since
// the journal was written.
type MismatchError struct {
	SessionToken string
	Seq          int64
	Recorded     string
	Recomputed   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("replay mismatch at seq %d of session %s: recorded %s, recomputed %s",
		e.Seq, e.SessionToken, e.Recorded, e.Recomputed)
}

// Replay reconstructs a session's graph by re-applying its journal on top
// of the given base graph, verifying the recorded post-edit hash at every
// step. The base must be the graph the session started from; sessions that
// began by importing a ruleset record that import as their first edit.
func (j *Journal) Replay(ctx context.Context, sessionToken string, base bracket.Graph) (*ReplayResult, error) {
	records, err := j.ReadSession(ctx, sessionToken)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	g := base.Clone()
	for _, rec := range records {
		action, err := editor.UnmarshalAction(rec.Kind, []byte(rec.Payload))
		if err != nil {
			return nil, fmt.Errorf("replay seq %d: %w", rec.Seq, err)
		}
		g = editor.Apply(g, action)

		hash, err := bracket.GraphHash(&g)
		if err != nil {
			return nil, fmt.Errorf("replay seq %d: %w", rec.Seq, err)
		}
		if hash != rec.GraphHash {
			return nil, &MismatchError{
				SessionToken: sessionToken,
				Seq:          rec.Seq,
				Recorded:     rec.GraphHash,
				Recomputed:   hash,
			}
		}
	}

	result := &ReplayResult{
		SessionToken: sessionToken,
		Steps:        len(records),
		Graph:        g,
	}
	if len(records) > 0 {
		result.FinalHash = records[len(records)-1].GraphHash
	} else {
		hash, err := bracket.GraphHash(&g)
		if err != nil {
			return nil, fmt.Errorf("replay: %w", err)
		}
		result.FinalHash = hash
	}
	return result, nil
}
