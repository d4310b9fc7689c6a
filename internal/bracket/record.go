package bracket

import "fmt"

// DomainEditRecord is the domain prefix for edit record ids.
const DomainEditRecord = "bracket/edit/v1"

// EditRecord is one committed editor action in a session's edit journal.
// Payload is the action's canonical JSON; GraphHash is the content hash of
// the graph after the action applied, which is what replay verification
// checks against.
type EditRecord struct {
	ID           string `json:"id"` // content-addressed
	SessionToken string `json:"session_token"`
	Seq          int64  `json:"seq"` // logical clock, strictly increasing per session
	Kind         string `json:"kind"`
	Payload      string `json:"payload"`
	GraphHash    string `json:"graph_hash"`
}

// EditRecordID computes the content-addressed id for an edit record.
// The id is stable across restarts and replays given the same inputs.
func EditRecordID(sessionToken string, seq int64, kind, payload string) (string, error) {
	canonical, err := MarshalCanonical(map[string]any{
		"session_token": sessionToken,
		"seq":           seq,
		"kind":          kind,
		"payload":       payload,
	})
	if err != nil {
		return "", fmt.Errorf("edit record id: %w", err)
	}
	return hashWithDomain(DomainEditRecord, canonical), nil
}
