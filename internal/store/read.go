package store

import (
	"context"
	"fmt"

	"github.com/bracketlab/core/internal/bracket"
)

// ReadSession returns every edit recorded for a session token with
// deterministic ordering: ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if no edits exist for the token.
func (j *Journal) ReadSession(ctx context.Context, sessionToken string) ([]bracket.EditRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, session_token, seq, kind, payload, graph_hash
		FROM edits
		WHERE session_token = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, sessionToken)
	if err != nil {
		return nil, fmt.Errorf("query edits: %w", err)
	}
	defer rows.Close()

	var records []bracket.EditRecord
	for rows.Next() {
		var rec bracket.EditRecord
		if err := rows.Scan(&rec.ID, &rec.SessionToken, &rec.Seq, &rec.Kind, &rec.Payload, &rec.GraphHash); err != nil {
			return nil, fmt.Errorf("scan edit: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate edits: %w", err)
	}

	if records == nil {
		records = []bracket.EditRecord{}
	}
	return records, nil
}

// Sessions returns every session token present in the journal, ordered by
// token. UUIDv7 tokens sort chronologically.
func (j *Journal) Sessions(ctx context.Context) ([]string, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT DISTINCT session_token FROM edits
		ORDER BY session_token COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	if tokens == nil {
		tokens = []string{}
	}
	return tokens, nil
}

// LastSeq returns the highest recorded seq for a session, or 0 when the
// session has no edits. Used to resume a session's logical clock.
func (j *Journal) LastSeq(ctx context.Context, sessionToken string) (int64, error) {
	var seq int64
	err := j.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) FROM edits WHERE session_token = ?
	`, sessionToken).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	return seq, nil
}
