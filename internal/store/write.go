package store

import (
	"context"
	"fmt"

	"github.com/bracketlab/core/internal/bracket"
)

// RecordEdit appends one committed edit to the journal.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - re-recording the same
// content-addressed edit is silently ignored. Other constraint violations
// (e.g. a different edit claiming an existing (session, seq) pair) still
// return errors.
func (j *Journal) RecordEdit(ctx context.Context, rec bracket.EditRecord) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO edits
		(id, session_token, seq, kind, payload, graph_hash)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.SessionToken,
		rec.Seq,
		rec.Kind,
		rec.Payload,
		rec.GraphHash,
	)
	if err != nil {
		return fmt.Errorf("record edit: %w", err)
	}

	return nil
}
