package session

import "github.com/google/uuid"

// NewToken generates a session token.
//
// Uses UUIDv7 (time-ordered) so tokens sort chronologically in the journal
// while staying globally unique.
func NewToken() string {
	return uuid.Must(uuid.NewV7()).String()
}
