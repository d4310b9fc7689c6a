// Package store persists the edit journal: an append-only SQLite log of
// committed editor actions, one row per edit, content-addressed and
// seq-ordered per session.
//
// The graph itself is never persisted here; the journal stores the actions
// that produced it, and replay reconstructs the graph by re-applying them
// through the structural editor, verifying the recorded post-edit hash at
// every step.
package store
