package testutil

import (
	"context"
	"sync"

	"github.com/bracketlab/core/internal/bracket"
)

// MemoryRecorder captures edit records in memory, standing in for the
// SQLite journal in session tests.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type MemoryRecorder struct {
	mu      sync.Mutex
	records []bracket.EditRecord
}

// RecordEdit appends the record. Implements session.Recorder.
func (r *MemoryRecorder) RecordEdit(_ context.Context, rec bracket.EditRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

// Records returns a copy of everything recorded so far.
func (r *MemoryRecorder) Records() []bracket.EditRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]bracket.EditRecord, len(r.records))
	copy(out, r.records)
	return out
}

// FailingRecorder returns its error from every RecordEdit call, for
// exercising recorder failure paths.
type FailingRecorder struct {
	Err error
}

// RecordEdit always fails. Implements session.Recorder.
func (r *FailingRecorder) RecordEdit(context.Context, bracket.EditRecord) error {
	return r.Err
}
