// Package editor is the structural editor for bracket graphs: a pure
// reducer turning edit actions into new graphs.
//
// Apply is total and never panics. Illegal actions (out-of-range indices,
// unknown ids, invalid ports) are absorbed as no-ops so callers can
// dispatch optimistically without guard code. All cascading consequences
// of a structural edit (incident edge removal, slot compaction, id
// re-derivation) complete atomically inside the single Apply call that
// caused them.
package editor
