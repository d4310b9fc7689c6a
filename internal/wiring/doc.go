// Package wiring is the transient click-to-wire interaction layer: a
// two-state machine that turns a stream of port-activation events into
// edge-creation actions for the structural editor.
//
// At most one pending wiring session exists at any time. Each event is one
// atomic transition; events are never queued, so no locking is needed.
// Cancellation is always available and always succeeds.
package wiring
