// Package session owns a live editing session: exactly one graph and one
// wiring state, both mutated only through explicit dispatch.
//
// The session is the sole writer of its graph; the validator, oracle, and
// converter observe it read-only within a single call. Every committed edit
// is stamped with a monotonic logical sequence number and, when a recorder
// is attached, appended to the edit journal. Export to the external
// scheduler's ruleset form is gated on a clean (error-free) validation
// report.
package session
