// Package validate scans a bracket graph and produces ordered diagnostics.
//
// Diagnostics come in two severities: errors, which must block export to
// the external fixture scheduler, and warnings, which are advisory only.
// Validation never returns a Go error and never halts on the first finding;
// it always produces a full report so the owning application can surface
// everything at once after each edit.
package validate
