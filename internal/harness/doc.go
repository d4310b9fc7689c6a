// Package harness runs YAML-described edit scenarios for conformance
// testing: start from the starter graph or an imported ruleset, apply a
// scripted sequence of edits and wiring gestures, then assert on the
// diagnostic report and compare the exported ruleset against a golden
// file.
//
// Golden files live in testdata/golden and are regenerated with:
//
//	go test ./internal/harness -update
package harness
