// Package ruleset implements the compact declarative ruleset format
// consumed by the external fixture scheduler, and the bidirectional
// converter between that format and the bracket graph model.
//
// The format is edge-free: a match slot references its source either as a
// static seed rank or as the winner/loser of an earlier match, addressed by
// (layer, match) position. Layer references are 1-based by convention of
// the consuming scheduler; match references are 0-based. The importer
// re-materializes edges from result references so edge-centric invariants
// remain checkable after import.
//
// Rulesets can be authored in CUE, YAML, or JSON. Import is tolerant: a
// dangling result reference degrades to an unbound slot rather than
// failing, and unknown category text degrades to the generic elimination
// class.
//
// YAML and JSON carry the wire shape for slot sources: a kind-discriminated
// object, {kind: "seed", rank: 3} or {kind: "result", layer_ref: 2,
// match_ref: 0, outcome: "winner"}, with an empty object for an unbound
// slot. CUE uses a shorter authoring shape instead: {seed: 3} or
// {result: {layer: 2, match: 0, outcome: "winner"}}, omitting the slot
// entirely when unbound. The shapes are per-format and not interchangeable;
// the CUE compiler maps its shape onto the wire form during import, and
// export always emits the wire shape.
package ruleset
