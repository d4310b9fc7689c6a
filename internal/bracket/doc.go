// Package bracket defines the canonical in-memory model for elimination
// bracket graphs: layers, nodes, edges, and slot bindings.
//
// This package contains type definitions and identity derivation only. All
// other internal packages import bracket; bracket imports nothing internal.
// This keeps the model the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Node ids are a pure function of (layer index, slot index); any
//     structural edit re-derives them atomically within that edit
//   - Edge ids are content-addressed over their endpoint tuple
//   - An input slot is bound by at most one of {seed rank, inbound edge}
//   - All JSON tags use snake_case
package bracket
