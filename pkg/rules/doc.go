// Package rules restores the connection-graph invariants after an edit.
//
// Each [Rule] repairs one property of a draft state; a [Ruleset] threads a
// state through several of them in order. [Default] is the canonical
// pipeline:
//
//	merge-coincident   vertices within tolerance fuse
//	split-edges        edges passing over a vertex are broken there
//	collapse-collinear free straight-through vertices disappear
//	remove-isolated    free vertices without edges are culled
//	assign-clusters    every vertex gets its component ID
//
// Rules consult the geometry through [geom.Policy] and make policy decisions
// through [policy.VertexPolicy] and [policy.EdgePolicy], so the same pipeline
// serves orthogonal schematics and layered traces.
//
// The rules currently resolve the whole graph on every run. [Context.Bounds]
// carries the padded neighbourhood of the edit for logging and hooks.
package rules
