// Package policy holds the pluggable strategies that answer domain questions
// the generic rules cannot: which vertices are protected, which vertex wins a
// merge, and whether edges and vertices on different routing layers may
// interact.
//
// [DefaultVertexPolicy] and [Schematic] describe plain schematic wiring and
// are what the engine uses when nothing else is injected. [Layered] is the
// variant for PCB traces, where a vertex on the top copper must never fuse
// with one on the bottom copper just because they share coordinates.
package policy
