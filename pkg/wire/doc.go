// Package wire provides the value-type data store behind the wire-graph
// engine: vertices, edges, and the adjacency index that ties them together.
//
// # Overview
//
// A [State] is an arena. Vertices and edges refer to one another only through
// opaque identifiers ([VertexID], [EdgeID]); there are no pointers between
// them. The adjacency index (vertex → incident edges) and each vertex's
// cached degree are derived data maintained by the mutators, so they always
// agree with the edge map.
//
// IDs are allocated in increasing order and never reused. Because the rules
// break ties by lowest ID, the same sequence of edits always produces the same
// graph.
//
// # Basic Usage
//
//	s := wire.New()
//	a := s.AddVertex(geom.Pt(0, 0), wire.Free, wire.PinRef{})
//	b := s.AddVertex(geom.Pt(100, 0), wire.Pin, wire.PinRef{Component: "R1", Pin: "1"})
//	s.AddEdge(a, b, wire.EdgeMeta{})
//
// # Snapshots
//
// [State.Clone] returns a fully independent copy. The engine applies every
// edit to a clone and swaps it in afterwards, so a committed state is never
// mutated again and can be handed out as a read-only [View].
//
// # Invariants
//
// The mutators refuse anything that would produce a self-loop, a dangling
// edge, or a second edge between the same pair of vertices. [Validate]
// re-checks all invariants from scratch and is meant for tests and decoded
// documents.
//
// # Concurrency
//
// State is not safe for concurrent use. Views of committed states may be read
// from several goroutines as long as nobody holds a mutable reference.
package wire
