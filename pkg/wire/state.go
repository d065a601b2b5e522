package wire

import (
	"errors"
	"maps"
	"slices"

	"github.com/matzehuels/wiregraph/pkg/geom"
)

var (
	// ErrInvalidID is returned by InsertVertex and InsertEdge for the zero ID.
	ErrInvalidID = errors.New("id must not be zero")

	// ErrDuplicateID is returned by InsertVertex and InsertEdge when the ID is
	// already taken.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrUnknownVertex is returned by InsertEdge when an endpoint is missing.
	ErrUnknownVertex = errors.New("unknown vertex")
)

// State is the wire graph: vertices, edges, and the adjacency index derived
// from the edges. The adjacency index and each vertex's cached Degree are
// maintained by the mutators and always agree with the edge map.
//
// Mutators never fail structurally. Requests that would break an invariant
// (self-loops, dangling endpoints, a second edge between the same pair) are
// refused and reported through the boolean result.
//
// The zero value is not usable - use New. A State is not safe for concurrent
// use; the engine owns the only mutable copy and hands out read-only [View]s.
type State struct {
	vertices   map[VertexID]Vertex
	edges      map[EdgeID]Edge
	adj        map[VertexID]map[EdgeID]struct{}
	nextVertex VertexID
	nextEdge   EdgeID
}

// New returns an empty State.
func New() *State {
	return &State{
		vertices:   make(map[VertexID]Vertex),
		edges:      make(map[EdgeID]Edge),
		adj:        make(map[VertexID]map[EdgeID]struct{}),
		nextVertex: 1,
		nextEdge:   1,
	}
}

// Clone returns a deep copy. The copy and the original share nothing, so one
// can be mutated while the other is kept as a snapshot.
func (s *State) Clone() *State {
	c := &State{
		vertices:   maps.Clone(s.vertices),
		edges:      maps.Clone(s.edges),
		adj:        make(map[VertexID]map[EdgeID]struct{}, len(s.adj)),
		nextVertex: s.nextVertex,
		nextEdge:   s.nextEdge,
	}
	for id, inc := range s.adj {
		c.adj[id] = maps.Clone(inc)
	}
	return c
}

// AddVertex creates a vertex at p and returns its new ID.
func (s *State) AddVertex(p geom.Point, owner Ownership, pin PinRef) VertexID {
	id := s.nextVertex
	s.nextVertex++
	s.vertices[id] = Vertex{ID: id, Point: p, Owner: owner, Pin: pin}
	s.adj[id] = make(map[EdgeID]struct{})
	return id
}

// InsertVertex restores a vertex with a caller-chosen ID, as when decoding a
// saved document. Degree is recomputed as edges are inserted.
func (s *State) InsertVertex(v Vertex) error {
	if v.ID == 0 {
		return ErrInvalidID
	}
	if _, exists := s.vertices[v.ID]; exists {
		return ErrDuplicateID
	}
	v.Degree = 0
	s.vertices[v.ID] = v
	s.adj[v.ID] = make(map[EdgeID]struct{})
	if v.ID >= s.nextVertex {
		s.nextVertex = v.ID + 1
	}
	return nil
}

// RemoveVertex deletes the vertex together with every incident edge. It
// returns the IDs of the former neighbours, sorted, and false if the vertex
// did not exist.
func (s *State) RemoveVertex(id VertexID) ([]VertexID, bool) {
	if _, ok := s.vertices[id]; !ok {
		return nil, false
	}
	var neighbours []VertexID
	for _, eid := range s.Incident(id) {
		e := s.edges[eid]
		neighbours = append(neighbours, e.Other(id))
		s.RemoveEdge(eid)
	}
	delete(s.vertices, id)
	delete(s.adj, id)
	slices.Sort(neighbours)
	return slices.Compact(neighbours), true
}

// MoveVertex relocates a vertex. It returns false if the vertex is unknown.
func (s *State) MoveVertex(id VertexID, p geom.Point) bool {
	return s.update(id, func(v *Vertex) { v.Point = p })
}

// SetOwner changes a vertex's ownership. A Free owner clears the pin reference.
func (s *State) SetOwner(id VertexID, owner Ownership, pin PinRef) bool {
	if owner == Free {
		pin = PinRef{}
	}
	return s.update(id, func(v *Vertex) { v.Owner, v.Pin = owner, pin })
}

// SetCluster stamps a vertex with its connected-component label.
func (s *State) SetCluster(id VertexID, c ClusterID) bool {
	return s.update(id, func(v *Vertex) { v.Cluster = c })
}

// SetLabel attaches a user net label to a vertex.
func (s *State) SetLabel(id VertexID, label string) bool {
	return s.update(id, func(v *Vertex) { v.Label = label })
}

func (s *State) update(id VertexID, fn func(*Vertex)) bool {
	v, ok := s.vertices[id]
	if !ok {
		return false
	}
	fn(&v)
	s.vertices[id] = v
	return true
}

// AddEdge connects a and b. It refuses self-loops and unknown endpoints
// (returning 0, false) and never creates a second edge between the same
// unordered pair: in that case the existing edge ID is returned with false.
func (s *State) AddEdge(a, b VertexID, meta EdgeMeta) (EdgeID, bool) {
	if a == b {
		return 0, false
	}
	if _, ok := s.vertices[a]; !ok {
		return 0, false
	}
	if _, ok := s.vertices[b]; !ok {
		return 0, false
	}
	if existing, ok := s.EdgeBetween(a, b); ok {
		return existing, false
	}
	id := s.nextEdge
	s.nextEdge++
	s.link(Edge{ID: id, Start: a, End: b, Meta: meta})
	return id, true
}

// InsertEdge restores an edge with a caller-chosen ID.
func (s *State) InsertEdge(e Edge) error {
	switch {
	case e.ID == 0:
		return ErrInvalidID
	case e.Start == e.End:
		return ErrSelfLoop
	}
	if _, exists := s.edges[e.ID]; exists {
		return ErrDuplicateID
	}
	if _, ok := s.vertices[e.Start]; !ok {
		return ErrUnknownVertex
	}
	if _, ok := s.vertices[e.End]; !ok {
		return ErrUnknownVertex
	}
	if _, ok := s.EdgeBetween(e.Start, e.End); ok {
		return ErrDuplicateEdge
	}
	s.link(e)
	if e.ID >= s.nextEdge {
		s.nextEdge = e.ID + 1
	}
	return nil
}

func (s *State) link(e Edge) {
	s.edges[e.ID] = e
	for _, v := range [2]VertexID{e.Start, e.End} {
		s.adj[v][e.ID] = struct{}{}
		s.update(v, func(x *Vertex) { x.Degree++ })
	}
}

func (s *State) unlink(e Edge) {
	for _, v := range [2]VertexID{e.Start, e.End} {
		delete(s.adj[v], e.ID)
		s.update(v, func(x *Vertex) { x.Degree-- })
	}
}

// RemoveEdge deletes an edge. It returns false if the edge is unknown.
func (s *State) RemoveEdge(id EdgeID) bool {
	e, ok := s.edges[id]
	if !ok {
		return false
	}
	s.unlink(e)
	delete(s.edges, id)
	return true
}

// ReplaceEndpoint moves the old endpoint of edge id onto to, keeping the edge
// ID. It refuses (returning false) when the result would be a self-loop or
// would duplicate an existing edge; the edge is left untouched in that case.
func (s *State) ReplaceEndpoint(id EdgeID, old, to VertexID) bool {
	e, ok := s.edges[id]
	if !ok || !e.Has(old) {
		return false
	}
	if _, ok := s.vertices[to]; !ok {
		return false
	}
	other := e.Other(old)
	if other == to {
		return false
	}
	if _, dup := s.EdgeBetween(other, to); dup {
		return false
	}
	s.unlink(e)
	if e.Start == old {
		e.Start = to
	} else {
		e.End = to
	}
	s.link(e)
	return true
}

// SetEdgeMeta replaces an edge's metadata.
func (s *State) SetEdgeMeta(id EdgeID, meta EdgeMeta) bool {
	e, ok := s.edges[id]
	if !ok {
		return false
	}
	e.Meta = meta
	s.edges[id] = e
	return true
}

// Vertex returns the vertex with the given ID.
func (s *State) Vertex(id VertexID) (Vertex, bool) {
	v, ok := s.vertices[id]
	return v, ok
}

// Edge returns the edge with the given ID.
func (s *State) Edge(id EdgeID) (Edge, bool) {
	e, ok := s.edges[id]
	return e, ok
}

// VertexIDs returns all vertex IDs in ascending order.
func (s *State) VertexIDs() []VertexID { return slices.Sorted(maps.Keys(s.vertices)) }

// EdgeIDs returns all edge IDs in ascending order.
func (s *State) EdgeIDs() []EdgeID { return slices.Sorted(maps.Keys(s.edges)) }

// Vertices returns copies of all vertices ordered by ID.
func (s *State) Vertices() []Vertex {
	out := make([]Vertex, 0, len(s.vertices))
	for _, id := range s.VertexIDs() {
		out = append(out, s.vertices[id])
	}
	return out
}

// Edges returns copies of all edges ordered by ID.
func (s *State) Edges() []Edge {
	out := make([]Edge, 0, len(s.edges))
	for _, id := range s.EdgeIDs() {
		out = append(out, s.edges[id])
	}
	return out
}

// Incident returns the IDs of the edges touching v, in ascending order.
func (s *State) Incident(v VertexID) []EdgeID { return slices.Sorted(maps.Keys(s.adj[v])) }

// Degree returns the number of edges touching v, or 0 if v is unknown.
func (s *State) Degree(v VertexID) int { return len(s.adj[v]) }

// Neighbors returns the vertices joined to v by an edge, in ascending order.
func (s *State) Neighbors(v VertexID) []VertexID {
	out := make([]VertexID, 0, len(s.adj[v]))
	for eid := range s.adj[v] {
		out = append(out, s.edges[eid].Other(v))
	}
	slices.Sort(out)
	return out
}

// EdgeBetween returns the edge joining a and b in either direction.
func (s *State) EdgeBetween(a, b VertexID) (EdgeID, bool) {
	small, other := a, b
	if len(s.adj[b]) < len(s.adj[a]) {
		small, other = b, a
	}
	for eid := range s.adj[small] {
		if s.edges[eid].Other(small) == other {
			return eid, true
		}
	}
	return 0, false
}

// VertexCount returns the number of vertices.
func (s *State) VertexCount() int { return len(s.vertices) }

// EdgeCount returns the number of edges.
func (s *State) EdgeCount() int { return len(s.edges) }

// Adjacency returns a copy of the adjacency index with each incidence list
// sorted by edge ID.
func (s *State) Adjacency() map[VertexID][]EdgeID {
	out := make(map[VertexID][]EdgeID, len(s.adj))
	for id := range s.adj {
		out[id] = s.Incident(id)
	}
	return out
}

// NearestVertex returns the vertex closest to p among those strictly closer
// than tol. Ties go to the lower ID.
func (s *State) NearestVertex(p geom.Point, tol float64) (VertexID, bool) {
	return s.NearestVertexFunc(p, tol, nil)
}

// NearestVertexFunc is NearestVertex restricted to vertices accepted by keep.
// A nil keep accepts every vertex.
func (s *State) NearestVertexFunc(p geom.Point, tol float64, keep func(Vertex) bool) (VertexID, bool) {
	var (
		best  VertexID
		bestD = tol
		found bool
	)
	for _, id := range s.VertexIDs() {
		v := s.vertices[id]
		d := v.Point.Dist(p)
		if d < bestD && (keep == nil || keep(v)) {
			best, bestD, found = id, d, true
		}
	}
	return best, found
}

// Ensure State implements View.
var _ View = (*State)(nil)
