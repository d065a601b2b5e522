package wire

import (
	"errors"
	"fmt"

	"github.com/matzehuels/wiregraph/pkg/geom"
)

// View is the read-only face of a State. The engine hands committed states to
// observers and collaborators as Views; every slice a View returns is a fresh
// copy ordered by ID.
type View interface {
	Vertex(id VertexID) (Vertex, bool)
	Edge(id EdgeID) (Edge, bool)
	Vertices() []Vertex
	Edges() []Edge
	VertexIDs() []VertexID
	EdgeIDs() []EdgeID
	Incident(v VertexID) []EdgeID
	Degree(v VertexID) int
	Neighbors(v VertexID) []VertexID
	EdgeBetween(a, b VertexID) (EdgeID, bool)
	VertexCount() int
	EdgeCount() int
	Adjacency() map[VertexID][]EdgeID
	NearestVertex(p geom.Point, tol float64) (VertexID, bool)
}

// ReadOnly hides s behind the View methods only, so holders of the result
// cannot reach the mutators by asserting back to *State.
func ReadOnly(s *State) View { return readOnly{s} }

type readOnly struct{ View }

var (
	// ErrDanglingEdge means an edge references a vertex that does not exist.
	ErrDanglingEdge = errors.New("edge references missing vertex")

	// ErrSelfLoop means an edge starts and ends at the same vertex.
	ErrSelfLoop = errors.New("edge is a self-loop")

	// ErrDuplicateEdge means two edges join the same unordered vertex pair.
	ErrDuplicateEdge = errors.New("duplicate edge between vertex pair")

	// ErrAdjacencyMismatch means the adjacency index disagrees with the edge map.
	ErrAdjacencyMismatch = errors.New("adjacency index out of sync")

	// ErrDegreeMismatch means a vertex's cached degree is wrong.
	ErrDegreeMismatch = errors.New("cached degree out of sync")
)

// Validate checks every structural invariant of a graph and returns all
// violations joined with errors.Join, or nil. Violations can only come from
// bugs; the engine never produces them from valid input, so Validate exists
// for tests and for checking decoded documents.
func Validate(g View) error {
	var errs []error
	type pair struct{ a, b VertexID }
	seen := make(map[pair]EdgeID)

	for _, e := range g.Edges() {
		if e.Start == e.End {
			errs = append(errs, fmt.Errorf("%w: %s", ErrSelfLoop, e.ID))
			continue
		}
		_, okS := g.Vertex(e.Start)
		_, okE := g.Vertex(e.End)
		if !okS || !okE {
			errs = append(errs, fmt.Errorf("%w: %s (%s-%s)", ErrDanglingEdge, e.ID, e.Start, e.End))
			continue
		}
		k := pair{min(e.Start, e.End), max(e.Start, e.End)}
		if prev, dup := seen[k]; dup {
			errs = append(errs, fmt.Errorf("%w: %s and %s", ErrDuplicateEdge, prev, e.ID))
		}
		seen[k] = e.ID
	}

	adj := g.Adjacency()
	for _, v := range g.Vertices() {
		inc := adj[v.ID]
		if v.Degree != len(inc) {
			errs = append(errs, fmt.Errorf("%w: %s has %d, index has %d", ErrDegreeMismatch, v.ID, v.Degree, len(inc)))
		}
		for _, eid := range inc {
			e, ok := g.Edge(eid)
			if !ok || !e.Has(v.ID) {
				errs = append(errs, fmt.Errorf("%w: %s lists %s", ErrAdjacencyMismatch, v.ID, eid))
			}
		}
	}
	for _, e := range g.Edges() {
		for _, end := range [2]VertexID{e.Start, e.End} {
			if !containsEdge(adj[end], e.ID) {
				errs = append(errs, fmt.Errorf("%w: %s missing from %s", ErrAdjacencyMismatch, e.ID, end))
			}
		}
	}
	return errors.Join(errs...)
}

func containsEdge(ids []EdgeID, id EdgeID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// Bounds returns the bounding box of the given vertices, ignoring unknown
// IDs. With no IDs it covers the whole graph.
func Bounds(g View, ids ...VertexID) geom.Rect {
	if len(ids) == 0 {
		ids = g.VertexIDs()
	}
	pts := make([]geom.Point, 0, len(ids))
	for _, id := range ids {
		if v, ok := g.Vertex(id); ok {
			pts = append(pts, v.Point)
		}
	}
	return geom.RectOf(pts...)
}
