package policy

import "github.com/matzehuels/wiregraph/pkg/wire"

// VertexPolicy answers the vertex questions the generic rules cannot know.
type VertexPolicy interface {
	// IsProtected reports whether the rules must never delete or absorb v.
	IsProtected(v wire.Vertex) bool

	// CanCullIsolated reports whether v may be removed for having no edges.
	CanCullIsolated(v wire.Vertex) bool

	// PreferSurvivor picks the vertex that absorbs a coincident group. The
	// candidates arrive ordered by ID and are never empty.
	PreferSurvivor(candidates []wire.Vertex) wire.Vertex
}

// DefaultVertexPolicy protects pin vertices, culls isolated free vertices, and
// keeps the first protected vertex (else the lowest ID) when merging.
type DefaultVertexPolicy struct{}

// IsProtected reports true for pin-owned vertices.
func (DefaultVertexPolicy) IsProtected(v wire.Vertex) bool { return v.Owner == wire.Pin }

// CanCullIsolated reports true only for free vertices of degree 0.
func (DefaultVertexPolicy) CanCullIsolated(v wire.Vertex) bool {
	return v.Owner == wire.Free && v.Degree == 0
}

// PreferSurvivor returns the first protected candidate, or the first candidate
// when none is protected. Candidates are ordered by ID, so the choice is
// reproducible.
func (p DefaultVertexPolicy) PreferSurvivor(candidates []wire.Vertex) wire.Vertex {
	for _, c := range candidates {
		if p.IsProtected(c) {
			return c
		}
	}
	return candidates[0]
}
