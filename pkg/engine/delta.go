package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/wiregraph/pkg/wire"
)

// Delta reports the difference between two committed states, keyed by ID.
// Added and updated entries carry the new values; all lists are ordered by ID.
type Delta struct {
	// Revision identifies the commit that produced the delta.
	Revision uuid.UUID `json:"revision"`

	AddedVertices   []wire.Vertex   `json:"added_vertices,omitempty"`
	UpdatedVertices []wire.Vertex   `json:"updated_vertices,omitempty"`
	RemovedVertices []wire.VertexID `json:"removed_vertices,omitempty"`

	AddedEdges   []wire.Edge   `json:"added_edges,omitempty"`
	UpdatedEdges []wire.Edge   `json:"updated_edges,omitempty"`
	RemovedEdges []wire.EdgeID `json:"removed_edges,omitempty"`
}

// Empty reports whether nothing changed. The revision is not considered.
func (d Delta) Empty() bool { return d.Size() == 0 }

// Size is the total number of changed entries.
func (d Delta) Size() int {
	return len(d.AddedVertices) + len(d.UpdatedVertices) + len(d.RemovedVertices) +
		len(d.AddedEdges) + len(d.UpdatedEdges) + len(d.RemovedEdges)
}

// String summarises the delta as "+Av ~Uv -Rv +Ae ~Ue -Re".
func (d Delta) String() string {
	return fmt.Sprintf("+%dv ~%dv -%dv +%de ~%de -%de",
		len(d.AddedVertices), len(d.UpdatedVertices), len(d.RemovedVertices),
		len(d.AddedEdges), len(d.UpdatedEdges), len(d.RemovedEdges))
}

// Diff compares two graphs. A vertex counts as updated when it moved by more
// than tol or any of its attributes changed; an edge when its endpoints or
// metadata changed. The returned delta has no revision.
func Diff(before, after wire.View, tol float64) Delta {
	var d Delta
	for _, v := range after.Vertices() {
		old, ok := before.Vertex(v.ID)
		switch {
		case !ok:
			d.AddedVertices = append(d.AddedVertices, v)
		case vertexChanged(old, v, tol):
			d.UpdatedVertices = append(d.UpdatedVertices, v)
		}
	}
	for _, id := range before.VertexIDs() {
		if _, ok := after.Vertex(id); !ok {
			d.RemovedVertices = append(d.RemovedVertices, id)
		}
	}

	for _, e := range after.Edges() {
		old, ok := before.Edge(e.ID)
		switch {
		case !ok:
			d.AddedEdges = append(d.AddedEdges, e)
		case old != e:
			d.UpdatedEdges = append(d.UpdatedEdges, e)
		}
	}
	for _, id := range before.EdgeIDs() {
		if _, ok := after.Edge(id); !ok {
			d.RemovedEdges = append(d.RemovedEdges, id)
		}
	}
	return d
}

func vertexChanged(a, b wire.Vertex, tol float64) bool {
	if a.Point.Dist(b.Point) > tol {
		return true
	}
	a.Point, b.Point = b.Point, b.Point
	return a != b
}
