package rules

import (
	"github.com/matzehuels/wiregraph/pkg/wire"
)

// CollapseCollinear removes unprotected degree-2 vertices that sit in the
// middle of a straight run, replacing their two edges with one.
//
// A vertex v with neighbours a and b collapses when v lies on the line a-b
// within tolerance and strictly between them, the two edges have compatible
// metadata, and no a-b edge exists yet. A collapse is also refused when the
// new a-b edge would pass over another vertex the split rule would thread
// into it. Passes repeat until nothing changes.
type CollapseCollinear struct{}

func (CollapseCollinear) Name() string { return "collapse-collinear" }

// Apply implements Rule.
func (CollapseCollinear) Apply(s *wire.State, ctx *Context) *wire.State {
	ctx = ctx.orDefaults()
	for changed := true; changed; {
		changed = false
		for _, id := range s.VertexIDs() {
			if collapse(s, ctx, id) {
				changed = true
			}
		}
	}
	return s
}

func collapse(s *wire.State, ctx *Context, id wire.VertexID) bool {
	v, ok := s.Vertex(id)
	if !ok || v.Degree != 2 || ctx.Vertices.IsProtected(v) {
		return false
	}
	inc := s.Incident(id)
	e1, _ := s.Edge(inc[0])
	e2, _ := s.Edge(inc[1])
	a, b := e1.Other(id), e2.Other(id)
	if a == b || !ctx.Edges.CompatibleMeta(e1.Meta, e2.Meta) {
		return false
	}
	if _, exists := s.EdgeBetween(a, b); exists {
		return false
	}

	va, _ := s.Vertex(a)
	vb, _ := s.Vertex(b)
	dir := vb.Point.Sub(va.Point)
	if !ctx.Geometry.IsCollinear(va.Point, v.Point, dir, ctx.Geometry.Epsilon()) {
		return false
	}
	if t := ctx.Geometry.ProjectParam(va.Point, dir, v.Point); t <= 0 || t >= 1 {
		return false
	}
	merged := wire.Edge{Start: a, End: b, Meta: e1.Meta}
	for _, w := range s.Vertices() {
		if w.ID == id {
			continue
		}
		if _, over := passesOver(s, ctx, merged, va.Point, vb.Point, w); over {
			return false
		}
	}

	s.RemoveVertex(id)
	s.AddEdge(a, b, e1.Meta)
	ctx.Logger.Debug("collapsed vertex", "vertex", id, "between", []wire.VertexID{a, b})
	return true
}
