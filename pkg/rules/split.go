package rules

import (
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"

	"github.com/matzehuels/wiregraph/pkg/geom"
	"github.com/matzehuels/wiregraph/pkg/wire"
)

// SplitEdges breaks every edge that passes over a vertex into pieces, so no
// vertex lies strictly inside an edge it is not an endpoint of.
//
// Candidates must be collinear with the edge within tolerance, project
// strictly between its endpoints (farther than the tolerance from both) and
// be accepted by ShouldEdgeInteractWithVertex. They are ordered along the
// edge by their projection parameter and chained with edges carrying the
// original metadata. Pieces that already exist are not duplicated.
type SplitEdges struct{}

func (SplitEdges) Name() string { return "split-edges" }

// Apply implements Rule.
func (SplitEdges) Apply(s *wire.State, ctx *Context) *wire.State {
	ctx = ctx.orDefaults()
	tol := ctx.Geometry.Epsilon()
	vertices := s.Vertices()

	for _, eid := range s.EdgeIDs() {
		e, ok := s.Edge(eid)
		if !ok {
			continue
		}
		a, _ := s.Vertex(e.Start)
		b, _ := s.Vertex(e.End)
		length := b.Point.Sub(a.Point).Len()
		if length <= 2*tol {
			continue
		}

		along := redblacktree.NewWith(utils.Float64Comparator)
		for _, v := range vertices {
			if t, ok := passesOver(s, ctx, e, a.Point, b.Point, v); ok {
				if _, dup := along.Get(t); !dup {
					along.Put(t, v.ID)
				}
			}
		}
		if along.Empty() {
			continue
		}

		// Candidates closer than the tolerance along the edge were kept
		// apart by the merge rule; only the first of them is threaded.
		s.RemoveEdge(eid)
		prev, prevT := e.Start, 0.0
		threaded := 0
		it := along.Iterator()
		for it.Next() {
			t := it.Key().(float64)
			if threaded > 0 && (t-prevT)*length <= tol {
				continue
			}
			id := it.Value().(wire.VertexID)
			s.AddEdge(prev, id, e.Meta)
			prev, prevT = id, t
			threaded++
		}
		s.AddEdge(prev, e.End, e.Meta)
		ctx.Logger.Debug("split edge", "edge", eid, "at", threaded)
	}
	return s
}

// passesOver reports whether e, running from a to b, should be split at v,
// and where along the edge v projects.
func passesOver(g wire.View, ctx *Context, e wire.Edge, a, b geom.Point, v wire.Vertex) (float64, bool) {
	tol := ctx.Geometry.Epsilon()
	if e.Has(v.ID) || !geom.RectOf(a, b).Expand(tol).Contains(v.Point) {
		return 0, false
	}
	dir := b.Sub(a)
	if !ctx.Geometry.IsCollinear(a, v.Point, dir, tol) {
		return 0, false
	}
	length := dir.Len()
	t := ctx.Geometry.ProjectParam(a, dir, v.Point)
	if t*length <= tol || (1-t)*length <= tol {
		return 0, false
	}
	if !ctx.Edges.ShouldEdgeInteractWithVertex(g, e, v.ID) {
		return 0, false
	}
	return t, true
}
