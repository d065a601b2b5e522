package rules

import (
	"math"
	"slices"

	"github.com/matzehuels/wiregraph/pkg/wire"
)

// MergeCoincident fuses vertices closer than the geometry tolerance.
//
// Vertices are bucketed on a grid whose cell size equals the tolerance, so
// each vertex is only compared with the occupants of its own and the eight
// surrounding cells. Pairs the edge policy allows to merge are joined with a
// union-find, and the vertex policy picks a survivor for each group. Only
// members closer than the tolerance to the survivor are absorbed, so a chain
// of vertices each near the next does not fuse end to end; passes repeat
// until nothing is absorbed. Edges are re-pointed onto the survivor in place
// (keeping their IDs); an edge that would become a self-loop or duplicate an
// existing edge is dropped instead.
//
// A protected vertex is never absorbed. If a group holds several protected
// vertices, the free members fold into the survivor and the other protected
// vertices stay where they are.
type MergeCoincident struct{}

func (MergeCoincident) Name() string { return "merge-coincident" }

type cell struct{ x, y int64 }

func cellOf(x, y, size float64) cell {
	return cell{int64(math.Floor(x / size)), int64(math.Floor(y / size))}
}

// Apply implements Rule.
func (MergeCoincident) Apply(s *wire.State, ctx *Context) *wire.State {
	ctx = ctx.orDefaults()
	for {
		if mergePass(s, ctx) == 0 {
			return s
		}
	}
}

// mergePass groups nearby vertices once and folds each group onto its
// survivor. It returns the number of vertices absorbed.
func mergePass(s *wire.State, ctx *Context) int {
	tol := ctx.Geometry.Epsilon()
	ids := s.VertexIDs()

	buckets := make(map[cell][]wire.VertexID)
	for _, id := range ids {
		v, _ := s.Vertex(id)
		k := cellOf(v.Point.X, v.Point.Y, tol)
		buckets[k] = append(buckets[k], id)
	}

	uf := newUnionFind(ids)
	for _, id := range ids {
		v, _ := s.Vertex(id)
		k := cellOf(v.Point.X, v.Point.Y, tol)
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for _, other := range buckets[cell{k.x + dx, k.y + dy}] {
					if other <= id {
						continue
					}
					o, _ := s.Vertex(other)
					if v.Point.Dist(o.Point) >= tol {
						continue
					}
					if !ctx.Edges.CanMergeVertices(s, id, other) {
						continue
					}
					uf.union(id, other)
				}
			}
		}
	}

	absorbed := 0
	for _, group := range uf.groups() {
		if len(group) > 1 {
			absorbed += mergeGroup(s, ctx, group)
		}
	}
	return absorbed
}

func mergeGroup(s *wire.State, ctx *Context, group []wire.VertexID) int {
	tol := ctx.Geometry.Epsilon()
	members := make([]wire.Vertex, 0, len(group))
	for _, id := range group {
		v, _ := s.Vertex(id)
		members = append(members, v)
	}
	survivor := ctx.Vertices.PreferSurvivor(members)

	label := survivor.Label
	absorbed := 0
	for _, v := range members {
		if v.ID == survivor.ID || ctx.Vertices.IsProtected(v) {
			continue
		}
		if v.Point.Dist(survivor.Point) >= tol || !ctx.Edges.CanMergeVertices(s, survivor.ID, v.ID) {
			continue
		}
		for _, eid := range s.Incident(v.ID) {
			if !s.ReplaceEndpoint(eid, v.ID, survivor.ID) {
				s.RemoveEdge(eid)
			}
		}
		if label == "" && v.Label != "" {
			label = v.Label
		}
		s.RemoveVertex(v.ID)
		absorbed++
		ctx.Logger.Debug("merged vertex", "vertex", v.ID, "survivor", survivor.ID)
	}
	if label != survivor.Label {
		s.SetLabel(survivor.ID, label)
	}
	return absorbed
}

// unionFind groups vertex IDs with path halving and union by lower root, so
// every group's root is its smallest member.
type unionFind struct {
	parent map[wire.VertexID]wire.VertexID
}

func newUnionFind(ids []wire.VertexID) *unionFind {
	uf := &unionFind{parent: make(map[wire.VertexID]wire.VertexID, len(ids))}
	for _, id := range ids {
		uf.parent[id] = id
	}
	return uf
}

func (uf *unionFind) find(x wire.VertexID) wire.VertexID {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b wire.VertexID) {
	ra, rb := uf.find(a), uf.find(b)
	switch {
	case ra == rb:
	case ra < rb:
		uf.parent[rb] = ra
	default:
		uf.parent[ra] = rb
	}
}

// groups returns every set with its members sorted, ordered by smallest member.
func (uf *unionFind) groups() [][]wire.VertexID {
	byRoot := make(map[wire.VertexID][]wire.VertexID)
	for id := range uf.parent {
		r := uf.find(id)
		byRoot[r] = append(byRoot[r], id)
	}
	out := make([][]wire.VertexID, 0, len(byRoot))
	for _, g := range byRoot {
		slices.Sort(g)
		out = append(out, g)
	}
	slices.SortFunc(out, func(a, b []wire.VertexID) int { return int(a[0]) - int(b[0]) })
	return out
}
