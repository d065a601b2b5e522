package engine

import (
	"math"

	"github.com/matzehuels/wiregraph/pkg/geom"
	"github.com/matzehuels/wiregraph/pkg/wire"
)

// HitKind says what a hit test found.
type HitKind int

const (
	HitNone HitKind = iota
	HitVertex
	HitEdge
)

func (k HitKind) String() string {
	switch k {
	case HitVertex:
		return "vertex"
	case HitEdge:
		return "edge"
	default:
		return "none"
	}
}

// VertexRole classifies a vertex for pointer interaction.
type VertexRole int

const (
	RoleEndpoint VertexRole = iota // degree 0 or 1
	RoleCorner                     // degree 2
	RoleJunction                   // degree 3 or more
	RolePin                        // pin-owned, whatever the degree
)

func (r VertexRole) String() string {
	switch r {
	case RoleCorner:
		return "corner"
	case RoleJunction:
		return "junction"
	case RolePin:
		return "pin"
	default:
		return "endpoint"
	}
}

// Orientation classifies an edge's direction.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
	Diagonal // 45 degrees
	Oblique
)

func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Diagonal:
		return "diagonal"
	case Oblique:
		return "oblique"
	default:
		return "horizontal"
	}
}

// Hit is the result of a hit test. Vertex and Role are set for HitVertex;
// Edge and Orientation for HitEdge.
type Hit struct {
	Kind        HitKind
	Vertex      wire.VertexID
	Role        VertexRole
	Edge        wire.EdgeID
	Orientation Orientation
	Distance    float64
}

// HitTest finds what lies within tol of p. Vertices win over edges; among
// edges the closest wins, ties going to the lower ID.
func HitTest(g wire.View, p geom.Point, tol float64) Hit {
	if id, ok := g.NearestVertex(p, tol); ok {
		v, _ := g.Vertex(id)
		return Hit{Kind: HitVertex, Vertex: id, Role: RoleOf(v), Distance: v.Point.Dist(p)}
	}

	best := Hit{Kind: HitNone, Distance: math.Inf(1)}
	for _, e := range g.Edges() {
		a, _ := g.Vertex(e.Start)
		b, _ := g.Vertex(e.End)
		d := geom.SegmentDistance(p, a.Point, b.Point)
		if d <= tol && d < best.Distance {
			best = Hit{Kind: HitEdge, Edge: e.ID, Orientation: OrientationOf(a.Point, b.Point), Distance: d}
		}
	}
	if best.Kind == HitNone {
		best.Distance = 0
	}
	return best
}

// RoleOf derives a vertex's role from its ownership and degree.
func RoleOf(v wire.Vertex) VertexRole {
	switch {
	case v.IsPin():
		return RolePin
	case v.Degree >= 3:
		return RoleJunction
	case v.Degree == 2:
		return RoleCorner
	default:
		return RoleEndpoint
	}
}

// OrientationOf classifies the segment a-b.
func OrientationOf(a, b geom.Point) Orientation {
	d := b.Sub(a)
	dx, dy := math.Abs(d.X), math.Abs(d.Y)
	eps := 1e-9 * math.Max(1, math.Max(dx, dy))
	switch {
	case dy <= eps:
		return Horizontal
	case dx <= eps:
		return Vertical
	case math.Abs(dx-dy) <= eps:
		return Diagonal
	default:
		return Oblique
	}
}
