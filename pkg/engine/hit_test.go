package engine

import (
	"testing"

	"github.com/matzehuels/wiregraph/pkg/geom"
	"github.com/matzehuels/wiregraph/pkg/wire"
)

func TestHitTest(t *testing.T) {
	eng := New(Options{})
	eng.Execute(path(geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(100, 100)))
	eng.Execute(path(geom.Pt(50, 0), geom.Pt(50, -50)))
	pin, _ := eng.AttachPin(geom.Pt(0, -200), wire.PinRef{Component: "J1", Pin: "1"})

	tests := []struct {
		name   string
		at     geom.Point
		kind   HitKind
		vertex wire.VertexID
		role   VertexRole
		orient Orientation
	}{
		{"endpoint", geom.Pt(0, 0), HitVertex, 1, RoleEndpoint, 0},
		{"corner", geom.Pt(100, 0.5), HitVertex, 2, RoleCorner, 0},
		{"junction", geom.Pt(50, 0.2), HitVertex, 4, RoleJunction, 0},
		{"pin", geom.Pt(0, -200), HitVertex, pin, RolePin, 0},
		{"horizontal edge", geom.Pt(25, 0.3), HitEdge, 0, 0, Horizontal},
		{"vertical edge", geom.Pt(100.4, 60), HitEdge, 0, 0, Vertical},
		{"nothing", geom.Pt(500, 500), HitNone, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := eng.HitTest(tt.at, 1)
			if h.Kind != tt.kind {
				t.Fatalf("Kind = %v, want %v", h.Kind, tt.kind)
			}
			switch h.Kind {
			case HitVertex:
				if h.Vertex != tt.vertex || h.Role != tt.role {
					t.Errorf("hit %v as %v, want %v as %v", h.Vertex, h.Role, tt.vertex, tt.role)
				}
			case HitEdge:
				if h.Orientation != tt.orient {
					t.Errorf("Orientation = %v, want %v", h.Orientation, tt.orient)
				}
			}
		})
	}
}

func TestOrientationOf(t *testing.T) {
	tests := []struct {
		a, b geom.Point
		want Orientation
	}{
		{geom.Pt(0, 0), geom.Pt(10, 0), Horizontal},
		{geom.Pt(0, 0), geom.Pt(0, -10), Vertical},
		{geom.Pt(0, 0), geom.Pt(10, 10), Diagonal},
		{geom.Pt(5, 5), geom.Pt(-5, 15), Diagonal},
		{geom.Pt(0, 0), geom.Pt(10, 3), Oblique},
	}
	for _, tt := range tests {
		if got := OrientationOf(tt.a, tt.b); got != tt.want {
			t.Errorf("OrientationOf(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
