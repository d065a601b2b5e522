package policy

import (
	"testing"

	"github.com/matzehuels/wiregraph/pkg/geom"
	"github.com/matzehuels/wiregraph/pkg/wire"
)

func TestDefaultVertexPolicy(t *testing.T) {
	p := DefaultVertexPolicy{}
	free := wire.Vertex{ID: 1, Owner: wire.Free}
	pin := wire.Vertex{ID: 2, Owner: wire.Pin, Pin: wire.PinRef{Component: "U1", Pin: "3"}}

	if p.IsProtected(free) || !p.IsProtected(pin) {
		t.Error("only pin vertices should be protected")
	}
	if !p.CanCullIsolated(free) {
		t.Error("isolated free vertex should be cullable")
	}
	if p.CanCullIsolated(pin) {
		t.Error("isolated pin vertex must not be cullable")
	}
	if p.CanCullIsolated(wire.Vertex{ID: 3, Degree: 1}) {
		t.Error("connected vertex must not be cullable")
	}
}

func TestPreferSurvivor(t *testing.T) {
	p := DefaultVertexPolicy{}
	tests := []struct {
		name string
		in   []wire.Vertex
		want wire.VertexID
	}{
		{"lowest id when all free", []wire.Vertex{{ID: 2}, {ID: 5}}, 2},
		{"pin wins", []wire.Vertex{{ID: 2}, {ID: 5, Owner: wire.Pin}}, 5},
		{"first pin wins", []wire.Vertex{{ID: 1, Owner: wire.Pin}, {ID: 4, Owner: wire.Pin}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.PreferSurvivor(tt.in); got.ID != tt.want {
				t.Errorf("PreferSurvivor() = %v, want %v", got.ID, tt.want)
			}
		})
	}
}

func layeredFixture() (*wire.State, wire.VertexID, wire.VertexID, wire.VertexID, wire.EdgeID) {
	s := wire.New()
	a := s.AddVertex(geom.Pt(0, 0), wire.Free, wire.PinRef{})
	b := s.AddVertex(geom.Pt(10, 0), wire.Free, wire.PinRef{})
	c := s.AddVertex(geom.Pt(10, 10), wire.Free, wire.PinRef{})
	top, _ := s.AddEdge(a, b, wire.EdgeMeta{Layer: "top"})
	s.AddEdge(b, c, wire.EdgeMeta{Layer: "bottom"})
	return s, a, b, c, top
}

func TestLayeredIncidentLayers(t *testing.T) {
	s, a, b, _, _ := layeredFixture()
	l := Layered{}

	if got := l.IncidentLayers(s, b); !got.Equal(LayerSet{"bottom", "top"}) {
		t.Errorf("IncidentLayers(b) = %v, want [bottom top]", got)
	}
	if got := l.IncidentLayers(s, a); !got.Equal(LayerSet{"top"}) {
		t.Errorf("IncidentLayers(a) = %v, want [top]", got)
	}
}

func TestLayeredInteraction(t *testing.T) {
	s, a, _, c, top := layeredFixture()
	l := Layered{}
	e, _ := s.Edge(top)

	if l.ShouldEdgeInteractWithVertex(s, e, c) {
		t.Error("top edge should not split at a bottom-only vertex")
	}
	if !l.ShouldEdgeInteractWithVertex(s, e, a) {
		t.Error("top edge should split at a top vertex")
	}
	if !l.ShouldEdgeInteractWithVertex(s, wire.Edge{}, c) {
		t.Error("layerless edge should interact with everything")
	}
}

func TestLayeredMerge(t *testing.T) {
	s, a, b, c, _ := layeredFixture()
	lone := s.AddVertex(geom.Pt(0, 0), wire.Free, wire.PinRef{})
	other := s.AddVertex(geom.Pt(50, 0), wire.Free, wire.PinRef{})
	s.AddEdge(other, lone, wire.EdgeMeta{Layer: "top"})
	l := Layered{}

	if !l.CanMergeVertices(s, a, lone) {
		t.Error("two top-only vertices should merge")
	}
	if l.CanMergeVertices(s, a, c) {
		t.Error("top and bottom vertices must not merge")
	}
	if l.CanMergeVertices(s, a, b) {
		t.Error("different layer sets must not merge")
	}
	bare := s.AddVertex(geom.Pt(0, 0), wire.Free, wire.PinRef{})
	if l.CanMergeVertices(s, bare, bare) {
		t.Error("empty layer sets must not merge")
	}
}

func TestSchematic(t *testing.T) {
	var p EdgePolicy = Schematic{}
	if _, ok := p.LayerID(wire.Edge{Meta: wire.EdgeMeta{Layer: "top"}}); ok {
		t.Error("schematic policy has no layers")
	}
	if !p.CanMergeVertices(nil, 1, 2) {
		t.Error("schematic policy merges everything")
	}
	if p.CompatibleMeta(wire.EdgeMeta{Width: 1}, wire.EdgeMeta{Width: 2}) {
		t.Error("different widths should not be compatible")
	}
}
