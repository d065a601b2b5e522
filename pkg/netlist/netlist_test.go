package netlist

import (
	"slices"
	"testing"

	"github.com/matzehuels/wiregraph/pkg/engine"
	"github.com/matzehuels/wiregraph/pkg/geom"
	"github.com/matzehuels/wiregraph/pkg/txn"
	"github.com/matzehuels/wiregraph/pkg/wire"
)

func TestBuild(t *testing.T) {
	eng := engine.New(engine.Options{})
	r1, _ := eng.AttachPin(geom.Pt(0, 0), wire.PinRef{Component: "R1", Pin: "2"})
	u1, _ := eng.AttachPin(geom.Pt(100, 50), wire.PinRef{Component: "U1", Pin: "3"})
	eng.AttachPin(geom.Pt(300, 0), wire.PinRef{Component: "C1", Pin: "1"})
	eng.Execute(txn.AddPath{Points: []geom.Point{geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(100, 50)}})
	eng.Execute(txn.Relabel{Vertex: 4, Label: "SIG"})

	nets := Build(eng.State())

	if len(nets) != 2 {
		t.Fatalf("len(nets) = %d, want 2", len(nets))
	}
	sig := nets[0]
	if len(sig.Vertices) != 3 || len(sig.Edges) != 2 {
		t.Errorf("net = %dV/%dE, want 3V/2E", len(sig.Vertices), len(sig.Edges))
	}
	want := []wire.PinRef{{Component: "R1", Pin: "2"}, {Component: "U1", Pin: "3"}}
	if !slices.Equal(sig.Pins, want) {
		t.Errorf("Pins = %v, want %v", sig.Pins, want)
	}
	if !slices.Equal(sig.Labels, []string{"SIG"}) {
		t.Errorf("Labels = %v, want [SIG]", sig.Labels)
	}
	if !Connected(eng.State(), r1, u1) {
		t.Error("R1.2 and U1.3 should be connected")
	}
	if Connected(eng.State(), r1, 3) {
		t.Error("C1.1 should be on its own net")
	}
	if _, ok := Find(nets, wire.PinRef{Component: "C1", Pin: "1"}); !ok {
		t.Error("Find() should locate the isolated pin")
	}
	if _, ok := Find(nets, wire.PinRef{Component: "X9", Pin: "1"}); ok {
		t.Error("Find() found a pin that does not exist")
	}
}

func TestBuildEmpty(t *testing.T) {
	if nets := Build(wire.New()); len(nets) != 0 {
		t.Errorf("Build(empty) = %v", nets)
	}
}
