package rules

import (
	"testing"

	"github.com/matzehuels/wiregraph/pkg/geom"
	"github.com/matzehuels/wiregraph/pkg/policy"
	"github.com/matzehuels/wiregraph/pkg/wire"
)

func free(s *wire.State, x, y float64) wire.VertexID {
	return s.AddVertex(geom.Pt(x, y), wire.Free, wire.PinRef{})
}

func pin(s *wire.State, x, y float64, name string) wire.VertexID {
	return s.AddVertex(geom.Pt(x, y), wire.Pin, wire.PinRef{Component: "U1", Pin: name})
}

func counts(t *testing.T, s *wire.State, vertices, edges int) {
	t.Helper()
	if s.VertexCount() != vertices || s.EdgeCount() != edges {
		t.Errorf("graph = %dV/%dE, want %dV/%dE", s.VertexCount(), s.EdgeCount(), vertices, edges)
	}
	if err := wire.Validate(s); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestMergeCoincident(t *testing.T) {
	s := wire.New()
	a, b := free(s, 0, 0), free(s, 10, 0)
	c, d := free(s, 0, 0.0000005), free(s, 0, 10)
	s.AddEdge(a, b, wire.EdgeMeta{})
	s.AddEdge(c, d, wire.EdgeMeta{})

	got := MergeCoincident{}.Apply(s, nil)

	counts(t, got, 3, 2)
	if _, ok := got.Vertex(c); ok {
		t.Errorf("%v should have been absorbed into %v", c, a)
	}
	if _, ok := got.EdgeBetween(a, d); !ok {
		t.Errorf("edge to %v should be re-pointed onto %v", d, a)
	}
}

func TestMergeDropsCollapsedEdges(t *testing.T) {
	s := wire.New()
	a, b := free(s, 0, 0), free(s, 0.0000001, 0)
	far := free(s, 10, 0)
	s.AddEdge(a, b, wire.EdgeMeta{})
	s.AddEdge(a, far, wire.EdgeMeta{})
	s.AddEdge(b, far, wire.EdgeMeta{})

	got := MergeCoincident{}.Apply(s, nil)

	counts(t, got, 2, 1)
}

func TestMergeKeepsProtectedSurvivor(t *testing.T) {
	s := wire.New()
	f := free(s, 0, 0)
	p := pin(s, 0, 0.0000001, "1")
	s.SetLabel(f, "GND")

	got := MergeCoincident{}.Apply(s, nil)

	if got.VertexCount() != 1 {
		t.Fatalf("VertexCount() = %d, want 1", got.VertexCount())
	}
	v, ok := got.Vertex(p)
	if !ok || !v.IsPin() {
		t.Fatalf("pin vertex %v should survive the merge", p)
	}
	if v.Label != "GND" {
		t.Errorf("Label = %q, want label carried over from the absorbed vertex", v.Label)
	}
}

func TestMergeNeverAbsorbsSecondPin(t *testing.T) {
	s := wire.New()
	pin(s, 5, 5, "1")
	pin(s, 5, 5, "2")
	free(s, 5, 5)

	got := MergeCoincident{}.Apply(s, nil)

	if got.VertexCount() != 2 {
		t.Errorf("VertexCount() = %d, want both pins kept", got.VertexCount())
	}
	for _, v := range got.Vertices() {
		if !v.IsPin() {
			t.Errorf("free vertex %v should have been absorbed", v.ID)
		}
	}
}

func TestMergeRespectsLayers(t *testing.T) {
	s := wire.New()
	a, b := free(s, 0, 0), free(s, 10, 0)
	c, d := free(s, 0, 0), free(s, 0, 10)
	s.AddEdge(a, b, wire.EdgeMeta{Layer: "top"})
	s.AddEdge(c, d, wire.EdgeMeta{Layer: "bottom"})

	got := MergeCoincident{}.Apply(s, &Context{Edges: policy.Layered{}})

	if got.VertexCount() != 4 {
		t.Errorf("VertexCount() = %d, want traces on different layers kept apart", got.VertexCount())
	}
}

func TestMergeDoesNotChainPastTolerance(t *testing.T) {
	s := wire.New()
	a := free(s, 0, 0)
	b := free(s, 0.0000009, 0)
	c := free(s, 0.0000018, 0)

	once := MergeCoincident{}.Apply(s, nil)

	counts(t, once, 2, 0)
	if _, ok := once.Vertex(a); !ok {
		t.Errorf("%v should survive", a)
	}
	if _, ok := once.Vertex(b); ok {
		t.Errorf("%v should fold into %v", b, a)
	}
	if _, ok := once.Vertex(c); !ok {
		t.Errorf("%v is farther than the tolerance from %v and should stay", c, a)
	}

	before := wire.Fingerprint(once)
	if wire.Fingerprint(MergeCoincident{}.Apply(once, nil)) != before {
		t.Error("a second merge pass changed the graph")
	}
}

func TestSplitEdges(t *testing.T) {
	s := wire.New()
	a, b := free(s, 0, 0), free(s, 100, 0)
	s.AddEdge(a, b, wire.EdgeMeta{Width: 3})
	m1, m2 := free(s, 70, 0), free(s, 30, 0)
	free(s, 50, 20)

	got := SplitEdges{}.Apply(s, nil)

	counts(t, got, 5, 3)
	for _, pair := range [][2]wire.VertexID{{a, m2}, {m2, m1}, {m1, b}} {
		eid, ok := got.EdgeBetween(pair[0], pair[1])
		if !ok {
			t.Errorf("missing edge %v-%v", pair[0], pair[1])
			continue
		}
		if e, _ := got.Edge(eid); e.Meta.Width != 3 {
			t.Errorf("edge %v width = %v, want metadata inherited", eid, e.Meta.Width)
		}
	}
}

func TestSplitIgnoresEndpointsAndNearMisses(t *testing.T) {
	s := wire.New()
	a, b := free(s, 0, 0), free(s, 100, 0)
	s.AddEdge(a, b, wire.EdgeMeta{})
	free(s, 100.0000001, 0)
	free(s, 50, 0.5)
	free(s, 150, 0)

	got := SplitEdges{}.Apply(s, nil)

	if got.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want the edge left whole", got.EdgeCount())
	}
}

func TestSplitRespectsLayers(t *testing.T) {
	s := wire.New()
	a, b := free(s, 0, 0), free(s, 100, 0)
	s.AddEdge(a, b, wire.EdgeMeta{Layer: "top"})
	via := free(s, 50, 0)
	s.AddEdge(via, free(s, 50, 50), wire.EdgeMeta{Layer: "bottom"})

	got := SplitEdges{}.Apply(s, &Context{Edges: policy.Layered{}})

	if _, ok := got.EdgeBetween(a, b); !ok {
		t.Error("top-layer edge must not split at a bottom-layer vertex")
	}
}

func TestSplitSkipsPinsWithinTolerance(t *testing.T) {
	s := wire.New()
	a, b := free(s, 0, 0), free(s, 100, 0)
	s.AddEdge(a, b, wire.EdgeMeta{})
	p1 := s.AddVertex(geom.Pt(50, 0), wire.Pin, wire.PinRef{Component: "U1", Pin: "1"})
	p2 := s.AddVertex(geom.Pt(50.0000001, 0), wire.Pin, wire.PinRef{Component: "U2", Pin: "1"})

	got := Default().Resolve(s, nil)

	counts(t, got, 4, 2)
	if _, ok := got.EdgeBetween(p1, p2); ok {
		t.Errorf("pins %v and %v are closer than the tolerance and must not be joined", p1, p2)
	}
	for _, e := range got.Edges() {
		va, _ := got.Vertex(e.Start)
		vb, _ := got.Vertex(e.End)
		if va.Point.Dist(vb.Point) <= geom.DefaultEpsilon {
			t.Errorf("edge %v is shorter than the tolerance", e.ID)
		}
	}
	if wire.Fingerprint(Default().Resolve(got, nil)) != wire.Fingerprint(got) {
		t.Error("resolving again changed the graph")
	}
}

func TestCollapseCollinear(t *testing.T) {
	s := wire.New()
	a, m, b := free(s, 0, 0), free(s, 50, 0), free(s, 100, 0)
	s.AddEdge(a, m, wire.EdgeMeta{})
	s.AddEdge(m, b, wire.EdgeMeta{})

	got := CollapseCollinear{}.Apply(s, nil)

	counts(t, got, 2, 1)
	if _, ok := got.EdgeBetween(a, b); !ok {
		t.Error("collapsed run should be joined by a single edge")
	}
}

func TestCollapseKeepsCornersPinsAndMixedMeta(t *testing.T) {
	tests := []struct {
		name  string
		build func(s *wire.State)
	}{
		{"corner", func(s *wire.State) {
			a, m, b := free(s, 0, 0), free(s, 50, 0), free(s, 50, 50)
			s.AddEdge(a, m, wire.EdgeMeta{})
			s.AddEdge(m, b, wire.EdgeMeta{})
		}},
		{"pin", func(s *wire.State) {
			a, m, b := free(s, 0, 0), pin(s, 50, 0, "1"), free(s, 100, 0)
			s.AddEdge(a, m, wire.EdgeMeta{})
			s.AddEdge(m, b, wire.EdgeMeta{})
		}},
		{"mixed width", func(s *wire.State) {
			a, m, b := free(s, 0, 0), free(s, 50, 0), free(s, 100, 0)
			s.AddEdge(a, m, wire.EdgeMeta{Width: 1})
			s.AddEdge(m, b, wire.EdgeMeta{Width: 2})
		}},
		{"doubling back", func(s *wire.State) {
			a, m, b := free(s, 0, 0), free(s, 50, 0), free(s, 20, 0)
			s.AddEdge(a, m, wire.EdgeMeta{})
			s.AddEdge(m, b, wire.EdgeMeta{})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := wire.New()
			tt.build(s)
			got := CollapseCollinear{}.Apply(s, nil)
			counts(t, got, 3, 2)
		})
	}
}

func TestRemoveIsolated(t *testing.T) {
	s := wire.New()
	lonely := free(s, 0, 0)
	p := pin(s, 10, 10, "1")
	a, b := free(s, 20, 0), free(s, 30, 0)
	s.AddEdge(a, b, wire.EdgeMeta{})

	got := RemoveIsolated{}.Apply(s, nil)

	if _, ok := got.Vertex(lonely); ok {
		t.Error("isolated free vertex should be removed")
	}
	if _, ok := got.Vertex(p); !ok {
		t.Error("isolated pin must be kept")
	}
	counts(t, got, 3, 1)
}

func TestAssignClusters(t *testing.T) {
	s := wire.New()
	a, b := free(s, 0, 0), free(s, 10, 0)
	c, d := free(s, 0, 20), free(s, 10, 20)
	e := pin(s, 50, 50, "1")
	s.AddEdge(b, a, wire.EdgeMeta{})
	s.AddEdge(d, c, wire.EdgeMeta{})

	got := AssignClusters{}.Apply(s, nil)

	want := map[wire.VertexID]wire.ClusterID{
		a: wire.ClusterID(a), b: wire.ClusterID(a),
		c: wire.ClusterID(c), d: wire.ClusterID(c),
		e: wire.ClusterID(e),
	}
	for id, cluster := range want {
		if v, _ := got.Vertex(id); v.Cluster != cluster {
			t.Errorf("%v.Cluster = %v, want %v", id, v.Cluster, cluster)
		}
	}
}

func TestDefaultTJunction(t *testing.T) {
	s := wire.New()
	a, b := free(s, 0, 0), free(s, 100, 0)
	s.AddEdge(a, b, wire.EdgeMeta{})
	m, top := free(s, 50, 0), free(s, 50, 50)
	s.AddEdge(m, top, wire.EdgeMeta{})

	got := Normalize(s)

	counts(t, got, 4, 3)
	if got.Degree(m) != 3 {
		t.Errorf("Degree(junction) = %d, want 3", got.Degree(m))
	}
	for _, v := range got.Vertices() {
		if v.Cluster != wire.ClusterID(a) {
			t.Errorf("%v.Cluster = %v, want %v", v.ID, v.Cluster, wire.ClusterID(a))
		}
	}
}

func TestDefaultResolveIsPureAndIdempotent(t *testing.T) {
	s := wire.New()
	a, b, c := free(s, 0, 0), free(s, 50, 0), free(s, 100, 0)
	s.AddEdge(a, b, wire.EdgeMeta{})
	s.AddEdge(b, c, wire.EdgeMeta{})
	s.AddEdge(free(s, 100, 0.0000002), free(s, 100, 40), wire.EdgeMeta{})
	free(s, 300, 300)
	before := wire.Fingerprint(s)

	once := Default().Resolve(s, nil)
	twice := Default().Resolve(once, nil)

	if wire.Fingerprint(s) != before {
		t.Error("Resolve() mutated its input")
	}
	if wire.Fingerprint(once) != wire.Fingerprint(twice) {
		t.Error("resolving a canonical graph changed it")
	}
	counts(t, once, 3, 2)
}

func TestResolveIdempotentNearToleranceBoundary(t *testing.T) {
	s := wire.New()
	a, v, b := free(s, 0, 0), free(s, 50, 0.0000009), free(s, 100, 0)
	s.AddEdge(a, v, wire.EdgeMeta{})
	s.AddEdge(v, b, wire.EdgeMeta{})
	w := free(s, 50, -0.0000005)
	s.AddEdge(w, free(s, 50, -50), wire.EdgeMeta{})

	once := Default().Resolve(s, nil)
	twice := Default().Resolve(once, nil)

	if wire.Fingerprint(once) != wire.Fingerprint(twice) {
		t.Errorf("resolve not idempotent: %dV/%dE then %dV/%dE",
			once.VertexCount(), once.EdgeCount(), twice.VertexCount(), twice.EdgeCount())
	}
	if _, ok := once.Vertex(v); !ok {
		t.Errorf("%v should not collapse over %v", v, w)
	}
	counts(t, once, 5, 3)
}

func TestRulesetOrderAndFunc(t *testing.T) {
	var order []string
	record := func(name string) Rule {
		return Func(name, func(s *wire.State, ctx *Context) *wire.State {
			if ctx.Geometry == nil || ctx.Logger == nil {
				t.Errorf("%s: context defaults not filled", name)
			}
			order = append(order, name)
			return s
		})
	}

	Ruleset{record("first"), record("second")}.Apply(wire.New(), nil)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("order = %v, want [first second]", order)
	}
}
