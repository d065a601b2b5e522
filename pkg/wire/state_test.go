package wire

import (
	"errors"
	"slices"
	"testing"

	"github.com/matzehuels/wiregraph/pkg/geom"
)

func TestAddVertexAllocatesIncreasingIDs(t *testing.T) {
	s := New()
	a := s.AddVertex(geom.Pt(0, 0), Free, PinRef{})
	b := s.AddVertex(geom.Pt(1, 0), Free, PinRef{})

	if a == 0 || b <= a {
		t.Errorf("AddVertex() ids = %v, %v, want increasing non-zero", a, b)
	}
	if s.VertexCount() != 2 {
		t.Errorf("VertexCount() = %d, want 2", s.VertexCount())
	}
}

func TestAddEdge(t *testing.T) {
	s := New()
	a := s.AddVertex(geom.Pt(0, 0), Free, PinRef{})
	b := s.AddVertex(geom.Pt(10, 0), Free, PinRef{})

	id, ok := s.AddEdge(a, b, EdgeMeta{Width: 1})
	if !ok || id == 0 {
		t.Fatalf("AddEdge() = %v, %v, want new edge", id, ok)
	}
	if s.Degree(a) != 1 || s.Degree(b) != 1 {
		t.Errorf("degrees = %d, %d, want 1, 1", s.Degree(a), s.Degree(b))
	}
	if v, _ := s.Vertex(a); v.Degree != 1 {
		t.Errorf("cached Degree = %d, want 1", v.Degree)
	}

	dup, ok := s.AddEdge(b, a, EdgeMeta{})
	if ok || dup != id {
		t.Errorf("AddEdge(reversed duplicate) = %v, %v, want %v, false", dup, ok, id)
	}
	if _, ok := s.AddEdge(a, a, EdgeMeta{}); ok {
		t.Error("AddEdge(self-loop) should be refused")
	}
	if _, ok := s.AddEdge(a, 99, EdgeMeta{}); ok {
		t.Error("AddEdge(unknown endpoint) should be refused")
	}
	if s.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", s.EdgeCount())
	}
	if err := Validate(s); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestRemoveVertexDropsIncidentEdges(t *testing.T) {
	s := New()
	a := s.AddVertex(geom.Pt(0, 0), Free, PinRef{})
	b := s.AddVertex(geom.Pt(10, 0), Free, PinRef{})
	c := s.AddVertex(geom.Pt(10, 10), Free, PinRef{})
	s.AddEdge(a, b, EdgeMeta{})
	s.AddEdge(b, c, EdgeMeta{})

	neighbours, ok := s.RemoveVertex(b)
	if !ok {
		t.Fatal("RemoveVertex() = false")
	}
	if !slices.Equal(neighbours, []VertexID{a, c}) {
		t.Errorf("neighbours = %v, want [%v %v]", neighbours, a, c)
	}
	if s.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", s.EdgeCount())
	}
	if s.Degree(a) != 0 || s.Degree(c) != 0 {
		t.Error("neighbour degrees should drop to 0")
	}
	if _, ok := s.RemoveVertex(b); ok {
		t.Error("second RemoveVertex() should report false")
	}
	if err := Validate(s); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestReplaceEndpoint(t *testing.T) {
	s := New()
	a := s.AddVertex(geom.Pt(0, 0), Free, PinRef{})
	b := s.AddVertex(geom.Pt(10, 0), Free, PinRef{})
	c := s.AddVertex(geom.Pt(10, 0), Free, PinRef{})
	d := s.AddVertex(geom.Pt(20, 0), Free, PinRef{})
	ab, _ := s.AddEdge(a, b, EdgeMeta{})
	cd, _ := s.AddEdge(c, d, EdgeMeta{})

	if !s.ReplaceEndpoint(cd, c, b) {
		t.Fatal("ReplaceEndpoint() = false, want true")
	}
	e, _ := s.Edge(cd)
	if e.Start != b || e.End != d {
		t.Errorf("edge = %v-%v, want %v-%v", e.Start, e.End, b, d)
	}
	if s.Degree(b) != 2 || s.Degree(c) != 0 {
		t.Errorf("degrees b=%d c=%d, want 2 and 0", s.Degree(b), s.Degree(c))
	}

	if s.ReplaceEndpoint(ab, a, b) {
		t.Error("ReplaceEndpoint() creating a self-loop should be refused")
	}
	if s.ReplaceEndpoint(ab, a, d) {
		t.Error("ReplaceEndpoint() creating a duplicate should be refused")
	}
	if err := Validate(s); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := New()
	a := s.AddVertex(geom.Pt(0, 0), Free, PinRef{})
	b := s.AddVertex(geom.Pt(10, 0), Free, PinRef{})
	s.AddEdge(a, b, EdgeMeta{})

	c := s.Clone()
	c.MoveVertex(a, geom.Pt(5, 5))
	n := c.AddVertex(geom.Pt(1, 1), Free, PinRef{})
	c.AddEdge(a, n, EdgeMeta{})

	if v, _ := s.Vertex(a); v.Point != geom.Pt(0, 0) {
		t.Errorf("original moved to %v", v.Point)
	}
	if s.Degree(a) != 1 {
		t.Errorf("original degree = %d, want 1", s.Degree(a))
	}
	if _, ok := s.Vertex(n); ok {
		t.Error("vertex added to clone leaked into original")
	}
	if n2 := s.AddVertex(geom.Pt(0, 0), Free, PinRef{}); n2 != n {
		t.Errorf("original next id = %v, want %v (counters are copied)", n2, n)
	}
}

func TestInsertRestoresCounters(t *testing.T) {
	s := New()
	if err := s.InsertVertex(Vertex{ID: 7, Point: geom.Pt(1, 2)}); err != nil {
		t.Fatal(err)
	}
	if err := s.InsertVertex(Vertex{ID: 3}); err != nil {
		t.Fatal(err)
	}
	if err := s.InsertVertex(Vertex{ID: 3}); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("duplicate InsertVertex() = %v, want ErrDuplicateID", err)
	}
	if err := s.InsertVertex(Vertex{}); !errors.Is(err, ErrInvalidID) {
		t.Errorf("zero InsertVertex() = %v, want ErrInvalidID", err)
	}
	if err := s.InsertEdge(Edge{ID: 4, Start: 3, End: 7}); err != nil {
		t.Fatal(err)
	}
	if err := s.InsertEdge(Edge{ID: 5, Start: 7, End: 3}); !errors.Is(err, ErrDuplicateEdge) {
		t.Errorf("duplicate pair InsertEdge() = %v, want ErrDuplicateEdge", err)
	}
	if err := s.InsertEdge(Edge{ID: 6, Start: 3, End: 9}); !errors.Is(err, ErrUnknownVertex) {
		t.Errorf("dangling InsertEdge() = %v, want ErrUnknownVertex", err)
	}

	if id := s.AddVertex(geom.Pt(0, 0), Free, PinRef{}); id != 8 {
		t.Errorf("AddVertex() after insert = %v, want v8", id)
	}
	if v, _ := s.Vertex(7); v.Degree != 1 {
		t.Errorf("restored Degree = %d, want 1", v.Degree)
	}
}

func TestNearestVertex(t *testing.T) {
	s := New()
	a := s.AddVertex(geom.Pt(0, 0), Free, PinRef{})
	b := s.AddVertex(geom.Pt(1, 0), Free, PinRef{})

	if id, ok := s.NearestVertex(geom.Pt(0.8, 0), 0.5); !ok || id != b {
		t.Errorf("NearestVertex() = %v, %v, want %v", id, ok, b)
	}
	if id, ok := s.NearestVertex(geom.Pt(0.5, 0), 1); !ok || id != a {
		t.Errorf("NearestVertex(tie) = %v, %v, want lower id %v", id, ok, a)
	}
	if _, ok := s.NearestVertex(geom.Pt(5, 5), 1); ok {
		t.Error("NearestVertex() far away should report not found")
	}
}

func TestNearestVertexFunc(t *testing.T) {
	s := New()
	a := s.AddVertex(geom.Pt(0, 0), Free, PinRef{})
	b := s.AddVertex(geom.Pt(0.2, 0), Pin, PinRef{Component: "U1", Pin: "1"})

	pinsOnly := func(v Vertex) bool { return v.IsPin() }
	if id, ok := s.NearestVertexFunc(geom.Pt(0, 0), 1, pinsOnly); !ok || id != b {
		t.Errorf("NearestVertexFunc() = %v, %v, want %v", id, ok, b)
	}
	if id, ok := s.NearestVertexFunc(geom.Pt(0, 0), 1, nil); !ok || id != a {
		t.Errorf("NearestVertexFunc(nil) = %v, %v, want %v", id, ok, a)
	}
}

func TestReadOnlyHidesState(t *testing.T) {
	s := New()
	s.AddVertex(geom.Pt(0, 0), Free, PinRef{})
	v := ReadOnly(s)

	if _, ok := v.(*State); ok {
		t.Error("ReadOnly() result asserts back to *State")
	}
	if v.VertexCount() != 1 {
		t.Errorf("VertexCount() = %d, want 1", v.VertexCount())
	}
}

func TestValidateDetectsCorruption(t *testing.T) {
	s := New()
	a := s.AddVertex(geom.Pt(0, 0), Free, PinRef{})
	b := s.AddVertex(geom.Pt(1, 0), Free, PinRef{})
	id, _ := s.AddEdge(a, b, EdgeMeta{})

	// Reach under the mutators to fake a dangling edge.
	e := s.edges[id]
	e.End = 42
	s.edges[id] = e

	err := Validate(s)
	if !errors.Is(err, ErrDanglingEdge) {
		t.Errorf("Validate() = %v, want ErrDanglingEdge", err)
	}
	if !errors.Is(err, ErrAdjacencyMismatch) {
		t.Errorf("Validate() = %v, want ErrAdjacencyMismatch", err)
	}
}

func TestBounds(t *testing.T) {
	s := New()
	a := s.AddVertex(geom.Pt(0, 5), Free, PinRef{})
	b := s.AddVertex(geom.Pt(10, -5), Free, PinRef{})
	s.AddVertex(geom.Pt(100, 100), Free, PinRef{})

	got := Bounds(s, a, b, 999)
	want := geom.Rect{Min: geom.Pt(0, -5), Max: geom.Pt(10, 5)}
	if got != want {
		t.Errorf("Bounds(selection) = %v, want %v", got, want)
	}
	if all := Bounds(s); all.Max != geom.Pt(100, 100) {
		t.Errorf("Bounds(all) = %v", all)
	}
}

func TestFingerprint(t *testing.T) {
	build := func() *State {
		s := New()
		a := s.AddVertex(geom.Pt(0, 0), Free, PinRef{})
		b := s.AddVertex(geom.Pt(10, 0), Pin, PinRef{Component: "R1", Pin: "2"})
		s.AddEdge(a, b, EdgeMeta{Layer: "top"})
		return s
	}
	s1, s2 := build(), build()
	if Fingerprint(s1) != Fingerprint(s2) {
		t.Error("equal graphs should have equal fingerprints")
	}
	if len(Fingerprint(s1)) != 64 {
		t.Errorf("fingerprint length = %d, want 64", len(Fingerprint(s1)))
	}

	s2.SetLabel(1, "GND")
	if Fingerprint(s1) == Fingerprint(s2) {
		t.Error("label change should change the fingerprint")
	}
}

func TestVertexSet(t *testing.T) {
	s := NewVertexSet(3, 1)
	s.Add(2, 3)
	s.Union(NewVertexSet(9))

	if !slices.Equal(s.Sorted(), []VertexID{1, 2, 3, 9}) {
		t.Errorf("Sorted() = %v", s.Sorted())
	}
	if !s.Has(9) || s.Has(4) {
		t.Error("Has() mismatch")
	}
}

func TestEdgeOther(t *testing.T) {
	e := Edge{ID: 1, Start: 4, End: 9}
	if e.Other(4) != 9 || e.Other(9) != 4 || e.Other(5) != 0 {
		t.Error("Other() mismatch")
	}
}
