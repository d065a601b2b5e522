package txn

import (
	"github.com/matzehuels/wiregraph/pkg/geom"
	"github.com/matzehuels/wiregraph/pkg/policy"
	"github.com/matzehuels/wiregraph/pkg/wire"
)

// Context carries what a transaction may consult while mutating a draft.
type Context struct {
	Geometry geom.Policy
	// Edges decides which existing vertices a new trace may connect to.
	// Nil means policy.Schematic.
	Edges policy.EdgePolicy
	// Tolerance is the find-or-create radius. Zero means Geometry.Epsilon().
	Tolerance float64
}

func (c *Context) edges() policy.EdgePolicy {
	if c.Edges == nil {
		return policy.Schematic{}
	}
	return c.Edges
}

func (c *Context) tolerance() float64 {
	if c.Tolerance > 0 {
		return c.Tolerance
	}
	return c.Geometry.Epsilon()
}

// Transaction is one composable mutation. Apply edits the draft it is given
// and returns the vertices it touched (the epicenter). A transaction only adds,
// removes and moves things; restoring the graph invariants is left to the
// rules that run afterwards.
type Transaction interface {
	Name() string
	Apply(s *wire.State, ctx *Context) wire.VertexSet
}

// MetadataOnly is implemented by transactions that change nothing the rules
// care about. The engine skips rule resolution for them.
type MetadataOnly interface {
	MetadataOnly() bool
}

// IsMetadataOnly reports whether t opted into the engine's fast path.
func IsMetadataOnly(t Transaction) bool {
	m, ok := t.(MetadataOnly)
	return ok && m.MetadataOnly()
}

// FindOrCreate returns the vertex nearest to p within tol, creating a free
// vertex at p when there is none. The boolean reports whether a vertex was
// created.
func FindOrCreate(s *wire.State, p geom.Point, tol float64) (wire.VertexID, bool) {
	if id, ok := s.NearestVertex(p, tol); ok {
		return id, false
	}
	return s.AddVertex(p, wire.Free, wire.PinRef{}), true
}

// AddPath draws a polyline. Every point is snapped by the geometry policy and
// resolved with FindOrCreate; consecutive vertices are joined by a direct
// edge even when that edge passes over other vertices. Splitting such
// leapfrog edges is the rules' job.
type AddPath struct {
	Points []geom.Point
	// Meta tags the edge drawn for the given segment index (0-based). A nil
	// Meta leaves edges untagged.
	Meta func(segment int) wire.EdgeMeta
}

func (AddPath) Name() string { return "add-path" }

// Apply implements Transaction. Segments whose ends resolve to the same vertex
// are skipped. A point only reuses a vertex the edge policy lets the adjacent
// segments reach: under a layered policy, a vertex whose traces all run on
// other layers is passed over and a new one is created beside it. Pin
// vertices connect on every layer.
func (t AddPath) Apply(s *wire.State, ctx *Context) wire.VertexSet {
	touched := wire.NewVertexSet()
	edges := ctx.edges()
	var prev wire.VertexID
	for i, p := range t.Points {
		var adjacent []wire.EdgeMeta
		if i > 0 {
			adjacent = append(adjacent, t.meta(i-1))
		}
		if i < len(t.Points)-1 {
			adjacent = append(adjacent, t.meta(i))
		}
		at := ctx.Geometry.Snap(p)
		id, ok := s.NearestVertexFunc(at, ctx.tolerance(), func(v wire.Vertex) bool {
			return v.Owner == wire.Pin || reachable(s, edges, v.ID, adjacent)
		})
		if !ok {
			id = s.AddVertex(at, wire.Free, wire.PinRef{})
		}
		touched.Add(id)
		if i > 0 && id != prev {
			s.AddEdge(prev, id, t.meta(i-1))
		}
		prev = id
	}
	return touched
}

func (t AddPath) meta(segment int) wire.EdgeMeta {
	if t.Meta == nil {
		return wire.EdgeMeta{}
	}
	return t.Meta(segment)
}

// reachable reports whether a segment tagged with one of metas may end on v.
// Vertices without layered traces are reachable from anything.
func reachable(g wire.View, edges policy.EdgePolicy, v wire.VertexID, metas []wire.EdgeMeta) bool {
	have := edges.IncidentLayers(g, v)
	if len(have) == 0 || len(metas) == 0 {
		return true
	}
	for _, m := range metas {
		layer, ok := edges.LayerID(wire.Edge{Meta: m})
		if !ok || have.Has(layer) {
			return true
		}
	}
	return false
}

// Delete removes a mixed selection of vertices and edges. Unknown IDs are
// ignored.
type Delete struct {
	Vertices []wire.VertexID
	Edges    []wire.EdgeID
}

func (Delete) Name() string { return "delete" }

// Apply removes edges first, touching their endpoints, then vertices,
// touching the former neighbours reached along an admissible direction: with
// a through-vertex gone those neighbours may have become collinear ends.
func (t Delete) Apply(s *wire.State, ctx *Context) wire.VertexSet {
	touched := wire.NewVertexSet()
	for _, id := range t.Edges {
		if e, ok := s.Edge(id); ok {
			touched.Add(e.Start, e.End)
			s.RemoveEdge(id)
		}
	}
	for _, id := range t.Vertices {
		v, ok := s.Vertex(id)
		if !ok {
			continue
		}
		for _, n := range s.Neighbors(id) {
			if nv, ok := s.Vertex(n); ok && geom.Admissible(ctx.Geometry, v.Point, nv.Point) {
				touched.Add(n)
			}
		}
		s.RemoveVertex(id)
	}
	for id := range touched {
		if _, ok := s.Vertex(id); !ok {
			delete(touched, id)
		}
	}
	return touched
}

// MoveVertex relocates a single vertex, typically to keep a wire end glued to
// a pin whose component is being dragged. The target is used as is: pin
// positions are authoritative and are not snapped.
type MoveVertex struct {
	Vertex wire.VertexID
	To     geom.Point
}

func (MoveVertex) Name() string { return "move-vertex" }

// Apply implements Transaction.
func (t MoveVertex) Apply(s *wire.State, _ *Context) wire.VertexSet {
	if !s.MoveVertex(t.Vertex, t.To) {
		return wire.NewVertexSet()
	}
	return wire.NewVertexSet(t.Vertex)
}

// AttachPin returns or creates the pin-owned vertex for a component terminal.
// After Apply, Vertex holds the resulting ID.
type AttachPin struct {
	At  geom.Point
	Pin wire.PinRef

	Vertex wire.VertexID
}

func (*AttachPin) Name() string { return "attach-pin" }

// Apply reuses the vertex already bound to the pin (moving it to At), else
// promotes the nearest free vertex within tolerance, else creates a new pin
// vertex.
func (t *AttachPin) Apply(s *wire.State, ctx *Context) wire.VertexSet {
	if t.Pin.IsZero() {
		return wire.NewVertexSet()
	}
	for _, v := range s.Vertices() {
		if v.Owner == wire.Pin && v.Pin == t.Pin {
			s.MoveVertex(v.ID, t.At)
			t.Vertex = v.ID
			return wire.NewVertexSet(v.ID)
		}
	}
	if id, ok := s.NearestVertex(t.At, ctx.tolerance()); ok {
		if v, _ := s.Vertex(id); v.Owner == wire.Free {
			s.SetOwner(id, wire.Pin, t.Pin)
			s.MoveVertex(id, t.At)
			t.Vertex = id
			return wire.NewVertexSet(id)
		}
	}
	t.Vertex = s.AddVertex(t.At, wire.Pin, t.Pin)
	return wire.NewVertexSet(t.Vertex)
}

// SetEdgeMeta retags edges with new width and layer. It is structural: the
// metadata decides whether collinear edges may collapse.
type SetEdgeMeta struct {
	Edges []wire.EdgeID
	Meta  wire.EdgeMeta
}

func (SetEdgeMeta) Name() string { return "set-edge-meta" }

// Apply implements Transaction.
func (t SetEdgeMeta) Apply(s *wire.State, _ *Context) wire.VertexSet {
	touched := wire.NewVertexSet()
	for _, id := range t.Edges {
		if e, ok := s.Edge(id); ok {
			s.SetEdgeMeta(id, t.Meta)
			touched.Add(e.Start, e.End)
		}
	}
	return touched
}

// Relabel attaches a user net label to a vertex. It never affects structure,
// so the engine takes its fast path.
type Relabel struct {
	Vertex wire.VertexID
	Label  string
}

func (Relabel) Name() string       { return "relabel" }
func (Relabel) MetadataOnly() bool { return true }

// Apply implements Transaction.
func (t Relabel) Apply(s *wire.State, _ *Context) wire.VertexSet {
	if !s.SetLabel(t.Vertex, t.Label) {
		return wire.NewVertexSet()
	}
	return wire.NewVertexSet(t.Vertex)
}

// Import pastes a graph fragment, shifted by Offset, under fresh IDs.
// Documents read from disk are loaded this way.
type Import struct {
	Source wire.View
	Offset geom.Point
}

func (Import) Name() string { return "import" }

// Apply implements Transaction.
func (t Import) Apply(s *wire.State, _ *Context) wire.VertexSet {
	touched := wire.NewVertexSet()
	if t.Source == nil {
		return touched
	}
	ids := make(map[wire.VertexID]wire.VertexID, t.Source.VertexCount())
	for _, v := range t.Source.Vertices() {
		id := s.AddVertex(v.Point.Add(t.Offset), v.Owner, v.Pin)
		if v.Label != "" {
			s.SetLabel(id, v.Label)
		}
		ids[v.ID] = id
		touched.Add(id)
	}
	for _, e := range t.Source.Edges() {
		s.AddEdge(ids[e.Start], ids[e.End], e.Meta)
	}
	return touched
}

// Batch applies transactions in order as one unit. Its epicenter is the union
// of theirs.
type Batch []Transaction

func (Batch) Name() string { return "batch" }

// MetadataOnly holds when every member is metadata-only.
func (b Batch) MetadataOnly() bool {
	for _, t := range b {
		if !IsMetadataOnly(t) {
			return false
		}
	}
	return len(b) > 0
}

// Apply implements Transaction.
func (b Batch) Apply(s *wire.State, ctx *Context) wire.VertexSet {
	touched := wire.NewVertexSet()
	for _, t := range b {
		touched.Union(t.Apply(s, ctx))
	}
	return touched
}

var (
	_ Transaction = AddPath{}
	_ Transaction = Delete{}
	_ Transaction = MoveVertex{}
	_ Transaction = (*AttachPin)(nil)
	_ Transaction = SetEdgeMeta{}
	_ Transaction = Relabel{}
	_ Transaction = Import{}
	_ Transaction = Batch{}
)
