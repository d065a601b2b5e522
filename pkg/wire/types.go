package wire

import (
	"fmt"
	"slices"

	"github.com/matzehuels/wiregraph/pkg/geom"
)

// VertexID identifies a vertex for its whole lifetime. IDs are allocated in
// increasing order by a State and never reused; zero is never valid.
type VertexID uint64

// EdgeID identifies an edge. Allocation follows the same rules as VertexID.
type EdgeID uint64

// ClusterID labels a connected component. It equals the smallest VertexID in
// the component; zero means "not yet assigned".
type ClusterID uint64

func (id VertexID) String() string  { return fmt.Sprintf("v%d", uint64(id)) }
func (id EdgeID) String() string    { return fmt.Sprintf("e%d", uint64(id)) }
func (id ClusterID) String() string { return fmt.Sprintf("c%d", uint64(id)) }

// Ownership distinguishes free wire vertices from vertices glued to a
// component terminal.
type Ownership int

const (
	// Free vertices are eligible for automatic merging and removal.
	Free Ownership = iota
	// Pin vertices are attached to a component pin. They are never removed by
	// the rules and always win a merge.
	Pin
)

func (o Ownership) String() string {
	switch o {
	case Free:
		return "free"
	case Pin:
		return "pin"
	default:
		return "unknown"
	}
}

// PinRef names the component terminal a Pin vertex is attached to.
type PinRef struct {
	Component string `json:"component"`
	Pin       string `json:"pin"`
}

// IsZero reports whether r names no pin.
func (r PinRef) IsZero() bool { return r == PinRef{} }

func (r PinRef) String() string { return r.Component + "." + r.Pin }

// Vertex is a point in the wire graph. It is a value: reading a Vertex out of
// a State never aliases the State.
type Vertex struct {
	ID      VertexID
	Point   geom.Point
	Owner   Ownership
	Pin     PinRef    // set when Owner == Pin
	Label   string    // optional user net label
	Degree  int       // cached count of incident edges
	Cluster ClusterID // connected component, recomputed by every resolution
}

// IsPin reports whether the vertex is attached to a component pin.
func (v Vertex) IsPin() bool { return v.Owner == Pin }

// EdgeMeta is carried opaquely by the generic engine. Edge policies interpret
// it; the rules only copy it and ask whether two values are compatible.
type EdgeMeta struct {
	Layer string  `json:"layer,omitempty"`
	Width float64 `json:"width,omitempty"`
}

// Edge is an undirected connection between two distinct vertices. Start and
// End record the order in which the edge was drawn and have no electrical
// meaning.
type Edge struct {
	ID    EdgeID
	Start VertexID
	End   VertexID
	Meta  EdgeMeta
}

// Has reports whether v is one of the edge's endpoints.
func (e Edge) Has(v VertexID) bool { return e.Start == v || e.End == v }

// Other returns the endpoint opposite v. It returns 0 when v is not an
// endpoint.
func (e Edge) Other(v VertexID) VertexID {
	switch v {
	case e.Start:
		return e.End
	case e.End:
		return e.Start
	}
	return 0
}

// VertexSet is an unordered set of vertex IDs. Transactions report their
// epicenter as a VertexSet.
type VertexSet map[VertexID]struct{}

// NewVertexSet returns a set holding ids.
func NewVertexSet(ids ...VertexID) VertexSet {
	s := make(VertexSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts ids into the set.
func (s VertexSet) Add(ids ...VertexID) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Has reports whether id is in the set.
func (s VertexSet) Has(id VertexID) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of members.
func (s VertexSet) Len() int { return len(s) }

// Union adds every member of o to s.
func (s VertexSet) Union(o VertexSet) {
	for id := range o {
		s[id] = struct{}{}
	}
}

// Sorted returns the members in ascending order.
func (s VertexSet) Sorted() []VertexID {
	ids := make([]VertexID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
