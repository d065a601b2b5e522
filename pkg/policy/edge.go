package policy

import (
	"slices"

	"github.com/matzehuels/wiregraph/pkg/wire"
)

// LayerSet is a sorted, duplicate-free list of layer IDs.
type LayerSet []string

// Equal reports whether both sets hold the same layers.
func (s LayerSet) Equal(o LayerSet) bool { return slices.Equal(s, o) }

// Has reports whether layer is in the set.
func (s LayerSet) Has(layer string) bool {
	_, ok := slices.BinarySearch(s, layer)
	return ok
}

// EdgePolicy answers edge questions for the rules. Schematic wiring has no
// layers; PCB traces live on copper layers that must not silently fuse.
type EdgePolicy interface {
	// LayerID returns the edge's routing layer, if the policy knows layers.
	LayerID(e wire.Edge) (string, bool)

	// IncidentLayers returns the union of layers of the edges touching v.
	IncidentLayers(g wire.View, v wire.VertexID) LayerSet

	// ShouldEdgeInteractWithVertex reports whether e may be split at v.
	ShouldEdgeInteractWithVertex(g wire.View, e wire.Edge, v wire.VertexID) bool

	// CanMergeVertices reports whether two coincident vertices may fuse.
	CanMergeVertices(g wire.View, a, b wire.VertexID) bool

	// CompatibleMeta reports whether two edges meeting in a straight line may
	// be collapsed into one.
	CompatibleMeta(a, b wire.EdgeMeta) bool
}

// Schematic is the default edge policy: no layering, everything interacts,
// everything merges, and collinear edges collapse when their metadata is
// identical.
type Schematic struct{}

func (Schematic) LayerID(wire.Edge) (string, bool)                                      { return "", false }
func (Schematic) IncidentLayers(wire.View, wire.VertexID) LayerSet                      { return nil }
func (Schematic) ShouldEdgeInteractWithVertex(wire.View, wire.Edge, wire.VertexID) bool { return true }
func (Schematic) CanMergeVertices(wire.View, wire.VertexID, wire.VertexID) bool         { return true }
func (Schematic) CompatibleMeta(a, b wire.EdgeMeta) bool                                { return a == b }

// Layered is the edge policy for multi-layer traces. The layer of an edge is
// its EdgeMeta.Layer; an empty layer means the edge has no layer notion.
type Layered struct{}

// LayerID returns the edge's layer when it has one.
func (Layered) LayerID(e wire.Edge) (string, bool) {
	return e.Meta.Layer, e.Meta.Layer != ""
}

// IncidentLayers collects the layers of every edge touching v.
func (l Layered) IncidentLayers(g wire.View, v wire.VertexID) LayerSet {
	var out LayerSet
	for _, eid := range g.Incident(v) {
		e, ok := g.Edge(eid)
		if !ok {
			continue
		}
		if layer, ok := l.LayerID(e); ok {
			out = append(out, layer)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// ShouldEdgeInteractWithVertex lets a layerless edge split anywhere, and a
// layered edge split only at vertices already on its layer.
func (l Layered) ShouldEdgeInteractWithVertex(g wire.View, e wire.Edge, v wire.VertexID) bool {
	layer, ok := l.LayerID(e)
	if !ok {
		return true
	}
	return l.IncidentLayers(g, v).Has(layer)
}

// CanMergeVertices allows a merge only between vertices whose incident layer
// sets are equal and non-empty.
func (l Layered) CanMergeVertices(g wire.View, a, b wire.VertexID) bool {
	la, lb := l.IncidentLayers(g, a), l.IncidentLayers(g, b)
	return len(la) > 0 && la.Equal(lb)
}

// CompatibleMeta requires the same layer and width.
func (Layered) CompatibleMeta(a, b wire.EdgeMeta) bool { return a == b }

var (
	_ EdgePolicy   = Schematic{}
	_ EdgePolicy   = Layered{}
	_ VertexPolicy = DefaultVertexPolicy{}
)
