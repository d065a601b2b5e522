// Package netlist groups a resolved wire graph into nets.
//
// A net is one connected cluster: the vertices sharing a cluster ID, the
// edges between them, and the pins and labels found on them. Naming nets
// from their labels is left to the caller.
package netlist

import (
	"cmp"
	"slices"

	"github.com/matzehuels/wiregraph/pkg/wire"
)

// Net is one electrically connected group.
type Net struct {
	Cluster  wire.ClusterID  `json:"cluster"`
	Vertices []wire.VertexID `json:"vertices"`
	Edges    []wire.EdgeID   `json:"edges"`
	Pins     []wire.PinRef   `json:"pins,omitempty"`
	Labels   []string        `json:"labels,omitempty"`
}

// Build returns the nets of g ordered by cluster ID. It relies on the
// cluster IDs stamped by the last resolution; run it on committed states.
func Build(g wire.View) []Net {
	byCluster := make(map[wire.ClusterID]*Net)
	var order []wire.ClusterID
	net := func(c wire.ClusterID) *Net {
		n, ok := byCluster[c]
		if !ok {
			n = &Net{Cluster: c}
			byCluster[c] = n
			order = append(order, c)
		}
		return n
	}

	for _, v := range g.Vertices() {
		n := net(v.Cluster)
		n.Vertices = append(n.Vertices, v.ID)
		if v.IsPin() {
			n.Pins = append(n.Pins, v.Pin)
		}
		if v.Label != "" {
			n.Labels = append(n.Labels, v.Label)
		}
	}
	for _, e := range g.Edges() {
		if v, ok := g.Vertex(e.Start); ok {
			n := net(v.Cluster)
			n.Edges = append(n.Edges, e.ID)
		}
	}

	slices.Sort(order)
	out := make([]Net, 0, len(order))
	for _, c := range order {
		n := byCluster[c]
		slices.SortFunc(n.Pins, func(a, b wire.PinRef) int {
			return cmp.Or(cmp.Compare(a.Component, b.Component), cmp.Compare(a.Pin, b.Pin))
		})
		slices.Sort(n.Labels)
		n.Labels = slices.Compact(n.Labels)
		out = append(out, *n)
	}
	return out
}

// Connected reports whether a and b belong to the same net.
func Connected(g wire.View, a, b wire.VertexID) bool {
	va, okA := g.Vertex(a)
	vb, okB := g.Vertex(b)
	return okA && okB && va.Cluster == vb.Cluster
}

// Find returns the net holding the given pin.
func Find(nets []Net, pin wire.PinRef) (Net, bool) {
	for _, n := range nets {
		if slices.Contains(n.Pins, pin) {
			return n, true
		}
	}
	return Net{}, false
}
