package rules

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/matzehuels/wiregraph/pkg/wire"
)

// AssignClusters labels every vertex with its connected component. The
// cluster ID is the smallest vertex ID in the component, which keeps labels
// stable across runs and unchanged by edits elsewhere.
type AssignClusters struct{}

func (AssignClusters) Name() string { return "assign-clusters" }

// Apply implements Rule.
func (AssignClusters) Apply(s *wire.State, _ *Context) *wire.State {
	g := simple.NewUndirectedGraph()
	for _, id := range s.VertexIDs() {
		g.AddNode(simple.Node(int64(id)))
	}
	for _, e := range s.Edges() {
		g.SetEdge(g.NewEdge(simple.Node(int64(e.Start)), simple.Node(int64(e.End))))
	}

	for _, comp := range topo.ConnectedComponents(g) {
		root := comp[0].ID()
		for _, n := range comp[1:] {
			root = min(root, n.ID())
		}
		for _, n := range comp {
			s.SetCluster(wire.VertexID(n.ID()), wire.ClusterID(root))
		}
	}
	return s
}
