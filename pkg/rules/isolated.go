package rules

import "github.com/matzehuels/wiregraph/pkg/wire"

// RemoveIsolated deletes degree-0 vertices the vertex policy allows to cull.
// Pins stay even when nothing is wired to them.
type RemoveIsolated struct{}

func (RemoveIsolated) Name() string { return "remove-isolated" }

// Apply implements Rule.
func (RemoveIsolated) Apply(s *wire.State, ctx *Context) *wire.State {
	ctx = ctx.orDefaults()
	for _, v := range s.Vertices() {
		if v.Degree == 0 && ctx.Vertices.CanCullIsolated(v) {
			s.RemoveVertex(v.ID)
		}
	}
	return s
}
