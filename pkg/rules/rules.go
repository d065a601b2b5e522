package rules

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wiregraph/pkg/geom"
	"github.com/matzehuels/wiregraph/pkg/observability"
	"github.com/matzehuels/wiregraph/pkg/policy"
	"github.com/matzehuels/wiregraph/pkg/wire"
)

// Context is everything a rule may consult. Nil fields fall back to the
// schematic defaults.
type Context struct {
	// Epicenter holds the vertices the triggering transaction touched.
	Epicenter wire.VertexSet
	Geometry  geom.Policy
	// Bounds is the epicenter's padded bounding region. Rules resolve the
	// whole graph; Bounds is informational.
	Bounds   geom.Rect
	Vertices policy.VertexPolicy
	Edges    policy.EdgePolicy
	Logger   *log.Logger
}

func (c *Context) orDefaults() *Context {
	var out Context
	if c != nil {
		out = *c
	}
	if out.Geometry == nil {
		out.Geometry = geom.Orthogonal{}
	}
	if out.Vertices == nil {
		out.Vertices = policy.DefaultVertexPolicy{}
	}
	if out.Edges == nil {
		out.Edges = policy.Schematic{}
	}
	if out.Logger == nil {
		out.Logger = log.Default()
	}
	if out.Epicenter == nil {
		out.Epicenter = wire.NewVertexSet()
	}
	return &out
}

// Rule restores one invariant. Apply may mutate s, which the caller owns, and
// returns the resulting state.
type Rule interface {
	Name() string
	Apply(s *wire.State, ctx *Context) *wire.State
}

// Func adapts a plain function to the Rule interface.
func Func(name string, fn func(*wire.State, *Context) *wire.State) Rule {
	return funcRule{name: name, fn: fn}
}

type funcRule struct {
	name string
	fn   func(*wire.State, *Context) *wire.State
}

func (r funcRule) Name() string                                  { return r.name }
func (r funcRule) Apply(s *wire.State, ctx *Context) *wire.State { return r.fn(s, ctx.orDefaults()) }

// Ruleset is an ordered list of rules threaded over one state.
type Ruleset []Rule

// Default returns the canonical pipeline:
//
//  1. merge coincident vertices
//  2. split edges at passing vertices
//  3. collapse collinear runs
//  4. remove isolated free vertices
//  5. assign cluster identifiers
//
// Running it on its own output changes nothing.
func Default() Ruleset {
	return Ruleset{
		MergeCoincident{},
		SplitEdges{},
		CollapseCollinear{},
		RemoveIsolated{},
		AssignClusters{},
	}
}

// Apply runs every rule in order on s, mutating it in place.
func (rs Ruleset) Apply(s *wire.State, ctx *Context) *wire.State {
	ctx = ctx.orDefaults()
	for _, r := range rs {
		start := time.Now()
		s = r.Apply(s, ctx)
		elapsed := time.Since(start)
		observability.Engine().OnRuleApplied(r.Name(), elapsed)
		ctx.Logger.Debug("rule applied",
			"rule", r.Name(),
			"vertices", s.VertexCount(),
			"edges", s.EdgeCount(),
			"duration", elapsed)
	}
	return s
}

// Resolve is the pure form of Apply: s is left untouched and the canonical
// result is returned as a new state.
func (rs Ruleset) Resolve(s *wire.State, ctx *Context) *wire.State {
	return rs.Apply(s.Clone(), ctx)
}

// Normalize resolves s with the default ruleset and schematic policies.
func Normalize(s *wire.State) *wire.State {
	return Default().Resolve(s, nil)
}
