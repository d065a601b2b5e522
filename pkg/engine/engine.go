package engine

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/wiregraph/pkg/geom"
	"github.com/matzehuels/wiregraph/pkg/observability"
	"github.com/matzehuels/wiregraph/pkg/policy"
	"github.com/matzehuels/wiregraph/pkg/rules"
	"github.com/matzehuels/wiregraph/pkg/txn"
	"github.com/matzehuels/wiregraph/pkg/wire"
)

// DefaultDiffTolerance is the coordinate change below which a vertex is not
// reported as moved.
const DefaultDiffTolerance = 1e-9

// Options configures an Engine. Zero fields take the schematic defaults.
type Options struct {
	Geometry geom.Policy
	Vertices policy.VertexPolicy
	Edges    policy.EdgePolicy
	Rules    rules.Ruleset
	Logger   *log.Logger

	// DiffTolerance is the movement threshold for UpdatedVertices.
	DiffTolerance float64
}

func (o Options) withDefaults() Options {
	if o.Geometry == nil {
		o.Geometry = geom.Orthogonal{}
	}
	if o.Vertices == nil {
		o.Vertices = policy.DefaultVertexPolicy{}
	}
	if o.Edges == nil {
		o.Edges = policy.Schematic{}
	}
	if o.Rules == nil {
		o.Rules = rules.Default()
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.DiffTolerance <= 0 {
		o.DiffTolerance = DefaultDiffTolerance
	}
	return o
}

// ChangeFunc receives every committed delta together with the new state.
type ChangeFunc func(Delta, wire.View)

// Engine holds the committed connection graph.
type Engine struct {
	opts     Options
	state    *wire.State
	revision uuid.UUID
	onChange ChangeFunc
}

// New returns an engine over an empty graph.
func New(opts Options) *Engine {
	return &Engine{opts: opts.withDefaults(), state: wire.New()}
}

// Restore replaces the committed graph with s and sets the revision, as when
// reopening a saved drawing. s must already be canonical; it is not resolved,
// no delta is produced and the change handler is not called. The engine takes
// ownership of s.
func (e *Engine) Restore(s *wire.State, rev uuid.UUID) {
	e.state = s
	e.revision = rev
	e.opts.Logger.Debug("restored state", "vertices", s.VertexCount(), "edges", s.EdgeCount(), "revision", rev)
}

// OnChange registers the single change handler, replacing any previous one.
// A nil handler unregisters it.
func (e *Engine) OnChange(fn ChangeFunc) { e.onChange = fn }

// Options returns the effective options, defaults filled in.
func (e *Engine) Options() Options { return e.opts }

// Execute applies t, restores the graph invariants, commits, and reports what
// changed. The returned delta is also passed to the change handler.
func (e *Engine) Execute(t txn.Transaction) Delta {
	start := time.Now()
	initial := e.state
	draft := initial.Clone()

	epicenter := t.Apply(draft, &txn.Context{Geometry: e.opts.Geometry, Edges: e.opts.Edges})
	observability.Engine().OnExecuteStart(t.Name(), epicenter.Len())

	final := draft
	if txn.IsMetadataOnly(t) {
		e.opts.Logger.Debug("metadata-only transaction, skipping rules", "txn", t.Name())
	} else {
		var bounds geom.Rect
		if epicenter.Len() > 0 {
			bounds = wire.Bounds(draft, epicenter.Sorted()...).Expand(e.opts.Geometry.NeighborhoodPadding())
		}
		e.opts.Logger.Debug("resolving", "txn", t.Name(), "bounds", bounds)
		final = e.opts.Rules.Apply(draft, &rules.Context{
			Epicenter: epicenter,
			Geometry:  e.opts.Geometry,
			Bounds:    bounds,
			Vertices:  e.opts.Vertices,
			Edges:     e.opts.Edges,
			Logger:    e.opts.Logger,
		})
	}

	delta := Diff(initial, final, e.opts.DiffTolerance)
	delta.Revision = uuid.New()
	e.state = final
	e.revision = delta.Revision

	elapsed := time.Since(start)
	e.opts.Logger.Debug("executed",
		"txn", t.Name(),
		"epicenter", epicenter.Len(),
		"delta", delta.String(),
		"revision", delta.Revision,
		"duration", elapsed)
	observability.Engine().OnExecuteComplete(t.Name(), delta.Size(), elapsed)

	if e.onChange != nil {
		e.onChange(delta, wire.ReadOnly(final))
	}
	return delta
}

// State returns the committed graph. It stays valid and unchanged after later
// executions, and offers no way to mutate it.
func (e *Engine) State() wire.View { return wire.ReadOnly(e.state) }

// Snapshot returns a private, mutable copy of the committed graph.
func (e *Engine) Snapshot() *wire.State { return e.state.Clone() }

// Revision identifies the last commit. It is the zero UUID before the first
// Execute.
func (e *Engine) Revision() uuid.UUID { return e.revision }

// FindVertex returns the committed vertex nearest to p within tol. A tol of
// zero uses the geometry tolerance.
func (e *Engine) FindVertex(p geom.Point, tol float64) (wire.VertexID, bool) {
	return e.state.NearestVertex(p, e.tolerance(tol))
}

// AttachPin returns the vertex bound to pin, creating or promoting one at p,
// and commits the change.
func (e *Engine) AttachPin(p geom.Point, pin wire.PinRef) (wire.VertexID, Delta) {
	t := &txn.AttachPin{At: p, Pin: pin}
	d := e.Execute(t)
	return t.Vertex, d
}

// HitTest classifies what lies under p in the committed graph.
func (e *Engine) HitTest(p geom.Point, tol float64) Hit {
	return HitTest(e.state, p, e.tolerance(tol))
}

// Bounds returns the bounding box of the given vertices, or of the whole
// graph when none are given.
func (e *Engine) Bounds(ids ...wire.VertexID) geom.Rect {
	return wire.Bounds(e.state, ids...)
}

func (e *Engine) tolerance(tol float64) float64 {
	if tol > 0 {
		return tol
	}
	return e.opts.Geometry.Epsilon()
}
