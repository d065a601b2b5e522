package script

import (
	"github.com/matzehuels/wiregraph/pkg/engine"
	"github.com/matzehuels/wiregraph/pkg/errors"
	"github.com/matzehuels/wiregraph/pkg/geom"
	"github.com/matzehuels/wiregraph/pkg/txn"
	"github.com/matzehuels/wiregraph/pkg/wire"
)

// Step operations.
const (
	OpPath   = "path"
	OpPin    = "pin"
	OpDelete = "delete"
	OpMove   = "move"
	OpMeta   = "meta"
	OpLabel  = "label"
)

// Step is one edit. Which fields matter depends on Op:
//
//	path    points, width, layer
//	pin     at, component, pin
//	delete  vertices, edges, or a vertex selector
//	move    a vertex selector, to
//	meta    edges, width, layer
//	label   a vertex selector, label
//
// A vertex selector is vertex, or component + pin, or at.
type Step struct {
	Op        string      `toml:"op" yaml:"op" json:"op"`
	Points    [][]float64 `toml:"points,omitempty" yaml:"points,omitempty" json:"points,omitempty"`
	At        []float64   `toml:"at,omitempty" yaml:"at,omitempty" json:"at,omitempty"`
	To        []float64   `toml:"to,omitempty" yaml:"to,omitempty" json:"to,omitempty"`
	Component string      `toml:"component,omitempty" yaml:"component,omitempty" json:"component,omitempty"`
	Pin       string      `toml:"pin,omitempty" yaml:"pin,omitempty" json:"pin,omitempty"`
	Vertex    uint64      `toml:"vertex,omitempty" yaml:"vertex,omitempty" json:"vertex,omitempty"`
	Vertices  []uint64    `toml:"vertices,omitempty" yaml:"vertices,omitempty" json:"vertices,omitempty"`
	Edges     []uint64    `toml:"edges,omitempty" yaml:"edges,omitempty" json:"edges,omitempty"`
	Width     float64     `toml:"width,omitempty" yaml:"width,omitempty" json:"width,omitempty"`
	Layer     string      `toml:"layer,omitempty" yaml:"layer,omitempty" json:"layer,omitempty"`
	Label     string      `toml:"label,omitempty" yaml:"label,omitempty" json:"label,omitempty"`
}

func point(xy []float64, field string) (geom.Point, error) {
	if len(xy) != 2 {
		return geom.Point{}, errors.New(errors.ErrCodeInvalidScript, "%s must be [x, y], got %v", field, xy)
	}
	return geom.Pt(xy[0], xy[1]), nil
}

func (st Step) hasSelector() bool {
	return st.Vertex != 0 || st.Component != "" || st.At != nil
}

// Validate checks the fields required by the step's operation.
func (st Step) Validate() error {
	switch st.Op {
	case OpPath:
		if len(st.Points) == 0 {
			return errors.New(errors.ErrCodeInvalidScript, "path needs points")
		}
		for _, p := range st.Points {
			if _, err := point(p, "points"); err != nil {
				return err
			}
		}
		return errors.ValidateLayer(st.Layer)
	case OpPin:
		if _, err := point(st.At, "at"); err != nil {
			return err
		}
		return errors.ValidatePin(st.Component, st.Pin)
	case OpDelete:
		if len(st.Vertices) == 0 && len(st.Edges) == 0 && !st.hasSelector() {
			return errors.New(errors.ErrCodeInvalidScript, "delete needs vertices, edges or a vertex selector")
		}
	case OpMove:
		if !st.hasSelector() {
			return errors.New(errors.ErrCodeInvalidScript, "move needs a vertex selector")
		}
		if _, err := point(st.To, "to"); err != nil {
			return err
		}
	case OpMeta:
		if len(st.Edges) == 0 {
			return errors.New(errors.ErrCodeInvalidScript, "meta needs edges")
		}
		return errors.ValidateLayer(st.Layer)
	case OpLabel:
		if !st.hasSelector() {
			return errors.New(errors.ErrCodeInvalidScript, "label needs a vertex selector")
		}
	default:
		return errors.New(errors.ErrCodeInvalidScript, "unknown op %q", st.Op)
	}
	if st.At != nil {
		if _, err := point(st.At, "at"); err != nil {
			return err
		}
	}
	return nil
}

// Transaction builds the transaction for the step. Vertex selectors are
// resolved against g; an at selector matches vertices closer than tol, or
// geom.DefaultEpsilon when tol is not positive.
func (st Step) Transaction(g wire.View, tol float64) (txn.Transaction, error) {
	if err := st.Validate(); err != nil {
		return nil, err
	}
	meta := wire.EdgeMeta{Layer: st.Layer, Width: st.Width}

	switch st.Op {
	case OpPath:
		points := make([]geom.Point, len(st.Points))
		for i, p := range st.Points {
			points[i], _ = point(p, "points")
		}
		return txn.AddPath{Points: points, Meta: func(int) wire.EdgeMeta { return meta }}, nil
	case OpPin:
		at, _ := point(st.At, "at")
		return &txn.AttachPin{At: at, Pin: wire.PinRef{Component: st.Component, Pin: st.Pin}}, nil
	case OpMeta:
		return txn.SetEdgeMeta{Edges: edgeIDs(st.Edges), Meta: meta}, nil
	}

	var target wire.VertexID
	if st.hasSelector() {
		id, err := st.resolve(g, tol)
		if err != nil {
			return nil, err
		}
		target = id
	}

	switch st.Op {
	case OpDelete:
		d := txn.Delete{Vertices: vertexIDs(st.Vertices), Edges: edgeIDs(st.Edges)}
		if target != 0 {
			d.Vertices = append(d.Vertices, target)
		}
		return d, nil
	case OpMove:
		to, _ := point(st.To, "to")
		return txn.MoveVertex{Vertex: target, To: to}, nil
	default:
		return txn.Relabel{Vertex: target, Label: st.Label}, nil
	}
}

// Run builds the step's transaction against the engine's state and executes
// it.
func (st Step) Run(eng *engine.Engine) (engine.Delta, error) {
	t, err := st.Transaction(eng.State(), eng.Options().Geometry.Epsilon())
	if err != nil {
		return engine.Delta{}, err
	}
	return eng.Execute(t), nil
}

func (st Step) resolve(g wire.View, tol float64) (wire.VertexID, error) {
	switch {
	case st.Vertex != 0:
		id := wire.VertexID(st.Vertex)
		if _, ok := g.Vertex(id); !ok {
			return 0, errors.New(errors.ErrCodeNotFound, "no vertex %s", id)
		}
		return id, nil
	case st.Component != "":
		ref := wire.PinRef{Component: st.Component, Pin: st.Pin}
		for _, v := range g.Vertices() {
			if v.IsPin() && v.Pin == ref {
				return v.ID, nil
			}
		}
		return 0, errors.New(errors.ErrCodeNotFound, "no vertex for pin %s", ref)
	default:
		at, _ := point(st.At, "at")
		if tol <= 0 {
			tol = geom.DefaultEpsilon
		}
		id, ok := g.NearestVertex(at, tol)
		if !ok {
			return 0, errors.New(errors.ErrCodeNotFound, "no vertex at %v", at)
		}
		return id, nil
	}
}

func vertexIDs(ids []uint64) []wire.VertexID {
	out := make([]wire.VertexID, len(ids))
	for i, id := range ids {
		out[i] = wire.VertexID(id)
	}
	return out
}

func edgeIDs(ids []uint64) []wire.EdgeID {
	out := make([]wire.EdgeID, len(ids))
	for i, id := range ids {
		out[i] = wire.EdgeID(id)
	}
	return out
}
