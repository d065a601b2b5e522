package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/matzehuels/wiregraph/pkg/engine"
	"github.com/matzehuels/wiregraph/pkg/wire"
)

type document struct {
	Vertices []vertex `json:"vertices"`
	Edges    []edge   `json:"edges"`
}

type vertex struct {
	ID        uint64  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Owner     string  `json:"owner,omitempty"`
	Component string  `json:"component,omitempty"`
	Pin       string  `json:"pin,omitempty"`
	Label     string  `json:"label,omitempty"`
	Cluster   uint64  `json:"cluster,omitempty"`
}

type edge struct {
	ID    uint64  `json:"id"`
	Start uint64  `json:"start"`
	End   uint64  `json:"end"`
	Width float64 `json:"width,omitempty"`
	Layer string  `json:"layer,omitempty"`
}

type delta struct {
	Revision        uuid.UUID `json:"revision"`
	AddedVertices   []vertex  `json:"added_vertices"`
	UpdatedVertices []vertex  `json:"updated_vertices"`
	RemovedVertices []uint64  `json:"removed_vertices"`
	AddedEdges      []edge    `json:"added_edges"`
	UpdatedEdges    []edge    `json:"updated_edges"`
	RemovedEdges    []uint64  `json:"removed_edges"`
}

func fromVertex(v wire.Vertex) vertex {
	out := vertex{
		ID:      uint64(v.ID),
		X:       v.Point.X,
		Y:       v.Point.Y,
		Label:   v.Label,
		Cluster: uint64(v.Cluster),
	}
	if v.IsPin() {
		out.Owner = v.Owner.String()
		out.Component = v.Pin.Component
		out.Pin = v.Pin.Pin
	}
	return out
}

func fromEdge(e wire.Edge) edge {
	return edge{
		ID:    uint64(e.ID),
		Start: uint64(e.Start),
		End:   uint64(e.End),
		Width: e.Meta.Width,
		Layer: e.Meta.Layer,
	}
}

func fromVertices(vs []wire.Vertex) []vertex {
	out := make([]vertex, len(vs))
	for i, v := range vs {
		out[i] = fromVertex(v)
	}
	return out
}

func fromEdges(es []wire.Edge) []edge {
	out := make([]edge, len(es))
	for i, e := range es {
		out[i] = fromEdge(e)
	}
	return out
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteJSON encodes a graph as JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(g wire.View, w io.Writer) error {
	return encode(w, document{
		Vertices: fromVertices(g.Vertices()),
		Edges:    fromEdges(g.Edges()),
	})
}

// ExportJSON writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g wire.View, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// WriteDelta encodes a delta as JSON. Empty lists are written as [] so
// consumers never see null.
func WriteDelta(d engine.Delta, w io.Writer) error {
	ids := func(n int, at func(int) uint64) []uint64 {
		out := make([]uint64, n)
		for i := range out {
			out[i] = at(i)
		}
		return out
	}
	return encode(w, delta{
		Revision:        d.Revision,
		AddedVertices:   fromVertices(d.AddedVertices),
		UpdatedVertices: fromVertices(d.UpdatedVertices),
		RemovedVertices: ids(len(d.RemovedVertices), func(i int) uint64 { return uint64(d.RemovedVertices[i]) }),
		AddedEdges:      fromEdges(d.AddedEdges),
		UpdatedEdges:    fromEdges(d.UpdatedEdges),
		RemovedEdges:    ids(len(d.RemovedEdges), func(i int) uint64 { return uint64(d.RemovedEdges[i]) }),
	})
}
