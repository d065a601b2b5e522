package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/wiregraph/pkg/geom"
	"github.com/matzehuels/wiregraph/pkg/wire"
)

// ErrUnknownOwner is returned for an owner other than "free" or "pin".
var ErrUnknownOwner = errors.New("unknown vertex owner")

func toVertex(v vertex) (wire.Vertex, error) {
	out := wire.Vertex{
		ID:      wire.VertexID(v.ID),
		Point:   geom.Pt(v.X, v.Y),
		Label:   v.Label,
		Cluster: wire.ClusterID(v.Cluster),
	}
	switch v.Owner {
	case "", wire.Free.String():
		out.Owner = wire.Free
	case wire.Pin.String():
		out.Owner = wire.Pin
		out.Pin = wire.PinRef{Component: v.Component, Pin: v.Pin}
	default:
		return wire.Vertex{}, fmt.Errorf("%w: %q", ErrUnknownOwner, v.Owner)
	}
	return out, nil
}

// ReadJSON decodes a JSON document from r into a new state.
//
// IDs are preserved, so edges must reference vertex IDs present in the same
// document. ReadJSON returns an error if:
//   - The JSON is malformed
//   - A vertex or edge ID is zero or repeated
//   - An edge references an unknown vertex, loops, or duplicates another
//   - A vertex has an unknown owner
//
// Errors are wrapped with the offending vertex or edge. Use errors.Is with
// the wire sentinel errors to check for a specific cause. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (*wire.State, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	s := wire.New()
	for _, v := range doc.Vertices {
		wv, err := toVertex(v)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", v.ID, err)
		}
		if err := s.InsertVertex(wv); err != nil {
			return nil, fmt.Errorf("vertex %d: %w", v.ID, err)
		}
	}
	for _, e := range doc.Edges {
		we := wire.Edge{
			ID:    wire.EdgeID(e.ID),
			Start: wire.VertexID(e.Start),
			End:   wire.VertexID(e.End),
			Meta:  wire.EdgeMeta{Layer: e.Layer, Width: e.Width},
		}
		if err := s.InsertEdge(we); err != nil {
			return nil, fmt.Errorf("edge %d (%d-%d): %w", e.ID, e.Start, e.End, err)
		}
	}
	if err := wire.Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// ImportJSON reads a JSON file at path and returns the decoded state.
func ImportJSON(path string) (*wire.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
