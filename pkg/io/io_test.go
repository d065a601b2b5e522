package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/wiregraph/pkg/engine"
	"github.com/matzehuels/wiregraph/pkg/geom"
	"github.com/matzehuels/wiregraph/pkg/txn"
	"github.com/matzehuels/wiregraph/pkg/wire"
)

func sample() *engine.Engine {
	eng := engine.New(engine.Options{})
	eng.AttachPin(geom.Pt(0, 0), wire.PinRef{Component: "R1", Pin: "2"})
	eng.Execute(txn.AddPath{
		Points: []geom.Point{geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(100, 50)},
		Meta:   func(int) wire.EdgeMeta { return wire.EdgeMeta{Layer: "top", Width: 0.25} },
	})
	eng.Execute(txn.Relabel{Vertex: 2, Label: "MID"})
	return eng
}

func TestRoundTrip(t *testing.T) {
	g := sample().State()

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if wire.Fingerprint(got) != wire.Fingerprint(g) {
		t.Error("round trip changed the graph")
	}
}

func TestWriteJSONShape(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(sample().State(), &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`"owner": "pin"`, `"component": "R1"`, `"label": "MID"`, `"layer": "top"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"duplicate vertex", `{"vertices":[{"id":1},{"id":1}],"edges":[]}`, wire.ErrDuplicateID},
		{"zero id", `{"vertices":[{"id":0}],"edges":[]}`, wire.ErrInvalidID},
		{"dangling edge", `{"vertices":[{"id":1}],"edges":[{"id":1,"start":1,"end":2}]}`, wire.ErrUnknownVertex},
		{"self loop", `{"vertices":[{"id":1}],"edges":[{"id":1,"start":1,"end":1}]}`, wire.ErrSelfLoop},
		{"duplicate edge", `{"vertices":[{"id":1},{"id":2,"x":5}],"edges":[{"id":1,"start":1,"end":2},{"id":2,"start":2,"end":1}]}`, wire.ErrDuplicateEdge},
		{"bad owner", `{"vertices":[{"id":1,"owner":"ghost"}],"edges":[]}`, ErrUnknownOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("ReadJSON() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := ReadJSON(strings.NewReader("{")); err == nil {
		t.Error("ReadJSON() should reject malformed JSON")
	}
}

func TestExportImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	g := sample().State()

	if err := ExportJSON(g, path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if got.VertexCount() != g.VertexCount() || got.EdgeCount() != g.EdgeCount() {
		t.Errorf("imported %dV/%dE, want %dV/%dE", got.VertexCount(), got.EdgeCount(), g.VertexCount(), g.EdgeCount())
	}

	if _, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ImportJSON() should fail for a missing file")
	}
}

func TestWriteDelta(t *testing.T) {
	eng := engine.New(engine.Options{})
	d := eng.Execute(txn.AddPath{Points: []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0)}})

	var buf bytes.Buffer
	if err := WriteDelta(d, &buf); err != nil {
		t.Fatalf("WriteDelta() error = %v", err)
	}
	var decoded struct {
		Revision        string            `json:"revision"`
		AddedVertices   []json.RawMessage `json:"added_vertices"`
		RemovedVertices []uint64          `json:"removed_vertices"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded.Revision != d.Revision.String() || len(decoded.AddedVertices) != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
	if !strings.Contains(buf.String(), `"removed_vertices": []`) {
		t.Errorf("empty lists should encode as []:\n%s", buf.String())
	}
}
