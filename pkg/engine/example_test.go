package engine_test

import (
	"fmt"

	"github.com/matzehuels/wiregraph/pkg/engine"
	"github.com/matzehuels/wiregraph/pkg/geom"
	"github.com/matzehuels/wiregraph/pkg/txn"
)

func ExampleEngine_Execute() {
	eng := engine.New(engine.Options{})

	// The last point lands within tolerance of (100,0) and is coalesced.
	d := eng.Execute(txn.AddPath{Points: []geom.Point{
		geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(100, 0.0000005),
	}})
	fmt.Println(d)

	// A wire dropped onto the middle of the first one forms a T-junction.
	d = eng.Execute(txn.AddPath{Points: []geom.Point{geom.Pt(50, 0), geom.Pt(50, 30)}})
	fmt.Println(d)
	fmt.Println(eng.State().VertexCount(), eng.State().EdgeCount())
	// Output:
	// +2v ~0v -0v +1e ~0e -0e
	// +2v ~0v -0v +3e ~0e -1e
	// 4 3
}
