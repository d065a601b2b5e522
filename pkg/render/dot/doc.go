// Package dot renders wire graphs through Graphviz.
//
// # Usage
//
//	src := dot.ToDOT(eng.State(), dot.Options{Scale: 2})
//	svg, err := dot.RenderSVG(ctx, src)
//
// Vertices are emitted with pinned positions (pos="x,y!") and rendered with
// the neato engine, so the picture keeps the schematic's geometry; Graphviz
// only draws. Pins are boxes labelled with their component terminal,
// junctions are filled dots, other vertices are small points. Edges are
// coloured by cluster so nets are easy to tell apart.
//
// A [Renderer] adds a cache keyed by the graph fingerprint in front of
// [RenderSVG].
package dot
