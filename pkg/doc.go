// Package pkg provides the core libraries for the Wiregraph wire engine.
//
// # Overview
//
// Wiregraph keeps a schematic's wires as an undirected graph of points and
// segments and re-resolves it into canonical form after every edit. The pkg
// directory is organized into three main areas:
//
//  1. Core - the graph, its geometry and the resolution engine
//  2. Formats - scripts, JSON documents, DOT/SVG rendering and netlists
//  3. Infrastructure - configuration, caching, sessions, errors and hooks
//
// # Architecture
//
// The flow of one edit:
//
//	Step (script, CLI or HTTP)
//	         ↓
//	    [txn] transaction (mutates a scratch copy, reports its epicenter)
//	         ↓
//	    [rules] ruleset (merge, split, collapse, prune, assign clusters)
//	         ↓
//	    [engine] diff + commit (Delta to observers)
//	         ↓
//	    [io] JSON / [render/dot] DOT, SVG / [netlist] nets
//
// # Quick Start
//
//	eng := engine.New(engine.Options{})
//	eng.AttachPin(geom.Pt(0, 0), wire.PinRef{Component: "R1", Pin: "1"})
//	d := eng.Execute(txn.AddPath{Points: []geom.Point{
//	    geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(100, 50),
//	}})
//	fmt.Println(d) // +2v ~1v -0v +2e ~0e -0e
//
// # Main Packages
//
// ## Core
//
// [wire] - The arena graph: vertices with ownership, pins and labels, edges
// with opaque metadata, and the read-only [wire.View] handed to consumers.
//
// [geom] - Points, rectangles and the geometry policies (orthogonal,
// octilinear) that decide which directions are admissible and how close is
// coincident.
//
// [policy] - Vertex policies (which vertices are protected, who survives a
// merge) and edge policies (which vertices and edges may interact).
//
// [txn] - Transactions: add a path, delete, move, attach a pin, retag edges,
// relabel, import and batch.
//
// [rules] - The resolution rules and the default ruleset.
//
// [engine] - Executes transactions, resolves, diffs and commits. Also hit
// testing for pointer interaction.
//
// ## Formats
//
// [script] - Edit sessions as TOML, YAML or JSON data.
//
// [io] - JSON import/export of graphs and deltas.
//
// [render/dot] - Graphviz DOT with pinned positions, and SVG via neato.
//
// [netlist] - Nets (connected clusters) with their pins and labels.
//
// ## Infrastructure
//
// [config] - TOML configuration.
//
// [cache] - Render cache backends and key generation.
//
// [session] - Named drawings persisted between CLI runs.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Engine, cache and server hooks for metrics and tracing.
//
// [buildinfo] - Version information stamped at build time.
package pkg
