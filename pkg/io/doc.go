// Package io reads and writes wire graphs as JSON documents.
//
// # JSON Format
//
//	{
//	  "vertices": [
//	    {"id": 1, "x": 0, "y": 0, "owner": "pin", "component": "R1", "pin": "2", "cluster": 1},
//	    {"id": 2, "x": 100, "y": 0, "label": "MID", "cluster": 1}
//	  ],
//	  "edges": [
//	    {"id": 1, "start": 1, "end": 2, "width": 0.25, "layer": "top"}
//	  ]
//	}
//
// Vertices and edges are written in ID order, so equal graphs produce equal
// documents. The owner defaults to "free". Cluster IDs are written for
// consumers that want nets without running the rules; they are restored on
// read but any engine resolution recomputes them.
//
// # Import
//
// [ReadJSON] and [ImportJSON] restore the graph under its original IDs and
// check every structural invariant with [wire.Validate]. To bring a document
// into a running engine, execute a txn.Import with the decoded state.
//
// # Export
//
// [WriteJSON] and [ExportJSON] accept any [wire.View]. [WriteDelta] encodes
// an engine delta with the same vertex and edge shapes.
package io
