// Package render turns wire graphs into pictures.
//
// The [dot] subpackage emits Graphviz DOT with every vertex pinned at its
// schematic position and renders it to SVG in-process.
package render
