// Package geom provides the 2D value types and the geometry policies that
// make the wire-graph rules independent of the routing discipline.
//
// # Policies
//
// A [Policy] answers four questions: where a requested point snaps to, which
// directions a segment may take, whether a point lies on a line within
// tolerance, and where a point falls along a direction. The rules in
// package rules only ever ask these questions, so the same merge, split and
// collapse logic serves schematic wiring ([Orthogonal]) and PCB traces
// ([Octilinear]).
//
// Collinearity is tested with a cross product scaled by the direction length,
// which is the perpendicular distance of the point from the line:
//
//	|cross(b-a, dir)| / |dir| <= tol
//
// All policies are plain values with no state and are safe to share.
package geom
