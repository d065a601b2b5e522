// Package txn defines the small mutation units the engine executes.
//
// A [Transaction] edits a draft [wire.State] and reports the vertices it
// touched. It is deliberately naive: [AddPath] happily draws an edge straight
// over an unrelated vertex, and [Delete] leaves former through-vertices
// dangling in mid-air. Cleaning that up is the job of the rules in package
// rules, which the engine runs after every structural transaction.
//
// Transactions never fail. A degenerate request (a move of an unknown vertex,
// a delete of IDs that no longer exist) simply touches nothing.
//
// [Relabel] implements [MetadataOnly]; the engine commits such edits without
// running the rules at all. [Batch] composes several transactions into one
// execution.
package txn
