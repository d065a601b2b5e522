// Package engine owns the committed wire graph and turns transactions into
// deltas.
//
// Every [Engine.Execute] follows the same cycle: clone the committed state,
// let the transaction edit the clone, run the ruleset over it (unless the
// transaction is metadata-only), diff the result against the previous
// snapshot, commit, and hand the [Delta] to the change handler. Executions
// never fail; a request that changes nothing yields an empty delta.
//
// The engine is single-threaded and not reentrant. The change handler runs
// synchronously after the commit and must not call Execute itself.
//
// # Read path
//
// [Engine.State] exposes the committed graph as a [wire.View]. Pointer tools
// use [Engine.FindVertex], [Engine.AttachPin] and [Engine.HitTest];
// selections use [Engine.Bounds].
package engine
