// Package engine drives a widget tree against a backend surface.
//
// An [App] owns the pipeline: reconcile dirty widgets, lay out the
// render tree in integer cells, paint into a fresh buffer, diff it
// against the previous frame and flush the changed runs to the
// [Backend]. The pipeline is pull based. Hosts that own their event
// loop call [App.Tick] with batched input; hosts that do not call
// [App.Run] and let the runtime block on the backend's event channel.
//
// Ticks with nothing to do are free: no build, no layout, no paint,
// no flush. Work arrives through input dispatch, [App.Post],
// [App.RequestFrame], state changes and [Tickable] polling, and any
// of them can mark the frame dirty.
//
// [Headless] is the in-memory backend for tests and embedding.
package engine
