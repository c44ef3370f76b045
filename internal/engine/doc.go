// Package engine implements the dual-tier propagation engine: the fast
// visual path and the batched authoritative path over one shared per-node
// state machine.
//
// # Tiers
//
// Every activation change runs through three layers in the same call stack:
//
//  1. Visual layer: a per-node last-applied cache plus one Renderer call.
//     Constant time, no allocation on the skip path.
//  2. Signal layer: one boolean cell per node (package signal). Setting a
//     cell true notifies direct subscribers only; each downstream cell's own
//     subscriber continues the chain one hop at a time. Setting a cell false
//     triggers an explicit sweep over the precomputed downstream set, so
//     going dark is an active, traceable operation.
//  3. Batched consistency layer: the change is queued, and a single frame
//     callback commits all queued changes to the authoritative store in one
//     batch. Rapid same-frame toggles coalesce into the final value; the
//     store sees at most one commit per node per frame.
//
// # State machine
//
// Nodes move Inactive -> PendingActivation -> Active and Active ->
// PendingDeactivation -> Inactive. The pending states exist only to decouple
// the instant visual flip from the deferred commit; the frame callback always
// collapses them to the terminal state, even when the store commit fails.
//
// # Ownership
//
// All bookkeeping (states, visual cache, pending set, frame callback) is
// owned by one Engine instance and injected at construction. Dispose cancels
// any outstanding frame callback so nothing writes against a torn down graph,
// and independent editor instances never share state.
package engine
