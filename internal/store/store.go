// Package store defines the authoritative activation state store and its
// in-memory implementation.
//
// The engine's batched consistency layer is the only writer on the hot path;
// it applies at most one batch per rendering frame. Reads may come from any
// goroutine in the hosting layer, so implementations must be safe for
// concurrent use.
package store

import "context"

// Store is the authoritative consistent state the editor re-renders from.
type Store interface {
	// ApplyActivation commits a batch of node activation values in one call.
	ApplyActivation(ctx context.Context, batch map[string]bool) error

	// Activation returns a node's committed activation state. The second
	// return is false when the node has never been committed.
	Activation(ctx context.Context, id string) (bool, bool)

	// Snapshot returns a copy of all committed activation state.
	Snapshot(ctx context.Context) map[string]bool
}
