// Package graph defines the node and edge model owned by the editor and the
// copy-on-write snapshot the engine reads from.
//
// # Ownership
//
// The hosting UI layer owns the live node and edge collections. The engine
// receives them as a read-only Snapshot per call and never mutates them in
// place; every mutation helper in this package returns fresh slices and hands
// them back through the host's update callbacks. This keeps the engine safe to
// run against collections that the host is concurrently rendering.
//
// # Edge validity
//
// AddEdge enforces the rules that keep the graph acyclic upstream of the
// topology layer: both endpoints must exist, self-loops are rejected, and a
// second edge between the same handle pair is rejected as a duplicate.
// Removing a node prunes every edge that references it, so a Snapshot never
// contains dangling edges.
package graph
