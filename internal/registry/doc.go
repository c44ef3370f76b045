// Package registry is the declarative source of truth for node construction.
//
// A Definition maps a node kind to its handle shapes, default payload,
// per-field type constraints and optional canonical-value extractor. The
// registry is populated from two directions: compiled-in Go modules (the
// Module interface) and declarative HCL manifests (`node` blocks). Both feed
// the same registry, and a validation pass checks their internal consistency
// before the factory consumes them, shifting a whole class of errors from
// canvas interaction time to startup.
package registry
