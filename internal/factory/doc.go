// Package factory builds validated node instances from registered
// specifications, with configurable source strategy, bounded result caching
// and operation metrics.
//
// Two backing sources exist: the declarative registry (primary in the
// default strategy) and a lower-level built-in default-construction table.
// The strategy selects lookup order or pins a single source; the fallback
// policy decides whether an unsatisfiable request returns nil with a logged
// diagnostic or a hard error. A failed construction never produces a
// partially-formed node.
package factory
