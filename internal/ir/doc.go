// Package ir defines the intermediate representation produced by lowering
// a Tactus syntax tree, consumed by validation, optimization, and emission.
//
// DESIGN PRINCIPLES:
//
// Value Semantics:
// IR trees are immutable once built. Every pipeline stage returns a new
// tree (or the unchanged input) rather than mutating in place, so a
// Program can be shared between stages and across goroutines without
// synchronization.
//
// Tagged Unions:
// Node variants (timeline entries, operations, argument values) are
// modeled as sealed interfaces with a finite set of concrete types,
// matched exhaustively. There is no stringly-typed dispatch inside the
// pipeline; string discriminators exist only at serialization boundaries.
//
// Invalid Values Are Representable:
// Durations with end <= start or negative starts are constructible on
// purpose. The validator reports them and the optimizer removes the
// affected actions; construction-time panics would lose the location
// information diagnostics need.
package ir
