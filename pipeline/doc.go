// Package pipeline turns ordered middleware and adapter declarations into
// an immutable, canonical execution plan.
//
// A Builder accumulates declarations in the order they are made, then a
// single Compile call validates each one, resolves named units through a
// unit.Registry, and produces a Compiled pipeline of tagged executable
// steps. Compilation is pure and fail-fast: the first invalid declaration
// aborts the whole client definition, with a diagnostic naming the
// declaration site.
//
// Compose builds a runtime Client value out of two raw declaration lists
// (pre and post), reusing the same validation and step compilation, so a
// call site can layer extra middleware around a statically compiled
// pipeline without re-running the top-level compiler.
//
// Declaration order is load-bearing. Nothing in this package reorders
// steps: middleware execute in exactly the declared order.
package pipeline
