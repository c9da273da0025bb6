// Package request defines the canonical data model shared by the pipeline
// compiler, the method surface, and the execution engine: the request
// descriptor, ordered name/value pair sequences, the response, and the
// env value threaded through a middleware chain.
//
// Header and query collections are ordered pair sequences, not maps.
// Header order and duplicate keys are significant on the wire, and an
// associative structure cannot preserve either.
package request
