// Package engine walks a compiled pipeline for one request.
//
// For each call the engine lays out the composed client's pre steps, the
// pipeline's own middleware, then the client's post steps, and builds the
// chain so the first step is outermost: it runs first on the way in and
// last on the way out. The terminal adapter step ends the chain.
//
// The engine holds no per-request state. A single Engine over one
// compiled pipeline is safe to call from any number of goroutines.
package engine
