// Package unit defines the call conventions for named middleware and
// adapter units, and the registry that resolves unit names to concrete
// implementations.
//
// The pipeline compiler only ever stores a resolved unit reference plus an
// opaque options value; it never inspects unit behavior. Resolution happens
// at compile time through a Registry, so a name with no backing unit fails
// the build instead of failing at call time.
//
// Every middleware unit exposes
//
//	Call(ctx, env, next, opts) (*request.Env, error)
//
// and every adapter unit exposes
//
//	Call(ctx, env, opts) (*request.Env, error)
//
// where env carries the outbound descriptor and, after the adapter has run,
// the response.
package unit
