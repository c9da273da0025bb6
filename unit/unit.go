package unit

import (
	"context"

	"github.com/kbukum/relay/request"
)

// Next invokes the remainder of a middleware chain.
type Next func(ctx context.Context, env *request.Env) (*request.Env, error)

// Middleware is a named, reusable request/response transformation step.
// Implementations may inspect or replace the env before and after calling
// next, or short-circuit by returning without calling it.
type Middleware interface {
	// Call runs the unit with the options it was declared with.
	Call(ctx context.Context, env *request.Env, next Next, opts any) (*request.Env, error)
}

// Adapter is the terminal unit of a pipeline: it dispatches the request
// and produces the response. There is no next; an adapter ends the chain.
type Adapter interface {
	// Call dispatches env.Request and returns an env carrying the response.
	Call(ctx context.Context, env *request.Env, opts any) (*request.Env, error)
}

// Func is an inline middleware callable. It is directly invocable without
// a registry reference and never receives options.
type Func func(ctx context.Context, env *request.Env, next Next) (*request.Env, error)

// TerminalFunc is an inline adapter callable: it ends the chain, so it
// receives no next and, like Func, no options.
type TerminalFunc func(ctx context.Context, env *request.Env) (*request.Env, error)

// MiddlewareFunc adapts a plain function to the Middleware interface.
type MiddlewareFunc func(ctx context.Context, env *request.Env, next Next, opts any) (*request.Env, error)

// Call implements Middleware.
func (f MiddlewareFunc) Call(ctx context.Context, env *request.Env, next Next, opts any) (*request.Env, error) {
	return f(ctx, env, next, opts)
}

// AdapterFunc adapts a plain function to the Adapter interface.
type AdapterFunc func(ctx context.Context, env *request.Env, opts any) (*request.Env, error)

// Call implements Adapter.
func (f AdapterFunc) Call(ctx context.Context, env *request.Env, opts any) (*request.Env, error) {
	return f(ctx, env, opts)
}
