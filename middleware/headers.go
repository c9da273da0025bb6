package middleware

import (
	"context"
	"fmt"

	"github.com/kbukum/relay/request"
	"github.com/kbukum/relay/unit"
)

// Headers appends declared headers to every request, before any per-call
// headers. Options: a request.Pairs. The validator rejects map-shaped
// options for this unit at compile time, so order and duplicates survive.
type Headers struct{}

// Call implements unit.Middleware.
func (Headers) Call(ctx context.Context, env *request.Env, next unit.Next, opts any) (*request.Env, error) {
	pairs, err := pairsFrom("headers", opts)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return next(ctx, env)
	}

	d := env.Request.Clone()
	d.Headers = append(append(request.Pairs{}, pairs...), d.Headers...)
	return next(ctx, env.WithRequest(d))
}

// Query appends declared query parameters to every request, before any
// per-call parameters. Options: a request.Pairs.
type Query struct{}

// Call implements unit.Middleware.
func (Query) Call(ctx context.Context, env *request.Env, next unit.Next, opts any) (*request.Env, error) {
	pairs, err := pairsFrom("query", opts)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return next(ctx, env)
	}

	d := env.Request.Clone()
	d.Query = append(append(request.Pairs{}, pairs...), d.Query...)
	return next(ctx, env.WithRequest(d))
}

func pairsFrom(name string, opts any) (request.Pairs, error) {
	switch v := opts.(type) {
	case nil:
		return nil, nil
	case request.Pairs:
		return v, nil
	case []request.Pair:
		return v, nil
	default:
		return nil, fmt.Errorf("middleware: %s options must be an ordered pair sequence, got %T", name, opts)
	}
}
