package middleware

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kbukum/relay/request"
	"github.com/kbukum/relay/unit"
)

// DefaultRequestIDHeader is the header the RequestID unit sets.
const DefaultRequestIDHeader = "X-Request-ID"

// RequestID stamps every request with a fresh UUID, unless the caller
// already set one. Options: RequestIDOptions or nil.
type RequestID struct{}

// RequestIDOptions configures the RequestID unit.
type RequestIDOptions struct {
	// Header overrides the header name. Defaults to X-Request-ID.
	Header string
}

// Call implements unit.Middleware.
func (RequestID) Call(ctx context.Context, env *request.Env, next unit.Next, opts any) (*request.Env, error) {
	header := DefaultRequestIDHeader
	switch v := opts.(type) {
	case nil:
	case RequestIDOptions:
		if v.Header != "" {
			header = v.Header
		}
	case *RequestIDOptions:
		if v.Header != "" {
			header = v.Header
		}
	default:
		return nil, fmt.Errorf("middleware: request_id options must be RequestIDOptions, got %T", opts)
	}

	if env.Request.Headers.Get(header) != "" {
		return next(ctx, env)
	}
	d := env.Request.Clone()
	d.Headers = d.Headers.Append(header, uuid.NewString())
	return next(ctx, env.WithRequest(d))
}
