package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/relay/request"
	"github.com/kbukum/relay/unit"
)

// BaseURL resolves relative request URLs against a configured base.
// Options: a string base URL, or BaseURLOptions. Absolute request URLs
// pass through untouched.
type BaseURL struct{}

// BaseURLOptions configures the BaseURL unit.
type BaseURLOptions struct {
	// URL is the base, e.g. "https://api.example.com/v1".
	URL string
}

// Call implements unit.Middleware.
func (BaseURL) Call(ctx context.Context, env *request.Env, next unit.Next, opts any) (*request.Env, error) {
	base, err := baseURLFrom(opts)
	if err != nil {
		return nil, err
	}
	url := env.Request.URL
	if base == "" || strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return next(ctx, env)
	}

	d := env.Request.Clone()
	d.URL = strings.TrimRight(base, "/") + "/" + strings.TrimLeft(url, "/")
	return next(ctx, env.WithRequest(d))
}

func baseURLFrom(opts any) (string, error) {
	switch v := opts.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case BaseURLOptions:
		return v.URL, nil
	case *BaseURLOptions:
		return v.URL, nil
	default:
		return "", fmt.Errorf("middleware: base_url options must be a string or BaseURLOptions, got %T", opts)
	}
}
