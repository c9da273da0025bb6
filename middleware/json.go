package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kbukum/relay/request"
	"github.com/kbukum/relay/unit"
)

// JSON encodes request bodies to JSON and decodes JSON response bodies
// into Response.Decoded. Bodies that are already wire-ready ([]byte,
// string, io.Reader) pass through unencoded. Options: JSONOptions or nil.
type JSON struct{}

// JSONOptions configures the JSON unit.
type JSONOptions struct {
	// EncodeOnly skips response decoding.
	EncodeOnly bool
	// DecodeOnly skips request encoding.
	DecodeOnly bool
}

// Call implements unit.Middleware.
func (JSON) Call(ctx context.Context, env *request.Env, next unit.Next, opts any) (*request.Env, error) {
	cfg, err := jsonOptionsFrom(opts)
	if err != nil {
		return nil, err
	}

	if !cfg.DecodeOnly && encodable(env.Request.Body) {
		raw, err := json.Marshal(env.Request.Body)
		if err != nil {
			return nil, fmt.Errorf("middleware: json encode body: %w", err)
		}
		d := env.Request.Clone()
		d.Body = raw
		if d.Headers.Get("Content-Type") == "" {
			d.Headers = d.Headers.Append("Content-Type", "application/json")
		}
		env = env.WithRequest(d)
	}

	out, err := next(ctx, env)
	if err != nil {
		return out, err
	}

	if !cfg.EncodeOnly && out.Response != nil && len(out.Response.Body) > 0 && jsonContent(out.Response.Headers) {
		var decoded any
		if err := json.Unmarshal(out.Response.Body, &decoded); err != nil {
			return nil, fmt.Errorf("middleware: json decode response: %w", err)
		}
		resp := *out.Response
		resp.Decoded = decoded
		out = out.WithResponse(&resp)
	}
	return out, nil
}

func jsonOptionsFrom(opts any) (JSONOptions, error) {
	switch v := opts.(type) {
	case nil:
		return JSONOptions{}, nil
	case JSONOptions:
		return v, nil
	case *JSONOptions:
		return *v, nil
	default:
		return JSONOptions{}, fmt.Errorf("middleware: json options must be JSONOptions, got %T", opts)
	}
}

// encodable reports whether a body needs JSON encoding before hitting the
// wire.
func encodable(body any) bool {
	switch body.(type) {
	case nil, []byte, string, io.Reader:
		return false
	}
	return true
}

func jsonContent(headers request.Pairs) bool {
	return strings.Contains(headers.Get("Content-Type"), "json")
}
