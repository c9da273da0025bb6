package client

import (
	"reflect"

	"github.com/kbukum/relay/pipeline"
	"github.com/kbukum/relay/request"
)

// Option adjusts a descriptor during construction. Options never mutate a
// descriptor after it is handed to the performer.
type Option func(*request.Descriptor)

// WithQuery appends a query parameter. Repeated calls preserve order and
// duplicates.
func WithQuery(name, value string) Option {
	return func(d *request.Descriptor) {
		d.Query = append(d.Query, request.Pair{Name: name, Value: value})
	}
}

// WithHeader appends a request header. Repeated calls preserve order and
// duplicates.
func WithHeader(name, value string) Option {
	return func(d *request.Descriptor) {
		d.Headers = append(d.Headers, request.Pair{Name: name, Value: value})
	}
}

// WithOpts sets the opaque per-call options value passed through to
// middleware unchanged.
func WithOpts(v any) Option {
	return func(d *request.Descriptor) {
		d.Opts = v
	}
}

// noBody marks the absent body slot in buildArgs for simple verbs.
var noBody = &struct{}{}

// buildArgs assembles the positional argument list for an entry point
// from the typed helper parameters.
func buildArgs(cl *pipeline.Client, url string, body any, opts []Option) []any {
	args := make([]any, 0, 4)
	if cl != nil {
		args = append(args, cl)
	}
	args = append(args, url)
	if body != noBody {
		args = append(args, body)
	}
	if len(opts) > 0 {
		args = append(args, opts)
	}
	return args
}

// normalize maps one of the verb's legal argument shapes onto a canonical
// descriptor plus an optional composed client. Shapes are recognized
// positionally: an optional leading *pipeline.Client, the url string, the
// body for body-bearing verbs, and an optional trailing options value —
// either a request.Pairs merged into the query, or a []Option applied to
// the descriptor.
func normalize(m request.Method, args []any) (*pipeline.Client, *request.Descriptor, error) {
	i := 0
	var cl *pipeline.Client

	if len(args) > 0 {
		switch first := args[0].(type) {
		case *pipeline.Client:
			cl = first
			i++
		case string:
			// url in the client slot: no client supplied
		default:
			if reflect.ValueOf(args[0]).Kind() == reflect.Func {
				return nil, nil, pipeline.NewDeprecatedClientFuncError(string(m))
			}
		}
	}

	if i >= len(args) {
		return nil, nil, invalidShape(m, "missing url")
	}
	url, ok := args[i].(string)
	if !ok {
		return nil, nil, invalidShape(m, "url must be a string")
	}
	i++

	d := &request.Descriptor{Method: m, URL: url}

	if m.HasBody() {
		if i >= len(args) {
			return nil, nil, invalidShape(m, "missing body")
		}
		d.Body = args[i]
		i++
	}

	if i < len(args) {
		switch opts := args[i].(type) {
		case request.Pairs:
			for _, p := range opts {
				d.Query = append(d.Query, p)
			}
		case []request.Pair:
			for _, p := range opts {
				d.Query = append(d.Query, p)
			}
		case []Option:
			for _, opt := range opts {
				opt(d)
			}
		default:
			return nil, nil, invalidShape(m, "options must be an ordered pair sequence")
		}
		i++
	}

	if i != len(args) {
		return nil, nil, invalidShape(m, "too many arguments")
	}
	return cl, d, nil
}

// invalidShape builds the diagnostic for arguments matching none of the
// verb's legal shapes.
func invalidShape(m request.Method, why string) *pipeline.Error {
	return &pipeline.Error{
		Code:    pipeline.ErrCodeInvalidCallShape,
		Message: string(m) + ": " + why,
	}
}
