package client

import (
	"context"

	"github.com/kbukum/relay/pipeline"
	"github.com/kbukum/relay/request"
)

// Performer is the generic request operation: it walks a compiled
// pipeline for one descriptor, layering the composed client's pre and
// post steps when cl is non-nil. The default engine implements it.
type Performer interface {
	Perform(ctx context.Context, cl *pipeline.Client, d *request.Descriptor) (*request.Response, error)
}

// Entry is one generated per-verb entry point. Its argument shapes are,
// for simple verbs:
//
//	(url)
//	(url, options)
//	(client, url)
//	(client, url, options)
//
// and for body-bearing verbs the same four with body inserted after url.
// url is a string, client a *pipeline.Client, options a request.Pairs
// merged into the descriptor's query.
type Entry func(ctx context.Context, args ...any) (*request.Response, error)

// Surface is the generated call surface for one performer: one entry
// point per configured verb. A Surface holds no per-call state and is
// safe for concurrent use.
type Surface struct {
	performer Performer
	entries   map[request.Method]Entry
}

// New generates a Surface over the given performer. One entry point is
// built per verb in cfg.Verbs(); excluded verbs get none.
func New(p Performer, cfg Config) *Surface {
	s := &Surface{
		performer: p,
		entries:   make(map[request.Method]Entry),
	}
	for _, m := range cfg.Verbs() {
		s.entries[m] = s.entryFor(m)
	}
	return s
}

// entryFor builds the entry point for one verb. The verb is fixed; only
// the argument shape varies per call.
func (s *Surface) entryFor(m request.Method) Entry {
	return func(ctx context.Context, args ...any) (*request.Response, error) {
		cl, d, err := normalize(m, args)
		if err != nil {
			return nil, err
		}
		return s.performer.Perform(ctx, cl, d)
	}
}

// Entry returns the entry point for a verb, or false when the verb is not
// part of the configured surface.
func (s *Surface) Entry(m request.Method) (Entry, bool) {
	e, ok := s.entries[m]
	return e, ok
}

// Verbs returns the verbs this surface exposes, in canonical order.
func (s *Surface) Verbs() []request.Method {
	out := make([]request.Method, 0, len(s.entries))
	for _, m := range AllVerbs {
		if _, ok := s.entries[m]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Request performs a pre-built descriptor using the process-wide default
// client.
func (s *Surface) Request(ctx context.Context, d *request.Descriptor) (*request.Response, error) {
	return s.performer.Perform(ctx, nil, d)
}

// RequestWith performs a pre-built descriptor, layering the composed
// client's pre and post steps around the pipeline.
func (s *Surface) RequestWith(ctx context.Context, cl *pipeline.Client, d *request.Descriptor) (*request.Response, error) {
	return s.performer.Perform(ctx, cl, d)
}

// call dispatches through the verb's entry point, failing when the verb
// is not configured.
func (s *Surface) call(ctx context.Context, m request.Method, args ...any) (*request.Response, error) {
	e, ok := s.entries[m]
	if !ok {
		return nil, &pipeline.Error{
			Code:    pipeline.ErrCodeVerbNotConfigured,
			Message: string(m) + " is excluded from this client's surface",
		}
	}
	return e(ctx, args...)
}

// Get issues a GET request.
func (s *Surface) Get(ctx context.Context, url string, opts ...Option) (*request.Response, error) {
	return s.call(ctx, request.MethodGet, buildArgs(nil, url, noBody, opts)...)
}

// GetWith issues a GET request through a composed client.
func (s *Surface) GetWith(ctx context.Context, cl *pipeline.Client, url string, opts ...Option) (*request.Response, error) {
	return s.call(ctx, request.MethodGet, buildArgs(cl, url, noBody, opts)...)
}

// Head issues a HEAD request.
func (s *Surface) Head(ctx context.Context, url string, opts ...Option) (*request.Response, error) {
	return s.call(ctx, request.MethodHead, buildArgs(nil, url, noBody, opts)...)
}

// HeadWith issues a HEAD request through a composed client.
func (s *Surface) HeadWith(ctx context.Context, cl *pipeline.Client, url string, opts ...Option) (*request.Response, error) {
	return s.call(ctx, request.MethodHead, buildArgs(cl, url, noBody, opts)...)
}

// Options issues an OPTIONS request.
func (s *Surface) Options(ctx context.Context, url string, opts ...Option) (*request.Response, error) {
	return s.call(ctx, request.MethodOptions, buildArgs(nil, url, noBody, opts)...)
}

// OptionsWith issues an OPTIONS request through a composed client.
func (s *Surface) OptionsWith(ctx context.Context, cl *pipeline.Client, url string, opts ...Option) (*request.Response, error) {
	return s.call(ctx, request.MethodOptions, buildArgs(cl, url, noBody, opts)...)
}

// Trace issues a TRACE request.
func (s *Surface) Trace(ctx context.Context, url string, opts ...Option) (*request.Response, error) {
	return s.call(ctx, request.MethodTrace, buildArgs(nil, url, noBody, opts)...)
}

// TraceWith issues a TRACE request through a composed client.
func (s *Surface) TraceWith(ctx context.Context, cl *pipeline.Client, url string, opts ...Option) (*request.Response, error) {
	return s.call(ctx, request.MethodTrace, buildArgs(cl, url, noBody, opts)...)
}

// Delete issues a DELETE request.
func (s *Surface) Delete(ctx context.Context, url string, opts ...Option) (*request.Response, error) {
	return s.call(ctx, request.MethodDelete, buildArgs(nil, url, noBody, opts)...)
}

// DeleteWith issues a DELETE request through a composed client.
func (s *Surface) DeleteWith(ctx context.Context, cl *pipeline.Client, url string, opts ...Option) (*request.Response, error) {
	return s.call(ctx, request.MethodDelete, buildArgs(cl, url, noBody, opts)...)
}

// Post issues a POST request with a body.
func (s *Surface) Post(ctx context.Context, url string, body any, opts ...Option) (*request.Response, error) {
	return s.call(ctx, request.MethodPost, buildArgs(nil, url, body, opts)...)
}

// PostWith issues a POST request with a body through a composed client.
func (s *Surface) PostWith(ctx context.Context, cl *pipeline.Client, url string, body any, opts ...Option) (*request.Response, error) {
	return s.call(ctx, request.MethodPost, buildArgs(cl, url, body, opts)...)
}

// Put issues a PUT request with a body.
func (s *Surface) Put(ctx context.Context, url string, body any, opts ...Option) (*request.Response, error) {
	return s.call(ctx, request.MethodPut, buildArgs(nil, url, body, opts)...)
}

// PutWith issues a PUT request with a body through a composed client.
func (s *Surface) PutWith(ctx context.Context, cl *pipeline.Client, url string, body any, opts ...Option) (*request.Response, error) {
	return s.call(ctx, request.MethodPut, buildArgs(cl, url, body, opts)...)
}

// Patch issues a PATCH request with a body.
func (s *Surface) Patch(ctx context.Context, url string, body any, opts ...Option) (*request.Response, error) {
	return s.call(ctx, request.MethodPatch, buildArgs(nil, url, body, opts)...)
}

// PatchWith issues a PATCH request with a body through a composed client.
func (s *Surface) PatchWith(ctx context.Context, cl *pipeline.Client, url string, body any, opts ...Option) (*request.Response, error) {
	return s.call(ctx, request.MethodPatch, buildArgs(cl, url, body, opts)...)
}
