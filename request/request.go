package request

import (
	"net/http"
	"strings"
)

// Method is an HTTP verb.
type Method string

const (
	MethodGet     Method = "get"
	MethodHead    Method = "head"
	MethodOptions Method = "options"
	MethodTrace   Method = "trace"
	MethodDelete  Method = "delete"
	MethodPost    Method = "post"
	MethodPut     Method = "put"
	MethodPatch   Method = "patch"
)

// HTTP returns the wire form of the method (upper-case).
func (m Method) HTTP() string {
	return strings.ToUpper(string(m))
}

// HasBody reports whether the verb carries a request body in its call shapes.
func (m Method) HasBody() bool {
	switch m {
	case MethodPost, MethodPut, MethodPatch:
		return true
	}
	return false
}

// Pair is a single name/value entry in an ordered sequence.
type Pair struct {
	// Name is the entry key. Duplicates are allowed and preserved.
	Name string
	// Value is the entry value.
	Value string
}

// Pairs is an ordered sequence of name/value pairs. Order and duplicate
// names are preserved end to end.
type Pairs []Pair

// Get returns the first value for name, or "" if absent.
func (p Pairs) Get(name string) string {
	for _, kv := range p {
		if kv.Name == name {
			return kv.Value
		}
	}
	return ""
}

// Values returns all values for name, in order.
func (p Pairs) Values(name string) []string {
	var out []string
	for _, kv := range p {
		if kv.Name == name {
			out = append(out, kv.Value)
		}
	}
	return out
}

// Append returns a new sequence with the given pair appended. The receiver
// is not modified.
func (p Pairs) Append(name, value string) Pairs {
	out := make(Pairs, len(p), len(p)+1)
	copy(out, p)
	return append(out, Pair{Name: name, Value: value})
}

// Descriptor is the canonical, normalized representation of one API call.
// It is built fresh per call by the method surface and never mutated after
// construction; middleware that need to change it work on a clone.
type Descriptor struct {
	// Method is the HTTP verb.
	Method Method
	// URL is the request target. May be a path resolved against a base URL
	// by middleware, or a full URL.
	URL string
	// Query are URL query parameters, in order. Nil when absent.
	Query Pairs
	// Headers are request headers, in order. Nil when absent.
	Headers Pairs
	// Body is the opaque request body value. Nil when absent.
	Body any
	// Opts are opaque per-call options passed through to middleware
	// unchanged. Nil when absent.
	Opts any
}

// Clone returns a copy of the descriptor with its pair sequences copied.
// Body and Opts are shared, not deep-copied.
func (d *Descriptor) Clone() *Descriptor {
	out := *d
	if d.Query != nil {
		out.Query = make(Pairs, len(d.Query))
		copy(out.Query, d.Query)
	}
	if d.Headers != nil {
		out.Headers = make(Pairs, len(d.Headers))
		copy(out.Headers, d.Headers)
	}
	return &out
}

// Response is the result of a dispatched request.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers, in order.
	Headers Pairs
	// Body is the raw response body.
	Body []byte
	// Decoded holds the decoded body when a decoding middleware ran.
	Decoded any
}

// IsSuccess reports whether the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError reports whether the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// Env is the value threaded through a middleware chain: the outbound
// descriptor on the way in, plus the response once the adapter has run.
type Env struct {
	// Request is the descriptor for the call. Middleware replace it with a
	// clone rather than mutating it in place.
	Request *Descriptor
	// Response is set by the adapter (or a short-circuiting middleware).
	Response *Response
}

// WithRequest returns a copy of the env carrying the given descriptor.
func (e *Env) WithRequest(d *Descriptor) *Env {
	out := *e
	out.Request = d
	return &out
}

// WithResponse returns a copy of the env carrying the given response.
func (e *Env) WithResponse(r *Response) *Env {
	out := *e
	out.Response = r
	return &out
}

// FlattenHeader converts an http.Header into an ordered pair sequence.
// Map iteration order is undefined, so entries are grouped per key with
// all of that key's values adjacent and in their original order.
func FlattenHeader(h http.Header) Pairs {
	out := make(Pairs, 0, len(h))
	for name, values := range h {
		for _, v := range values {
			out = append(out, Pair{Name: name, Value: v})
		}
	}
	return out
}
