package pipeline

import (
	"github.com/kbukum/relay/unit"
)

// Client is a runtime value composed of two ordered step lists layered
// around a compiled pipeline: pre steps run before the pipeline's own
// middleware, post steps after. It lets a call site wrap extra middleware
// around a statically compiled pipeline without re-running the compiler.
//
// A Client is immutable once composed and safe for concurrent use.
type Client struct {
	pre  []Step
	post []Step
}

// Pre returns the compiled pre steps in declared order. The returned
// slice is a copy.
func (c *Client) Pre() []Step {
	out := make([]Step, len(c.pre))
	copy(out, c.pre)
	return out
}

// Post returns the compiled post steps in declared order. The returned
// slice is a copy.
func (c *Client) Post() []Step {
	out := make([]Step, len(c.post))
	copy(out, c.post)
	return out
}

// ComposeOption configures a Compose call.
type ComposeOption func(*composeConfig)

type composeConfig struct {
	registry *unit.Registry
}

// WithComposeRegistry sets the registry used to resolve named references
// during composition. Defaults to unit.Default().
func WithComposeRegistry(reg *unit.Registry) ComposeOption {
	return func(c *composeConfig) {
		c.registry = reg
	}
}

// Compose validates and compiles two raw declaration lists into one
// Client. It reuses the validator and step compiler, since composition-
// time declarations are shaped exactly like build-time middleware.
//
// Composition never reorders: pre and post each keep their declared
// order, and neither list leaks into the other. Nesting one composed
// client inside another gives deterministic onion layering matching the
// declared nesting.
func Compose(pre, post []Declaration, opts ...ComposeOption) (*Client, error) {
	cfg := composeConfig{registry: unit.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	preSteps, _, err := compileSteps(cfg.registry, KindMiddleware, pre)
	if err != nil {
		return nil, err
	}
	postSteps, _, err := compileSteps(cfg.registry, KindMiddleware, post)
	if err != nil {
		return nil, err
	}
	return &Client{pre: preSteps, post: postSteps}, nil
}
