package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kbukum/relay/client"
	"github.com/kbukum/relay/pipeline"
	"github.com/kbukum/relay/request"
	"github.com/kbukum/relay/unit"
)

// Engine executes requests against one compiled pipeline.
type Engine struct {
	compiled *pipeline.Compiled
	log      zerolog.Logger
}

// compile-time assertion
var _ client.Performer = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. Defaults to a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// New creates an Engine over a compiled pipeline.
func New(compiled *pipeline.Compiled, opts ...Option) *Engine {
	e := &Engine{compiled: compiled, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Perform runs the descriptor through the pipeline. When cl is non-nil,
// its pre steps run before the pipeline's middleware and its post steps
// after, preserving declared order within each list. The adapter step is
// always terminal.
func (e *Engine) Perform(ctx context.Context, cl *pipeline.Client, d *request.Descriptor) (*request.Response, error) {
	var steps []pipeline.Step
	if cl != nil {
		steps = append(steps, cl.Pre()...)
	}
	steps = append(steps, e.compiled.Middleware()...)
	if cl != nil {
		steps = append(steps, cl.Post()...)
	}

	env := &request.Env{Request: d}
	out, err := e.run(ctx, steps, env)
	if err != nil {
		return nil, err
	}
	if out == nil || out.Response == nil {
		return nil, fmt.Errorf("engine: pipeline completed without a response")
	}
	return out.Response, nil
}

// run builds the chain from the inside out so the first step is
// outermost, then invokes it.
func (e *Engine) run(ctx context.Context, steps []pipeline.Step, env *request.Env) (*request.Env, error) {
	next := e.terminal()
	for i := len(steps) - 1; i >= 0; i-- {
		next = stepNext(steps[i], next)
	}
	return next(ctx, env)
}

// terminal returns the chain end: the compiled adapter step.
func (e *Engine) terminal() unit.Next {
	step := e.compiled.Adapter()
	return func(ctx context.Context, env *request.Env) (*request.Env, error) {
		if step.Kind == pipeline.StepCallFunc {
			return step.Fn(ctx, env)
		}
		return step.Adapter.Call(ctx, env, step.Options)
	}
}

// stepNext wraps one middleware step around the rest of the chain.
func stepNext(step pipeline.Step, next unit.Next) unit.Next {
	return func(ctx context.Context, env *request.Env) (*request.Env, error) {
		if step.Kind == pipeline.StepCallFunc {
			return step.Fn(ctx, env, next)
		}
		return step.Middleware.Call(ctx, env, next, step.Options)
	}
}
