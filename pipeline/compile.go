package pipeline

import (
	"github.com/rs/zerolog"

	"github.com/kbukum/relay/unit"
)

// DefaultAdapterName is the process-wide default adapter unit. A client
// definition that declares no adapter compiles to an explicit step
// referencing it.
const DefaultAdapterName = "httpc"

// Builder collects middleware and adapter declarations for one client
// definition and compiles them into an immutable pipeline.
//
// A Builder has two phases: a synchronous, single-goroutine declaration
// phase (Use, UseFunc, Adapter, AdapterFunc, Record), finished by a single
// Compile call. Reads of the compiled pipeline before Compile fail with
// ErrNotCompiled. The Builder must not be mutated after compilation.
type Builder struct {
	registry       *unit.Registry
	log            zerolog.Logger
	scope          string
	defaultAdapter string
	store          Store
	diags          []Diagnostic
	compiled       *Compiled
	err            error
	done           bool
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithRegistry sets the unit registry used to resolve named references.
// Defaults to unit.Default().
func WithRegistry(reg *unit.Registry) BuilderOption {
	return func(b *Builder) {
		b.registry = reg
	}
}

// WithLogger sets the logger used for non-fatal diagnostics. Defaults to
// a no-op logger.
func WithLogger(log zerolog.Logger) BuilderOption {
	return func(b *Builder) {
		b.log = log
	}
}

// WithScope names the declaring scope, typically the client definition
// name. It appears in every diagnostic site.
func WithScope(scope string) BuilderOption {
	return func(b *Builder) {
		b.scope = scope
	}
}

// WithDefaultAdapter overrides the adapter unit used when no adapter is
// declared.
func WithDefaultAdapter(name string) BuilderOption {
	return func(b *Builder) {
		b.defaultAdapter = name
	}
}

// NewBuilder creates an empty Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		registry:       unit.Default(),
		log:            zerolog.Nop(),
		defaultAdapter: DefaultAdapterName,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Use declares a named middleware unit. Pass nil options for the bare
// shape.
func (b *Builder) Use(name string, options any) *Builder {
	b.store.Record(KindMiddleware, Declaration{
		Name:    name,
		Options: options,
		Site:    callerSite(1, b.scope, KindMiddleware),
	})
	return b
}

// UseFunc declares an inline middleware callable.
func (b *Builder) UseFunc(fn unit.Func) *Builder {
	b.store.Record(KindMiddleware, Declaration{
		Fn:   fn,
		Site: callerSite(1, b.scope, KindMiddleware),
	})
	return b
}

// Adapter declares the named adapter unit. Declaring a second adapter is a
// compile error.
func (b *Builder) Adapter(name string, options any) *Builder {
	b.store.Record(KindAdapter, Declaration{
		Name:    name,
		Options: options,
		Site:    callerSite(1, b.scope, KindAdapter),
	})
	return b
}

// AdapterFunc declares an inline terminal callable as the adapter.
func (b *Builder) AdapterFunc(fn unit.TerminalFunc) *Builder {
	b.store.Record(KindAdapter, Declaration{
		Terminal: fn,
		Site:     callerSite(1, b.scope, KindAdapter),
	})
	return b
}

// Record appends a raw declaration under the given kind. Declarations
// built with Ref and Fn carry their own sites.
func (b *Builder) Record(kind Kind, d Declaration) *Builder {
	if d.Site.Scope == "" {
		d.Site.Scope = b.scope
	}
	b.store.Record(kind, d)
	return b
}

// Compile validates the accumulated declarations in declaration order and
// produces the immutable compiled pipeline. The first invalid declaration
// aborts the whole definition. Compile is idempotent: repeated calls
// return the same result.
func (b *Builder) Compile() (*Compiled, error) {
	if b.done {
		return b.compiled, b.err
	}
	b.done = true

	adapters := b.store.Adapters()
	if len(adapters) > 1 {
		second := adapters[1]
		b.err = NewDuplicateAdapterError(second.Name, second.Site, adapters[0].Site)
		return nil, b.err
	}

	steps, diags, err := compileSteps(b.registry, KindMiddleware, b.store.Middleware())
	if err != nil {
		b.err = err
		return nil, err
	}
	for _, d := range diags {
		b.log.Warn().
			Str("scope", b.scope).
			Str("site", d.Site.String()).
			Msg(d.Message)
	}
	b.diags = diags

	var adapterDecl Declaration
	if len(adapters) == 1 {
		adapterDecl = adapters[0]
	} else {
		adapterDecl = Declaration{
			Name: b.defaultAdapter,
			Site: Site{Scope: b.scope, Kind: KindAdapter},
		}
	}
	c, diag, err := classify(b.registry, KindAdapter, adapterDecl)
	if err != nil {
		b.err = err
		return nil, err
	}
	if diag != nil {
		b.diags = append(b.diags, *diag)
		b.log.Warn().
			Str("scope", b.scope).
			Str("site", diag.Site.String()).
			Msg(diag.Message)
	}

	b.compiled = &Compiled{middleware: steps, adapter: c.adapterStep()}
	return b.compiled, nil
}

// Diagnostics returns the non-fatal findings from the last Compile call.
func (b *Builder) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(b.diags))
	copy(out, b.diags)
	return out
}

// Compiled returns the compiled pipeline, or ErrNotCompiled before
// Compile was called.
func (b *Builder) Compiled() (*Compiled, error) {
	if !b.done {
		return nil, ErrNotCompiled
	}
	return b.compiled, b.err
}

// compileSteps validates declarations in order and emits their canonical
// steps. The input order is the declared order; nothing here reorders.
func compileSteps(reg *unit.Registry, kind Kind, decls []Declaration) ([]Step, []Diagnostic, error) {
	steps := make([]Step, 0, len(decls))
	var diags []Diagnostic
	for _, d := range decls {
		c, diag, err := classify(reg, kind, d)
		if err != nil {
			return nil, nil, err
		}
		if diag != nil {
			diags = append(diags, *diag)
		}
		steps = append(steps, c.middlewareStep())
	}
	return steps, diags, nil
}

// Compiled is the canonical execution plan for one client definition:
// an ordered middleware step sequence plus one terminal adapter step.
// It never changes once produced, which makes it safe to read from any
// number of goroutines without locking.
type Compiled struct {
	middleware []Step
	adapter    AdapterStep
}

// Middleware returns the compiled middleware steps in declared order.
// The returned slice is a copy.
func (c *Compiled) Middleware() []Step {
	out := make([]Step, len(c.middleware))
	copy(out, c.middleware)
	return out
}

// Adapter returns the compiled terminal step.
func (c *Compiled) Adapter() AdapterStep {
	return c.adapter
}

// Len returns the number of middleware steps.
func (c *Compiled) Len() int {
	return len(c.middleware)
}
