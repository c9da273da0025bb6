package pipeline

import "github.com/kbukum/relay/unit"

// StepKind tags the variant of an executable step.
type StepKind int

const (
	// StepCallUnit invokes a resolved named unit with its declared options.
	StepCallUnit StepKind = iota
	// StepCallFunc invokes an inline callable directly. Options are ignored.
	StepCallFunc
)

// String returns the step kind name.
func (k StepKind) String() string {
	switch k {
	case StepCallUnit:
		return "call_unit"
	case StepCallFunc:
		return "call_func"
	default:
		return "unknown"
	}
}

// Step is one canonical, compiled middleware step. It is the only
// representation the execution engine consumes, and it is immutable once
// produced: the target was resolved at compile time and is never looked up
// again.
type Step struct {
	// Kind is the step variant.
	Kind StepKind
	// Name is the unit name (StepCallUnit only).
	Name string
	// Middleware is the resolved unit (StepCallUnit only).
	Middleware unit.Middleware
	// Fn is the inline callable (StepCallFunc only).
	Fn unit.Func
	// Options is the opaque declared options value (StepCallUnit only).
	Options any
}

// AdapterStep is the canonical, compiled terminal step. An absent adapter
// declaration compiles to an explicit default-adapter step, so consumers
// never special-case absence.
type AdapterStep struct {
	// Kind is the step variant.
	Kind StepKind
	// Name is the adapter unit name (StepCallUnit only).
	Name string
	// Adapter is the resolved adapter unit (StepCallUnit only).
	Adapter unit.Adapter
	// Fn is the inline terminal callable (StepCallFunc only).
	Fn unit.TerminalFunc
	// Options is the opaque declared options value (StepCallUnit only).
	Options any
}

// middlewareStep converts a classified middleware declaration into its
// canonical step.
func (c classified) middlewareStep() Step {
	if c.shape == shapeInline {
		return Step{Kind: StepCallFunc, Fn: c.decl.Fn}
	}
	return Step{
		Kind:       StepCallUnit,
		Name:       c.decl.Name,
		Middleware: c.middleware,
		Options:    c.decl.Options,
	}
}

// adapterStep converts a classified adapter declaration into its canonical
// terminal step.
func (c classified) adapterStep() AdapterStep {
	if c.shape == shapeInline {
		return AdapterStep{Kind: StepCallFunc, Fn: c.decl.Terminal}
	}
	return AdapterStep{
		Kind:    StepCallUnit,
		Name:    c.decl.Name,
		Adapter: c.adapter,
		Options: c.decl.Options,
	}
}
