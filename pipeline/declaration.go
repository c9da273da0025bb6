package pipeline

import (
	"fmt"
	"runtime"

	"github.com/kbukum/relay/unit"
)

// Kind tags a declaration as middleware or adapter.
type Kind string

const (
	// KindMiddleware marks an ordered middleware declaration.
	KindMiddleware Kind = "middleware"
	// KindAdapter marks the single terminal adapter declaration.
	KindAdapter Kind = "adapter"
)

// Site identifies where a declaration was made. Diagnostics carry it so
// the fix location is unambiguous.
type Site struct {
	// Scope is the declaring scope, typically the client definition name.
	Scope string
	// Kind is the declaration kind.
	Kind Kind
	// File and Line locate the declaring call.
	File string
	Line int
}

// String renders the site as "scope file:line".
func (s Site) String() string {
	if s.File == "" {
		return s.Scope
	}
	if s.Scope == "" {
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s %s:%d", s.Scope, s.File, s.Line)
}

// Declaration is one raw middleware or adapter declaration: a target
// (named unit reference or inline callable), an opaque options value, and
// the declaration site.
type Declaration struct {
	// Name is the named unit reference. Empty for inline callables.
	Name string
	// Fn is an inline middleware callable. Options are never passed to it.
	Fn unit.Func
	// Terminal is an inline adapter callable.
	Terminal unit.TerminalFunc
	// Options is the opaque options value, passed through unchanged. Nil
	// when absent.
	Options any
	// Site is where the declaration was made.
	Site Site
}

// inline reports whether the declaration's target is an inline callable.
func (d Declaration) inline() bool {
	return d.Fn != nil || d.Terminal != nil
}

// Ref declares a named unit reference with options. Pass nil options for
// the bare shape.
func Ref(name string, options any) Declaration {
	return Declaration{Name: name, Options: options, Site: callerSite(1, "", KindMiddleware)}
}

// Fn declares an inline middleware callable.
func Fn(fn unit.Func) Declaration {
	return Declaration{Fn: fn, Site: callerSite(1, "", KindMiddleware)}
}

// callerSite captures the declaration site skip+1 frames up.
func callerSite(skip int, scope string, kind Kind) Site {
	site := Site{Scope: scope, Kind: kind}
	if _, file, line, ok := runtime.Caller(skip + 1); ok {
		site.File = file
		site.Line = line
	}
	return site
}
