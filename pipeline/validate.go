package pipeline

import (
	"reflect"

	"github.com/kbukum/relay/unit"
)

// shape is the closed set of accepted declaration shapes.
type shape int

const (
	// shapeUnitWithOptions is a named unit reference with options present.
	shapeUnitWithOptions shape = iota
	// shapeUnitBare is a named unit reference with options absent.
	shapeUnitBare
	// shapeInline is an inline callable; options are ignored by design.
	shapeInline
)

// classified is a validated declaration: its recognized shape plus the
// concrete unit resolved from the registry for named references.
type classified struct {
	shape      shape
	decl       Declaration
	middleware unit.Middleware
	adapter    unit.Adapter
}

// Diagnostic is a non-fatal validation finding surfaced to the caller.
type Diagnostic struct {
	// Code classifies the diagnostic.
	Code ErrorCode
	// Name is the unit name, when the target was a named reference.
	Name string
	// Site is the declaration site.
	Site Site
	// Message describes the finding.
	Message string
}

// classify validates one raw declaration against the registry, in priority
// order of shape recognition: named reference with options, named
// reference bare, inline callable, then failure for anything unresolvable.
// The returned diagnostic, if any, is non-fatal.
func classify(reg *unit.Registry, kind Kind, d Declaration) (classified, *Diagnostic, error) {
	if d.inline() {
		if kind == KindAdapter && d.Terminal == nil {
			return classified{}, nil, &Error{
				Code:    ErrCodeInvalidCallShape,
				Kind:    kind,
				Site:    d.Site,
				Message: "inline adapter must be a terminal callable, not a middleware callable",
			}
		}
		if kind == KindMiddleware && d.Fn == nil {
			return classified{}, nil, &Error{
				Code:    ErrCodeInvalidCallShape,
				Kind:    kind,
				Site:    d.Site,
				Message: "inline middleware must be a middleware callable, not a terminal callable",
			}
		}
		c := classified{shape: shapeInline, decl: d}
		if d.Options == nil {
			return c, nil, nil
		}
		// Options can never reach an inline callable. Not silently
		// dropped: the caller gets a diagnostic naming the site.
		return c, &Diagnostic{
			Code:    ErrCodeInlineOptionsIgnored,
			Site:    d.Site,
			Message: "options supplied alongside an inline callable are ignored",
		}, nil
	}

	if d.Name == "" {
		return classified{}, nil, NewUnresolvedReferenceError(kind, d.Name, d.Site)
	}

	c := classified{decl: d}
	switch kind {
	case KindAdapter:
		a, ok := reg.ResolveAdapter(d.Name)
		if !ok {
			return classified{}, nil, NewUnresolvedReferenceError(kind, d.Name, d.Site)
		}
		c.adapter = a
	default:
		m, ok := reg.Resolve(d.Name)
		if !ok {
			return classified{}, nil, NewUnresolvedReferenceError(kind, d.Name, d.Site)
		}
		c.middleware = m
	}

	if d.Options == nil {
		c.shape = shapeUnitBare
		return c, nil, nil
	}
	if reg.HeaderBearing(d.Name) && isAssociative(d.Options) {
		return classified{}, nil, NewDeprecatedHeaderShapeError(kind, d.Name, d.Site)
	}
	c.shape = shapeUnitWithOptions
	return c, nil, nil
}

// isAssociative reports whether v is a keyed structure (a Go map). Maps
// cannot represent header order or duplicate keys, both of which are
// significant.
func isAssociative(v any) bool {
	return reflect.ValueOf(v).Kind() == reflect.Map
}
