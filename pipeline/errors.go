package pipeline

import (
	"errors"
	"fmt"
)

// ErrorCode is a machine-readable classification of a pipeline error.
type ErrorCode string

const (
	// ErrCodeUnresolvedReference indicates a declared middleware or adapter
	// name with no backing unit in the registry.
	ErrCodeUnresolvedReference ErrorCode = "UNRESOLVED_REFERENCE"
	// ErrCodeDeprecatedHeaderShape indicates header options supplied as an
	// associative structure instead of an ordered pair sequence.
	ErrCodeDeprecatedHeaderShape ErrorCode = "DEPRECATED_HEADER_SHAPE"
	// ErrCodeDeprecatedClientFunc indicates a bare callable passed where a
	// compiled Client value was required.
	ErrCodeDeprecatedClientFunc ErrorCode = "DEPRECATED_CLIENT_FUNC"
	// ErrCodeDuplicateAdapter indicates more than one adapter declared for
	// one client definition.
	ErrCodeDuplicateAdapter ErrorCode = "DUPLICATE_ADAPTER"
	// ErrCodeNotCompiled indicates a read of the compiled pipeline before
	// Compile was called.
	ErrCodeNotCompiled ErrorCode = "NOT_COMPILED"
	// ErrCodeInvalidCallShape indicates entry-point arguments that match
	// none of the verb's legal shapes.
	ErrCodeInvalidCallShape ErrorCode = "INVALID_CALL_SHAPE"
	// ErrCodeVerbNotConfigured indicates a call through a verb excluded
	// from the configured surface.
	ErrCodeVerbNotConfigured ErrorCode = "VERB_NOT_CONFIGURED"

	// ErrCodeInlineOptionsIgnored is a non-fatal diagnostic: options
	// supplied alongside an inline callable are never consulted.
	ErrCodeInlineOptionsIgnored ErrorCode = "INLINE_OPTIONS_IGNORED"
)

// Error is a structured pipeline error. Compile-time errors always carry
// the offending declaration's site and kind so the fix location is
// unambiguous.
type Error struct {
	// Code classifies the error.
	Code ErrorCode
	// Kind is the declaration kind (middleware or adapter), when known.
	Kind Kind
	// Name is the declared unit name, when the target was a named reference.
	Name string
	// Site is the declaration site, when known.
	Site Site
	// Message describes the error.
	Message string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("pipeline: %s: %s", e.Code, e.Message)
	if e.Site != (Site{}) {
		msg += " (declared at " + e.Site.String() + ")"
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewUnresolvedReferenceError creates an error for a named reference with
// no backing unit.
func NewUnresolvedReferenceError(kind Kind, name string, site Site) *Error {
	return &Error{
		Code:    ErrCodeUnresolvedReference,
		Kind:    kind,
		Name:    name,
		Site:    site,
		Message: fmt.Sprintf("%s %q does not resolve to a registered unit", kind, name),
	}
}

// NewDeprecatedHeaderShapeError creates an error for map-shaped header
// options.
func NewDeprecatedHeaderShapeError(kind Kind, name string, site Site) *Error {
	return &Error{
		Code:    ErrCodeDeprecatedHeaderShape,
		Kind:    kind,
		Name:    name,
		Site:    site,
		Message: fmt.Sprintf("unit %q takes headers as an ordered pair sequence, not a map; header order and duplicate keys are significant", name),
	}
}

// NewDeprecatedClientFuncError creates an error for a bare callable passed
// where a compiled Client value was required.
func NewDeprecatedClientFuncError(verb string) *Error {
	return &Error{
		Code:    ErrCodeDeprecatedClientFunc,
		Message: fmt.Sprintf("%s: a bare function is not a client; compose one with pipeline.Compose and pass the resulting *Client", verb),
	}
}

// NewDuplicateAdapterError creates an error for a second adapter
// declaration in one client definition.
func NewDuplicateAdapterError(name string, site Site, first Site) *Error {
	return &Error{
		Code:    ErrCodeDuplicateAdapter,
		Kind:    KindAdapter,
		Name:    name,
		Site:    site,
		Message: fmt.Sprintf("adapter %q re-declared; first declared at %s", name, first.String()),
	}
}

// ErrNotCompiled is returned when the compiled pipeline is read before
// Compile was called.
var ErrNotCompiled = &Error{
	Code:    ErrCodeNotCompiled,
	Message: "pipeline has not been compiled yet; call Compile first",
}

// IsUnresolvedReference checks if an error is an unresolved reference error.
func IsUnresolvedReference(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeUnresolvedReference
}

// IsDeprecatedHeaderShape checks if an error is a deprecated header shape error.
func IsDeprecatedHeaderShape(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeDeprecatedHeaderShape
}

// IsDeprecatedClientFunc checks if an error is a deprecated client function error.
func IsDeprecatedClientFunc(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeDeprecatedClientFunc
}

// IsDuplicateAdapter checks if an error is a duplicate adapter error.
func IsDuplicateAdapter(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeDuplicateAdapter
}

// IsNotCompiled checks if an error is a not-compiled phase error.
func IsNotCompiled(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeNotCompiled
}

// IsInvalidCallShape checks if an error is an invalid call shape error.
func IsInvalidCallShape(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeInvalidCallShape
}

// IsVerbNotConfigured checks if an error is a verb-not-configured error.
func IsVerbNotConfigured(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeVerbNotConfigured
}
