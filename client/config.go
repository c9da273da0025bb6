package client

import (
	"github.com/kbukum/relay/request"
)

// AllVerbs lists every verb the surface knows, in canonical order.
var AllVerbs = []request.Method{
	request.MethodGet,
	request.MethodHead,
	request.MethodOptions,
	request.MethodTrace,
	request.MethodDelete,
	request.MethodPost,
	request.MethodPut,
	request.MethodPatch,
}

// Config selects which verbs get entry points.
type Config struct {
	// Only is the inclusion list. Empty means all known verbs.
	Only []request.Method
	// Except is the exclusion list, applied after Only.
	Except []request.Method
}

// Verbs returns the configured verb set: the inclusion list minus the
// exclusion list, in canonical order.
func (c Config) Verbs() []request.Method {
	include := c.Only
	if len(include) == 0 {
		include = AllVerbs
	}
	excluded := make(map[request.Method]bool, len(c.Except))
	for _, m := range c.Except {
		excluded[m] = true
	}
	out := make([]request.Method, 0, len(include))
	for _, m := range include {
		if !excluded[m] {
			out = append(out, m)
		}
	}
	return out
}
