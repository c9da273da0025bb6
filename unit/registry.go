package unit

import (
	"sort"
	"sync"
)

// RegisterOption configures a unit registration.
type RegisterOption func(*entry)

// WithHeaderOptions marks a unit whose options value is a header
// collection. The validator uses this to reject associative (map-shaped)
// header options in favor of ordered pair sequences.
func WithHeaderOptions() RegisterOption {
	return func(e *entry) {
		e.headerBearing = true
	}
}

type entry struct {
	middleware    Middleware
	adapter       Adapter
	headerBearing bool
}

// Registry maps unit names to concrete middleware and adapter
// implementations. All methods are safe for concurrent use, though
// registration normally happens once during process setup.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register registers a named middleware unit. A later registration with
// the same name replaces the earlier one.
func (r *Registry) Register(name string, m Middleware, opts ...RegisterOption) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := entry{middleware: m}
	for _, opt := range opts {
		opt(&e)
	}
	r.entries[name] = e
}

// RegisterAdapter registers a named adapter unit.
func (r *Registry) RegisterAdapter(name string, a Adapter, opts ...RegisterOption) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := entry{adapter: a}
	for _, opt := range opts {
		opt(&e)
	}
	r.entries[name] = e
}

// Resolve returns the middleware unit registered under name.
func (r *Registry) Resolve(name string) (Middleware, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok || e.middleware == nil {
		return nil, false
	}
	return e.middleware, true
}

// ResolveAdapter returns the adapter unit registered under name.
func (r *Registry) ResolveAdapter(name string) (Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok || e.adapter == nil {
		return nil, false
	}
	return e.adapter, true
}

// HeaderBearing reports whether the named unit was registered as taking a
// header collection for its options.
func (r *Registry) HeaderBearing(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[name].headerBearing
}

// List returns the sorted names of all registered units.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry. Built-in units register here
// through their package Register functions.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}
