package pipeline

// Store is the append-only, per-client-definition accumulator of
// declarations. It preserves declaration order and performs no validation;
// classification is the validator's job, which keeps the two independently
// testable.
//
// A Store is mutable only during the synchronous declaration phase of one
// client definition and must not be touched after compilation.
type Store struct {
	middleware []Declaration
	adapters   []Declaration
}

// Record appends a declaration under the given kind. Adapter declarations
// are accumulated too: the single-adapter invariant is enforced at compile
// time so the re-declaration can be reported against both sites.
func (s *Store) Record(kind Kind, d Declaration) {
	d.Site.Kind = kind
	switch kind {
	case KindAdapter:
		s.adapters = append(s.adapters, d)
	default:
		s.middleware = append(s.middleware, d)
	}
}

// Middleware returns the accumulated middleware declarations in declared
// order.
func (s *Store) Middleware() []Declaration {
	return s.middleware
}

// Adapters returns the accumulated adapter declarations in declared order.
// A compliant definition has at most one.
func (s *Store) Adapters() []Declaration {
	return s.adapters
}

// Len returns the total number of recorded declarations.
func (s *Store) Len() int {
	return len(s.middleware) + len(s.adapters)
}
