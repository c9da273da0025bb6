package config

import (
	"github.com/rs/zerolog"

	"github.com/kbukum/relay/logger"
	"github.com/kbukum/relay/pipeline"
	"github.com/kbukum/relay/unit"
)

// BuildOption configures Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	registry *unit.Registry
	log      *zerolog.Logger
}

// WithRegistry sets the registry used to resolve unit names. Defaults to
// unit.Default().
func WithRegistry(reg *unit.Registry) BuildOption {
	return func(c *buildConfig) {
		c.registry = reg
	}
}

// WithLogger sets the builder's diagnostic logger. Defaults to a logger
// built from the definition's logging section.
func WithLogger(log zerolog.Logger) BuildOption {
	return func(c *buildConfig) {
		c.log = &log
	}
}

// Build turns a definition into a pipeline builder with every declared
// unit recorded in definition order. The caller compiles it.
func Build(def *Definition, opts ...BuildOption) *pipeline.Builder {
	cfg := buildConfig{registry: unit.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	log := logger.New(def.Logging)
	if cfg.log != nil {
		log = *cfg.log
	}

	b := pipeline.NewBuilder(
		pipeline.WithRegistry(cfg.registry),
		pipeline.WithLogger(log),
		pipeline.WithScope(def.Name),
	)
	for _, m := range def.Middleware {
		b.Record(pipeline.KindMiddleware, pipeline.Declaration{
			Name:    m.Name,
			Options: m.Options,
			Site:    pipeline.Site{Scope: def.Name},
		})
	}
	if def.Adapter != nil {
		b.Record(pipeline.KindAdapter, pipeline.Declaration{
			Name:    def.Adapter.Name,
			Options: def.Adapter.Options,
			Site:    pipeline.Site{Scope: def.Name},
		})
	}
	return b
}
