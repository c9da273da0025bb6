// Package relay assembles HTTP API clients from declarative middleware
// pipelines: named units are recorded on a builder, validated against a
// registry, compiled into an immutable pipeline, and exposed through a
// per-verb call surface.
//
// Most programs build their own surface:
//
//	reg := unit.Default()
//	middleware.Register(reg)
//	adapter.Register(reg)
//
//	compiled, err := pipeline.NewBuilder().
//		Use(middleware.NameBaseURL, "https://api.example.com").
//		Use(middleware.NameJSON, nil).
//		Compile()
//	if err != nil { ... }
//	api := client.New(engine.New(compiled), client.Config{})
//	resp, err := api.Get(ctx, "/users")
//
// For one-off calls the package-level verbs use a process-wide default
// surface over an empty pipeline and the default adapter.
package relay

import (
	"context"
	"sync"

	"github.com/kbukum/relay/adapter"
	"github.com/kbukum/relay/client"
	"github.com/kbukum/relay/engine"
	"github.com/kbukum/relay/middleware"
	"github.com/kbukum/relay/pipeline"
	"github.com/kbukum/relay/request"
	"github.com/kbukum/relay/unit"
)

var (
	defaultMu      sync.RWMutex
	defaultSurface *client.Surface
	defaultOnce    sync.Once
)

// Default returns the process-wide surface: an empty pipeline terminated
// by the default adapter, with every built-in unit registered. The first
// call builds it.
func Default() *client.Surface {
	defaultOnce.Do(func() {
		reg := unit.Default()
		middleware.Register(reg)
		adapter.Register(reg)

		compiled, err := pipeline.NewBuilder(pipeline.WithRegistry(reg)).Compile()
		if err != nil {
			// The empty pipeline only fails if the default adapter is
			// missing, which Register above rules out.
			panic(err)
		}
		s := client.New(engine.New(compiled), client.Config{})

		defaultMu.Lock()
		if defaultSurface == nil {
			defaultSurface = s
		}
		defaultMu.Unlock()
	})
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultSurface
}

// SetDefault replaces the process-wide surface. Call it during setup,
// before any package-level verb is used.
func SetDefault(s *client.Surface) {
	defaultMu.Lock()
	defaultSurface = s
	defaultMu.Unlock()
	defaultOnce.Do(func() {})
}

// Get issues a GET request through the default surface.
func Get(ctx context.Context, url string, opts ...client.Option) (*request.Response, error) {
	return Default().Get(ctx, url, opts...)
}

// Head issues a HEAD request through the default surface.
func Head(ctx context.Context, url string, opts ...client.Option) (*request.Response, error) {
	return Default().Head(ctx, url, opts...)
}

// Options issues an OPTIONS request through the default surface.
func Options(ctx context.Context, url string, opts ...client.Option) (*request.Response, error) {
	return Default().Options(ctx, url, opts...)
}

// Trace issues a TRACE request through the default surface.
func Trace(ctx context.Context, url string, opts ...client.Option) (*request.Response, error) {
	return Default().Trace(ctx, url, opts...)
}

// Delete issues a DELETE request through the default surface.
func Delete(ctx context.Context, url string, opts ...client.Option) (*request.Response, error) {
	return Default().Delete(ctx, url, opts...)
}

// Post issues a POST request through the default surface.
func Post(ctx context.Context, url string, body any, opts ...client.Option) (*request.Response, error) {
	return Default().Post(ctx, url, body, opts...)
}

// Put issues a PUT request through the default surface.
func Put(ctx context.Context, url string, body any, opts ...client.Option) (*request.Response, error) {
	return Default().Put(ctx, url, body, opts...)
}

// Patch issues a PATCH request through the default surface.
func Patch(ctx context.Context, url string, body any, opts ...client.Option) (*request.Response, error) {
	return Default().Patch(ctx, url, body, opts...)
}

// Request performs a pre-built descriptor through the default surface.
func Request(ctx context.Context, d *request.Descriptor) (*request.Response, error) {
	return Default().Request(ctx, d)
}
