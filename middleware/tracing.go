package middleware

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/relay/request"
	"github.com/kbukum/relay/unit"
)

// tracerName identifies this instrumentation scope.
const tracerName = "github.com/kbukum/relay/middleware"

// Tracing wraps each request in an OpenTelemetry span named after the
// verb. Options: TracingOptions or nil (global tracer provider).
type Tracing struct{}

// TracingOptions configures the Tracing unit.
type TracingOptions struct {
	// Tracer overrides the global tracer provider's tracer.
	Tracer trace.Tracer
}

// Call implements unit.Middleware.
func (Tracing) Call(ctx context.Context, env *request.Env, next unit.Next, opts any) (*request.Env, error) {
	tracer, err := tracerFrom(opts)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "HTTP "+env.Request.Method.HTTP(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", env.Request.Method.HTTP()),
			attribute.String("url.full", env.Request.URL),
		))
	defer span.End()

	out, callErr := next(ctx, env)
	if callErr != nil {
		span.RecordError(callErr)
		span.SetStatus(codes.Error, callErr.Error())
		return out, callErr
	}
	if out != nil && out.Response != nil {
		span.SetAttributes(attribute.Int("http.status_code", out.Response.StatusCode))
		if out.Response.IsError() {
			span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", out.Response.StatusCode))
		}
	}
	return out, nil
}

func tracerFrom(opts any) (trace.Tracer, error) {
	switch v := opts.(type) {
	case nil:
		return otel.Tracer(tracerName), nil
	case TracingOptions:
		if v.Tracer != nil {
			return v.Tracer, nil
		}
		return otel.Tracer(tracerName), nil
	case *TracingOptions:
		if v.Tracer != nil {
			return v.Tracer, nil
		}
		return otel.Tracer(tracerName), nil
	default:
		return nil, fmt.Errorf("middleware: tracing options must be TracingOptions, got %T", opts)
	}
}
