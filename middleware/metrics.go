package middleware

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/kbukum/relay/request"
	"github.com/kbukum/relay/unit"
)

// meterName identifies this instrumentation scope.
const meterName = "github.com/kbukum/relay/middleware"

// Metrics records a request counter and a duration histogram per call.
// Options: MetricsOptions or nil (global meter provider).
type Metrics struct{}

// MetricsOptions configures the Metrics unit.
type MetricsOptions struct {
	// Meter overrides the global meter provider's meter.
	Meter metric.Meter
}

// Call implements unit.Middleware.
func (Metrics) Call(ctx context.Context, env *request.Env, next unit.Next, opts any) (*request.Env, error) {
	meter, err := meterFrom(opts)
	if err != nil {
		return nil, err
	}
	// Meters return the same instrument for repeated registrations, so
	// per-call lookup is cheap.
	requests, err := meter.Int64Counter("relay.client.requests",
		metric.WithDescription("Completed client requests"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("relay.client.duration",
		metric.WithDescription("Request duration"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, callErr := next(ctx, env)
	elapsed := time.Since(start)

	attrs := []attribute.KeyValue{
		attribute.String("http.method", env.Request.Method.HTTP()),
	}
	if callErr != nil {
		attrs = append(attrs, attribute.Bool("error", true))
	} else if out != nil && out.Response != nil {
		attrs = append(attrs, attribute.Int("http.status_code", out.Response.StatusCode))
	}

	requests.Add(ctx, 1, metric.WithAttributes(attrs...))
	duration.Record(ctx, float64(elapsed)/float64(time.Millisecond), metric.WithAttributes(attrs...))

	return out, callErr
}

func meterFrom(opts any) (metric.Meter, error) {
	switch v := opts.(type) {
	case nil:
		return otel.Meter(meterName), nil
	case MetricsOptions:
		if v.Meter != nil {
			return v.Meter, nil
		}
		return otel.Meter(meterName), nil
	case *MetricsOptions:
		if v.Meter != nil {
			return v.Meter, nil
		}
		return otel.Meter(meterName), nil
	default:
		return nil, fmt.Errorf("middleware: metrics options must be MetricsOptions, got %T", opts)
	}
}
