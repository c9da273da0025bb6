package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kbukum/relay/request"
	"github.com/kbukum/relay/unit"
)

// Logging logs one line per request: method, url, status and duration on
// success, or the error. Options: a zerolog.Logger, *zerolog.Logger, or
// LoggingOptions.
type Logging struct{}

// LoggingOptions configures the Logging unit.
type LoggingOptions struct {
	// Logger receives the per-request events.
	Logger zerolog.Logger
}

// Call implements unit.Middleware.
func (Logging) Call(ctx context.Context, env *request.Env, next unit.Next, opts any) (*request.Env, error) {
	log, err := loggerFrom(opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := next(ctx, env)
	elapsed := time.Since(start)

	evt := log.Info()
	if err != nil {
		evt = log.Error().Err(err)
	}
	evt = evt.
		Str("method", env.Request.Method.HTTP()).
		Str("url", env.Request.URL).
		Dur("duration", elapsed)
	if err == nil && out != nil && out.Response != nil {
		evt = evt.Int("status", out.Response.StatusCode)
	}
	evt.Msg("request")

	return out, err
}

func loggerFrom(opts any) (zerolog.Logger, error) {
	switch v := opts.(type) {
	case nil:
		return zerolog.Nop(), nil
	case zerolog.Logger:
		return v, nil
	case *zerolog.Logger:
		return *v, nil
	case LoggingOptions:
		return v.Logger, nil
	case *LoggingOptions:
		return v.Logger, nil
	default:
		return zerolog.Nop(), fmt.Errorf("middleware: logging options must be a zerolog.Logger or LoggingOptions, got %T", opts)
	}
}
