// Package middleware ships the built-in named units: base URL resolution,
// ordered header and query injection, JSON body handling, request IDs,
// structured logging, OpenTelemetry metrics and tracing, and request
// authentication.
//
// Units are plain values; nothing registers itself. Call Register to
// install the full set into a unit.Registry under their canonical names,
// or register individual units under names of your own.
package middleware
