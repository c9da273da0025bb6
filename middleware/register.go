package middleware

import "github.com/kbukum/relay/unit"

// Canonical unit names for the built-in middleware.
const (
	NameBaseURL   = "base_url"
	NameHeaders   = "headers"
	NameQuery     = "query"
	NameJSON      = "json"
	NameRequestID = "request_id"
	NameLogging   = "logging"
	NameMetrics   = "metrics"
	NameTracing   = "tracing"
	NameAuth      = "auth"
)

// Register installs every built-in unit into the registry under its
// canonical name.
func Register(reg *unit.Registry) {
	reg.Register(NameBaseURL, BaseURL{})
	reg.Register(NameHeaders, Headers{}, unit.WithHeaderOptions())
	reg.Register(NameQuery, Query{})
	reg.Register(NameJSON, JSON{})
	reg.Register(NameRequestID, RequestID{})
	reg.Register(NameLogging, Logging{})
	reg.Register(NameMetrics, Metrics{})
	reg.Register(NameTracing, Tracing{})
	reg.Register(NameAuth, Auth{})
}
