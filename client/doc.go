// Package client generates the per-verb call surface of a pipeline-backed
// HTTP API client.
//
// A Surface holds one entry point per configured verb. Every entry point
// does exactly one thing: normalize its argument shape into a canonical
// request.Descriptor and hand it to the generic perform operation,
// threading a composed *pipeline.Client when one was supplied. Simple
// verbs accept url, url+options, client+url and client+url+options;
// body-bearing verbs insert body after url in each shape. Options are
// always last and always an ordered pair sequence.
//
// The set of verbs is configuration: an inclusion list minus an exclusion
// list, defaulting to all known verbs. An excluded verb has no entry
// point.
//
// Passing a bare function where a *pipeline.Client is expected was once a
// supported calling convention. It now fails immediately at call time with
// a DEPRECATED_CLIENT_FUNC error instead of being executed as a client.
package client
