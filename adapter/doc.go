// Package adapter ships the default transport adapter, registered under
// the name "httpc". It is the terminal pipeline step: it turns the
// canonical request descriptor into an *http.Request, dispatches it over
// net/http, and produces the canonical response.
//
// Ordered query and header pair sequences are written to the wire in
// declared order, duplicates included. The query string is assembled by
// hand because url.Values is a map and would lose both.
package adapter
