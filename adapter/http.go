package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kbukum/relay/request"
	"github.com/kbukum/relay/unit"
)

// Name is the canonical unit name of the default adapter.
const Name = "httpc"

// defaultTimeout bounds requests with no per-declaration timeout.
const defaultTimeout = 30 * time.Second

// HTTP dispatches requests over net/http. Options: HTTPOptions or nil.
type HTTP struct{}

// compile-time assertion
var _ unit.Adapter = HTTP{}

// HTTPOptions configures the HTTP adapter.
type HTTPOptions struct {
	// Timeout bounds the whole request. Defaults to 30s. Negative
	// disables the client timeout (context deadlines still apply).
	Timeout time.Duration
	// Transport overrides the round tripper.
	Transport http.RoundTripper
	// Client overrides the whole client; Timeout and Transport are then
	// ignored.
	Client *http.Client
}

// Register installs the adapter into the registry under its canonical
// name.
func Register(reg *unit.Registry) {
	reg.RegisterAdapter(Name, HTTP{})
}

// Call implements unit.Adapter.
func (HTTP) Call(ctx context.Context, env *request.Env, opts any) (*request.Env, error) {
	cfg, err := optionsFrom(opts)
	if err != nil {
		return nil, err
	}

	httpReq, err := buildRequest(ctx, env.Request)
	if err != nil {
		return nil, err
	}

	resp, err := clientFrom(cfg).Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("adapter: request canceled: %w", err)
		}
		return nil, fmt.Errorf("adapter: dispatch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("adapter: read response body: %w", err)
	}

	return env.WithResponse(&request.Response{
		StatusCode: resp.StatusCode,
		Headers:    request.FlattenHeader(resp.Header),
		Body:       body,
	}), nil
}

func optionsFrom(opts any) (HTTPOptions, error) {
	switch v := opts.(type) {
	case nil:
		return HTTPOptions{}, nil
	case HTTPOptions:
		return v, nil
	case *HTTPOptions:
		return *v, nil
	default:
		return HTTPOptions{}, fmt.Errorf("adapter: options must be HTTPOptions, got %T", opts)
	}
}

func clientFrom(cfg HTTPOptions) *http.Client {
	if cfg.Client != nil {
		return cfg.Client
	}
	timeout := cfg.Timeout
	switch {
	case timeout == 0:
		timeout = defaultTimeout
	case timeout < 0:
		timeout = 0
	}
	return &http.Client{
		Transport: cfg.Transport,
		Timeout:   timeout,
	}
}

// buildRequest constructs an *http.Request from the descriptor.
func buildRequest(ctx context.Context, d *request.Descriptor) (*http.Request, error) {
	body, contentType, err := encodeBody(d.Body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, d.Method.HTTP(), withQuery(d.URL, d.Query), body)
	if err != nil {
		return nil, fmt.Errorf("adapter: create request: %w", err)
	}

	for _, p := range d.Headers {
		httpReq.Header.Add(p.Name, p.Value)
	}
	if body != nil && contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	return httpReq, nil
}

// withQuery appends the ordered query pairs to the URL, preserving order
// and duplicate names.
func withQuery(rawURL string, query request.Pairs) string {
	if len(query) == 0 {
		return rawURL
	}
	var b strings.Builder
	b.WriteString(rawURL)
	if strings.Contains(rawURL, "?") {
		b.WriteByte('&')
	} else {
		b.WriteByte('?')
	}
	for i, p := range query {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// encodeBody converts a body value into an io.Reader and content type.
// Wire-ready values pass through; anything else is JSON-encoded.
func encodeBody(body any) (io.Reader, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "", nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, "", fmt.Errorf("adapter: encode body: %w", err)
		}
		return bytes.NewReader(raw), "application/json", nil
	}
}
