package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/relay/request"
	"github.com/kbukum/relay/unit"
)

// captureNext records the env handed to it and returns a canned response.
func captureNext(captured **request.Env, resp *request.Response) unit.Next {
	return func(_ context.Context, env *request.Env) (*request.Env, error) {
		*captured = env
		if resp != nil {
			return env.WithResponse(resp), nil
		}
		return env, nil
	}
}

func newEnv(m request.Method, url string) *request.Env {
	return &request.Env{Request: &request.Descriptor{Method: m, URL: url}}
}

func TestBaseURL_PrefixesRelativeURLs(t *testing.T) {
	var got *request.Env
	env := newEnv(request.MethodGet, "/users")

	_, err := BaseURL{}.Call(context.Background(), env, captureNext(&got, nil), "https://api.example.com/v1/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Request.URL != "https://api.example.com/v1/users" {
		t.Errorf("url = %s", got.Request.URL)
	}
	if env.Request.URL != "/users" {
		t.Error("original descriptor must not be mutated")
	}
}

func TestBaseURL_LeavesAbsoluteURLs(t *testing.T) {
	var got *request.Env
	env := newEnv(request.MethodGet, "https://other.example.com/x")

	_, err := BaseURL{}.Call(context.Background(), env, captureNext(&got, nil), BaseURLOptions{URL: "https://api.example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Request.URL != "https://other.example.com/x" {
		t.Errorf("url = %s", got.Request.URL)
	}
}

func TestBaseURL_RejectsBadOptions(t *testing.T) {
	var got *request.Env
	if _, err := (BaseURL{}).Call(context.Background(), newEnv(request.MethodGet, "/x"), captureNext(&got, nil), 42); err == nil {
		t.Fatal("expected an options type error")
	}
}

func TestHeaders_DeclaredBeforePerCall(t *testing.T) {
	var got *request.Env
	env := newEnv(request.MethodGet, "/x")
	env.Request.Headers = request.Pairs{{Name: "X-Call", Value: "per-call"}}

	declared := request.Pairs{
		{Name: "Accept", Value: "application/json"},
		{Name: "Accept", Value: "text/plain"},
	}
	_, err := Headers{}.Call(context.Background(), env, captureNext(&got, nil), declared)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h := got.Request.Headers
	if len(h) != 3 || h[0].Value != "application/json" || h[1].Value != "text/plain" || h[2].Name != "X-Call" {
		t.Errorf("headers = %v", h)
	}
	if len(env.Request.Headers) != 1 {
		t.Error("original descriptor must not be mutated")
	}
}

func TestQuery_DeclaredBeforePerCall(t *testing.T) {
	var got *request.Env
	env := newEnv(request.MethodGet, "/x")
	env.Request.Query = request.Pairs{{Name: "page", Value: "2"}}

	_, err := Query{}.Call(context.Background(), env, captureNext(&got, nil), request.Pairs{{Name: "per_page", Value: "50"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := got.Request.Query
	if len(q) != 2 || q[0].Name != "per_page" || q[1].Name != "page" {
		t.Errorf("query = %v", q)
	}
}

func TestJSON_EncodesStructBodies(t *testing.T) {
	var got *request.Env
	env := newEnv(request.MethodPost, "/users")
	env.Request.Body = map[string]string{"name": "ada"}

	_, err := JSON{}.Call(context.Background(), env, captureNext(&got, nil), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, ok := got.Request.Body.([]byte)
	if !ok || string(raw) != `{"name":"ada"}` {
		t.Errorf("body = %#v", got.Request.Body)
	}
	if got.Request.Headers.Get("Content-Type") != "application/json" {
		t.Errorf("content type = %s", got.Request.Headers.Get("Content-Type"))
	}
}

func TestJSON_PassesWireReadyBodies(t *testing.T) {
	var got *request.Env
	env := newEnv(request.MethodPost, "/users")
	env.Request.Body = []byte(`raw`)

	if _, err := (JSON{}).Call(context.Background(), env, captureNext(&got, nil), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got.Request.Body.([]byte)) != "raw" {
		t.Errorf("body re-encoded: %#v", got.Request.Body)
	}
	if got.Request.Headers.Get("Content-Type") != "" {
		t.Error("no content type for opaque bodies")
	}
}

func TestJSON_DecodesJSONResponses(t *testing.T) {
	var got *request.Env
	resp := &request.Response{
		StatusCode: 200,
		Headers:    request.Pairs{{Name: "Content-Type", Value: "application/json; charset=utf-8"}},
		Body:       []byte(`{"id":7}`),
	}

	out, err := JSON{}.Call(context.Background(), newEnv(request.MethodGet, "/x"), captureNext(&got, resp), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, ok := out.Response.Decoded.(map[string]any)
	if !ok || decoded["id"] != float64(7) {
		t.Errorf("decoded = %#v", out.Response.Decoded)
	}
}

func TestJSON_SkipsNonJSONResponses(t *testing.T) {
	var got *request.Env
	resp := &request.Response{
		StatusCode: 200,
		Headers:    request.Pairs{{Name: "Content-Type", Value: "text/html"}},
		Body:       []byte(`<html>`),
	}

	out, err := JSON{}.Call(context.Background(), newEnv(request.MethodGet, "/x"), captureNext(&got, resp), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Response.Decoded != nil {
		t.Errorf("decoded = %#v", out.Response.Decoded)
	}
}

func TestJSON_EncodeOnlySkipsDecoding(t *testing.T) {
	var got *request.Env
	resp := &request.Response{
		StatusCode: 200,
		Headers:    request.Pairs{{Name: "Content-Type", Value: "application/json"}},
		Body:       []byte(`{"id":1}`),
	}

	out, err := JSON{}.Call(context.Background(), newEnv(request.MethodGet, "/x"), captureNext(&got, resp), JSONOptions{EncodeOnly: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Response.Decoded != nil {
		t.Error("EncodeOnly must skip decoding")
	}
}

func TestRequestID_SetsFreshID(t *testing.T) {
	var got *request.Env
	if _, err := (RequestID{}).Call(context.Background(), newEnv(request.MethodGet, "/x"), captureNext(&got, nil), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Request.Headers.Get(DefaultRequestIDHeader) == "" {
		t.Error("request id not set")
	}
}

func TestRequestID_KeepsExistingID(t *testing.T) {
	var got *request.Env
	env := newEnv(request.MethodGet, "/x")
	env.Request.Headers = request.Pairs{{Name: DefaultRequestIDHeader, Value: "caller-set"}}

	if _, err := (RequestID{}).Call(context.Background(), env, captureNext(&got, nil), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vals := got.Request.Headers.Values(DefaultRequestIDHeader)
	if len(vals) != 1 || vals[0] != "caller-set" {
		t.Errorf("ids = %v", vals)
	}
}

func TestRequestID_CustomHeader(t *testing.T) {
	var got *request.Env
	opts := RequestIDOptions{Header: "X-Correlation-ID"}
	if _, err := (RequestID{}).Call(context.Background(), newEnv(request.MethodGet, "/x"), captureNext(&got, nil), opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Request.Headers.Get("X-Correlation-ID") == "" {
		t.Error("custom header not set")
	}
}

func TestAuth_Bearer(t *testing.T) {
	var got *request.Env
	opts := AuthOptions{Type: AuthBearer, Token: "tok-123"}
	if _, err := (Auth{}).Call(context.Background(), newEnv(request.MethodGet, "/x"), captureNext(&got, nil), opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Request.Headers.Get("Authorization") != "Bearer tok-123" {
		t.Errorf("authorization = %s", got.Request.Headers.Get("Authorization"))
	}
}

func TestAuth_Basic(t *testing.T) {
	var got *request.Env
	opts := AuthOptions{Type: AuthBasic, Username: "u", Password: "p"}
	if _, err := (Auth{}).Call(context.Background(), newEnv(request.MethodGet, "/x"), captureNext(&got, nil), opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// base64("u:p")
	if got.Request.Headers.Get("Authorization") != "Basic dTpw" {
		t.Errorf("authorization = %s", got.Request.Headers.Get("Authorization"))
	}
}

func TestAuth_APIKey(t *testing.T) {
	var got *request.Env
	opts := AuthOptions{Type: AuthAPIKey, Key: "secret"}
	if _, err := (Auth{}).Call(context.Background(), newEnv(request.MethodGet, "/x"), captureNext(&got, nil), opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Request.Headers.Get("X-API-Key") != "secret" {
		t.Errorf("api key = %s", got.Request.Headers.Get("X-API-Key"))
	}
}

func TestAuth_JWTMintsVerifiableToken(t *testing.T) {
	var got *request.Env
	secret := []byte("signing-secret")
	opts := AuthOptions{Type: AuthJWT, Secret: secret, Issuer: "relay", Subject: "svc"}
	if _, err := (Auth{}).Call(context.Background(), newEnv(request.MethodGet, "/x"), captureNext(&got, nil), opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	auth := got.Request.Headers.Get("Authorization")
	if len(auth) < 8 || auth[:7] != "Bearer " {
		t.Fatalf("authorization = %s", auth)
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(auth[7:], claims, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["iss"] != "relay" || claims["sub"] != "svc" {
		t.Errorf("claims = %v", claims)
	}
	if _, ok := claims["exp"]; !ok {
		t.Error("token must expire")
	}
}

func TestAuth_NonePassesThrough(t *testing.T) {
	var got *request.Env
	env := newEnv(request.MethodGet, "/x")
	if _, err := (Auth{}).Call(context.Background(), env, captureNext(&got, nil), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != env {
		t.Error("AuthNone must not touch the env")
	}
}

func TestMiddleware_PropagateNextErrors(t *testing.T) {
	boom := errors.New("downstream")
	failing := func(context.Context, *request.Env) (*request.Env, error) {
		return nil, boom
	}
	_, err := Headers{}.Call(context.Background(), newEnv(request.MethodGet, "/x"), failing, request.Pairs{{Name: "A", Value: "1"}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected downstream error, got %v", err)
	}
}

func TestRegister_InstallsAllUnits(t *testing.T) {
	reg := unit.NewRegistry()
	Register(reg)

	names := []string{NameBaseURL, NameHeaders, NameQuery, NameJSON, NameRequestID, NameLogging, NameMetrics, NameTracing, NameAuth}
	for _, name := range names {
		if _, ok := reg.Resolve(name); !ok {
			t.Errorf("%s not registered", name)
		}
	}
	if !reg.HeaderBearing(NameHeaders) {
		t.Error("headers unit must be header-bearing")
	}
	if reg.HeaderBearing(NameQuery) {
		t.Error("query unit takes pairs but is not a header collection")
	}
}
