package relay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/relay/adapter"
	"github.com/kbukum/relay/client"
	"github.com/kbukum/relay/engine"
	"github.com/kbukum/relay/middleware"
	"github.com/kbukum/relay/pipeline"
	"github.com/kbukum/relay/request"
	"github.com/kbukum/relay/unit"
)

func TestDefault_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ping" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.WriteHeader(200)
		_, _ = w.Write([]byte("pong"))
	}))
	defer srv.Close()

	resp, err := Get(context.Background(), srv.URL+"/ping")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 || string(resp.Body) != "pong" {
		t.Errorf("resp = %d %s", resp.StatusCode, resp.Body)
	}
}

func TestDefault_IsSingleton(t *testing.T) {
	if Default() != Default() {
		t.Error("Default must return the same surface")
	}
}

func TestSetDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	reg := unit.NewRegistry()
	middleware.Register(reg)
	adapter.Register(reg)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Fixed") != "yes" {
			t.Error("declared header missing")
		}
		w.WriteHeader(204)
	}))
	defer srv.Close()

	compiled, err := pipeline.NewBuilder(pipeline.WithRegistry(reg)).
		Use(middleware.NameBaseURL, srv.URL).
		Use(middleware.NameHeaders, request.Pairs{{Name: "X-Fixed", Value: "yes"}}).
		Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	SetDefault(client.New(engine.New(compiled), client.Config{}))

	resp, err := Get(context.Background(), "/anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 204 {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestDefault_FullPipeline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"ada"}`))
	}))
	defer srv.Close()

	reg := unit.NewRegistry()
	middleware.Register(reg)
	adapter.Register(reg)

	compiled, err := pipeline.NewBuilder(pipeline.WithRegistry(reg)).
		Use(middleware.NameBaseURL, srv.URL).
		Use(middleware.NameJSON, nil).
		Use(middleware.NameRequestID, nil).
		Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	api := client.New(engine.New(compiled), client.Config{})

	resp, err := api.Get(context.Background(), "/users/1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, ok := resp.Decoded.(map[string]any)
	if !ok || decoded["name"] != "ada" {
		t.Errorf("decoded = %#v", resp.Decoded)
	}
}
