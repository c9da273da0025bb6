package request

import (
	"net/http"
	"testing"
)

func TestMethod_HTTP(t *testing.T) {
	if got := MethodGet.HTTP(); got != "GET" {
		t.Errorf("got %s", got)
	}
	if got := MethodPatch.HTTP(); got != "PATCH" {
		t.Errorf("got %s", got)
	}
}

func TestMethod_HasBody(t *testing.T) {
	withBody := []Method{MethodPost, MethodPut, MethodPatch}
	for _, m := range withBody {
		if !m.HasBody() {
			t.Errorf("%s should carry a body", m)
		}
	}
	without := []Method{MethodGet, MethodHead, MethodOptions, MethodTrace, MethodDelete}
	for _, m := range without {
		if m.HasBody() {
			t.Errorf("%s should not carry a body", m)
		}
	}
}

func TestPairs_PreserveOrderAndDuplicates(t *testing.T) {
	p := Pairs{}.Append("a", "1").Append("b", "2").Append("a", "3")

	if got := p.Get("a"); got != "1" {
		t.Errorf("Get returns first value, got %s", got)
	}
	vals := p.Values("a")
	if len(vals) != 2 || vals[0] != "1" || vals[1] != "3" {
		t.Errorf("Values = %v", vals)
	}
	if got := p.Get("missing"); got != "" {
		t.Errorf("absent name should yield empty, got %s", got)
	}
}

func TestPairs_AppendDoesNotMutate(t *testing.T) {
	base := Pairs{{Name: "a", Value: "1"}}
	_ = base.Append("b", "2")
	if len(base) != 1 {
		t.Errorf("base mutated: %v", base)
	}
}

func TestDescriptor_Clone(t *testing.T) {
	d := &Descriptor{
		Method:  MethodPost,
		URL:     "http://example.com",
		Query:   Pairs{{Name: "q", Value: "x"}},
		Headers: Pairs{{Name: "Accept", Value: "application/json"}},
		Body:    "payload",
	}
	c := d.Clone()

	c.Query = c.Query.Append("q", "y")
	c.Headers[0].Value = "text/plain"

	if len(d.Query) != 1 {
		t.Errorf("clone shares query backing: %v", d.Query)
	}
	if d.Headers[0].Value != "application/json" {
		t.Errorf("clone shares header backing: %v", d.Headers)
	}
	if c.Body != "payload" || c.URL != d.URL {
		t.Error("scalar fields must carry over")
	}
}

func TestResponse_StatusPredicates(t *testing.T) {
	cases := []struct {
		code    int
		success bool
		failure bool
	}{
		{200, true, false},
		{204, true, false},
		{301, false, false},
		{404, false, true},
		{500, false, true},
	}
	for _, tc := range cases {
		r := &Response{StatusCode: tc.code}
		if r.IsSuccess() != tc.success {
			t.Errorf("%d: IsSuccess = %v", tc.code, r.IsSuccess())
		}
		if r.IsError() != tc.failure {
			t.Errorf("%d: IsError = %v", tc.code, r.IsError())
		}
	}
}

func TestEnv_WithersCopy(t *testing.T) {
	d := &Descriptor{Method: MethodGet, URL: "http://example.com"}
	env := &Env{Request: d}

	resp := &Response{StatusCode: 200}
	out := env.WithResponse(resp)
	if env.Response != nil {
		t.Error("WithResponse mutated the original env")
	}
	if out.Response != resp || out.Request != d {
		t.Error("WithResponse lost fields")
	}

	d2 := d.Clone()
	out2 := out.WithRequest(d2)
	if out.Request != d {
		t.Error("WithRequest mutated the original env")
	}
	if out2.Request != d2 || out2.Response != resp {
		t.Error("WithRequest lost fields")
	}
}

func TestFlattenHeader_GroupsValuesPerKey(t *testing.T) {
	h := http.Header{}
	h.Add("Accept", "application/json")
	h.Add("X-Tag", "a")
	h.Add("X-Tag", "b")

	flat := FlattenHeader(h)
	if len(flat) != 3 {
		t.Fatalf("len = %d", len(flat))
	}
	vals := flat.Values("X-Tag")
	if len(vals) != 2 || vals[0] != "a" || vals[1] != "b" {
		t.Errorf("per-key value order lost: %v", vals)
	}
}
