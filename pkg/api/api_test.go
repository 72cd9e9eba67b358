package api

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paraphraser/pkg/pipeline"
)

const (
	catAndDog = "(NP (NP (DT the) (NN cat)) (CC and) (NP (DT a) (NN dog)))"
	dogAndCat = "(NP (NP (DT a) (NN dog)) (CC and) (NP (DT the) (NN cat)))"

	nestedCoordination = "(NP (NP (NP (NNS cats)) (CC and) (NP (NNS dogs))) (CC or) (NP (NNS hens)))"
)

func newTestServer() *Server {
	logger := log.New(io.Discard)
	return New(Config{MaxCombinations: 1000}, pipeline.NewRunner(nil, nil, logger), logger)
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func post(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/paraphrase", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeParaphrases(t *testing.T, rec *httptest.ResponseRecorder) ParaphraseResponse {
	t.Helper()
	var resp ParaphraseResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestGetParaphrase(t *testing.T) {
	s := newTestServer()
	rec := get(t, s, "/paraphrase?tree="+url.QueryEscape(catAndDog))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	resp := decodeParaphrases(t, rec)
	if len(resp.Paraphrases) != 2 || resp.Total != 2 {
		t.Fatalf("response = %+v", resp)
	}
	if resp.Paraphrases[0].Tree != catAndDog || resp.Paraphrases[1].Tree != dogAndCat {
		t.Errorf("paraphrases = %+v", resp.Paraphrases)
	}
}

func TestGetParaphraseLimit(t *testing.T) {
	s := newTestServer()
	rec := get(t, s, "/paraphrase?limit=1&seed=5&tree="+url.QueryEscape(catAndDog))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	resp := decodeParaphrases(t, rec)
	if len(resp.Paraphrases) != 1 || resp.Total != 2 {
		t.Errorf("response = %+v", resp)
	}
}

func TestGetParaphraseErrors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status int
		body   string
	}{
		{"missing tree", "", http.StatusBadRequest, "Please provide a syntax tree to paraphrase"},
		{"empty tree", "tree=", http.StatusBadRequest, "Please provide a syntax tree to paraphrase"},
		{"bad limit", "limit=two&tree=" + url.QueryEscape(catAndDog), http.StatusBadRequest, "limit must be an integer"},
		{"negative limit", "limit=-1&tree=" + url.QueryEscape(catAndDog), http.StatusBadRequest, "non-negative"},
		{"limit too large", "limit=3&tree=" + url.QueryEscape(catAndDog), http.StatusBadRequest, "cannot sample 3 trees from 2"},
		{"unknown method", "method=Verb+phrases&tree=" + url.QueryEscape(catAndDog), http.StatusBadRequest,
			"There is no method for paraphrasing by Verb phrases"},
		{"unbalanced tree", "tree=" + url.QueryEscape("(NP (DT the)"), http.StatusBadRequest, "invalid syntax tree"},
		{"nested", "tree=" + url.QueryEscape(nestedCoordination), http.StatusBadRequest, "nested"},
		{"bad nested policy", "nested=inner&tree=" + url.QueryEscape(catAndDog), http.StatusBadRequest, "unknown nested policy"},
	}
	s := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, "/paraphrase?"+tt.query)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if !strings.Contains(rec.Body.String(), tt.body) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.body)
			}
		})
	}
}

func TestGetParaphraseTooManyCombinations(t *testing.T) {
	logger := log.New(io.Discard)
	s := New(Config{MaxCombinations: 1}, pipeline.NewRunner(nil, nil, logger), logger)
	rec := get(t, s, "/paraphrase?tree="+url.QueryEscape(catAndDog))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestGetParaphraseNestedPolicy(t *testing.T) {
	s := newTestServer()
	rec := get(t, s, "/paraphrase?nested=compose&tree="+url.QueryEscape(nestedCoordination))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if resp := decodeParaphrases(t, rec); resp.Total != 4 {
		t.Errorf("Total = %d, want 4", resp.Total)
	}
}

func TestPostParaphrase(t *testing.T) {
	s := newTestServer()
	body, _ := json.Marshal(ParaphraseRequest{Tree: catAndDog, Limit: 2, Methods: []string{"Noun phrases"}, Seed: 1})
	rec := post(t, s, string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	resp := decodeParaphrases(t, rec)
	if len(resp.Paraphrases) != 2 {
		t.Errorf("len(paraphrases) = %d, want 2", len(resp.Paraphrases))
	}
}

func TestPostParaphraseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"malformed", "{"},
		{"unknown field", `{"tree": "(NP (NN x))", "depth": 2}`},
		{"missing tree", `{"limit": 1}`},
	}
	s := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := post(t, s, tt.body); rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %q)", rec.Code, rec.Body)
			}
		})
	}
}

func TestMethods(t *testing.T) {
	rec := get(t, newTestServer(), "/methods")
	var resp map[string][]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if got := resp["methods"]; len(got) != 1 || got[0] != "noun phrases" {
		t.Errorf("methods = %v", got)
	}
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(), "/healthz")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("GET /healthz = %d %s", rec.Code, rec.Body)
	}
}

func TestRequestID(t *testing.T) {
	s := newTestServer()

	rec := get(t, s, "/healthz")
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("response has no request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want caller's id", got)
	}
}

func TestNotFound(t *testing.T) {
	if rec := get(t, newTestServer(), "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestListenAndServeShutsDown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("cannot listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	logger := log.New(io.Discard)
	s := New(Config{Addr: addr}, pipeline.NewRunner(nil, nil, logger), logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not start: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
