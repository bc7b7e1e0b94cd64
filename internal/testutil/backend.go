package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// BackendCall records one request received by a FakeBackend
type BackendCall struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	ContentType   string
}

// FakeBackend is a scripted stand-in for the receipt service. Routes are
// matched on method and exact path; anything unscripted answers 404.
type FakeBackend struct {
	Server *httptest.Server
	URL    string

	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	calls  []BackendCall
}

// NewFakeBackend starts a fake backend that shuts down with the test
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	fb := &FakeBackend{
		routes: make(map[string]http.HandlerFunc),
	}
	fb.Server = httptest.NewServer(http.HandlerFunc(fb.serve))
	fb.URL = fb.Server.URL
	t.Cleanup(fb.Server.Close)
	return fb
}

func (fb *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	fb.calls = append(fb.calls, BackendCall{
		Method:        r.Method,
		Path:          r.URL.Path,
		RawQuery:      r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
	})
	h, ok := fb.routes[r.Method+" "+r.URL.Path]
	fb.mu.Unlock()

	if !ok {
		WriteJSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
		return
	}
	h(w, r)
}

// Handle scripts a route
func (fb *FakeBackend) Handle(method, path string, h http.HandlerFunc) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.routes[method+" "+path] = h
}

// JSON scripts a route that always answers with status and body encoded as JSON
func (fb *FakeBackend) JSON(method, path string, status int, body interface{}) {
	fb.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, status, body)
	})
}

// Calls returns a copy of every request received so far
func (fb *FakeBackend) Calls() []BackendCall {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	out := make([]BackendCall, len(fb.calls))
	copy(out, fb.calls)
	return out
}

// CallCount returns how many times method+path was requested
func (fb *FakeBackend) CallCount(method, path string) int {
	n := 0
	for _, c := range fb.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// ResetCalls forgets recorded calls, keeping scripted routes
func (fb *FakeBackend) ResetCalls() {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.calls = nil
}

// WriteJSON writes body as JSON with the given status
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
