// Package testutil provides testing utilities for the receipt frontend.
package testutil

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestServer wraps httptest.Server with a browser-like client: it keeps
// cookies between requests and does not follow redirects, so tests can
// assert on Location headers.
type TestServer struct {
	Server  *httptest.Server
	BaseURL string
	Client  *http.Client
	t       *testing.T
}

// ProjectRoot returns the root directory of the project.
// It works by finding the go.mod file.
func ProjectRoot() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("could not get caller info")
	}

	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// WebDir returns the directory holding templates/ and static/
func WebDir() string {
	return filepath.Join(ProjectRoot(), "web")
}

// NewTestServer creates a new test server using the application's router
func NewTestServer(t *testing.T, router http.Handler) *TestServer {
	t.Helper()

	server := httptest.NewServer(router)
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}

	return &TestServer{
		Server:  server,
		BaseURL: server.URL,
		Client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		t: t,
	}
}

// Do sends req through the server's client
func (ts *TestServer) Do(req *http.Request) *http.Response {
	ts.t.Helper()

	resp, err := ts.Client.Do(req)
	if err != nil {
		ts.t.Fatalf("%s %s failed: %v", req.Method, req.URL.Path, err)
	}
	return resp
}

func (ts *TestServer) newRequest(method, path string, body io.Reader) *http.Request {
	ts.t.Helper()

	req, err := http.NewRequest(method, ts.BaseURL+path, body)
	if err != nil {
		ts.t.Fatalf("building %s %s: %v", method, path, err)
	}
	return req
}

// GET performs a GET request to the given path
func (ts *TestServer) GET(path string) *http.Response {
	ts.t.Helper()
	return ts.Do(ts.newRequest(http.MethodGet, path, nil))
}

// HTMX performs a GET the way htmx issues it, with the HX-Request header
func (ts *TestServer) HTMX(method, path string) *http.Response {
	ts.t.Helper()
	req := ts.newRequest(method, path, nil)
	req.Header.Set("HX-Request", "true")
	return ts.Do(req)
}

// GETWithQuery performs a GET request with query parameters
func (ts *TestServer) GETWithQuery(path string, query map[string]string) *http.Response {
	ts.t.Helper()

	values := url.Values{}
	for k, v := range query {
		values.Set(k, v)
	}
	if len(values) > 0 {
		path += "?" + values.Encode()
	}
	return ts.GET(path)
}

// POST performs a POST request to the given path
func (ts *TestServer) POST(path string, contentType string, body io.Reader) *http.Response {
	ts.t.Helper()

	req := ts.newRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	return ts.Do(req)
}

// PostForm submits form values url-encoded, like a browser form post
func (ts *TestServer) PostForm(path string, form url.Values) *http.Response {
	ts.t.Helper()
	return ts.POST(path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

// Delete performs a DELETE request as htmx would
func (ts *TestServer) Delete(path string) *http.Response {
	ts.t.Helper()
	return ts.HTMX(http.MethodDelete, path)
}

// Close shuts down the test server
func (ts *TestServer) Close() {
	ts.Server.Close()
}

// ReadBody reads and returns the response body as a string
func ReadBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	return string(body)
}
