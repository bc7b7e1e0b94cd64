// Package backend is the typed client for the receipt service REST API.
// It returns view models or typed errors and never touches HTTP responses
// going to the browser.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// maxErrorBody caps how much of an error response is read for its detail
const maxErrorBody = 64 << 10

// Observer receives one notification per backend call
type Observer interface {
	ObserveBackendCall(method, endpoint string, status int, elapsed time.Duration)
}

// Client talks to the backend. Authorized calls take the session token
// explicitly; the client itself holds no user state.
type Client struct {
	client   *http.Client
	baseURL  string
	observer Observer
}

// New creates a client for the backend at baseURL
func New(client *http.Client, baseURL string) *Client {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// WithObserver attaches an observer used for call instrumentation
func (c *Client) WithObserver(o Observer) *Client {
	c.observer = o
	return c
}

// request describes a single backend call. endpoint is the route template
// (used for logs and metrics); path is the concrete path.
type request struct {
	method      string
	endpoint    string
	path        string
	token       string
	query       url.Values
	body        io.Reader
	contentType string
}

func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, req.body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", req.method, req.endpoint, err)
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.observe(req, 0, start)
		log.Warn().Err(err).Str("endpoint", req.endpoint).Str("method", req.method).Msg("backend request failed")
		return fmt.Errorf("%s %s: %w: %v", req.method, req.endpoint, ErrUnavailable, err)
	}
	defer resp.Body.Close()
	c.observe(req, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{
			Method:   req.method,
			Endpoint: req.endpoint,
			Status:   resp.StatusCode,
			Detail:   parseDetail(body),
		}
		log.Warn().
			Str("endpoint", req.endpoint).
			Str("method", req.method).
			Int("status", resp.StatusCode).
			Str("detail", apiErr.Detail).
			Msg("backend returned error")
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.method, req.endpoint, err)
	}
	return nil
}

func (c *Client) observe(req request, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveBackendCall(req.method, req.endpoint, status, time.Since(start))
	}
}
