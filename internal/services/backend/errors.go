package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnavailable wraps transport failures (connection refused, timeouts, ...)
var ErrUnavailable = errors.New("backend unavailable")

// APIError is returned for any non-2xx response
type APIError struct {
	Method   string
	Endpoint string
	Status   int
	// Detail is the "detail" field of a JSON error body, if the backend sent one
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Endpoint, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Endpoint, e.Status)
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not an APIError
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsForbidden reports whether err is a 403 from the backend
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// Detail returns the backend-supplied error detail, or fallback when there is none
func Detail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// parseDetail extracts "detail" from a FastAPI-style error body. Validation
// errors carry a list there, which is not a displayable message.
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err != nil {
		return ""
	}
	return s
}
