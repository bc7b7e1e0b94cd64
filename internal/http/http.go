package http

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"receiptweb/internal/services/backend"
	"receiptweb/internal/services/session"
	"receiptweb/internal/templates"
)

// RenderTemplate renders a full page template with data
func RenderTemplate(w http.ResponseWriter, renderer *templates.Renderer, templateName string, data map[string]interface{}) {
	RenderTemplateStatus(w, renderer, http.StatusOK, templateName, data)
}

// RenderTemplateStatus renders a full page template with a specific status
func RenderTemplateStatus(w http.ResponseWriter, renderer *templates.Renderer, status int, templateName string, data map[string]interface{}) {
	if renderer != nil {
		renderer.RenderStatus(w, status, templateName, data)
	} else {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		w.Write([]byte("<html><body><h1>" + templateName + "</h1><p>Templates not loaded. Check configuration.</p></body></html>"))
	}
}

// RenderPartial renders a partial template with data
func RenderPartial(w http.ResponseWriter, renderer *templates.Renderer, partialName string, data interface{}) {
	if renderer != nil {
		renderer.RenderPartial(w, partialName, data)
	} else {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<div><!-- Partial " + partialName + " not loaded --></div>"))
	}
}

// ErrorResponse sends a plain-text error. htmx shows the body in an alert.
func ErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	log.Warn().Int("status", statusCode).Msg(message)
	http.Error(w, message, statusCode)
}

// WriteJSON encodes v as the response body
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encoding json response")
	}
}

// IsHTMX reports whether the request was issued by htmx
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// Redirect sends the browser to url. htmx requests get HX-Redirect so the
// whole page navigates instead of swapping a fragment.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	if IsHTMX(r) {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// PageData returns the fields every page's layout reads. The session comes
// from the request context when the guard put one there.
func PageData(r *http.Request, page, title string) map[string]interface{} {
	data := map[string]interface{}{
		"Page":     page,
		"Title":    title,
		"Alert":    "",
		"LoggedIn": false,
		"Email":    "",
		"IsAdmin":  false,
	}
	if s, ok := session.FromContext(r.Context()); ok {
		data["LoggedIn"] = true
		data["Email"] = s.Email
		data["IsAdmin"] = s.IsAdmin
	}
	return data
}

// BackendStatus picks the status to answer with when a backend call failed.
// Client errors pass through; everything else is a bad gateway.
func BackendStatus(err error) int {
	if code := backend.StatusCode(err); code >= 400 && code < 500 {
		return code
	}
	return http.StatusBadGateway
}
