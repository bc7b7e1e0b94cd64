// Package session keeps the signed-in user's token between requests.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"receiptweb/internal/models"
)

// DefaultCookieName names the session cookie unless configured otherwise
const DefaultCookieName = "receipts_session"

// Store persists a session across requests
type Store interface {
	Get(r *http.Request) (models.Session, bool)
	Set(w http.ResponseWriter, r *http.Request, s models.Session) error
	Clear(w http.ResponseWriter, r *http.Request)
}

// Sweeper is implemented by stores that keep sessions on the server
type Sweeper interface {
	Sweep(idle time.Duration) int
}

// CookieOptions controls the attributes of the session cookie
type CookieOptions struct {
	Name   string
	Secure bool
}

func (o CookieOptions) name() string {
	if o.Name == "" {
		return DefaultCookieName
	}
	return o.Name
}

func (o CookieOptions) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     o.name(),
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (o CookieOptions) expired() *http.Cookie {
	c := o.cookie("")
	c.MaxAge = -1
	return c
}

// NewID returns a fresh session identifier
func NewID() string {
	return uuid.NewString()
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying s
func NewContext(ctx context.Context, s models.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored by the guard middleware
func FromContext(ctx context.Context) (models.Session, bool) {
	s, ok := ctx.Value(contextKey{}).(models.Session)
	return s, ok
}
