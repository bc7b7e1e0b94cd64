package session

import (
	"encoding/json"
	"fmt"
	"net/http"

	"filippo.io/age"
	"github.com/rs/zerolog/log"

	"receiptweb/internal/models"
)

// CookieStore keeps the whole session in the cookie, encrypted with age.
// Nothing is held server-side, so any instance sharing the key can read it.
type CookieStore struct {
	opts      CookieOptions
	identity  *age.X25519Identity
	recipient *age.X25519Recipient
}

// NewCookieStore creates a store sealing cookies to identity
func NewCookieStore(identity *age.X25519Identity, opts CookieOptions) *CookieStore {
	return &CookieStore{
		opts:      opts,
		identity:  identity,
		recipient: identity.Recipient(),
	}
}

func (c *CookieStore) Get(r *http.Request) (models.Session, bool) {
	cookie, err := r.Cookie(c.opts.name())
	if err != nil || cookie.Value == "" {
		return models.Session{}, false
	}

	data, err := unseal(cookie.Value, c.identity)
	if err != nil {
		log.Debug().Err(err).Msg("discarding unreadable session cookie")
		return models.Session{}, false
	}

	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil || !s.Valid() {
		return models.Session{}, false
	}
	return s, true
}

func (c *CookieStore) Set(w http.ResponseWriter, r *http.Request, s models.Session) error {
	if s.ID == "" {
		s.ID = NewID()
	}

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	value, err := seal(data, c.recipient)
	if err != nil {
		return fmt.Errorf("seal session: %w", err)
	}

	http.SetCookie(w, c.opts.cookie(value))
	return nil
}

func (c *CookieStore) Clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, c.opts.expired())
}
