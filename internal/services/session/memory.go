package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"receiptweb/internal/models"
)

type memoryEntry struct {
	session models.Session
	touched time.Time
}

// MemoryStore keeps sessions in process memory; the cookie only carries the ID.
// Sessions do not survive a restart.
type MemoryStore struct {
	opts     CookieOptions
	mu       sync.RWMutex
	sessions map[string]*memoryEntry
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore(opts CookieOptions) *MemoryStore {
	return &MemoryStore{
		opts:     opts,
		sessions: make(map[string]*memoryEntry),
		now:      time.Now,
	}
}

func (m *MemoryStore) Get(r *http.Request) (models.Session, bool) {
	c, err := r.Cookie(m.opts.name())
	if err != nil || c.Value == "" {
		return models.Session{}, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[c.Value]
	if !ok || !e.session.Valid() {
		return models.Session{}, false
	}
	e.touched = m.now()
	return e.session, true
}

func (m *MemoryStore) Set(w http.ResponseWriter, r *http.Request, s models.Session) error {
	if s.ID == "" {
		s.ID = NewID()
	}

	m.mu.Lock()
	m.sessions[s.ID] = &memoryEntry{session: s, touched: m.now()}
	m.mu.Unlock()

	http.SetCookie(w, m.opts.cookie(s.ID))
	return nil
}

func (m *MemoryStore) Clear(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(m.opts.name()); err == nil {
		m.mu.Lock()
		delete(m.sessions, c.Value)
		m.mu.Unlock()
	}
	http.SetCookie(w, m.opts.expired())
}

// Len returns the number of live sessions
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep forgets sessions not used for longer than idle and returns how many
// went. A non-positive idle keeps everything.
func (m *MemoryStore) Sweep(idle time.Duration) int {
	if idle <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-idle)
	removed := 0
	for id, e := range m.sessions {
		if e.touched.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("session: swept idle sessions")
	}
	return removed
}
