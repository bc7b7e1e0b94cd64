package session

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"filippo.io/age"

	"receiptweb/internal/models"
)

// roundTrip sets s on a recorder and returns a request carrying the resulting cookies
func roundTrip(t *testing.T, store Store, s models.Session) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := store.Set(rec, httptest.NewRequest(http.MethodPost, "/login", nil), s); err != nil {
		t.Fatalf("Set: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func testStore(t *testing.T, store Store) {
	t.Helper()

	if _, ok := store.Get(httptest.NewRequest(http.MethodGet, "/", nil)); ok {
		t.Fatal("expected no session without a cookie")
	}

	req := roundTrip(t, store, models.Session{Token: "tok", Email: "a@example.com", IsAdmin: true})
	got, ok := store.Get(req)
	if !ok {
		t.Fatal("expected session after Set")
	}
	if got.Token != "tok" || got.Email != "a@example.com" || !got.IsAdmin {
		t.Errorf("unexpected session: %+v", got)
	}
	if got.ID == "" {
		t.Error("expected Set to assign an ID")
	}

	rec := httptest.NewRecorder()
	store.Clear(rec, req)
	cleared := rec.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Errorf("expected an expiring cookie, got %+v", cleared)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(CookieOptions{})
	testStore(t, store)

	req := roundTrip(t, store, models.Session{Token: "tok"})
	store.Clear(httptest.NewRecorder(), req)
	if _, ok := store.Get(req); ok {
		t.Error("session should be gone after Clear even if the browser resends the cookie")
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	store := NewMemoryStore(CookieOptions{})
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	stale := roundTrip(t, store, models.Session{Token: "stale"})
	now = now.Add(90 * time.Minute)
	active := roundTrip(t, store, models.Session{Token: "active"})
	now = now.Add(45 * time.Minute)

	// Reading a session keeps it alive
	if _, ok := store.Get(active); !ok {
		t.Fatal("expected active session")
	}

	if removed := store.Sweep(time.Hour); removed != 1 {
		t.Errorf("Sweep removed %d, want 1", removed)
	}
	if _, ok := store.Get(stale); ok {
		t.Error("stale session should be gone after Sweep")
	}
	if _, ok := store.Get(active); !ok {
		t.Error("active session should survive Sweep")
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}

	if removed := store.Sweep(0); removed != 0 {
		t.Errorf("zero idle should keep everything, removed %d", removed)
	}
}

func TestCookieStore(t *testing.T) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		t.Fatalf("GenerateX25519Identity: %v", err)
	}
	store := NewCookieStore(identity, CookieOptions{Name: "sess", Secure: true})
	testStore(t, store)

	req := roundTrip(t, store, models.Session{Token: "tok", Email: "a@example.com"})
	c, err := req.Cookie("sess")
	if err != nil {
		t.Fatalf("cookie not set: %v", err)
	}
	if strings.Contains(c.Value, "tok") || strings.Contains(c.Value, "example") {
		t.Error("cookie value must not expose the session in clear text")
	}
}

func TestCookieStoreRejectsForeignKey(t *testing.T) {
	a, _ := age.GenerateX25519Identity()
	b, _ := age.GenerateX25519Identity()

	req := roundTrip(t, NewCookieStore(a, CookieOptions{}), models.Session{Token: "tok"})
	if _, ok := NewCookieStore(b, CookieOptions{}).Get(req); ok {
		t.Error("a cookie sealed to another key must not be accepted")
	}

	tampered := httptest.NewRequest(http.MethodGet, "/", nil)
	tampered.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "not-a-sealed-value"})
	if _, ok := NewCookieStore(a, CookieOptions{}).Get(tampered); ok {
		t.Error("garbage cookie must not be accepted")
	}
}

func TestLoadOrCreateIdentityPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "session.key")

	first, err := LoadOrCreateIdentity(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("key file not written: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("key file mode = %v", info.Mode().Perm())
	}

	second, err := LoadOrCreateIdentity(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if first.String() != second.String() {
		t.Error("expected the persisted identity to be reloaded")
	}
}

func TestContextRoundTrip(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := FromContext(req.Context()); ok {
		t.Fatal("empty context should carry no session")
	}
	ctx := NewContext(req.Context(), models.Session{ID: "x", Token: "t"})
	s, ok := FromContext(ctx)
	if !ok || s.ID != "x" {
		t.Errorf("FromContext = %+v, %v", s, ok)
	}
}
