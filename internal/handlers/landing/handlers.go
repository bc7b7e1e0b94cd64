package landing

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apphttp "receiptweb/internal/http"
	"receiptweb/internal/models"
	"receiptweb/internal/services/backend"
	"receiptweb/internal/services/session"
	"receiptweb/internal/services/viewcache"
	"receiptweb/internal/templates"
	"receiptweb/internal/views"
)

var (
	client   *backend.Client
	renderer *templates.Renderer
	store    session.Store
	cache    *viewcache.Cache
)

// Initialize sets up the landing package with required dependencies
func Initialize(c *backend.Client, r *templates.Renderer, s session.Store, vc *viewcache.Cache) {
	client = c
	renderer = r
	store = s
	cache = vc
}

// RegisterRoutes registers the public routes. The landing page itself sends
// signed-in users on to the dashboard.
func RegisterRoutes(r chi.Router) {
	r.With(apphttp.RedirectIfAuthenticated(store, "/dashboard")).Get("/", handleLanding)
	r.Post("/login", handleLogin)
	r.Post("/register", handleRegister)
	r.Post("/logout", handleLogout)
}

func landingData(r *http.Request) map[string]interface{} {
	data := apphttp.PageData(r, "landing", "ようこそ")
	data["Modal"] = ""
	data["ModalAlert"] = ""
	data["LoginEmail"] = ""
	data["RegisterEmail"] = ""
	return data
}

func handleLanding(w http.ResponseWriter, r *http.Request) {
	data := landingData(r)

	switch r.URL.Query().Get("modal") {
	case "login":
		data["Modal"] = "login"
	case "register":
		data["Modal"] = "register"
	case "admin":
		data["Modal"] = "login"
		data["ModalAlert"] = views.MsgAdminEntry
	}

	apphttp.RenderTemplate(w, renderer, "base", data)
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		apphttp.ErrorResponse(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostForm.Get("email"))
	password := r.PostForm.Get("password")

	res, err := client.Login(r.Context(), email, password)
	if err != nil {
		log.Warn().Err(err).Str("email", email).Msg("login failed")
		data := landingData(r)
		data["Modal"] = "login"
		data["ModalAlert"] = views.MsgLoginFailed
		data["LoginEmail"] = email
		apphttp.RenderTemplateStatus(w, renderer, http.StatusUnauthorized, "base", data)
		return
	}

	sess := models.Session{
		ID:      session.NewID(),
		Token:   res.AccessToken,
		Email:   res.UserEmail,
		IsAdmin: res.IsAdmin,
	}
	if sess.Email == "" {
		sess.Email = email
	}
	if err := store.Set(w, r, sess); err != nil {
		log.Error().Err(err).Msg("storing session")
		apphttp.ErrorResponse(w, "could not start session", http.StatusInternalServerError)
		return
	}

	log.Info().Str("email", sess.Email).Bool("admin", sess.IsAdmin).Msg("signed in")
	if sess.IsAdmin {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		apphttp.ErrorResponse(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostForm.Get("email"))
	password := r.PostForm.Get("password")

	data := landingData(r)
	data["Modal"] = "register"
	data["RegisterEmail"] = email

	// Checked before anything is sent to the backend
	if password != r.PostForm.Get("re_password") {
		data["ModalAlert"] = views.MsgPasswordMismatch
		apphttp.RenderTemplateStatus(w, renderer, http.StatusUnprocessableEntity, "base", data)
		return
	}

	if _, err := client.Register(r.Context(), email, password); err != nil {
		log.Warn().Err(err).Str("email", email).Msg("registration failed")
		data["ModalAlert"] = views.MsgRegisterFailed
		apphttp.RenderTemplateStatus(w, renderer, apphttp.BackendStatus(err), "base", data)
		return
	}

	data["Modal"] = "login"
	data["ModalAlert"] = views.MsgRegisterSucceeded
	data["LoginEmail"] = email
	data["RegisterEmail"] = ""
	apphttp.RenderTemplate(w, renderer, "base", data)
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	if s, ok := store.Get(r); ok {
		cache.Drop(s.ID)
	}
	store.Clear(w, r)
	apphttp.Redirect(w, r, "/")
}
