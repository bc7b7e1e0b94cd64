package admin

import (
	"context"
	"net/http"
	"strconv"

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
	cache    *viewcache.Cache
)

// Initialize sets up the admin package with required dependencies
func Initialize(c *backend.Client, r *templates.Renderer, vc *viewcache.Cache) {
	client = c
	renderer = r
	cache = vc
}

// RegisterRoutes registers all admin routes. Authorization is the backend's
// call; a non-admin token gets a 403 from it.
func RegisterRoutes(r chi.Router) {
	r.Get("/admin", handleAdmin)
	r.Get("/admin/users/rows", handleUserRows)
	r.Get("/admin/receipts/rows", handleReceiptRows)
	r.Delete("/admin/users/{id}", handleDeleteUser)
}

// usersFailure maps a failed users fetch to its status and message
func usersFailure(err error) (int, string) {
	if backend.IsForbidden(err) {
		return http.StatusForbidden, views.MsgForbidden
	}
	return apphttp.BackendStatus(err), views.MsgUsersFailed
}

func handleAdmin(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())

	users, err := client.AdminUsers(r.Context(), s.Token)
	if err != nil {
		log.Warn().Err(err).Str("email", s.Email).Msg("fetching users failed")
		status, msg := usersFailure(err)
		data := apphttp.PageData(r, "forbidden", "管理者")
		data["Message"] = msg
		apphttp.RenderTemplateStatus(w, renderer, status, "base", data)
		return
	}
	cache.PutUsers(s.ID, users)

	data := apphttp.PageData(r, "admin", "管理者ダッシュボード")
	data["Users"] = views.UsersTable(models.NewUserSet(users), s.Email)

	// Receipts are only requested once the users call proved admin access
	receipts, err := client.AdminReceipts(r.Context(), s.Token)
	if err != nil {
		log.Warn().Err(err).Msg("fetching all receipts failed")
		data["Receipts"] = views.ErrorListView[views.AdminReceiptRow](views.MsgReceiptsFailed)
	} else {
		cache.PutReceipts(s.ID, viewcache.AdminReceipts, receipts)
		data["Receipts"] = views.AdminReceiptsTable(models.NewReceiptSet(receipts))
	}

	apphttp.RenderTemplate(w, renderer, "base", data)
}

func cachedUsers(ctx context.Context, s models.Session) (*models.UserSet, error) {
	if set, ok := cache.Users(s.ID); ok {
		return set, nil
	}
	users, err := client.AdminUsers(ctx, s.Token)
	if err != nil {
		return nil, err
	}
	cache.PutUsers(s.ID, users)
	return models.NewUserSet(users), nil
}

func cachedReceipts(ctx context.Context, s models.Session) (*models.ReceiptSet, error) {
	if set, ok := cache.Receipts(s.ID, viewcache.AdminReceipts); ok {
		return set, nil
	}
	receipts, err := client.AdminReceipts(ctx, s.Token)
	if err != nil {
		return nil, err
	}
	cache.PutReceipts(s.ID, viewcache.AdminReceipts, receipts)
	return models.NewReceiptSet(receipts), nil
}

func handleUserRows(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())

	set, err := cachedUsers(r.Context(), s)
	if err != nil {
		log.Warn().Err(err).Msg("loading users for filter failed")
		_, msg := usersFailure(err)
		apphttp.RenderPartial(w, renderer, "users-rows", views.ErrorListView[views.UserRow](msg))
		return
	}

	apphttp.RenderPartial(w, renderer, "users-rows", views.UsersTable(set.FilterByEmail(r.URL.Query().Get("q")), s.Email))
}

func handleReceiptRows(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())

	set, err := cachedReceipts(r.Context(), s)
	if err != nil {
		log.Warn().Err(err).Msg("loading all receipts for filter failed")
		apphttp.RenderPartial(w, renderer, "admin-receipts-rows", views.ErrorListView[views.AdminReceiptRow](views.MsgReceiptsFailed))
		return
	}

	apphttp.RenderPartial(w, renderer, "admin-receipts-rows", views.AdminReceiptsTable(set.FilterBySeller(r.URL.Query().Get("q"))))
}

func handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		apphttp.ErrorResponse(w, views.MsgDeleteUserFailed, http.StatusBadRequest)
		return
	}

	if err := client.AdminDeleteUser(r.Context(), s.Token, id); err != nil {
		log.Warn().Err(err).Int("user_id", id).Msg("deleting user failed")
		apphttp.ErrorResponse(w, backend.Detail(err, views.MsgDeleteUserFailed), apphttp.BackendStatus(err))
		return
	}

	// The backend deletes the user's receipts along with the account
	cache.RemoveUser(s.ID, id)
	dropped := cache.RemoveReceiptsOwnedBy(s.ID, viewcache.AdminReceipts, id)
	log.Info().Int("user_id", id).Int("receipts_dropped", dropped).Str("by", s.Email).Msg("user deleted")
	w.WriteHeader(http.StatusOK)
}
