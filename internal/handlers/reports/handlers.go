package reports

import (
	"context"
	"errors"
	"net/http"
	"strconv"
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
	cache    *viewcache.Cache
)

// Initialize sets up the reports package with required dependencies
func Initialize(c *backend.Client, r *templates.Renderer, vc *viewcache.Cache) {
	client = c
	renderer = r
	cache = vc
}

// RegisterRoutes registers all reports routes
func RegisterRoutes(r chi.Router) {
	r.Get("/reports", handleReports)
	r.Get("/reports/rows", handleRows)
	r.Get("/reports/export.csv", handleExport)
	r.Delete("/reports/receipts/{id}", handleDelete)
}

func handleReports(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())
	query := r.URL.Query().Get("q")

	data := apphttp.PageData(r, "reports", "レポート")
	data["Query"] = query

	// The page always refetches; filtering afterwards works on this copy
	receipts, err := client.AllReceipts(r.Context(), s.Token)
	if err != nil {
		log.Warn().Err(err).Msg("fetching receipts failed")
		data["Table"] = views.ErrorListView[views.ReceiptRow](views.MsgReceiptsFailed)
		apphttp.RenderTemplate(w, renderer, "base", data)
		return
	}
	cache.PutReceipts(s.ID, viewcache.Reports, receipts)

	data["Table"] = views.ReportsTable(models.NewReceiptSet(receipts).FilterBySeller(query))
	apphttp.RenderTemplate(w, renderer, "base", data)
}

// cachedReceipts returns the session's receipt list, loading it once when
// the cache is cold (after a restart, or for a tab opened before login).
func cachedReceipts(ctx context.Context, s models.Session) (*models.ReceiptSet, error) {
	if set, ok := cache.Receipts(s.ID, viewcache.Reports); ok {
		return set, nil
	}
	receipts, err := client.AllReceipts(ctx, s.Token)
	if err != nil {
		return nil, err
	}
	cache.PutReceipts(s.ID, viewcache.Reports, receipts)
	return models.NewReceiptSet(receipts), nil
}

func handleRows(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())

	set, err := cachedReceipts(r.Context(), s)
	if err != nil {
		log.Warn().Err(err).Msg("loading receipts for filter failed")
		apphttp.RenderPartial(w, renderer, "receipts-rows", views.ErrorListView[views.ReceiptRow](views.MsgReceiptsFailed))
		return
	}

	apphttp.RenderPartial(w, renderer, "receipts-rows", views.ReportsTable(set.FilterBySeller(r.URL.Query().Get("q"))))
}

func handleExport(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())

	set, err := cachedReceipts(r.Context(), s)
	if err != nil {
		log.Warn().Err(err).Msg("loading receipts for export failed")
		apphttp.ErrorResponse(w, views.MsgReceiptsFailed, apphttp.BackendStatus(err))
		return
	}

	table := views.ReportsTable(set.FilterBySeller(r.URL.Query().Get("q")))
	body, err := views.ExportCSV(table.Rows)
	if errors.Is(err, views.ErrNothingToExport) {
		apphttp.ErrorResponse(w, views.MsgNothingToDownload, http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		apphttp.ErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+views.CSVFilename+`"`)
	w.Write(body)
}

func handleDelete(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())

	id, err := strconv.Atoi(strings.TrimSpace(chi.URLParam(r, "id")))
	if err != nil || id <= 0 {
		apphttp.ErrorResponse(w, views.MsgDeleteFailed, http.StatusBadRequest)
		return
	}

	if err := client.DeleteReceipt(r.Context(), s.Token, id); err != nil {
		log.Warn().Err(err).Int("receipt_id", id).Msg("deleting receipt failed")
		apphttp.ErrorResponse(w, views.MsgDeleteFailed, apphttp.BackendStatus(err))
		return
	}

	// Keep the cached list in step so a later filter cannot bring the row back
	cache.RemoveReceipt(s.ID, viewcache.Reports, id)
	log.Info().Int("receipt_id", id).Msg("receipt deleted")

	// An empty 200 lets htmx swap the row out
	w.WriteHeader(http.StatusOK)
}
