package dashboard

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apphttp "receiptweb/internal/http"
	"receiptweb/internal/models"
	"receiptweb/internal/services/backend"
	"receiptweb/internal/services/session"
	"receiptweb/internal/templates"
	"receiptweb/internal/views"
)

// maxUploadMemory bounds how much of a multipart upload is held in memory
const maxUploadMemory = 32 << 20

var (
	client   *backend.Client
	renderer *templates.Renderer
	labels   *views.Labels
)

// Initialize sets up the dashboard package with required dependencies
func Initialize(c *backend.Client, r *templates.Renderer, l *views.Labels) {
	client = c
	renderer = r
	labels = l
}

// RegisterRoutes registers all dashboard routes
func RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", handleDashboard)
	r.Get("/dashboard/aggregates", handleAggregates)
	r.Get("/dashboard/charts/{chart}", handleChartData)
	r.Get("/dashboard/recent", handleRecent)
	r.Post("/dashboard/upload", handleUpload)
}

func handleDashboard(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())
	dr := models.ParseDateRange(r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))

	data := apphttp.PageData(r, "dashboard", "ダッシュボード")
	data["Range"] = dr
	data["Aggregates"] = loadAggregates(r.Context(), s.Token, dr)

	apphttp.RenderTemplate(w, renderer, "base", data)
}

func handleAggregates(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())
	dr := models.ParseDateRange(r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))

	apphttp.RenderPartial(w, renderer, "aggregates", loadAggregates(r.Context(), s.Token, dr))
}

// loadAggregates issues the four aggregate calls concurrently and waits for
// all of them. Each widget keeps its own outcome.
func loadAggregates(ctx context.Context, token string, dr models.DateRange) views.Aggregates {
	var (
		wg                     sync.WaitGroup
		kpis                   models.KPIs
		category, series, top  []models.ChartDatum
		kpiErr, catErr, serErr error
		topErr                 error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		kpis, kpiErr = client.KPIs(ctx, token, dr)
	}()
	go func() {
		defer wg.Done()
		category, catErr = client.CategoryBreakdown(ctx, token, dr)
	}()
	go func() {
		defer wg.Done()
		series, serErr = client.TimeSeries(ctx, token, dr)
	}()
	go func() {
		defer wg.Done()
		top, topErr = client.TopItems(ctx, token, dr)
	}()
	wg.Wait()

	for name, err := range map[string]error{"kpis": kpiErr, "chart-data": catErr, "time-series": serErr, "top-items": topErr} {
		if err != nil {
			log.Warn().Err(err).Str("widget", name).Msg("dashboard widget failed")
		}
	}

	return views.Aggregates{
		KPIs:       views.KPIWidget(kpis, kpiErr),
		Category:   views.CategoryWidget(category, labels, catErr),
		TimeSeries: views.TimeSeriesWidget(series, serErr),
		TopItems:   views.TopItemsList(top, topErr),
		Range:      dr,
	}
}

func handleChartData(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())
	dr := models.ParseDateRange(r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))

	var (
		cfg  views.ChartConfig
		data []models.ChartDatum
		err  error
	)
	switch chi.URLParam(r, "chart") {
	case "category":
		data, err = client.CategoryBreakdown(r.Context(), s.Token, dr)
		cfg = views.CategoryChart(data, labels)
	case "time-series":
		data, err = client.TimeSeries(r.Context(), s.Token, dr)
		cfg = views.TimeSeriesChart(data)
	default:
		apphttp.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "unknown chart"})
		return
	}

	if err != nil {
		log.Warn().Err(err).Str("chart", chi.URLParam(r, "chart")).Msg("chart data failed")
		apphttp.WriteJSON(w, apphttp.BackendStatus(err), map[string]string{"error": views.MsgWidgetFailed})
		return
	}
	apphttp.WriteJSON(w, http.StatusOK, cfg)
}

func handleRecent(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())

	receipts, err := client.RecentReceipts(r.Context(), s.Token)
	if err != nil {
		log.Warn().Err(err).Msg("recent receipts failed")
		apphttp.RenderPartial(w, renderer, "recent-activity", views.ErrorListView[views.ActivityItem](views.MsgReceiptsFailed))
		return
	}
	apphttp.RenderPartial(w, renderer, "recent-activity", views.RecentActivity(receipts))
}

type uploadResult struct {
	OK      bool
	Message string
}

func handleUpload(w http.ResponseWriter, r *http.Request) {
	s, _ := session.FromContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		log.Warn().Err(err).Msg("reading upload")
		apphttp.RenderPartial(w, renderer, "upload-result", uploadResult{Message: views.MsgUploadFailed})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apphttp.RenderPartial(w, renderer, "upload-result", uploadResult{Message: views.MsgChooseFile})
		return
	}
	defer file.Close()
	if header.Size == 0 {
		apphttp.RenderPartial(w, renderer, "upload-result", uploadResult{Message: views.MsgChooseFile})
		return
	}

	receipt, err := client.UploadReceipt(r.Context(), s.Token, header.Filename, file)
	if err != nil {
		log.Warn().Err(err).Str("file", header.Filename).Msg("upload failed")
		apphttp.RenderPartial(w, renderer, "upload-result", uploadResult{Message: views.MsgUploadFailed})
		return
	}

	log.Info().Int("receipt_id", receipt.ID).Str("seller", receipt.SellerName).Msg("receipt uploaded")
	w.Header().Set("HX-Trigger", "receipts-changed")
	apphttp.RenderPartial(w, renderer, "upload-result", uploadResult{OK: true, Message: views.MsgUploadSuccess})
}
