package backend

import (
	"context"
	"net/http"

	"receiptweb/internal/models"
)

// KPIs fetches total spend, total tax and bill count for the range
func (c *Client) KPIs(ctx context.Context, token string, dr models.DateRange) (models.KPIs, error) {
	var kpis models.KPIs
	err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "/api/dashboard/kpis",
		path:     "/api/dashboard/kpis",
		token:    token,
		query:    dr.Query(),
	}, &kpis)
	return kpis, err
}

// CategoryBreakdown fetches spend per category for the range
func (c *Client) CategoryBreakdown(ctx context.Context, token string, dr models.DateRange) ([]models.ChartDatum, error) {
	return c.series(ctx, token, "/api/dashboard/chart-data", dr)
}

// TimeSeries fetches monthly spend for the range
func (c *Client) TimeSeries(ctx context.Context, token string, dr models.DateRange) ([]models.ChartDatum, error) {
	return c.series(ctx, token, "/api/dashboard/time-series", dr)
}

// TopItems fetches the highest-spend items for the range
func (c *Client) TopItems(ctx context.Context, token string, dr models.DateRange) ([]models.ChartDatum, error) {
	return c.series(ctx, token, "/api/dashboard/top-items", dr)
}

func (c *Client) series(ctx context.Context, token, endpoint string, dr models.DateRange) ([]models.ChartDatum, error) {
	var data []models.ChartDatum
	err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: endpoint,
		path:     endpoint,
		token:    token,
		query:    dr.Query(),
	}, &data)
	return data, err
}
