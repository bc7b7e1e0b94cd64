package views

import (
	"receiptweb/internal/models"
)

// ChartConfig is a Chart.js configuration. The browser destroys any existing
// chart on the same canvas before drawing a new one from this.
type ChartConfig struct {
	Type    string                 `json:"type"`
	Data    ChartData              `json:"data"`
	Options map[string]interface{} `json:"options,omitempty"`
}

// ChartData holds labels and datasets
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one series. BackgroundColor is a single colour or one per point.
type Dataset struct {
	Label           string      `json:"label"`
	Data            []float64   `json:"data"`
	BackgroundColor interface{} `json:"backgroundColor,omitempty"`
}

var categoryPalette = []string{
	"rgba(13, 14, 14,1)",
	"rgba(68, 66, 66, 1)",
	"rgba(93, 89, 89, 1)",
	"rgba(171,163,167,1)",
}

const timeSeriesColor = "rgba(44, 41, 41, 1)"

func splitSeries(data []models.ChartDatum, label func(string) string) ([]string, []float64) {
	labels := make([]string, len(data))
	values := make([]float64, len(data))
	for i, d := range data {
		labels[i] = label(d.Label)
		values[i] = d.Value.InexactFloat64()
	}
	return labels, values
}

// CategoryChart builds the spending-by-category pie chart
func CategoryChart(data []models.ChartDatum, labels *Labels) ChartConfig {
	names, values := splitSeries(data, labels.Translate)
	return ChartConfig{
		Type: "pie",
		Data: ChartData{
			Labels: names,
			Datasets: []Dataset{{
				Label:           CategoryDatasetLabel,
				Data:            values,
				BackgroundColor: categoryPalette,
			}},
		},
	}
}

// TimeSeriesChart builds the monthly spending bar chart
func TimeSeriesChart(data []models.ChartDatum) ChartConfig {
	names, values := splitSeries(data, func(s string) string { return s })
	return ChartConfig{
		Type: "bar",
		Data: ChartData{
			Labels: names,
			Datasets: []Dataset{{
				Label:           MonthlyDatasetLabel,
				Data:            values,
				BackgroundColor: timeSeriesColor,
			}},
		},
		Options: map[string]interface{}{
			"responsive":          false,
			"maintainAspectRatio": false,
		},
	}
}
