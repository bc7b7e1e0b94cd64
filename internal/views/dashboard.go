package views

import (
	"receiptweb/internal/models"
)

// KPIView holds the formatted KPI texts
type KPIView struct {
	TotalSpend string
	TotalTax   string
	TotalBills string
}

// TopItemRow is one entry of the ranked top-items list
type TopItemRow struct {
	Rank  int
	Label string
	Value string
}

// Aggregates is the dashboard's aggregate area. Each widget carries its own
// state, so one failed fetch leaves the others intact.
type Aggregates struct {
	KPIs       Widget[KPIView]
	Category   Widget[ChartConfig]
	TimeSeries Widget[ChartConfig]
	TopItems   ListView[TopItemRow]
	Range      models.DateRange
}

// KPIWidget renders the KPI texts or the widget error
func KPIWidget(kpis models.KPIs, err error) Widget[KPIView] {
	if err != nil {
		return FailedWidget[KPIView](MsgWidgetFailed)
	}
	return ReadyWidget(KPIView{
		TotalSpend: Money(kpis.TotalSpend),
		TotalTax:   Money(kpis.TotalTax),
		TotalBills: Count(kpis.TotalBills),
	})
}

// CategoryWidget renders the category pie chart or the widget error
func CategoryWidget(data []models.ChartDatum, labels *Labels, err error) Widget[ChartConfig] {
	if err != nil {
		return FailedWidget[ChartConfig](MsgWidgetFailed)
	}
	return ReadyWidget(CategoryChart(data, labels))
}

// TimeSeriesWidget renders the monthly bar chart or the widget error
func TimeSeriesWidget(data []models.ChartDatum, err error) Widget[ChartConfig] {
	if err != nil {
		return FailedWidget[ChartConfig](MsgWidgetFailed)
	}
	return ReadyWidget(TimeSeriesChart(data))
}

// TopItemsList renders the ranked list, the empty message or the error
func TopItemsList(items []models.ChartDatum, err error) ListView[TopItemRow] {
	if err != nil {
		return ErrorListView[TopItemRow](MsgWidgetFailed)
	}
	rows := make([]TopItemRow, len(items))
	for i, it := range items {
		rows[i] = TopItemRow{Rank: i + 1, Label: it.Label, Value: Money(it.Value)}
	}
	return NewListView(rows, MsgTopItemsEmpty)
}
