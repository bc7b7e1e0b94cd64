package models

import (
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// KPIs contains the summary metrics shown at the top of the dashboard
type KPIs struct {
	TotalSpend decimal.Decimal `json:"total_spend"`
	TotalTax   decimal.Decimal `json:"total_tax"`
	TotalBills int             `json:"total_bills"`
}

// ChartDatum is a single label/value pair used by the category breakdown,
// the monthly series and the top items list
type ChartDatum struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// DateRange bounds the dashboard aggregates. Both ends must be set for the
// range to apply.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange builds a range from YYYY-MM-DD strings. Blank or malformed
// values yield a zero bound.
func ParseDateRange(startStr, endStr string) DateRange {
	var dr DateRange
	if startStr != "" {
		dr.Start, _ = time.Parse(DateLayout, startStr)
	}
	if endStr != "" {
		dr.End, _ = time.Parse(DateLayout, endStr)
	}
	return dr
}

// IsSet reports whether both bounds are present
func (dr DateRange) IsSet() bool {
	return !dr.Start.IsZero() && !dr.End.IsZero()
}

// Query returns the start_date/end_date parameters, or nil when the range is incomplete
func (dr DateRange) Query() url.Values {
	if !dr.IsSet() {
		return nil
	}
	return url.Values{
		"start_date": {dr.Start.Format(DateLayout)},
		"end_date":   {dr.End.Format(DateLayout)},
	}
}

// StartString returns the start bound as YYYY-MM-DD, or "" when unset
func (dr DateRange) StartString() string {
	if dr.Start.IsZero() {
		return ""
	}
	return dr.Start.Format(DateLayout)
}

// EndString returns the end bound as YYYY-MM-DD, or "" when unset
func (dr DateRange) EndString() string {
	if dr.End.IsZero() {
		return ""
	}
	return dr.End.Format(DateLayout)
}
