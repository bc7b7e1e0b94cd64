package views

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DisplayDateLayout matches how ja-JP browsers print a date
const DisplayDateLayout = "2006/1/2"

var printer = message.NewPrinter(language.Japanese)

// Money formats an amount as yen with two decimals and digit grouping
func Money(v decimal.Decimal) string {
	if v.IsNegative() {
		return "-¥" + printer.Sprintf("%.2f", v.Neg().InexactFloat64())
	}
	return "¥" + printer.Sprintf("%.2f", v.InexactFloat64())
}

// Amount formats an amount with exactly two decimals and no symbol or grouping
func Amount(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// Count formats an integer count with digit grouping
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Date formats a timestamp as a local date, or "" for the zero time
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayDateLayout)
}
