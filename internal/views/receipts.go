package views

import (
	"receiptweb/internal/models"
)

// ReceiptRow is one row of the reports table, already formatted
type ReceiptRow struct {
	ID          int
	SellerName  string
	Category    string
	ReceiptDate string
	UploadDate  string
	Amount      string
}

// Cells returns the exported columns, in table order
func (r ReceiptRow) Cells() []string {
	return []string{r.SellerName, r.Category, r.ReceiptDate, r.UploadDate, r.Amount}
}

// NewReceiptRow formats a receipt for the reports table
func NewReceiptRow(r models.Receipt) ReceiptRow {
	return ReceiptRow{
		ID:          r.ID,
		SellerName:  r.SellerName,
		Category:    r.Category,
		ReceiptDate: Date(r.ReceiptDate.Time),
		UploadDate:  Date(r.UploadDate.Time),
		Amount:      Amount(r.TotalAmount),
	}
}

// ReportsTable renders the receipt set as the reports table
func ReportsTable(set *models.ReceiptSet) ListView[ReceiptRow] {
	rows := make([]ReceiptRow, 0, set.Len())
	for _, r := range set.Receipts {
		rows = append(rows, NewReceiptRow(r))
	}
	return NewListView(rows, MsgReceiptsEmpty)
}

// ActivityItem is one line of the dashboard's recent activity list
type ActivityItem struct {
	SellerName string
	UploadDate string
	Total      string
}

// RecentActivity renders the dashboard's activity feed
func RecentActivity(receipts []models.Receipt) ListView[ActivityItem] {
	items := make([]ActivityItem, 0, len(receipts))
	for _, r := range receipts {
		items = append(items, ActivityItem{
			SellerName: r.SellerName,
			UploadDate: Date(r.UploadDate.Time),
			Total:      Money(r.TotalAmount),
		})
	}
	return NewListView(items, MsgRecentEmpty)
}

// AdminReceiptRow is one row of the admin receipts table
type AdminReceiptRow struct {
	ID         int
	Owner      string
	SellerName string
	Category   string
	UploadDate string
}

// AdminReceiptsTable renders every user's receipts for the admin page
func AdminReceiptsTable(set *models.ReceiptSet) ListView[AdminReceiptRow] {
	rows := make([]AdminReceiptRow, 0, set.Len())
	for _, r := range set.Receipts {
		rows = append(rows, AdminReceiptRow{
			ID:         r.ID,
			Owner:      r.OwnerLabel(),
			SellerName: r.SellerName,
			Category:   r.Category,
			UploadDate: Date(r.UploadDate.Time),
		})
	}
	return NewListView(rows, MsgAdminReceiptsEmpty)
}
