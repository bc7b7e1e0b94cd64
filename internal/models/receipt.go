package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Receipt is the read-only view of a processed receipt as returned by the backend
type Receipt struct {
	ID          int              `json:"id"`
	SellerName  string           `json:"seller_name"`
	Category    string           `json:"category"`
	ReceiptDate Timestamp        `json:"receipt_date"`
	UploadDate  Timestamp        `json:"upload_date"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	TaxAmount   *decimal.Decimal `json:"tax_amount,omitempty"`
	OwnerID     int              `json:"owner_id"`
	Owner       *User            `json:"owner,omitempty"`
}

// OwnerLabel returns the owner's email, or a placeholder built from the owner ID
func (r Receipt) OwnerLabel() string {
	if r.Owner != nil && r.Owner.Email != "" {
		return r.Owner.Email
	}
	return "User ID: " + itoa(r.OwnerID)
}

// ReceiptSet wraps a slice with the filtering used by the list views
type ReceiptSet struct {
	Receipts []Receipt
}

// NewReceiptSet creates a new ReceiptSet from a slice
func NewReceiptSet(receipts []Receipt) *ReceiptSet {
	return &ReceiptSet{Receipts: receipts}
}

// Len returns the number of receipts
func (rs *ReceiptSet) Len() int {
	return len(rs.Receipts)
}

// FilterBySeller keeps receipts whose seller name contains term, ignoring case.
// An empty term keeps everything.
func (rs *ReceiptSet) FilterBySeller(term string) *ReceiptSet {
	term = strings.ToLower(term)
	out := make([]Receipt, 0, len(rs.Receipts))
	for _, r := range rs.Receipts {
		if strings.Contains(strings.ToLower(r.SellerName), term) {
			out = append(out, r)
		}
	}
	return &ReceiptSet{Receipts: out}
}

// Without returns a copy of the set minus the receipt with the given ID
func (rs *ReceiptSet) Without(id int) *ReceiptSet {
	out := slices.DeleteFunc(slices.Clone(rs.Receipts), func(r Receipt) bool {
		return r.ID == id
	})
	return &ReceiptSet{Receipts: out}
}

// OwnedBy reports whether the receipt belongs to the given user
func (r Receipt) OwnedBy(userID int) bool {
	if r.Owner != nil && r.Owner.ID != 0 {
		return r.Owner.ID == userID
	}
	return r.OwnerID == userID
}

// WithoutOwner returns a copy of the set minus every receipt owned by userID
func (rs *ReceiptSet) WithoutOwner(userID int) *ReceiptSet {
	out := slices.DeleteFunc(slices.Clone(rs.Receipts), func(r Receipt) bool {
		return r.OwnedBy(userID)
	})
	return &ReceiptSet{Receipts: out}
}

// Contains reports whether a receipt with the given ID is in the set
func (rs *ReceiptSet) Contains(id int) bool {
	return slices.ContainsFunc(rs.Receipts, func(r Receipt) bool { return r.ID == id })
}
