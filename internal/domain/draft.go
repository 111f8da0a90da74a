package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Draft is a saved document in the local draft file
type Draft struct {
	ID         string
	Number     string
	ClientName string
	Total      decimal.Decimal
	Record     Record
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewDraft snapshots an invoice into a draft
func NewDraft(id string, inv *Invoice, totals Totals) *Draft {
	now := time.Now()
	return &Draft{
		ID:         id,
		Number:     inv.Number,
		ClientName: inv.Client.Name,
		Total:      totals.Total,
		Record:     Serialize(inv),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
