// Package income provides cash sales. A cash sale is paid in full at the
// counter; the credit counterpart lives in the debt package.
package income

import (
	"context"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/core/types"
)

// Sale represents one cash sale.
type Sale struct {
	ID   int64  `db:"id" json:"id"`
	Date string `db:"date" json:"date"`
	Name string `db:"name" json:"name"`
	Pcs  int64  `db:"pcs" json:"pcs"`

	// Monetary snapshot, fixed at write time. TotalPrice = Pcs * UnitPrice.
	UnitPrice  types.Money `db:"unit_price" json:"unitPrice"`
	TotalPrice types.Money `db:"total_price" json:"totalPrice"`

	ClientName      string `db:"client_name" json:"clientName"`
	ClientPhone     string `db:"client_phone" json:"clientPhone"`
	SellerName      string `db:"seller_name" json:"sellerName"`
	ClientSignature string `db:"client_signature" json:"clientSignature"`
	SellerSignature string `db:"seller_signature" json:"sellerSignature"`

	ReceiptNumber string `db:"receipt_number" json:"receiptNumber"`
}

// Validate checks sale invariants before persisting.
func (s *Sale) Validate(ctx context.Context) error {
	if s.Name == "" {
		return apperror.NewValidation("item name is required").
			WithDetail("field", "name")
	}
	if !types.ValidDate(s.Date) {
		return apperror.NewValidation("date must start with YYYY-MM-DD").
			WithDetail("field", "date").
			WithDetail("value", s.Date)
	}
	if s.Pcs <= 0 {
		return apperror.NewValidation("pcs must be positive").
			WithDetail("field", "pcs")
	}
	if s.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price must not be negative").
			WithDetail("field", "unitPrice")
	}
	return nil
}
