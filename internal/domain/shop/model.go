// Package shop provides the singleton shop profile printed on receipts.
package shop

import (
	"context"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
)

// Profile is the shop's identity. There is exactly one row; Save upserts it.
type Profile struct {
	ID            int64  `db:"id" json:"id"`
	ShopName      string `db:"shop_name" json:"shopName"`
	LogoPath      string `db:"logo_path" json:"logoPath"`
	ReceiptHeader string `db:"receipt_header" json:"receiptHeader"`
	ReceiptFooter string `db:"receipt_footer" json:"receiptFooter"`
	CurrencyCode  string `db:"currency_code" json:"currencyCode"`
	Phone         string `db:"phone" json:"phone"`
	Address       string `db:"address" json:"address"`
}

// Validate checks profile invariants before persisting.
func (p *Profile) Validate(ctx context.Context) error {
	if p.ShopName == "" {
		return apperror.NewValidation("shop name is required").
			WithDetail("field", "shopName")
	}
	return nil
}
