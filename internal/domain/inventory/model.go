// Package inventory provides purchase lots and the stock consistency engine.
//
// A purchase lot is one inventory batch with its own stock counter.
// Sales (cash or credit) consume lot stock by item name; deleting a sale
// restores it. The lot is the source of truth for available stock.
package inventory

import (
	"context"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/core/types"
)

// PurchaseLot represents one purchase/inventory batch.
type PurchaseLot struct {
	ID   int64  `db:"id" json:"id"`
	Date string `db:"date" json:"date"`
	Name string `db:"name" json:"name"`

	// Pcs is the number of units purchased. AvailableStock starts equal to
	// Pcs and is decremented by every unit sold under the same name.
	Pcs            int64 `db:"pcs" json:"pcs"`
	AvailableStock int64 `db:"available_stock" json:"availableStock"`

	// Monetary snapshot, fixed at write time.
	UnitPrice   types.Money `db:"unit_price" json:"unitPrice"`
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	// StockDeficiencyThreshold enables low-stock alerts when > 0.
	StockDeficiencyThreshold int64 `db:"stock_deficiency_threshold" json:"stockDeficiencyThreshold"`
}

// NewPurchaseLot creates a lot with stock counters initialized from pcs.
func NewPurchaseLot(date, name string, pcs int64, unitPrice types.Money) *PurchaseLot {
	return &PurchaseLot{
		Date:           date,
		Name:           name,
		Pcs:            pcs,
		AvailableStock: pcs,
		UnitPrice:      unitPrice,
		TotalAmount:    unitPrice.Mul(types.MoneyFromInt(pcs)),
	}
}

// SoldPcs returns the unit count implied by the stock counter.
// Deficiency alerting recomputes the sold count from the sale tables instead;
// the two can disagree after income pcs edits (documented drift).
func (l *PurchaseLot) SoldPcs() int64 {
	return l.Pcs - l.AvailableStock
}

// Validate checks lot invariants before persisting.
func (l *PurchaseLot) Validate(ctx context.Context) error {
	if l.Name == "" {
		return apperror.NewValidation("item name is required").
			WithDetail("field", "name")
	}
	if !types.ValidDate(l.Date) {
		return apperror.NewValidation("date must start with YYYY-MM-DD").
			WithDetail("field", "date").
			WithDetail("value", l.Date)
	}
	if l.Pcs <= 0 {
		return apperror.NewValidation("pcs must be positive").
			WithDetail("field", "pcs")
	}
	if l.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price must not be negative").
			WithDetail("field", "unitPrice")
	}
	if l.AvailableStock < 0 {
		return apperror.NewValidation("available stock must not be negative").
			WithDetail("field", "availableStock")
	}
	if l.StockDeficiencyThreshold < 0 {
		return apperror.NewValidation("stock deficiency threshold must not be negative").
			WithDetail("field", "stockDeficiencyThreshold")
	}
	return nil
}
