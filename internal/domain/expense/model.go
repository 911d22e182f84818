// Package expense provides operating expense records.
package expense

import (
	"context"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/core/types"
)

// Expense represents one operating expense.
type Expense struct {
	ID          int64       `db:"id" json:"id"`
	Date        string      `db:"date" json:"date"`
	Description string      `db:"description" json:"description"`
	Amount      types.Money `db:"amount" json:"amount"`
	Category    string      `db:"category" json:"category"`
}

// Validate checks expense invariants before persisting.
func (e *Expense) Validate(ctx context.Context) error {
	if e.Description == "" {
		return apperror.NewValidation("description is required").
			WithDetail("field", "description")
	}
	if !types.ValidDate(e.Date) {
		return apperror.NewValidation("date must start with YYYY-MM-DD").
			WithDetail("field", "date").
			WithDetail("value", e.Date)
	}
	if !e.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}
	return nil
}
