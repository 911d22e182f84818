package dto

import (
	"github.com/PnBafon/viten-backend/internal/core/types"
	"github.com/PnBafon/viten-backend/internal/domain/expense"
)

// CreateExpenseRequest is the request body for recording an expense.
type CreateExpenseRequest struct {
	Date        string      `json:"date" binding:"required"`
	Description string      `json:"description" binding:"required"`
	Amount      types.Money `json:"amount" binding:"required"`
	Category    string      `json:"category"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateExpenseRequest) ToEntity() *expense.Expense {
	return &expense.Expense{
		Date:        r.Date,
		Description: r.Description,
		Amount:      r.Amount,
		Category:    r.Category,
	}
}

// UpdateExpenseRequest is the request body for editing an expense.
type UpdateExpenseRequest CreateExpenseRequest

// ApplyTo applies update DTO to existing entity.
func (r *UpdateExpenseRequest) ApplyTo(e *expense.Expense) {
	e.Date = r.Date
	e.Description = r.Description
	e.Amount = r.Amount
	e.Category = r.Category
}

// ExpenseTotalResponse is returned by the period total endpoint.
type ExpenseTotalResponse struct {
	StartDate string      `json:"startDate"`
	EndDate   string      `json:"endDate"`
	Total     types.Money `json:"total"`
}
