package expense

import (
	"context"

	"github.com/PnBafon/viten-backend/internal/core/types"
	"github.com/PnBafon/viten-backend/internal/domain"
)

// Repository defines persistence operations for expenses.
type Repository interface {
	// Create inserts a new expense and fills in the generated ID.
	Create(ctx context.Context, e *Expense) error

	// GetByID retrieves an expense by ID.
	GetByID(ctx context.Context, id int64) (*Expense, error)

	// Update modifies an existing expense.
	Update(ctx context.Context, e *Expense) error

	// Delete removes an expense.
	Delete(ctx context.Context, id int64) error

	// List retrieves expenses with filtering and pagination.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Expense], error)

	// TotalForPeriod sums expense amounts over an inclusive date range.
	TotalForPeriod(ctx context.Context, startDate, endDate string) (types.Money, error)
}
