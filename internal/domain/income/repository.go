package income

import (
	"context"

	"github.com/PnBafon/viten-backend/internal/domain"
)

// Repository defines persistence operations for cash sales.
type Repository interface {
	// Create inserts a new sale and fills in the generated ID.
	Create(ctx context.Context, sale *Sale) error

	// GetByID retrieves a sale by ID.
	GetByID(ctx context.Context, id int64) (*Sale, error)

	// Update modifies an existing sale.
	Update(ctx context.Context, sale *Sale) error

	// Delete removes a sale.
	Delete(ctx context.Context, id int64) error

	// List retrieves sales with filtering and pagination.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Sale], error)

	// SetReceiptNumber stores the receipt number derived from the row id.
	SetReceiptNumber(ctx context.Context, id int64, number string) error
}
