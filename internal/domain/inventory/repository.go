package inventory

import (
	"context"

	"github.com/PnBafon/viten-backend/internal/domain"
)

// Repository defines persistence operations for purchase lots.
type Repository interface {
	// Create inserts a new lot and fills in the generated ID.
	Create(ctx context.Context, lot *PurchaseLot) error

	// GetByID retrieves a lot by ID.
	GetByID(ctx context.Context, id int64) (*PurchaseLot, error)

	// Update modifies an existing lot.
	Update(ctx context.Context, lot *PurchaseLot) error

	// Delete removes a lot.
	Delete(ctx context.Context, id int64) error

	// List retrieves lots with filtering and pagination.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*PurchaseLot], error)

	// GetLatestByNameForUpdate locks and returns the most-recently-created lot
	// whose name matches exactly (highest id wins). Must be called inside a
	// transaction.
	GetLatestByNameForUpdate(ctx context.Context, name string) (*PurchaseLot, error)

	// DeductStock atomically decrements available_stock by pcs, guarded by
	// available_stock >= pcs. Returns false when the guard rejected the
	// update (insufficient stock).
	DeductStock(ctx context.Context, lotID, pcs int64) (bool, error)

	// RestoreStock adds pcs back to the most-recently-created lot matching
	// name. Returns false when no lot matches.
	RestoreStock(ctx context.Context, name string, pcs int64) (bool, error)
}
