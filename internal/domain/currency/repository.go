package currency

import (
	"context"
)

// Repository defines persistence operations for currencies.
type Repository interface {
	// Create inserts a new currency and fills in the generated ID.
	Create(ctx context.Context, c *Currency) error

	// GetByID retrieves a currency by ID.
	GetByID(ctx context.Context, id int64) (*Currency, error)

	// GetByCode retrieves a currency by its ISO code.
	GetByCode(ctx context.Context, code string) (*Currency, error)

	// GetBase retrieves the base currency.
	GetBase(ctx context.Context) (*Currency, error)

	// Update modifies an existing currency.
	Update(ctx context.Context, c *Currency) error

	// ClearBase unsets the is_base flag on every currency.
	ClearBase(ctx context.Context) error

	// Delete removes a currency.
	Delete(ctx context.Context, id int64) error

	// List retrieves all currencies ordered by code.
	List(ctx context.Context) ([]*Currency, error)
}
