package reports

import (
	"context"

	"github.com/PnBafon/viten-backend/internal/domain/debt"
	"github.com/PnBafon/viten-backend/internal/domain/income"
	"github.com/PnBafon/viten-backend/internal/domain/inventory"
)

// Repository defines the read queries behind the reports.
type Repository interface {
	// ListAllLots retrieves every purchase lot ordered by id ascending.
	ListAllLots(ctx context.Context) ([]*inventory.PurchaseLot, error)

	// ListIncomesInRange retrieves cash sales whose date falls in the
	// inclusive range, in query order.
	ListIncomesInRange(ctx context.Context, startDate, endDate string) ([]*income.Sale, error)

	// ListDebtsInRange retrieves credit sales whose date falls in the
	// inclusive range, in query order.
	ListDebtsInRange(ctx context.Context, startDate, endDate string) ([]*debt.Debt, error)

	// SoldPcsByName sums income and debt pcs per item name over all history.
	SoldPcsByName(ctx context.Context) (map[string]int64, error)
}
