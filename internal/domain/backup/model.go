// Package backup exports and restores the full ledger as one compressed
// JSON snapshot. Accounts are deliberately left out so credentials never
// leave the machine.
package backup

import (
	"time"

	"github.com/PnBafon/viten-backend/internal/domain/currency"
	"github.com/PnBafon/viten-backend/internal/domain/debt"
	"github.com/PnBafon/viten-backend/internal/domain/expense"
	"github.com/PnBafon/viten-backend/internal/domain/income"
	"github.com/PnBafon/viten-backend/internal/domain/inventory"
	"github.com/PnBafon/viten-backend/internal/domain/shop"
)

// SnapshotVersion is bumped on incompatible snapshot layout changes.
const SnapshotVersion = 1

// Snapshot is the exported ledger.
type Snapshot struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`

	Purchases  []*inventory.PurchaseLot `json:"purchases"`
	Incomes    []*income.Sale           `json:"incomes"`
	Debts      []*debt.Debt             `json:"debts"`
	Repayments []*debt.Repayment        `json:"repayments"`
	Expenses   []*expense.Expense       `json:"expenses"`
	Currencies []*currency.Currency     `json:"currencies"`
	Profile    *shop.Profile            `json:"profile,omitempty"`
}
