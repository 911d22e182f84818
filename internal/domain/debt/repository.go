package debt

import (
	"context"

	"github.com/PnBafon/viten-backend/internal/core/types"
	"github.com/PnBafon/viten-backend/internal/domain"
)

// Repository defines persistence operations for debts and repayments.
type Repository interface {
	// Create inserts a new debt and fills in the generated ID.
	Create(ctx context.Context, debt *Debt) error

	// GetByID retrieves a debt by ID.
	GetByID(ctx context.Context, id int64) (*Debt, error)

	// GetByIDForUpdate locks and returns a debt. Must be called inside a
	// transaction.
	GetByIDForUpdate(ctx context.Context, id int64) (*Debt, error)

	// Update modifies an existing debt.
	Update(ctx context.Context, debt *Debt) error

	// UpdateBalances rewrites only the balance columns of a debt.
	UpdateBalances(ctx context.Context, id int64, balanceOwed, amountPayableNow types.Money) error

	// Delete removes a debt and its repayments.
	Delete(ctx context.Context, id int64) error

	// List retrieves debts with filtering and pagination.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Debt], error)

	// SetReceiptNumber stores the receipt number derived from the row id.
	SetReceiptNumber(ctx context.Context, id int64, number string) error

	// CreateRepayment inserts a repayment and fills in the generated ID.
	CreateRepayment(ctx context.Context, rep *Repayment) error

	// GetRepaymentByID retrieves a repayment by ID.
	GetRepaymentByID(ctx context.Context, id int64) (*Repayment, error)

	// UpdateRepayment modifies an existing repayment.
	UpdateRepayment(ctx context.Context, rep *Repayment) error

	// DeleteRepayment removes a repayment.
	DeleteRepayment(ctx context.Context, id int64) error

	// ListRepayments retrieves all repayments for a debt, oldest first.
	ListRepayments(ctx context.Context, debtID int64) ([]*Repayment, error)

	// SetRepaymentReceiptNumber stores the receipt number derived from the row id.
	SetRepaymentReceiptNumber(ctx context.Context, id int64, number string) error
}
