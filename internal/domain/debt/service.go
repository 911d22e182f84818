package debt

import (
	"context"
	"fmt"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/core/tx"
	"github.com/PnBafon/viten-backend/internal/core/types"
	"github.com/PnBafon/viten-backend/internal/domain"
	"github.com/PnBafon/viten-backend/internal/domain/inventory"
	"github.com/PnBafon/viten-backend/pkg/logger"
	"github.com/PnBafon/viten-backend/pkg/receipt"
)

// StockController adjusts lot stock on behalf of a sale. Satisfied by the
// inventory service.
type StockController interface {
	DeductForSale(ctx context.Context, name string, pcs int64) (*inventory.PurchaseLot, error)
	RestoreForSale(ctx context.Context, name string, pcs int64) error
}

// Service provides business operations for credit sales and repayments.
type Service struct {
	repo      Repository
	stock     StockController
	txManager tx.Manager
}

// NewService creates a new debt service.
func NewService(repo Repository, stock StockController, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		stock:     stock,
		txManager: txManager,
	}
}

// Create records a credit sale. Stock deduction, the debt insert and the
// receipt number assignment run in one transaction.
func (s *Service) Create(ctx context.Context, debt *Debt) error {
	debt.TotalPrice = debt.UnitPrice.Mul(types.MoneyFromInt(debt.Pcs))
	debt.BalanceOwed = debt.TotalPrice.Sub(debt.AmountPayableNow)

	if err := debt.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.stock.DeductForSale(ctx, debt.Name, debt.Pcs); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, debt); err != nil {
			return fmt.Errorf("create debt: %w", err)
		}
		debt.ReceiptNumber = receipt.Debt(debt.ID)
		if err := s.repo.SetReceiptNumber(ctx, debt.ID, debt.ReceiptNumber); err != nil {
			return fmt.Errorf("assign receipt number: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "credit sale recorded",
		"id", debt.ID,
		"receipt", debt.ReceiptNumber,
		"name", debt.Name,
		"pcs", debt.Pcs,
		"balanceOwed", debt.BalanceOwed,
	)
	return nil
}

// GetByID retrieves a debt.
func (s *Service) GetByID(ctx context.Context, id int64) (*Debt, error) {
	return s.repo.GetByID(ctx, id)
}

// Update modifies a debt. The total and balance are recomputed from the
// submitted fields, but stock is NOT resynced when pcs changes.
func (s *Service) Update(ctx context.Context, debt *Debt) error {
	debt.TotalPrice = debt.UnitPrice.Mul(types.MoneyFromInt(debt.Pcs))
	debt.BalanceOwed = debt.TotalPrice.Sub(debt.AmountPayableNow)

	if err := debt.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetByID(ctx, debt.ID)
	if err != nil {
		return err
	}
	debt.ReceiptNumber = existing.ReceiptNumber

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, debt); err != nil {
			return fmt.Errorf("update debt: %w", err)
		}
		return nil
	})
}

// Delete removes a debt together with its repayments and returns its units to
// stock in the same transaction.
func (s *Service) Delete(ctx context.Context, id int64) error {
	debt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete debt: %w", err)
		}
		return s.stock.RestoreForSale(ctx, debt.Name, debt.Pcs)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "credit sale deleted",
		"id", id,
		"name", debt.Name,
		"pcs", debt.Pcs,
	)
	return nil
}

// List retrieves debts with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Debt], error) {
	return s.repo.List(ctx, filter)
}

// ListRepayments retrieves all repayments for a debt, oldest first.
func (s *Service) ListRepayments(ctx context.Context, debtID int64) ([]*Repayment, error) {
	if _, err := s.repo.GetByID(ctx, debtID); err != nil {
		return nil, err
	}
	return s.repo.ListRepayments(ctx, debtID)
}

// CreateRepayment records a payment against a debt. The debt row is locked
// for the whole operation: the repayment insert and the balance shift commit
// together. A repayment larger than the outstanding balance is rejected.
func (s *Service) CreateRepayment(ctx context.Context, rep *Repayment) error {
	if err := rep.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		debt, err := s.repo.GetByIDForUpdate(ctx, rep.DebtID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("debt", rep.DebtID)
			}
			return fmt.Errorf("lock debt %d: %w", rep.DebtID, err)
		}

		if rep.Amount.GreaterThan(debt.BalanceOwed) {
			return apperror.NewExceedsBalance(debt.ID, rep.Amount.String(), debt.BalanceOwed.String())
		}

		if err := s.repo.CreateRepayment(ctx, rep); err != nil {
			return fmt.Errorf("create repayment: %w", err)
		}
		rep.ReceiptNumber = receipt.Repayment(rep.ID)
		if err := s.repo.SetRepaymentReceiptNumber(ctx, rep.ID, rep.ReceiptNumber); err != nil {
			return fmt.Errorf("assign receipt number: %w", err)
		}

		newBalance := debt.BalanceOwed.Sub(rep.Amount)
		newPayable := debt.AmountPayableNow.Add(rep.Amount)
		return s.repo.UpdateBalances(ctx, debt.ID, newBalance, newPayable)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "repayment recorded",
		"id", rep.ID,
		"receipt", rep.ReceiptNumber,
		"debtId", rep.DebtID,
		"amount", rep.Amount,
	)
	return nil
}

// UpdateRepayment changes the amount or date of a repayment and shifts the
// debt balances by the amount difference. A change that would drive
// balance_owed negative is rejected.
func (s *Service) UpdateRepayment(ctx context.Context, rep *Repayment) error {
	if err := rep.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetRepaymentByID(ctx, rep.ID)
		if err != nil {
			return err
		}
		rep.DebtID = existing.DebtID
		rep.ReceiptNumber = existing.ReceiptNumber

		debt, err := s.repo.GetByIDForUpdate(ctx, existing.DebtID)
		if err != nil {
			return fmt.Errorf("lock debt %d: %w", existing.DebtID, err)
		}

		diff := rep.Amount.Sub(existing.Amount)
		newBalance := debt.BalanceOwed.Sub(diff)
		if newBalance.IsNegative() {
			return apperror.NewNegativeBalance(debt.ID, newBalance.String())
		}
		newPayable := debt.AmountPayableNow.Add(diff)

		if err := s.repo.UpdateRepayment(ctx, rep); err != nil {
			return fmt.Errorf("update repayment: %w", err)
		}
		return s.repo.UpdateBalances(ctx, debt.ID, newBalance, newPayable)
	})
}

// DeleteRepayment removes a repayment and reverses its effect on the debt.
// balance_owed gets the amount back unconditionally; amount_payable_now is
// floored at zero, so a payable that was edited down below the repayment
// amount does not go negative.
func (s *Service) DeleteRepayment(ctx context.Context, id int64) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetRepaymentByID(ctx, id)
		if err != nil {
			return err
		}

		debt, err := s.repo.GetByIDForUpdate(ctx, existing.DebtID)
		if err != nil {
			return fmt.Errorf("lock debt %d: %w", existing.DebtID, err)
		}

		if err := s.repo.DeleteRepayment(ctx, id); err != nil {
			return fmt.Errorf("delete repayment: %w", err)
		}

		newBalance := debt.BalanceOwed.Add(existing.Amount)
		newPayable := debt.AmountPayableNow.Sub(existing.Amount)
		if newPayable.IsNegative() {
			newPayable = types.Zero()
		}
		return s.repo.UpdateBalances(ctx, debt.ID, newBalance, newPayable)
	})
}
