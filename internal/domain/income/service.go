package income

import (
	"context"
	"fmt"

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

// Service provides business operations for cash sales.
type Service struct {
	repo      Repository
	stock     StockController
	txManager tx.Manager
}

// NewService creates a new income service.
func NewService(repo Repository, stock StockController, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		stock:     stock,
		txManager: txManager,
	}
}

// Create records a cash sale. Stock deduction, the sale insert and the receipt
// number assignment run in one transaction: either the sale exists and the
// stock went down, or neither happened.
func (s *Service) Create(ctx context.Context, sale *Sale) error {
	sale.TotalPrice = sale.UnitPrice.Mul(types.MoneyFromInt(sale.Pcs))

	if err := sale.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.stock.DeductForSale(ctx, sale.Name, sale.Pcs); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, sale); err != nil {
			return fmt.Errorf("create sale: %w", err)
		}
		sale.ReceiptNumber = receipt.Sale(sale.ID)
		if err := s.repo.SetReceiptNumber(ctx, sale.ID, sale.ReceiptNumber); err != nil {
			return fmt.Errorf("assign receipt number: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "cash sale recorded",
		"id", sale.ID,
		"receipt", sale.ReceiptNumber,
		"name", sale.Name,
		"pcs", sale.Pcs,
	)
	return nil
}

// GetByID retrieves a sale.
func (s *Service) GetByID(ctx context.Context, id int64) (*Sale, error) {
	return s.repo.GetByID(ctx, id)
}

// Update modifies a sale. The total is recomputed from the submitted pcs and
// unit price, but stock is NOT resynced: editing pcs on an existing sale
// leaves the lot counter where the original sale put it.
func (s *Service) Update(ctx context.Context, sale *Sale) error {
	sale.TotalPrice = sale.UnitPrice.Mul(types.MoneyFromInt(sale.Pcs))

	if err := sale.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetByID(ctx, sale.ID)
	if err != nil {
		return err
	}
	sale.ReceiptNumber = existing.ReceiptNumber

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, sale); err != nil {
			return fmt.Errorf("update sale: %w", err)
		}
		return nil
	})
}

// Delete removes a sale and returns its units to stock in the same
// transaction. When no lot matches the name anymore the restore is skipped.
func (s *Service) Delete(ctx context.Context, id int64) error {
	sale, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete sale: %w", err)
		}
		return s.stock.RestoreForSale(ctx, sale.Name, sale.Pcs)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "cash sale deleted",
		"id", id,
		"name", sale.Name,
		"pcs", sale.Pcs,
	)
	return nil
}

// List retrieves sales with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Sale], error) {
	return s.repo.List(ctx, filter)
}
