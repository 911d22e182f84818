package inventory

import (
	"context"
	"fmt"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/core/tx"
	"github.com/PnBafon/viten-backend/internal/core/types"
	"github.com/PnBafon/viten-backend/internal/domain"
	"github.com/PnBafon/viten-backend/pkg/logger"
)

// Service provides business operations for purchase lots and stock control.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new inventory service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Create creates a new purchase lot. Available stock starts at pcs and the
// total amount is fixed at write time.
func (s *Service) Create(ctx context.Context, lot *PurchaseLot) error {
	lot.AvailableStock = lot.Pcs
	lot.TotalAmount = lot.UnitPrice.Mul(types.MoneyFromInt(lot.Pcs))

	if err := lot.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, lot); err != nil {
			return fmt.Errorf("create lot: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "purchase lot created",
		"id", lot.ID,
		"name", lot.Name,
		"pcs", lot.Pcs,
	)
	return nil
}

// GetByID retrieves a lot.
func (s *Service) GetByID(ctx context.Context, id int64) (*PurchaseLot, error) {
	return s.repo.GetByID(ctx, id)
}

// Update modifies a lot. The stock counter is carried as-is: changing pcs on
// an existing lot does not resync available stock against sale history.
func (s *Service) Update(ctx context.Context, lot *PurchaseLot) error {
	if err := lot.Validate(ctx); err != nil {
		return err
	}
	lot.TotalAmount = lot.UnitPrice.Mul(types.MoneyFromInt(lot.Pcs))

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, lot); err != nil {
			return fmt.Errorf("update lot: %w", err)
		}
		return nil
	})
}

// Delete removes a lot. Sales recorded against its name keep their monetary
// snapshots; only the stock counter disappears with the lot.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
}

// List retrieves lots with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*PurchaseLot], error) {
	return s.repo.List(ctx, filter)
}

// DeductForSale locks the most-recently-created lot matching name and
// atomically decrements its stock. The check and the decrement are one
// guarded UPDATE: zero rows affected means insufficient stock, so two
// concurrent sales can never both drain the same units.
//
// Must be called inside the sale's transaction so the decrement commits or
// rolls back together with the sale insert.
func (s *Service) DeductForSale(ctx context.Context, name string, pcs int64) (*PurchaseLot, error) {
	if pcs <= 0 {
		return nil, apperror.NewValidation("pcs must be positive").
			WithDetail("field", "pcs")
	}

	lot, err := s.repo.GetLatestByNameForUpdate(ctx, name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("item", name)
		}
		return nil, fmt.Errorf("lookup lot %q: %w", name, err)
	}

	ok, err := s.repo.DeductStock(ctx, lot.ID, pcs)
	if err != nil {
		return nil, fmt.Errorf("deduct stock: %w", err)
	}
	if !ok {
		return nil, apperror.NewInsufficientStock(name, pcs, lot.AvailableStock)
	}

	lot.AvailableStock -= pcs
	return lot, nil
}

// RestoreForSale adds pcs back to the most-recently-created lot matching
// name when a sale is deleted. When the lot is gone the restore is skipped:
// the sale row no longer exists either, so there is nothing left to reconcile.
func (s *Service) RestoreForSale(ctx context.Context, name string, pcs int64) error {
	restored, err := s.repo.RestoreStock(ctx, name, pcs)
	if err != nil {
		return fmt.Errorf("restore stock: %w", err)
	}
	if !restored {
		logger.Warn(ctx, "stock restore skipped, no matching lot",
			"name", name,
			"pcs", pcs,
		)
	}
	return nil
}
