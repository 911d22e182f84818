package expense

import (
	"context"
	"fmt"

	"github.com/PnBafon/viten-backend/internal/core/tx"
	"github.com/PnBafon/viten-backend/internal/core/types"
	"github.com/PnBafon/viten-backend/internal/domain"
	"github.com/PnBafon/viten-backend/pkg/logger"
)

// Service provides business operations for expenses.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new expense service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Create records an expense.
func (s *Service) Create(ctx context.Context, e *Expense) error {
	if err := e.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, e); err != nil {
			return fmt.Errorf("create expense: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "expense recorded",
		"id", e.ID,
		"amount", e.Amount,
		"category", e.Category,
	)
	return nil
}

// GetByID retrieves an expense.
func (s *Service) GetByID(ctx context.Context, id int64) (*Expense, error) {
	return s.repo.GetByID(ctx, id)
}

// Update modifies an expense.
func (s *Service) Update(ctx context.Context, e *Expense) error {
	if err := e.Validate(ctx); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, e); err != nil {
			return fmt.Errorf("update expense: %w", err)
		}
		return nil
	})
}

// Delete removes an expense.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
}

// List retrieves expenses with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Expense], error) {
	return s.repo.List(ctx, filter)
}

// TotalForPeriod sums expenses over an inclusive date range. Empty bounds
// default to the full history up to today.
func (s *Service) TotalForPeriod(ctx context.Context, startDate, endDate string) (types.Money, error) {
	if startDate == "" {
		startDate = "1970-01-01"
	}
	if endDate == "" {
		endDate = types.Today()
	}
	return s.repo.TotalForPeriod(ctx, types.DateKey(startDate), types.DateKey(endDate))
}
