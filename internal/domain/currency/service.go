package currency

import (
	"context"
	"fmt"
	"strings"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/core/tx"
	"github.com/PnBafon/viten-backend/internal/core/types"
	"github.com/PnBafon/viten-backend/pkg/logger"
)

// Service provides business operations for the currency catalog.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new currency service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Create adds a currency. Marking it base demotes the previous base in the
// same transaction so the catalog never holds two bases.
func (s *Service) Create(ctx context.Context, c *Currency) error {
	c.Code = strings.ToUpper(c.Code)
	if err := c.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByCode(ctx, c.Code); err == nil {
			return apperror.NewConflict(fmt.Sprintf("currency %s already exists", c.Code))
		} else if !apperror.IsNotFound(err) {
			return err
		}
		if c.IsBase {
			if err := s.repo.ClearBase(ctx); err != nil {
				return fmt.Errorf("clear base flag: %w", err)
			}
		}
		return s.repo.Create(ctx, c)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "currency created", "code", c.Code, "isBase", c.IsBase)
	return nil
}

// GetByID retrieves a currency.
func (s *Service) GetByID(ctx context.Context, id int64) (*Currency, error) {
	return s.repo.GetByID(ctx, id)
}

// Update modifies a currency. Demoting the only base currency is rejected;
// promoting a new base demotes the old one.
func (s *Service) Update(ctx context.Context, c *Currency) error {
	c.Code = strings.ToUpper(c.Code)
	if err := c.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, c.ID)
		if err != nil {
			return err
		}
		if existing.IsBase && !c.IsBase {
			return apperror.NewBusinessRule(apperror.CodeBusinessRule,
				"cannot demote the base currency; promote another currency instead")
		}
		if c.IsBase && !existing.IsBase {
			if err := s.repo.ClearBase(ctx); err != nil {
				return fmt.Errorf("clear base flag: %w", err)
			}
		}
		return s.repo.Update(ctx, c)
	})
}

// Delete removes a currency. The base currency cannot be deleted.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing.IsBase {
			return apperror.NewBusinessRule(apperror.CodeBusinessRule,
				"cannot delete the base currency")
		}
		return s.repo.Delete(ctx, id)
	})
}

// List retrieves all currencies.
func (s *Service) List(ctx context.Context) ([]*Currency, error) {
	return s.repo.List(ctx)
}

// Convert converts an amount between two currencies through the base rates.
func (s *Service) Convert(ctx context.Context, amount types.Money, fromCode, toCode string) (types.Money, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if fromCode == toCode {
		return amount, nil
	}

	from, err := s.repo.GetByCode(ctx, fromCode)
	if err != nil {
		return types.Zero(), err
	}
	to, err := s.repo.GetByCode(ctx, toCode)
	if err != nil {
		return types.Zero(), err
	}

	// through base: amount * from.rate / to.rate
	return amount.Mul(from.RateToBase).Div(to.RateToBase), nil
}
