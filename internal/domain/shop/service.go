package shop

import (
	"context"

	"github.com/PnBafon/viten-backend/internal/core/tx"
	"github.com/PnBafon/viten-backend/pkg/logger"
)

// Service provides business operations for the shop profile.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new shop service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Get retrieves the profile.
func (s *Service) Get(ctx context.Context) (*Profile, error) {
	return s.repo.Get(ctx)
}

// Save upserts the profile.
func (s *Service) Save(ctx context.Context, p *Profile) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Save(ctx, p)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "shop profile saved", "shopName", p.ShopName)
	return nil
}
