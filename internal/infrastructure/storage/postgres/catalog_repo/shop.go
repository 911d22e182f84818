package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/domain/shop"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres"
)

const profileTable = "shop_profile"

var profileColumns = []string{
	"id", "shop_name", "logo_path", "receipt_header", "receipt_footer",
	"currency_code", "phone", "address",
}

// ShopRepo implements shop.Repository. The table holds a single row with
// id = 1; Save upserts it.
type ShopRepo struct {
	txManager *postgres.TxManager
}

// NewShopRepo creates a new shop profile repository.
func NewShopRepo(txManager *postgres.TxManager) *ShopRepo {
	return &ShopRepo{txManager: txManager}
}

var _ shop.Repository = (*ShopRepo)(nil)

func (r *ShopRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Get retrieves the profile.
func (r *ShopRepo) Get(ctx context.Context) (*shop.Profile, error) {
	q := r.builder().
		Select(profileColumns...).
		From(profileTable).
		Where(squirrel.Eq{"id": 1}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p shop.Profile
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("shop profile", 1)
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// Save upserts the singleton profile row.
func (r *ShopRepo) Save(ctx context.Context, p *shop.Profile) error {
	p.ID = 1

	q := r.builder().
		Insert(profileTable).
		Columns(profileColumns...).
		Values(p.ID, p.ShopName, p.LogoPath, p.ReceiptHeader, p.ReceiptFooter,
			p.CurrencyCode, p.Phone, p.Address).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			shop_name = EXCLUDED.shop_name,
			logo_path = EXCLUDED.logo_path,
			receipt_header = EXCLUDED.receipt_header,
			receipt_footer = EXCLUDED.receipt_footer,
			currency_code = EXCLUDED.currency_code,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address`)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
