// Package catalog_repo provides the PostgreSQL implementations of the
// currency catalog and shop profile repositories.
package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/domain/currency"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres"
)

const currencyTable = "currencies"

var currencyColumns = []string{"id", "code", "symbol", "rate_to_base", "is_base"}

// CurrencyRepo implements currency.Repository.
type CurrencyRepo struct {
	txManager *postgres.TxManager
}

// NewCurrencyRepo creates a new currency repository.
func NewCurrencyRepo(txManager *postgres.TxManager) *CurrencyRepo {
	return &CurrencyRepo{txManager: txManager}
}

var _ currency.Repository = (*CurrencyRepo)(nil)

func (r *CurrencyRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *CurrencyRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().Select(currencyColumns...).From(currencyTable)
}

// Create inserts a new currency and fills in the generated ID.
func (r *CurrencyRepo) Create(ctx context.Context, c *currency.Currency) error {
	q := r.builder().
		Insert(currencyTable).
		Columns("code", "symbol", "rate_to_base", "is_base").
		Values(c.Code, c.Symbol, c.RateToBase, c.IsBase).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&c.ID); err != nil {
		return fmt.Errorf("insert %s: %w", currencyTable, err)
	}
	return nil
}

// GetByID retrieves a currency by ID.
func (r *CurrencyRepo) GetByID(ctx context.Context, id int64) (*currency.Currency, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": id}).
		Limit(1)

	return r.getOne(ctx, q, id)
}

// GetByCode retrieves a currency by its ISO code.
func (r *CurrencyRepo) GetByCode(ctx context.Context, code string) (*currency.Currency, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"code": code}).
		Limit(1)

	return r.getOne(ctx, q, code)
}

// GetBase retrieves the base currency.
func (r *CurrencyRepo) GetBase(ctx context.Context) (*currency.Currency, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"is_base": true}).
		Limit(1)

	return r.getOne(ctx, q, "base")
}

func (r *CurrencyRepo) getOne(ctx context.Context, q squirrel.SelectBuilder, key any) (*currency.Currency, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c currency.Currency
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("currency", key)
		}
		return nil, fmt.Errorf("get currency: %w", err)
	}
	return &c, nil
}

// Update modifies an existing currency.
func (r *CurrencyRepo) Update(ctx context.Context, c *currency.Currency) error {
	q := r.builder().
		Update(currencyTable).
		Set("code", c.Code).
		Set("symbol", c.Symbol).
		Set("rate_to_base", c.RateToBase).
		Set("is_base", c.IsBase).
		Where(squirrel.Eq{"id": c.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", currencyTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("currency", c.ID)
	}
	return nil
}

// ClearBase unsets the is_base flag on every currency.
func (r *CurrencyRepo) ClearBase(ctx context.Context) error {
	q := r.builder().
		Update(currencyTable).
		Set("is_base", false).
		Where(squirrel.Eq{"is_base": true})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("clear base: %w", err)
	}
	return nil
}

// Delete removes a currency.
func (r *CurrencyRepo) Delete(ctx context.Context, id int64) error {
	q := r.builder().
		Delete(currencyTable).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", currencyTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("currency", id)
	}
	return nil
}

// List retrieves all currencies ordered by code.
func (r *CurrencyRepo) List(ctx context.Context) ([]*currency.Currency, error) {
	q := r.baseSelect().OrderBy("code ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var list []*currency.Currency
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	return list, nil
}
