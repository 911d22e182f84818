// Package inventory_repo provides the PostgreSQL implementation of the
// purchase lot repository.
package inventory_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/domain"
	"github.com/PnBafon/viten-backend/internal/domain/inventory"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres"
)

const lotTable = "purchases"

var lotColumns = []string{
	"id", "date", "name", "pcs", "available_stock",
	"unit_price", "total_amount", "stock_deficiency_threshold",
}

// LotRepo implements inventory.Repository.
type LotRepo struct {
	txManager *postgres.TxManager
}

// NewLotRepo creates a new purchase lot repository.
func NewLotRepo(txManager *postgres.TxManager) *LotRepo {
	return &LotRepo{txManager: txManager}
}

var _ inventory.Repository = (*LotRepo)(nil)

func (r *LotRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *LotRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().Select(lotColumns...).From(lotTable)
}

// Create inserts a new lot and fills in the generated ID.
func (r *LotRepo) Create(ctx context.Context, lot *inventory.PurchaseLot) error {
	q := r.builder().
		Insert(lotTable).
		Columns("date", "name", "pcs", "available_stock",
			"unit_price", "total_amount", "stock_deficiency_threshold").
		Values(lot.Date, lot.Name, lot.Pcs, lot.AvailableStock,
			lot.UnitPrice, lot.TotalAmount, lot.StockDeficiencyThreshold).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&lot.ID); err != nil {
		return fmt.Errorf("insert %s: %w", lotTable, err)
	}
	return nil
}

// GetByID retrieves a lot by ID.
func (r *LotRepo) GetByID(ctx context.Context, id int64) (*inventory.PurchaseLot, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": id}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lot inventory.PurchaseLot
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &lot, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("purchase lot", id)
		}
		return nil, fmt.Errorf("get by id: %w", err)
	}
	return &lot, nil
}

// Update modifies an existing lot.
func (r *LotRepo) Update(ctx context.Context, lot *inventory.PurchaseLot) error {
	q := r.builder().
		Update(lotTable).
		Set("date", lot.Date).
		Set("name", lot.Name).
		Set("pcs", lot.Pcs).
		Set("available_stock", lot.AvailableStock).
		Set("unit_price", lot.UnitPrice).
		Set("total_amount", lot.TotalAmount).
		Set("stock_deficiency_threshold", lot.StockDeficiencyThreshold).
		Where(squirrel.Eq{"id": lot.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", lotTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("purchase lot", lot.ID)
	}
	return nil
}

// Delete removes a lot.
func (r *LotRepo) Delete(ctx context.Context, id int64) error {
	q := r.builder().
		Delete(lotTable).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", lotTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("purchase lot", id)
	}
	return nil
}

// List retrieves lots with filtering and pagination.
func (r *LotRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*inventory.PurchaseLot], error) {
	result := domain.ListResult[*inventory.PurchaseLot]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"name": "%" + filter.Search + "%"})
	}
	if filter.StartDate != "" {
		q = q.Where(squirrel.GtOrEq{"substr(date,1,10)": filter.StartDate})
	}
	if filter.EndDate != "" {
		q = q.Where(squirrel.LtOrEq{"substr(date,1,10)": filter.EndDate})
	}

	countQ := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := postgres.ParseOrderBy(filter.OrderBy, "id DESC", lotColumns)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list: %w", err)
	}
	return result, nil
}

// GetLatestByNameForUpdate locks and returns the most-recently-created lot
// matching name. Must be called inside a transaction.
func (r *LotRepo) GetLatestByNameForUpdate(ctx context.Context, name string) (*inventory.PurchaseLot, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"name": name}).
		OrderBy("id DESC").
		Limit(1).
		Suffix("FOR UPDATE")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lot inventory.PurchaseLot
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &lot, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("purchase lot", name)
		}
		return nil, fmt.Errorf("get latest by name: %w", err)
	}
	return &lot, nil
}

// DeductStock decrements available_stock, guarded so it can never go
// negative. Zero rows affected means the guard rejected the decrement.
func (r *LotRepo) DeductStock(ctx context.Context, lotID, pcs int64) (bool, error) {
	q := r.builder().
		Update(lotTable).
		Set("available_stock", squirrel.Expr("available_stock - ?", pcs)).
		Where(squirrel.Eq{"id": lotID}).
		Where(squirrel.GtOrEq{"available_stock": pcs})

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("deduct stock: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// RestoreStock adds pcs back to the most-recently-created lot matching name.
func (r *LotRepo) RestoreStock(ctx context.Context, name string, pcs int64) (bool, error) {
	sql := fmt.Sprintf(`
		UPDATE %s SET available_stock = available_stock + $1
		WHERE id = (SELECT id FROM %s WHERE name = $2 ORDER BY id DESC LIMIT 1)
	`, lotTable, lotTable)

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, pcs, name)
	if err != nil {
		return false, fmt.Errorf("restore stock: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
