// Package sales_repo provides the PostgreSQL implementations of the cash
// sale and credit sale repositories.
package sales_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/domain"
	"github.com/PnBafon/viten-backend/internal/domain/income"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres"
)

const incomeTable = "incomes"

var incomeColumns = []string{
	"id", "date", "name", "pcs", "unit_price", "total_price",
	"client_name", "client_phone", "seller_name",
	"client_signature", "seller_signature", "receipt_number",
}

// IncomeRepo implements income.Repository.
type IncomeRepo struct {
	txManager *postgres.TxManager
}

// NewIncomeRepo creates a new cash sale repository.
func NewIncomeRepo(txManager *postgres.TxManager) *IncomeRepo {
	return &IncomeRepo{txManager: txManager}
}

var _ income.Repository = (*IncomeRepo)(nil)

func (r *IncomeRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *IncomeRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().Select(incomeColumns...).From(incomeTable)
}

// Create inserts a new sale and fills in the generated ID.
func (r *IncomeRepo) Create(ctx context.Context, sale *income.Sale) error {
	q := r.builder().
		Insert(incomeTable).
		Columns("date", "name", "pcs", "unit_price", "total_price",
			"client_name", "client_phone", "seller_name",
			"client_signature", "seller_signature", "receipt_number").
		Values(sale.Date, sale.Name, sale.Pcs, sale.UnitPrice, sale.TotalPrice,
			sale.ClientName, sale.ClientPhone, sale.SellerName,
			sale.ClientSignature, sale.SellerSignature, sale.ReceiptNumber).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&sale.ID); err != nil {
		return fmt.Errorf("insert %s: %w", incomeTable, err)
	}
	return nil
}

// GetByID retrieves a sale by ID.
func (r *IncomeRepo) GetByID(ctx context.Context, id int64) (*income.Sale, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": id}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var sale income.Sale
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &sale, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("income", id)
		}
		return nil, fmt.Errorf("get by id: %w", err)
	}
	return &sale, nil
}

// Update modifies an existing sale.
func (r *IncomeRepo) Update(ctx context.Context, sale *income.Sale) error {
	q := r.builder().
		Update(incomeTable).
		Set("date", sale.Date).
		Set("name", sale.Name).
		Set("pcs", sale.Pcs).
		Set("unit_price", sale.UnitPrice).
		Set("total_price", sale.TotalPrice).
		Set("client_name", sale.ClientName).
		Set("client_phone", sale.ClientPhone).
		Set("seller_name", sale.SellerName).
		Set("client_signature", sale.ClientSignature).
		Set("seller_signature", sale.SellerSignature).
		Where(squirrel.Eq{"id": sale.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", incomeTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("income", sale.ID)
	}
	return nil
}

// Delete removes a sale.
func (r *IncomeRepo) Delete(ctx context.Context, id int64) error {
	q := r.builder().
		Delete(incomeTable).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", incomeTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("income", id)
	}
	return nil
}

// List retrieves sales with filtering and pagination.
func (r *IncomeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*income.Sale], error) {
	result := domain.ListResult[*income.Sale]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"client_name": pattern},
			squirrel.ILike{"receipt_number": pattern},
		})
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

	orderBy, err := postgres.ParseOrderBy(filter.OrderBy, "id DESC", incomeColumns)
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

// SetReceiptNumber stores the receipt number derived from the row id.
func (r *IncomeRepo) SetReceiptNumber(ctx context.Context, id int64, number string) error {
	q := r.builder().
		Update(incomeTable).
		Set("receipt_number", number).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set receipt number: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("income", id)
	}
	return nil
}
