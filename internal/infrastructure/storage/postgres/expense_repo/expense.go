// Package expense_repo provides the PostgreSQL implementation of the
// expense repository.
package expense_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/core/types"
	"github.com/PnBafon/viten-backend/internal/domain"
	"github.com/PnBafon/viten-backend/internal/domain/expense"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres"
)

const expenseTable = "expenses"

var expenseColumns = []string{"id", "date", "description", "amount", "category"}

// ExpenseRepo implements expense.Repository.
type ExpenseRepo struct {
	txManager *postgres.TxManager
}

// NewExpenseRepo creates a new expense repository.
func NewExpenseRepo(txManager *postgres.TxManager) *ExpenseRepo {
	return &ExpenseRepo{txManager: txManager}
}

var _ expense.Repository = (*ExpenseRepo)(nil)

func (r *ExpenseRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new expense and fills in the generated ID.
func (r *ExpenseRepo) Create(ctx context.Context, e *expense.Expense) error {
	q := r.builder().
		Insert(expenseTable).
		Columns("date", "description", "amount", "category").
		Values(e.Date, e.Description, e.Amount, e.Category).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&e.ID); err != nil {
		return fmt.Errorf("insert %s: %w", expenseTable, err)
	}
	return nil
}

// GetByID retrieves an expense by ID.
func (r *ExpenseRepo) GetByID(ctx context.Context, id int64) (*expense.Expense, error) {
	q := r.builder().
		Select(expenseColumns...).
		From(expenseTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var e expense.Expense
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &e, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("expense", id)
		}
		return nil, fmt.Errorf("get by id: %w", err)
	}
	return &e, nil
}

// Update modifies an existing expense.
func (r *ExpenseRepo) Update(ctx context.Context, e *expense.Expense) error {
	q := r.builder().
		Update(expenseTable).
		Set("date", e.Date).
		Set("description", e.Description).
		Set("amount", e.Amount).
		Set("category", e.Category).
		Where(squirrel.Eq{"id": e.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", expenseTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("expense", e.ID)
	}
	return nil
}

// Delete removes an expense.
func (r *ExpenseRepo) Delete(ctx context.Context, id int64) error {
	q := r.builder().
		Delete(expenseTable).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", expenseTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("expense", id)
	}
	return nil
}

// List retrieves expenses with filtering and pagination.
func (r *ExpenseRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*expense.Expense], error) {
	result := domain.ListResult[*expense.Expense]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.builder().
		Select(expenseColumns...).
		From(expenseTable)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"description": pattern},
			squirrel.ILike{"category": pattern},
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

	orderBy, err := postgres.ParseOrderBy(filter.OrderBy, "id DESC", expenseColumns)
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

// TotalForPeriod sums expense amounts over an inclusive date range.
func (r *ExpenseRepo) TotalForPeriod(ctx context.Context, startDate, endDate string) (types.Money, error) {
	q := r.builder().
		Select("COALESCE(SUM(amount), 0)").
		From(expenseTable).
		Where(squirrel.GtOrEq{"substr(date,1,10)": startDate}).
		Where(squirrel.LtOrEq{"substr(date,1,10)": endDate})

	sql, args, err := q.ToSql()
	if err != nil {
		return types.Zero(), fmt.Errorf("build query: %w", err)
	}

	var total types.Money
	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return types.Zero(), fmt.Errorf("sum expenses: %w", err)
	}
	return total, nil
}
