package sales_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/core/types"
	"github.com/PnBafon/viten-backend/internal/domain"
	"github.com/PnBafon/viten-backend/internal/domain/debt"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres"
)

const (
	debtTable      = "debts"
	repaymentTable = "debt_repayments"
)

var debtColumns = []string{
	"id", "date", "name", "pcs", "unit_price", "total_price",
	"amount_payable_now", "balance_owed",
	"client_name", "client_phone", "seller_name", "receipt_number",
}

var repaymentColumns = []string{
	"id", "debt_id", "payment_date", "amount", "receipt_number",
}

// DebtRepo implements debt.Repository.
type DebtRepo struct {
	txManager *postgres.TxManager
}

// NewDebtRepo creates a new credit sale repository.
func NewDebtRepo(txManager *postgres.TxManager) *DebtRepo {
	return &DebtRepo{txManager: txManager}
}

var _ debt.Repository = (*DebtRepo)(nil)

func (r *DebtRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *DebtRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().Select(debtColumns...).From(debtTable)
}

// Create inserts a new debt and fills in the generated ID.
func (r *DebtRepo) Create(ctx context.Context, d *debt.Debt) error {
	q := r.builder().
		Insert(debtTable).
		Columns("date", "name", "pcs", "unit_price", "total_price",
			"amount_payable_now", "balance_owed",
			"client_name", "client_phone", "seller_name", "receipt_number").
		Values(d.Date, d.Name, d.Pcs, d.UnitPrice, d.TotalPrice,
			d.AmountPayableNow, d.BalanceOwed,
			d.ClientName, d.ClientPhone, d.SellerName, d.ReceiptNumber).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&d.ID); err != nil {
		return fmt.Errorf("insert %s: %w", debtTable, err)
	}
	return nil
}

// GetByID retrieves a debt by ID.
func (r *DebtRepo) GetByID(ctx context.Context, id int64) (*debt.Debt, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate locks and returns a debt. Must be called inside a
// transaction.
func (r *DebtRepo) GetByIDForUpdate(ctx context.Context, id int64) (*debt.Debt, error) {
	return r.getByID(ctx, id, true)
}

func (r *DebtRepo) getByID(ctx context.Context, id int64, forUpdate bool) (*debt.Debt, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": id}).
		Limit(1)
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var d debt.Debt
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &d, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("debt", id)
		}
		return nil, fmt.Errorf("get by id: %w", err)
	}
	return &d, nil
}

// Update modifies an existing debt.
func (r *DebtRepo) Update(ctx context.Context, d *debt.Debt) error {
	q := r.builder().
		Update(debtTable).
		Set("date", d.Date).
		Set("name", d.Name).
		Set("pcs", d.Pcs).
		Set("unit_price", d.UnitPrice).
		Set("total_price", d.TotalPrice).
		Set("amount_payable_now", d.AmountPayableNow).
		Set("balance_owed", d.BalanceOwed).
		Set("client_name", d.ClientName).
		Set("client_phone", d.ClientPhone).
		Set("seller_name", d.SellerName).
		Where(squirrel.Eq{"id": d.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", debtTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("debt", d.ID)
	}
	return nil
}

// UpdateBalances rewrites only the balance columns of a debt.
func (r *DebtRepo) UpdateBalances(ctx context.Context, id int64, balanceOwed, amountPayableNow types.Money) error {
	q := r.builder().
		Update(debtTable).
		Set("balance_owed", balanceOwed).
		Set("amount_payable_now", amountPayableNow).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update balances: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("debt", id)
	}
	return nil
}

// Delete removes a debt and its repayments.
func (r *DebtRepo) Delete(ctx context.Context, id int64) error {
	// repayments first, debts carry no ON DELETE CASCADE
	repQ := r.builder().
		Delete(repaymentTable).
		Where(squirrel.Eq{"debt_id": id})

	sql, args, err := repQ.ToSql()
	if err != nil {
		return fmt.Errorf("build delete repayments: %w", err)
	}
	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete repayments: %w", err)
	}

	q := r.builder().
		Delete(debtTable).
		Where(squirrel.Eq{"id": id})

	sql, args, err = q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", debtTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("debt", id)
	}
	return nil
}

// List retrieves debts with filtering and pagination.
func (r *DebtRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*debt.Debt], error) {
	result := domain.ListResult[*debt.Debt]{
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

	orderBy, err := postgres.ParseOrderBy(filter.OrderBy, "id DESC", debtColumns)
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
func (r *DebtRepo) SetReceiptNumber(ctx context.Context, id int64, number string) error {
	q := r.builder().
		Update(debtTable).
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
		return apperror.NewNotFound("debt", id)
	}
	return nil
}

// CreateRepayment inserts a repayment and fills in the generated ID.
func (r *DebtRepo) CreateRepayment(ctx context.Context, rep *debt.Repayment) error {
	q := r.builder().
		Insert(repaymentTable).
		Columns("debt_id", "payment_date", "amount", "receipt_number").
		Values(rep.DebtID, rep.PaymentDate, rep.Amount, rep.ReceiptNumber).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&rep.ID); err != nil {
		return fmt.Errorf("insert %s: %w", repaymentTable, err)
	}
	return nil
}

// GetRepaymentByID retrieves a repayment by ID.
func (r *DebtRepo) GetRepaymentByID(ctx context.Context, id int64) (*debt.Repayment, error) {
	q := r.builder().
		Select(repaymentColumns...).
		From(repaymentTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rep debt.Repayment
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &rep, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("repayment", id)
		}
		return nil, fmt.Errorf("get repayment: %w", err)
	}
	return &rep, nil
}

// UpdateRepayment modifies an existing repayment.
func (r *DebtRepo) UpdateRepayment(ctx context.Context, rep *debt.Repayment) error {
	q := r.builder().
		Update(repaymentTable).
		Set("payment_date", rep.PaymentDate).
		Set("amount", rep.Amount).
		Where(squirrel.Eq{"id": rep.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", repaymentTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("repayment", rep.ID)
	}
	return nil
}

// DeleteRepayment removes a repayment.
func (r *DebtRepo) DeleteRepayment(ctx context.Context, id int64) error {
	q := r.builder().
		Delete(repaymentTable).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", repaymentTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("repayment", id)
	}
	return nil
}

// ListRepayments retrieves all repayments for a debt, oldest first.
func (r *DebtRepo) ListRepayments(ctx context.Context, debtID int64) ([]*debt.Repayment, error) {
	q := r.builder().
		Select(repaymentColumns...).
		From(repaymentTable).
		Where(squirrel.Eq{"debt_id": debtID}).
		OrderBy("id ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var reps []*debt.Repayment
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &reps, sql, args...); err != nil {
		return nil, fmt.Errorf("list repayments: %w", err)
	}
	return reps, nil
}

// SetRepaymentReceiptNumber stores the receipt number derived from the row id.
func (r *DebtRepo) SetRepaymentReceiptNumber(ctx context.Context, id int64, number string) error {
	q := r.builder().
		Update(repaymentTable).
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
		return apperror.NewNotFound("repayment", id)
	}
	return nil
}
