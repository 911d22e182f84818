// Package report_repo provides the PostgreSQL read queries behind the
// gain/loss and deficiency reports.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/PnBafon/viten-backend/internal/domain/debt"
	"github.com/PnBafon/viten-backend/internal/domain/income"
	"github.com/PnBafon/viten-backend/internal/domain/inventory"
	"github.com/PnBafon/viten-backend/internal/domain/reports"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

var _ reports.Repository = (*ReportRepo)(nil)

func (r *ReportRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// ListAllLots retrieves every purchase lot ordered by id ascending. The
// report layer relies on this order for cost basis matching.
func (r *ReportRepo) ListAllLots(ctx context.Context) ([]*inventory.PurchaseLot, error) {
	q := r.builder().
		Select("id", "date", "name", "pcs", "available_stock",
			"unit_price", "total_amount", "stock_deficiency_threshold").
		From("purchases").
		OrderBy("id ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lots []*inventory.PurchaseLot
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lots, sql, args...); err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	return lots, nil
}

// ListIncomesInRange retrieves cash sales in the inclusive date range.
func (r *ReportRepo) ListIncomesInRange(ctx context.Context, startDate, endDate string) ([]*income.Sale, error) {
	q := r.builder().
		Select("id", "date", "name", "pcs", "unit_price", "total_price",
			"client_name", "client_phone", "seller_name",
			"client_signature", "seller_signature", "receipt_number").
		From("incomes").
		Where(squirrel.GtOrEq{"substr(date,1,10)": startDate}).
		Where(squirrel.LtOrEq{"substr(date,1,10)": endDate}).
		OrderBy("id ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var sales []*income.Sale
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &sales, sql, args...); err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	return sales, nil
}

// ListDebtsInRange retrieves credit sales in the inclusive date range.
func (r *ReportRepo) ListDebtsInRange(ctx context.Context, startDate, endDate string) ([]*debt.Debt, error) {
	q := r.builder().
		Select("id", "date", "name", "pcs", "unit_price", "total_price",
			"amount_payable_now", "balance_owed",
			"client_name", "client_phone", "seller_name", "receipt_number").
		From("debts").
		Where(squirrel.GtOrEq{"substr(date,1,10)": startDate}).
		Where(squirrel.LtOrEq{"substr(date,1,10)": endDate}).
		OrderBy("id ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var debts []*debt.Debt
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &debts, sql, args...); err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	return debts, nil
}

// SoldPcsByName sums income and debt pcs per item name over all history.
func (r *ReportRepo) SoldPcsByName(ctx context.Context) (map[string]int64, error) {
	sql := `
		SELECT name, SUM(pcs)::bigint AS pcs
		FROM (
			SELECT name, pcs FROM incomes
			UNION ALL
			SELECT name, pcs FROM debts
		) sales
		GROUP BY name
	`

	querier := r.txManager.GetQuerier(ctx)
	rows, err := querier.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("sum sold pcs: %w", err)
	}
	defer rows.Close()

	sold := make(map[string]int64)
	for rows.Next() {
		var name string
		var pcs int64
		if err := rows.Scan(&name, &pcs); err != nil {
			return nil, fmt.Errorf("scan sold pcs: %w", err)
		}
		sold[name] = pcs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sold pcs: %w", err)
	}
	return sold, nil
}
