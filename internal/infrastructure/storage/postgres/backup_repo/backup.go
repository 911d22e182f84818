// Package backup_repo provides bulk ledger reads and writes for snapshots.
package backup_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/PnBafon/viten-backend/internal/core/apperror"
	"github.com/PnBafon/viten-backend/internal/domain/backup"
	"github.com/PnBafon/viten-backend/internal/domain/shop"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres"
)

// ledgerTables lists every table covered by a snapshot, in restore order
// (parents before children). Users are excluded on purpose.
var ledgerTables = []string{
	"purchases", "incomes", "debts", "debt_repayments",
	"expenses", "currencies", "shop_profile",
}

// BackupRepo implements backup.Repository.
type BackupRepo struct {
	txManager *postgres.TxManager
}

// NewBackupRepo creates a new backup repository.
func NewBackupRepo(txManager *postgres.TxManager) *BackupRepo {
	return &BackupRepo{txManager: txManager}
}

var _ backup.Repository = (*BackupRepo)(nil)

func (r *BackupRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// LoadSnapshot reads every ledger table into a snapshot.
func (r *BackupRepo) LoadSnapshot(ctx context.Context) (*backup.Snapshot, error) {
	snap := &backup.Snapshot{}
	querier := r.txManager.GetQuerier(ctx)

	load := func(dst any, table string) error {
		q := r.builder().Select("*").From(table).OrderBy("id ASC")
		sql, args, err := q.ToSql()
		if err != nil {
			return fmt.Errorf("build query: %w", err)
		}
		if err := pgxscan.Select(ctx, querier, dst, sql, args...); err != nil {
			return fmt.Errorf("load %s: %w", table, err)
		}
		return nil
	}

	if err := load(&snap.Purchases, "purchases"); err != nil {
		return nil, err
	}
	if err := load(&snap.Incomes, "incomes"); err != nil {
		return nil, err
	}
	if err := load(&snap.Debts, "debts"); err != nil {
		return nil, err
	}
	if err := load(&snap.Repayments, "debt_repayments"); err != nil {
		return nil, err
	}
	if err := load(&snap.Expenses, "expenses"); err != nil {
		return nil, err
	}
	if err := load(&snap.Currencies, "currencies"); err != nil {
		return nil, err
	}

	var profiles []*shop.Profile
	if err := load(&profiles, "shop_profile"); err != nil {
		return nil, err
	}
	if len(profiles) > 0 {
		snap.Profile = profiles[0]
	}

	return snap, nil
}

// ReplaceAll wipes the ledger tables and writes the snapshot's rows,
// preserving their original ids. Must run inside a transaction.
func (r *BackupRepo) ReplaceAll(ctx context.Context, snap *backup.Snapshot) error {
	querier := r.txManager.GetQuerier(ctx)
	if r.txManager.GetTx(ctx) == nil {
		return apperror.NewInternal(fmt.Errorf("restore requires a transaction"))
	}

	// children first
	for i := len(ledgerTables) - 1; i >= 0; i-- {
		if _, err := querier.Exec(ctx, "DELETE FROM "+ledgerTables[i]); err != nil {
			return fmt.Errorf("wipe %s: %w", ledgerTables[i], err)
		}
	}

	insert := func(table string, cols []string, vals []any) error {
		q := r.builder().Insert(table).Columns(cols...).Values(vals...)
		sql, args, err := q.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("restore %s row: %w", table, err)
		}
		return nil
	}

	for _, lot := range snap.Purchases {
		err := insert("purchases",
			[]string{"id", "date", "name", "pcs", "available_stock",
				"unit_price", "total_amount", "stock_deficiency_threshold"},
			[]any{lot.ID, lot.Date, lot.Name, lot.Pcs, lot.AvailableStock,
				lot.UnitPrice, lot.TotalAmount, lot.StockDeficiencyThreshold})
		if err != nil {
			return err
		}
	}

	for _, sale := range snap.Incomes {
		err := insert("incomes",
			[]string{"id", "date", "name", "pcs", "unit_price", "total_price",
				"client_name", "client_phone", "seller_name",
				"client_signature", "seller_signature", "receipt_number"},
			[]any{sale.ID, sale.Date, sale.Name, sale.Pcs, sale.UnitPrice, sale.TotalPrice,
				sale.ClientName, sale.ClientPhone, sale.SellerName,
				sale.ClientSignature, sale.SellerSignature, sale.ReceiptNumber})
		if err != nil {
			return err
		}
	}

	for _, d := range snap.Debts {
		err := insert("debts",
			[]string{"id", "date", "name", "pcs", "unit_price", "total_price",
				"amount_payable_now", "balance_owed",
				"client_name", "client_phone", "seller_name", "receipt_number"},
			[]any{d.ID, d.Date, d.Name, d.Pcs, d.UnitPrice, d.TotalPrice,
				d.AmountPayableNow, d.BalanceOwed,
				d.ClientName, d.ClientPhone, d.SellerName, d.ReceiptNumber})
		if err != nil {
			return err
		}
	}

	for _, rep := range snap.Repayments {
		err := insert("debt_repayments",
			[]string{"id", "debt_id", "payment_date", "amount", "receipt_number"},
			[]any{rep.ID, rep.DebtID, rep.PaymentDate, rep.Amount, rep.ReceiptNumber})
		if err != nil {
			return err
		}
	}

	for _, e := range snap.Expenses {
		err := insert("expenses",
			[]string{"id", "date", "description", "amount", "category"},
			[]any{e.ID, e.Date, e.Description, e.Amount, e.Category})
		if err != nil {
			return err
		}
	}

	for _, c := range snap.Currencies {
		err := insert("currencies",
			[]string{"id", "code", "symbol", "rate_to_base", "is_base"},
			[]any{c.ID, c.Code, c.Symbol, c.RateToBase, c.IsBase})
		if err != nil {
			return err
		}
	}

	if snap.Profile != nil {
		snap.Profile.ID = 1
		err := insert("shop_profile",
			[]string{"id", "shop_name", "logo_path", "receipt_header", "receipt_footer",
				"currency_code", "phone", "address"},
			[]any{snap.Profile.ID, snap.Profile.ShopName, snap.Profile.LogoPath,
				snap.Profile.ReceiptHeader, snap.Profile.ReceiptFooter,
				snap.Profile.CurrencyCode, snap.Profile.Phone, snap.Profile.Address})
		if err != nil {
			return err
		}
	}

	return r.resyncSequences(ctx)
}

// resyncSequences bumps each serial sequence past the restored ids so new
// inserts do not collide.
func (r *BackupRepo) resyncSequences(ctx context.Context) error {
	querier := r.txManager.GetQuerier(ctx)
	for _, table := range []string{"purchases", "incomes", "debts", "debt_repayments", "expenses", "currencies"} {
		sql := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 0) + 1, false)",
			table, table)
		if _, err := querier.Exec(ctx, sql); err != nil {
			return fmt.Errorf("resync %s sequence: %w", table, err)
		}
	}
	return nil
}
