// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/PnBafon/viten-backend/internal/core/types"
	"github.com/PnBafon/viten-backend/internal/domain/debt"
	"github.com/PnBafon/viten-backend/internal/domain/expense"
	"github.com/PnBafon/viten-backend/internal/domain/income"
	"github.com/PnBafon/viten-backend/internal/domain/inventory"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres/expense_repo"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres/inventory_repo"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres/sales_repo"
	"github.com/PnBafon/viten-backend/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@viten.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID int64
	err := pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO users (email, password_hash, full_name, role)
		VALUES ($1, $2, 'Shop Owner', 'admin')
	`, adminEmail, string(passwordHash))
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail)
	return nil
}

// seedDemoData fills the ledger with a small but coherent history: a few
// purchase lots, cash sales against them, one open debt with a repayment,
// and some expenses. Intended for local development only.
func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	txManager := postgres.NewTxManager(pool)

	lotRepo := inventory_repo.NewLotRepo(txManager)
	incomeRepo := sales_repo.NewIncomeRepo(txManager)
	debtRepo := sales_repo.NewDebtRepo(txManager)
	expenseRepo := expense_repo.NewExpenseRepo(txManager)

	inventoryService := inventory.NewService(lotRepo, txManager)
	incomeService := income.NewService(incomeRepo, inventoryService, txManager)
	debtService := debt.NewService(debtRepo, inventoryService, txManager)
	expenseService := expense.NewService(expenseRepo, txManager)

	lots := []*inventory.PurchaseLot{
		{Date: "2026-08-01", Name: "Rice 5kg", Pcs: 40, AvailableStock: 40, UnitPrice: types.MustMoney("4500"), StockDeficiencyThreshold: 10},
		{Date: "2026-08-03", Name: "Palm Oil 1L", Pcs: 24, AvailableStock: 24, UnitPrice: types.MustMoney("1800"), StockDeficiencyThreshold: 6},
		{Date: "2026-08-10", Name: "Sugar 1kg", Pcs: 50, AvailableStock: 50, UnitPrice: types.MustMoney("900")},
	}
	for _, lot := range lots {
		if err := inventoryService.Create(ctx, lot); err != nil {
			return fmt.Errorf("seed lot %q: %w", lot.Name, err)
		}
	}
	log.Infow("purchase lots seeded", "count", len(lots))

	sales := []*income.Sale{
		{Date: "2026-08-05", Name: "Rice 5kg", Pcs: 3, UnitPrice: types.MustMoney("5200"), ClientName: "Walk-in", SellerName: "Shop Owner"},
		{Date: "2026-08-12", Name: "Sugar 1kg", Pcs: 5, UnitPrice: types.MustMoney("1100"), ClientName: "Walk-in", SellerName: "Shop Owner"},
	}
	for _, sale := range sales {
		if err := incomeService.Create(ctx, sale); err != nil {
			return fmt.Errorf("seed sale %q: %w", sale.Name, err)
		}
	}
	log.Infow("cash sales seeded", "count", len(sales))

	d := &debt.Debt{
		Date:             "2026-08-15",
		Name:             "Palm Oil 1L",
		Pcs:              6,
		UnitPrice:        types.MustMoney("2100"),
		AmountPayableNow: types.MustMoney("5000"),
		ClientName:       "Mama Nkechi",
		ClientPhone:      "+237600000000",
		SellerName:       "Shop Owner",
	}
	if err := debtService.Create(ctx, d); err != nil {
		return fmt.Errorf("seed debt: %w", err)
	}
	rep := &debt.Repayment{
		DebtID:      d.ID,
		PaymentDate: "2026-08-20",
		Amount:      types.MustMoney("3000"),
	}
	if err := debtService.CreateRepayment(ctx, rep); err != nil {
		return fmt.Errorf("seed repayment: %w", err)
	}
	log.Infow("debt seeded", "receipt", d.ReceiptNumber, "repayment", rep.ReceiptNumber)

	expenses := []*expense.Expense{
		{Date: "2026-08-02", Description: "Shop rent", Amount: types.MustMoney("25000"), Category: "rent"},
		{Date: "2026-08-18", Description: "Generator fuel", Amount: types.MustMoney("4000"), Category: "utilities"},
	}
	for _, e := range expenses {
		if err := expenseService.Create(ctx, e); err != nil {
			return fmt.Errorf("seed expense %q: %w", e.Description, err)
		}
	}
	log.Infow("expenses seeded", "count", len(expenses))

	return nil
}
