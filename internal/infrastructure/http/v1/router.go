// Package v1 provides HTTP API version 1.
package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PnBafon/viten-backend/internal/domain/account"
	"github.com/PnBafon/viten-backend/internal/domain/backup"
	"github.com/PnBafon/viten-backend/internal/domain/currency"
	"github.com/PnBafon/viten-backend/internal/domain/debt"
	"github.com/PnBafon/viten-backend/internal/domain/expense"
	"github.com/PnBafon/viten-backend/internal/domain/income"
	"github.com/PnBafon/viten-backend/internal/domain/inventory"
	"github.com/PnBafon/viten-backend/internal/domain/reports"
	"github.com/PnBafon/viten-backend/internal/domain/shop"
	"github.com/PnBafon/viten-backend/internal/infrastructure/http/v1/handlers"
	"github.com/PnBafon/viten-backend/internal/infrastructure/http/v1/middleware"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres/auth_repo"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres/backup_repo"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres/expense_repo"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres/inventory_repo"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres/report_repo"
	"github.com/PnBafon/viten-backend/internal/infrastructure/storage/postgres/sales_repo"
	"github.com/PnBafon/viten-backend/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (also used for health checks).
	Pool *postgres.Pool

	// TxManager coordinates transactions across repositories.
	TxManager *postgres.TxManager

	// Logger for request logging.
	Logger *logger.Logger

	// JWTService issues and validates access tokens.
	JWTService *account.JWTService

	// IdempotencyEnabled enables idempotency middleware on mutating
	// sale and repayment routes.
	IdempotencyEnabled bool

	// IdempotencyTTL is how long completed idempotency keys are replayable.
	IdempotencyTTL time.Duration
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	baseHandler := handlers.NewBaseHandler()

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	// Repositories share the TxManager so service-level transactions span them.
	lotRepo := inventory_repo.NewLotRepo(cfg.TxManager)
	incomeRepo := sales_repo.NewIncomeRepo(cfg.TxManager)
	debtRepo := sales_repo.NewDebtRepo(cfg.TxManager)
	expenseRepo := expense_repo.NewExpenseRepo(cfg.TxManager)
	currencyRepo := catalog_repo.NewCurrencyRepo(cfg.TxManager)
	shopRepo := catalog_repo.NewShopRepo(cfg.TxManager)
	userRepo := auth_repo.NewUserRepo(cfg.TxManager)
	reportRepo := report_repo.NewReportRepo(cfg.TxManager)
	backupRepo := backup_repo.NewBackupRepo(cfg.TxManager)

	inventoryService := inventory.NewService(lotRepo, cfg.TxManager)
	incomeService := income.NewService(incomeRepo, inventoryService, cfg.TxManager)
	debtService := debt.NewService(debtRepo, inventoryService, cfg.TxManager)
	expenseService := expense.NewService(expenseRepo, cfg.TxManager)
	currencyService := currency.NewService(currencyRepo, cfg.TxManager)
	shopService := shop.NewService(shopRepo, cfg.TxManager)
	accountService := account.NewService(userRepo, cfg.TxManager, cfg.JWTService, account.DefaultServiceConfig())
	reportsService := reports.NewService(reportRepo)
	backupService := backup.NewService(backupRepo, cfg.TxManager)

	// API v1
	v1 := router.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(baseHandler, accountService)
		publicAuth := v1.Group("/auth")
		protectedAuth := v1.Group("/auth")
		protectedAuth.Use(middleware.Auth(cfg.JWTService))
		authHandler.RegisterRoutes(publicAuth, protectedAuth)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTService))

		if cfg.IdempotencyEnabled {
			store := postgres.NewIdempotencyStore(cfg.Pool, cfg.TxManager, cfg.IdempotencyTTL)
			protected.Use(middleware.Idempotency(store))
		}

		handlers.NewPurchaseHandler(baseHandler, inventoryService).
			RegisterRoutes(protected.Group("/purchases"))
		handlers.NewIncomeHandler(baseHandler, incomeService).
			RegisterRoutes(protected.Group("/incomes"))
		handlers.NewDebtHandler(baseHandler, debtService).
			RegisterRoutes(protected.Group("/debts"), protected.Group("/repayments"))
		handlers.NewExpenseHandler(baseHandler, expenseService).
			RegisterRoutes(protected.Group("/expenses"))
		handlers.NewCurrencyHandler(baseHandler, currencyService).
			RegisterRoutes(protected.Group("/currencies"))
		handlers.NewShopHandler(baseHandler, shopService).
			RegisterRoutes(protected.Group("/shop"))
		handlers.NewReportsHandler(baseHandler, reportsService).
			RegisterRoutes(protected.Group("/reports"))

		// Backup routes are admin-only.
		backupGroup := protected.Group("/backup")
		backupGroup.Use(middleware.RequireRole(account.RoleAdmin))
		handlers.NewBackupHandler(baseHandler, backupService).
			RegisterRoutes(backupGroup)
	}

	return router
}
