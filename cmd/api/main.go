package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appaudit "github.com/inventario-pymes/pos-api/internal/application/audit"
	"github.com/inventario-pymes/pos-api/internal/application/auth"
	"github.com/inventario-pymes/pos-api/internal/application/catalog"
	"github.com/inventario-pymes/pos-api/internal/application/reports"
	"github.com/inventario-pymes/pos-api/internal/application/sales"
	appstock "github.com/inventario-pymes/pos-api/internal/application/stock"
	infrapdf "github.com/inventario-pymes/pos-api/internal/infrastructure/pdf"
	"github.com/inventario-pymes/pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/inventario-pymes/pos-api/internal/interfaces/http"
	"github.com/inventario-pymes/pos-api/pkg/config"
	"github.com/inventario-pymes/pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	ledgerRepo := postgres.NewStockLedgerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	supplierUC := catalog.NewSupplierUseCase(supplierRepo)
	productUC := catalog.NewProductUseCase(productRepo)
	customerUC := catalog.NewCustomerUseCase(customerRepo)
	storeUC := catalog.NewStoreUseCase(storeRepo)
	stockUC := appstock.NewAdjustUseCase(txRunner, ledgerRepo, productRepo, storeRepo, log.WithComponent("stock"))
	saleUC := sales.NewSaleUseCase(txRunner, saleRepo, customerRepo, storeRepo, productRepo, log.WithComponent("sales"))
	reconcileUC := sales.NewReconcileUseCase(txRunner, log.WithComponent("reconcile"))
	reportUC := reports.NewReportUseCase(reportRepo, infrapdf.NewMarotoReportGenerator())
	auditUC := appaudit.NewAuditUseCase(auditRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario PYMES API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		SupplierUC: supplierUC,
		ProductUC:  productUC,
		CustomerUC: customerUC,
		StoreUC:    storeUC,
		StockUC:    stockUC,
		SaleUC:     saleUC,
		Reconcile:  reconcileUC,
		ReportUC:   reportUC,
		AuditUC:    auditUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
