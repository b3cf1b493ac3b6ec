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

	"github.com/pesl98/erp/internal/application/auth"
	"github.com/pesl98/erp/internal/application/ledger"
	"github.com/pesl98/erp/internal/application/purchasing"
	"github.com/pesl98/erp/internal/application/usecase"
	"github.com/pesl98/erp/internal/infrastructure/postgres"
	httpRouter "github.com/pesl98/erp/internal/interfaces/http"
	"github.com/pesl98/erp/pkg/config"
	"github.com/pesl98/erp/pkg/logger"
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

	// Repositorios atados al pool (lecturas y CRUD fuera de transacción)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	levelRepo := postgres.NewStockLevelRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	adjRepo := postgres.NewStockAdjustmentRepository(pool)
	stockQueryRepo := postgres.NewStockQueryRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	receiptRepo := postgres.NewGoodsReceiptRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)

	// Casos de uso
	ledgerUC := ledger.NewUseCase(postgres.NewTxRunner(pool), stockQueryRepo, levelRepo, movRepo, adjRepo)
	purchasingUC := purchasing.NewUseCase(
		postgres.NewPurchasingTxRunner(pool),
		poRepo, receiptRepo, vendorRepo, productRepo,
		ledgerUC,
	)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	vendorUC := usecase.NewVendorUseCase(vendorRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	reportingUC := usecase.NewReportingUseCase(reportRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		CategoryUC:   categoryUC,
		VendorUC:     vendorUC,
		WarehouseUC:  warehouseUC,
		LedgerUC:     ledgerUC,
		PurchasingUC: purchasingUC,
		ReportingUC:  reportingUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor HTTP")
	}
}
