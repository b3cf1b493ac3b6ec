package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pesl98/erp/internal/application/auth"
	"github.com/pesl98/erp/internal/application/ledger"
	"github.com/pesl98/erp/internal/application/purchasing"
	"github.com/pesl98/erp/internal/application/usecase"
	"github.com/pesl98/erp/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	ProductUC    *usecase.ProductUseCase
	CategoryUC   *usecase.CategoryUseCase
	VendorUC     *usecase.VendorUseCase
	WarehouseUC  *usecase.WarehouseUseCase
	LedgerUC     *ledger.UseCase
	PurchasingUC *purchasing.UseCase
	ReportingUC  *usecase.ReportingUseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Lecturas para cualquier autenticado;
// escrituras de inventario y compras desde staff; catálogo, aprobaciones y
// cancelaciones desde manager.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Escrituras por nivel de rol (viewer queda solo con lecturas).
	writer := RequireRole(entity.RoleAdmin, entity.RoleManager, entity.RoleStaff)
	manager := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", manager, productHandler.Create)
	products.Put("/:id", manager, productHandler.Update)
	products.Delete("/:id", manager, productHandler.Discontinue)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", manager, categoryHandler.Create)
	categories.Delete("/:id", manager, categoryHandler.Delete)

	// Vendors (protegido)
	vendors := protected.Group("/vendors")
	vendorHandler := NewVendorHandler(deps.VendorUC)
	vendors.Get("/", vendorHandler.List)
	vendors.Get("/:id", vendorHandler.GetByID)
	vendors.Post("/", manager, vendorHandler.Create)
	vendors.Put("/:id", manager, vendorHandler.Update)
	vendors.Delete("/:id", manager, vendorHandler.Deactivate)

	// Warehouses, zones y locations (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Post("/", manager, warehouseHandler.Create)
	warehouses.Put("/:id", manager, warehouseHandler.Update)
	warehouses.Get("/:id/zones", warehouseHandler.ListZones)
	warehouses.Post("/:id/zones", manager, warehouseHandler.CreateZone)
	zones := protected.Group("/zones")
	zones.Get("/:id/locations", warehouseHandler.ListLocations)
	zones.Post("/:id/locations", manager, warehouseHandler.CreateLocation)

	// Inventory: libro de stock (protegido)
	inventory := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	inventory.Get("/stock", inventoryHandler.GetStock)
	inventory.Get("/stock/by-location", inventoryHandler.GetStockByLocation)
	inventory.Get("/valuation", inventoryHandler.GetValuation)
	inventory.Get("/reorder-alerts", inventoryHandler.GetReorderAlerts)
	inventory.Get("/movements", inventoryHandler.ListMovements)
	inventory.Get("/adjustments", inventoryHandler.ListAdjustments)
	inventory.Post("/adjustments", writer, inventoryHandler.CreateAdjustment)
	inventory.Post("/transfers", writer, inventoryHandler.CreateTransfer)

	// Purchase orders (protegido)
	pos := protected.Group("/purchase-orders")
	purchasingHandler := NewPurchasingHandler(deps.PurchasingUC)
	pos.Get("/", purchasingHandler.List)
	pos.Get("/:id", purchasingHandler.Get)
	pos.Post("/", writer, purchasingHandler.Create)
	pos.Put("/:id", writer, purchasingHandler.Update)
	pos.Post("/:id/submit", writer, purchasingHandler.Submit)
	pos.Post("/:id/approve", manager, purchasingHandler.Approve)
	pos.Post("/:id/reject", manager, purchasingHandler.Reject)
	pos.Post("/:id/send", manager, purchasingHandler.Send)
	pos.Post("/:id/cancel", manager, purchasingHandler.Cancel)
	pos.Get("/:id/receipts", purchasingHandler.ListReceipts)
	pos.Post("/:id/receipts", writer, purchasingHandler.ReceiveGoods)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportingHandler := NewReportingHandler(deps.ReportingUC)
	reports.Get("/dashboard", reportingHandler.DashboardKPIs)
	reports.Get("/activity", reportingHandler.RecentActivity)
}
