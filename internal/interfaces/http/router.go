package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/inventario-pymes/pos-api/internal/application/audit"
	"github.com/inventario-pymes/pos-api/internal/application/auth"
	"github.com/inventario-pymes/pos-api/internal/application/catalog"
	"github.com/inventario-pymes/pos-api/internal/application/reports"
	"github.com/inventario-pymes/pos-api/internal/application/sales"
	"github.com/inventario-pymes/pos-api/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	SupplierUC *catalog.SupplierUseCase
	ProductUC  *catalog.ProductUseCase
	CustomerUC *catalog.CustomerUseCase
	StoreUC    *catalog.StoreUseCase
	StockUC    *stock.AdjustUseCase
	SaleUC     *sales.SaleUseCase
	Reconcile  *sales.ReconcileUseCase
	ReportUC   *reports.ReportUseCase
	AuditUC    *audit.AuditUseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Las lecturas requieren token; las
// mutaciones de catálogo, stock y ventas requieren además rol administrador.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	admin := RequireAdmin()

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", admin, supplierHandler.Create)
	suppliers.Put("/:id", admin, supplierHandler.Update)
	suppliers.Delete("/:id", admin, supplierHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", admin, productHandler.Create)
	products.Put("/:id", admin, productHandler.Update)
	products.Delete("/:id", admin, productHandler.Delete)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Post("/", admin, customerHandler.Create)
	customers.Put("/:id", admin, customerHandler.Update)
	customers.Delete("/:id", admin, customerHandler.Delete)

	// Stores
	stores := protected.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.GetByID)
	stores.Post("/", admin, storeHandler.Create)
	stores.Put("/:id", admin, storeHandler.Update)
	stores.Delete("/:id", admin, storeHandler.Delete)

	// Stock ledger
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Get("/", stockHandler.List)
	stockGroup.Get("/quantity", stockHandler.Quantity)
	stockGroup.Post("/adjust", admin, stockHandler.Adjust)
	stockGroup.Delete("/:id", admin, stockHandler.Delete)

	// Sales
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.Reconcile)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/reconcile", admin, saleHandler.Reconcile)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/", admin, saleHandler.Create)
	salesGroup.Put("/:id", admin, saleHandler.Edit)
	salesGroup.Delete("/:id", admin, saleHandler.Delete)

	// Reports
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/inventory", reportHandler.Inventory)
	reportsGroup.Get("/sales", reportHandler.Sales)
	reportsGroup.Get("/customers", reportHandler.Customers)
	reportsGroup.Get("/suppliers", reportHandler.Suppliers)
	reportsGroup.Get("/sale-detail", reportHandler.SaleDetail)

	// Audit (solo admin)
	auditGroup := protected.Group("/audit")
	auditHandler := NewAuditHandler(deps.AuditUC)
	auditGroup.Get("/", admin, auditHandler.List)
}
