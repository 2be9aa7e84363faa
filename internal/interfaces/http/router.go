package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC   *usecase.CompanyUseCase
	WarehouseUC *usecase.WarehouseUseCase
	ProductUC   *usecase.ProductUseCase
	StockUC     *usecase.StockUseCase
	LedgerUC    *ledger.UseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
	Log         zerolog.Logger
}

// Router registra las rutas de la API. Las bajas destructivas (bodegas,
// productos, marcas, stock, movimientos) exigen rol además del token:
// administración de catálogo solo admin; operación de stock admin o bodeguero.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	adminOnly := RequireRole(entity.RoleAdmin)
	warehouseOps := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público: alta inicial del tenant)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.Log)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.Get)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Identidad y perfiles de la empresa activa
	protected.Get("/me", authHandler.Me)
	protected.Get("/profiles", authHandler.Profiles)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, deps.Log)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.Get)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)

	// Products, unidades de medida y marcas (protegido)
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	products := protected.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	units := protected.Group("/units")
	units.Post("/", productHandler.CreateUnitMeasure)
	units.Get("/", productHandler.ListUnitMeasures)

	brands := protected.Group("/brands")
	brands.Post("/", productHandler.CreateBrand)
	brands.Get("/", productHandler.ListBrands)
	brands.Get("/:id", productHandler.GetBrand)
	brands.Put("/:id", productHandler.UpdateBrand)
	brands.Delete("/:id", adminOnly, productHandler.DeleteBrand)

	// Stock y movimientos (protegido). Altas, salidas y bajas pasan por el
	// motor de stock; consultas y precio por el caso de uso de lectura.
	stockHandler := NewStockHandler(deps.LedgerUC, deps.StockUC, deps.Log)
	movementHandler := NewMovementHandler(deps.LedgerUC, deps.Log)

	stocks := protected.Group("/stocks")
	stocks.Post("/", stockHandler.Create)
	stocks.Get("/", stockHandler.List)
	stocks.Get("/:id", stockHandler.Get)
	stocks.Patch("/:id", stockHandler.UpdatePrice)
	stocks.Delete("/:id", warehouseOps, stockHandler.Delete)
	stocks.Post("/:id/movements", movementHandler.Register)

	movements := protected.Group("/movements")
	movements.Delete("/:id", warehouseOps, movementHandler.Delete)
}
