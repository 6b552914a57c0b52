package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kardex-api/internal/application/stock"
	"github.com/jhoicas/Kardex-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC    *usecase.WarehouseUseCase
	ProductUC      *usecase.ProductUseCase
	LocationUC     *usecase.LocationUseCase
	CreateMovement *stock.CreateMovementUseCase
	LedgerQuery    *stock.LedgerQueryUseCase
	JWTSecret      string
}

// Router registra las rutas de la API. Todas las rutas de negocio exigen
// Bearer Token; la escritura de movimientos y de master data exige además
// rol admin o bodeguero (consulta es solo lectura).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	writers := RequireRole("admin", "bodeguero")

	// Warehouses y ubicaciones (bins)
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, deps.LocationUC)
	warehouses.Post("/", writers, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:code", warehouseHandler.GetByCode)
	warehouses.Post("/:id/locations", writers, warehouseHandler.CreateLocation)
	warehouses.Get("/:id/locations", warehouseHandler.ListLocations)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", writers, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:sku", productHandler.GetBySKU)

	// Stock: motor de movimientos y consultas del libro
	stockHandler := NewStockHandler(deps.CreateMovement, deps.LedgerQuery)
	stockGroup := api.Group("/stock")
	stockGroup.Post("/movements", writers, stockHandler.CreateMovement)
	stockGroup.Get("/movements", stockHandler.ListMovements)
	stockGroup.Get("/movements/summary", stockHandler.GetSummary)

	// Historial por producto con saldo corrido
	api.Get("/items/:sku/movements", stockHandler.GetItemMovements)
}
