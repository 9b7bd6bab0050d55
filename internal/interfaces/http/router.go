package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Processor *inventory.MovementProcessor
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Movimientos del libro (protegido)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.Processor)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Put("/:id", movementHandler.Update)
	movements.Patch("/:id/state", movementHandler.SetState)
	movements.Delete("/:id", movementHandler.Delete)

	// Tiers de stock y resincronización (protegido)
	stockHandler := NewStockHandler(deps.Processor)
	stock := protected.Group("/stock")
	stock.Get("/warehouses/:id", stockHandler.WarehouseStock)
	stock.Get("/technicians/:id", stockHandler.TechnicianStock)
	protected.Post("/materials/:id/resync", stockHandler.Resync)
}
