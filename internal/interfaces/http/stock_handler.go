package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
)

// StockHandler expone los tiers de stock y la resincronización del catálogo.
type StockHandler struct {
	processor *inventory.MovementProcessor
}

// NewStockHandler construye el handler.
func NewStockHandler(processor *inventory.MovementProcessor) *StockHandler {
	return &StockHandler{processor: processor}
}

// WarehouseStock godoc
// @Summary      Stock actual de una bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la bodega"
// @Success      200  {array}   dto.WarehouseStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/warehouses/{id} [get]
func (h *StockHandler) WarehouseStock(c *fiber.Ctx) error {
	rows, err := h.processor.WarehouseStockList(c.Context(), c.Params("id"))
	if err != nil {
		return movementError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(rows), "stock": dto.FromWarehouseStock(rows)})
}

// TechnicianStock godoc
// @Summary      Material cargado por un técnico
// @Description  Agregado por variante: nunca dos filas para el mismo material.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del técnico"
// @Success      200  {array}   dto.TechnicianStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/technicians/{id} [get]
func (h *StockHandler) TechnicianStock(c *fiber.Ctx) error {
	rows, err := h.processor.TechnicianStockList(c.Context(), c.Params("id"))
	if err != nil {
		return movementError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(rows), "stock": dto.FromTechnicianStock(rows)})
}

// Resync godoc
// @Summary      Resincronizar el total cacheado de una variante
// @Description  Recalcula stock_total como la suma del tier de bodegas más el
//               tier de técnicos y lo escribe (last-write-wins).
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la variante de material"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/resync [post]
func (h *StockHandler) Resync(c *fiber.Ctx) error {
	if err := h.processor.Resync(c.Context(), c.Params("id")); err != nil {
		return movementError(c, err)
	}
	return c.JSON(fiber.Map{"message": "variante resincronizada"})
}
