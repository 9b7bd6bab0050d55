package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// WarehouseStockRepository define el puerto para el stock por bodega+material.
// Usado dentro de transacciones para garantizar consistencia.
type WarehouseStockRepository interface {
	Get(materialID, warehouseID string) (*entity.WarehouseStock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); si no existe devuelve
	// una fila en cero lista para crearse con Upsert (creación perezosa).
	GetForUpdate(materialID, warehouseID string) (*entity.WarehouseStock, error)
	Upsert(stock *entity.WarehouseStock) error
	// FirstByMaterial devuelve la primera fila de stock de la variante, usada
	// para inferir la bodega destino cuando la petición no trae contenedor.
	FirstByMaterial(materialID string) (*entity.WarehouseStock, error)
	SumByMaterial(materialID string) (decimal.Decimal, error)
	ListByWarehouse(warehouseID string) ([]*entity.WarehouseStock, error)
}
