package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// InventoryRepository define el puerto para almacenes (agrupaciones de stock).
type InventoryRepository interface {
	GetByID(id string) (*entity.Inventory, error)
	// FirstByWarehouse devuelve el almacén por defecto de una bodega.
	FirstByWarehouse(warehouseID string) (*entity.Inventory, error)
}
