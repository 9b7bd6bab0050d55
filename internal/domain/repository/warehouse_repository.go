package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para bodegas (DIP).
type WarehouseRepository interface {
	GetByID(id string) (*entity.Warehouse, error)
	// First devuelve la bodega por defecto del catálogo (la más antigua),
	// último eslabón de la resolución de contexto de almacenamiento.
	First() (*entity.Warehouse, error)
	List(limit, offset int) ([]*entity.Warehouse, error)
}
