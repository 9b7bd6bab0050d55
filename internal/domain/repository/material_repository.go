package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para el catálogo de
// variantes de material (DIP). Es la superficie que el motor de movimientos
// consume del catálogo; el CRUD completo del catálogo vive fuera de este core.
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	// GetForUpdate bloquea la fila de la variante (SELECT FOR UPDATE) para
	// serializar la reconciliación frente a ajustes concurrentes.
	GetForUpdate(id string) (*entity.Material, error)
	GetByCodeAndSupplier(code, supplierID string) (*entity.Material, error)
	// ListByCodeOldestFirst devuelve todas las variantes que comparten un
	// código de catálogo, ordenadas por fecha de creación ascendente (FIFO).
	ListByCodeOldestFirst(code string) ([]*entity.Material, error)
	UpdateStockTotal(id string, total decimal.Decimal) error
	UpdatePrice(id string, price decimal.Decimal) error
	UpdateInventory(id string, inventoryID *string) error
}
