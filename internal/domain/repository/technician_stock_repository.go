package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// TechnicianStockRepository define el puerto para el material cargado por
// técnicos de campo. Misma semántica de no-negatividad que el stock de bodega.
type TechnicianStockRepository interface {
	GetForUpdate(materialID, technicianID string) (*entity.TechnicianStock, error)
	Upsert(stock *entity.TechnicianStock) error
	// AddQuantity incrementa la cantidad fusionando sobre la fila existente
	// (ON CONFLICT suma, nunca falla por duplicado).
	AddQuantity(materialID, technicianID string, delta decimal.Decimal) error
	SumByMaterial(materialID string) (decimal.Decimal, error)
	// ListByTechnician devuelve lo que carga un técnico, agregando filas
	// duplicadas del mismo material: el caller nunca ve dos filas por variante.
	ListByTechnician(technicianID string) ([]*entity.TechnicianStock, error)
	ListByMaterial(materialID string) ([]*entity.TechnicianStock, error)
}
