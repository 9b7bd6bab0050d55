package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// WarehouseStockResponse fila de stock de bodega en respuestas.
type WarehouseStockResponse struct {
	MaterialID  string           `json:"material_id"`
	WarehouseID string           `json:"warehouse_id"`
	Stock       decimal.Decimal  `json:"stock"`
	AvgPrice    *decimal.Decimal `json:"avg_price,omitempty"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// TechnicianStockResponse material cargado por un técnico, por variante.
type TechnicianStockResponse struct {
	MaterialID   string          `json:"material_id"`
	TechnicianID string          `json:"technician_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// FromWarehouseStock mapea las filas del tier de bodega.
func FromWarehouseStock(rows []*entity.WarehouseStock) []WarehouseStockResponse {
	out := make([]WarehouseStockResponse, 0, len(rows))
	for _, s := range rows {
		out = append(out, WarehouseStockResponse{
			MaterialID:  s.MaterialID,
			WarehouseID: s.WarehouseID,
			Stock:       s.Stock,
			AvgPrice:    s.AvgPrice,
			UpdatedAt:   s.UpdatedAt,
		})
	}
	return out
}

// FromTechnicianStock mapea las filas del tier de técnicos.
func FromTechnicianStock(rows []*entity.TechnicianStock) []TechnicianStockResponse {
	out := make([]TechnicianStockResponse, 0, len(rows))
	for _, s := range rows {
		out = append(out, TechnicianStockResponse{
			MaterialID:   s.MaterialID,
			TechnicianID: s.TechnicianID,
			Quantity:     s.Quantity,
			UpdatedAt:    s.UpdatedAt,
		})
	}
	return out
}
