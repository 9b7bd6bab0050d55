package inventory

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ListFilter filtros del listado de movimientos expuesto por la API.
// TechnicianID es excluyente con los demás: los listados por técnico se
// sintetizan desde el tier de técnicos, no desde el libro, porque no todo
// cambio de stock de técnico tiene línea de libro que lo respalde.
type ListFilter struct {
	MaterialID   string
	WarehouseID  string
	SiteID       string
	GroupCode    string
	TechnicianID string
	Limit        int
	Offset       int
}

// ListMovements devuelve movimientos del libro según los filtros, o el
// listado sintetizado del técnico cuando el filtro es por técnico.
func (p *MovementProcessor) ListMovements(ctx context.Context, filter ListFilter) ([]*entity.Movement, error) {
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	if filter.TechnicianID != "" {
		return p.technicianMovements(filter.TechnicianID)
	}
	return p.movements.List(repository.MovementFilter{
		MaterialID:  filter.MaterialID,
		WarehouseID: filter.WarehouseID,
		SiteID:      filter.SiteID,
		GroupCode:   filter.GroupCode,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	})
}

// technicianMovements sintetiza un movimiento por cada material que el técnico
// carga actualmente. El tracker ya agrega filas duplicadas, así que nunca se
// devuelven dos entradas para la misma variante.
func (p *MovementProcessor) technicianMovements(technicianID string) ([]*entity.Movement, error) {
	if technicianID == "" {
		return nil, domain.ErrInvalidInput
	}
	holdings, err := p.techStock.ListByTechnician(technicianID)
	if err != nil {
		return nil, err
	}
	kind := entity.OriginTechnician
	movs := make([]*entity.Movement, 0, len(holdings))
	for _, h := range holdings {
		techID := h.TechnicianID
		movs = append(movs, &entity.Movement{
			Type:               entity.MovementTypeISSUE,
			State:              entity.MovementStateCOMPLETED,
			MaterialID:         h.MaterialID,
			OriginKind:         &kind,
			OriginTechnicianID: &techID,
			Quantity:           h.Quantity,
			CreatedAt:          h.UpdatedAt,
			UpdatedAt:          h.UpdatedAt,
		})
	}
	return movs, nil
}

// WarehouseStockList stock actual de una bodega (consulta directa del tier).
func (p *MovementProcessor) WarehouseStockList(ctx context.Context, warehouseID string) ([]*entity.WarehouseStock, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	return p.whStock.ListByWarehouse(warehouseID)
}

// TechnicianStockList material cargado por un técnico, agregado por variante.
func (p *MovementProcessor) TechnicianStockList(ctx context.Context, technicianID string) ([]*entity.TechnicianStock, error) {
	if technicianID == "" {
		return nil, domain.ErrInvalidInput
	}
	return p.techStock.ListByTechnician(technicianID)
}

// GetMovement carga un movimiento por id.
func (p *MovementProcessor) GetMovement(ctx context.Context, id string) (*entity.Movement, error) {
	mov, err := p.movements.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return mov, nil
}
