package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL
// (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// GetByID obtiene un almacén por ID. Devuelve nil sin error si no existe.
func (r *InventoryRepo) GetByID(id string) (*entity.Inventory, error) {
	query := `SELECT id, name, warehouse_id, created_at FROM inventories WHERE id = $1`
	var inv entity.Inventory
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.Name, &inv.WarehouseID, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// FirstByWarehouse devuelve el almacén por defecto de una bodega (el más antiguo).
func (r *InventoryRepo) FirstByWarehouse(warehouseID string) (*entity.Inventory, error) {
	query := `
		SELECT id, name, warehouse_id, created_at FROM inventories
		WHERE warehouse_id = $1 ORDER BY created_at ASC, id ASC LIMIT 1`
	var inv entity.Inventory
	err := r.q.QueryRow(context.Background(), query, warehouseID).Scan(
		&inv.ID, &inv.Name, &inv.WarehouseID, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("first inventory by warehouse: %w", err)
	}
	return &inv, nil
}
