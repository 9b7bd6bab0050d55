package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.WarehouseStockRepository = (*WarehouseStockRepo)(nil)

// WarehouseStockRepo implementación del tier de bodegas sobre PostgreSQL
// (usable con pool o tx).
type WarehouseStockRepo struct {
	q Querier
}

// NewWarehouseStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseStockRepository(q Querier) *WarehouseStockRepo {
	return &WarehouseStockRepo{q: q}
}

// Get obtiene el stock actual de una variante en una bodega.
// Si la fila no existe devuelve una en cero (creación perezosa vía Upsert).
func (r *WarehouseStockRepo) Get(materialID, warehouseID string) (*entity.WarehouseStock, error) {
	query := `
		SELECT material_id, warehouse_id, stock, avg_price, updated_at
		FROM warehouse_stock WHERE material_id = $1 AND warehouse_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, materialID, warehouseID),
		materialID, warehouseID, "get warehouse stock")
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *WarehouseStockRepo) GetForUpdate(materialID, warehouseID string) (*entity.WarehouseStock, error) {
	query := `
		SELECT material_id, warehouse_id, stock, avg_price, updated_at
		FROM warehouse_stock WHERE material_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, materialID, warehouseID),
		materialID, warehouseID, "get warehouse stock for update")
}

// Upsert inserta o actualiza la fila de stock (por material y bodega).
func (r *WarehouseStockRepo) Upsert(stock *entity.WarehouseStock) error {
	query := `
		INSERT INTO warehouse_stock (material_id, warehouse_id, stock, avg_price, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (material_id, warehouse_id)
		DO UPDATE SET stock = EXCLUDED.stock, avg_price = EXCLUDED.avg_price, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.MaterialID, stock.WarehouseID, stock.Stock, stock.AvgPrice)
	if err != nil {
		return fmt.Errorf("upsert warehouse stock: %w", err)
	}
	return nil
}

// FirstByMaterial devuelve la primera fila de stock de la variante (orden
// estable por bodega), usada para inferir el contenedor destino.
func (r *WarehouseStockRepo) FirstByMaterial(materialID string) (*entity.WarehouseStock, error) {
	query := `
		SELECT material_id, warehouse_id, stock, avg_price, updated_at
		FROM warehouse_stock WHERE material_id = $1
		ORDER BY warehouse_id ASC LIMIT 1`
	var s entity.WarehouseStock
	err := r.q.QueryRow(context.Background(), query, materialID).Scan(
		&s.MaterialID, &s.WarehouseID, &s.Stock, &s.AvgPrice, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("first stock by material: %w", err)
	}
	return &s, nil
}

// SumByMaterial suma el stock de la variante a través de todas las bodegas.
func (r *WarehouseStockRepo) SumByMaterial(materialID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(stock), 0) FROM warehouse_stock WHERE material_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, materialID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum stock by material: %w", err)
	}
	return sum, nil
}

// ListByWarehouse lista el stock de una bodega, por material.
func (r *WarehouseStockRepo) ListByWarehouse(warehouseID string) ([]*entity.WarehouseStock, error) {
	query := `
		SELECT material_id, warehouse_id, stock, avg_price, updated_at
		FROM warehouse_stock WHERE warehouse_id = $1
		ORDER BY material_id ASC`
	rows, err := r.q.Query(context.Background(), query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list stock by warehouse: %w", err)
	}
	defer rows.Close()

	var list []*entity.WarehouseStock
	for rows.Next() {
		var s entity.WarehouseStock
		if err := rows.Scan(&s.MaterialID, &s.WarehouseID, &s.Stock, &s.AvgPrice, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *WarehouseStockRepo) scanOne(row pgx.Row, materialID, warehouseID, op string) (*entity.WarehouseStock, error) {
	var s entity.WarehouseStock
	err := row.Scan(&s.MaterialID, &s.WarehouseID, &s.Stock, &s.AvgPrice, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.WarehouseStock{MaterialID: materialID, WarehouseID: warehouseID, Stock: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}
