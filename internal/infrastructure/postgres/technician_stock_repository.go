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

var _ repository.TechnicianStockRepository = (*TechnicianStockRepo)(nil)

// TechnicianStockRepo implementación del tier de técnicos sobre PostgreSQL
// (usable con pool o tx). Las consultas agregan por material porque la tabla
// puede arrastrar filas duplicadas de datos legados anteriores al índice único.
type TechnicianStockRepo struct {
	q Querier
}

// NewTechnicianStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTechnicianStockRepository(q Querier) *TechnicianStockRepo {
	return &TechnicianStockRepo{q: q}
}

// GetForUpdate obtiene (agregando duplicados) lo que el técnico carga de una
// variante y bloquea las filas involucradas. Si no hay filas devuelve una en
// cero lista para crearse con Upsert.
func (r *TechnicianStockRepo) GetForUpdate(materialID, technicianID string) (*entity.TechnicianStock, error) {
	ctx := context.Background()
	// Bloquear primero las filas del par; el agregado no admite FOR UPDATE.
	if _, err := r.q.Exec(ctx, `
		SELECT 1 FROM technician_stock
		WHERE material_id = $1 AND technician_id = $2 FOR UPDATE`,
		materialID, technicianID); err != nil {
		return nil, fmt.Errorf("lock technician stock: %w", err)
	}
	query := `
		SELECT material_id, technician_id, SUM(quantity), MAX(updated_at)
		FROM technician_stock
		WHERE material_id = $1 AND technician_id = $2
		GROUP BY material_id, technician_id`
	var s entity.TechnicianStock
	err := r.q.QueryRow(ctx, query, materialID, technicianID).Scan(
		&s.MaterialID, &s.TechnicianID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.TechnicianStock{MaterialID: materialID, TechnicianID: technicianID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get technician stock for update: %w", err)
	}
	return &s, nil
}

// Upsert deja al técnico con exactamente la cantidad dada para la variante:
// colapsa duplicados legados y escribe una única fila.
func (r *TechnicianStockRepo) Upsert(stock *entity.TechnicianStock) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `
		DELETE FROM technician_stock WHERE material_id = $1 AND technician_id = $2`,
		stock.MaterialID, stock.TechnicianID); err != nil {
		return fmt.Errorf("collapse technician stock: %w", err)
	}
	if _, err := r.q.Exec(ctx, `
		INSERT INTO technician_stock (material_id, technician_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())`,
		stock.MaterialID, stock.TechnicianID, stock.Quantity); err != nil {
		return fmt.Errorf("upsert technician stock: %w", err)
	}
	return nil
}

// AddQuantity incrementa lo cargado por el mismo camino de bloqueo y colapso
// que el resto de escrituras: agrega duplicados legados bajo FOR UPDATE, suma
// el delta y escribe una única fila.
func (r *TechnicianStockRepo) AddQuantity(materialID, technicianID string, delta decimal.Decimal) error {
	carried, err := r.GetForUpdate(materialID, technicianID)
	if err != nil {
		return fmt.Errorf("add technician stock: %w", err)
	}
	carried.Quantity = carried.Quantity.Add(delta)
	return r.Upsert(carried)
}

// SumByMaterial suma lo cargado de una variante entre todos los técnicos.
func (r *TechnicianStockRepo) SumByMaterial(materialID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM technician_stock WHERE material_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, materialID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum technician stock: %w", err)
	}
	return sum, nil
}

// ListByTechnician devuelve lo que carga un técnico agregado por variante:
// nunca dos filas para el mismo material.
func (r *TechnicianStockRepo) ListByTechnician(technicianID string) ([]*entity.TechnicianStock, error) {
	query := `
		SELECT material_id, technician_id, SUM(quantity), MAX(updated_at)
		FROM technician_stock WHERE technician_id = $1
		GROUP BY material_id, technician_id
		ORDER BY material_id ASC`
	rows, err := r.q.Query(context.Background(), query, technicianID)
	if err != nil {
		return nil, fmt.Errorf("list technician stock: %w", err)
	}
	defer rows.Close()
	return scanTechnicianStock(rows)
}

// ListByMaterial devuelve qué técnicos cargan una variante.
func (r *TechnicianStockRepo) ListByMaterial(materialID string) ([]*entity.TechnicianStock, error) {
	query := `
		SELECT material_id, technician_id, SUM(quantity), MAX(updated_at)
		FROM technician_stock WHERE material_id = $1
		GROUP BY material_id, technician_id
		ORDER BY technician_id ASC`
	rows, err := r.q.Query(context.Background(), query, materialID)
	if err != nil {
		return nil, fmt.Errorf("list technician stock by material: %w", err)
	}
	defer rows.Close()
	return scanTechnicianStock(rows)
}

func scanTechnicianStock(rows pgx.Rows) ([]*entity.TechnicianStock, error) {
	var list []*entity.TechnicianStock
	for rows.Next() {
		var s entity.TechnicianStock
		if err := rows.Scan(&s.MaterialID, &s.TechnicianID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan technician stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
