package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, code, name, supplier_id, inventory_id, stock_total, price, active, created_at, updated_at`

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador del catálogo. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste una variante de material.
func (r *MaterialRepo) Create(material *entity.Material) error {
	if material.ID == "" {
		material.ID = uuid.New().String()
	}
	query := `
		INSERT INTO materials (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Code, material.Name, material.SupplierID,
		material.InventoryID, material.StockTotal, material.Price, material.Active,
		material.CreatedAt, material.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create material: %w", err)
	}
	return nil
}

// GetByID obtiene una variante por ID. Devuelve nil sin error si no existe.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get material")
}

// GetForUpdate obtiene la variante y bloquea la fila (SELECT FOR UPDATE).
func (r *MaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get material for update")
}

// GetByCodeAndSupplier busca la variante exacta (código, proveedor).
func (r *MaterialRepo) GetByCodeAndSupplier(code, supplierID string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE code = $1 AND supplier_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code, supplierID), "get material by code/supplier")
}

// ListByCodeOldestFirst devuelve las variantes que comparten código de
// catálogo en orden FIFO (creación ascendente).
func (r *MaterialRepo) ListByCodeOldestFirst(code string) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE code = $1 ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, code)
	if err != nil {
		return nil, fmt.Errorf("list materials by code: %w", err)
	}
	defer rows.Close()

	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.ID, &m.Code, &m.Name, &m.SupplierID, &m.InventoryID,
			&m.StockTotal, &m.Price, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// UpdateStockTotal escribe el total cacheado de la variante (last-write-wins).
func (r *MaterialRepo) UpdateStockTotal(id string, total decimal.Decimal) error {
	query := `UPDATE materials SET stock_total = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, total)
	if err != nil {
		return fmt.Errorf("update stock total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePrice escribe el precio de referencia de la variante.
func (r *MaterialRepo) UpdatePrice(id string, price decimal.Decimal) error {
	query := `UPDATE materials SET price = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, price)
	if err != nil {
		return fmt.Errorf("update price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateInventory fija (o limpia, con nil) el contenedor hogar de la variante.
func (r *MaterialRepo) UpdateInventory(id string, inventoryID *string) error {
	query := `UPDATE materials SET inventory_id = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, inventoryID)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MaterialRepo) scanOne(row pgx.Row, op string) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(&m.ID, &m.Code, &m.Name, &m.SupplierID, &m.InventoryID,
		&m.StockTotal, &m.Price, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}
