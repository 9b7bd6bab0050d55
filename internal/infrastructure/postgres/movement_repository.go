package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, sequence, type, state, material_id, inventory_id, origin_kind,
	origin_technician_id, quantity, unit_price, group_code, observations,
	installation_id, created_by, created_at, updated_at`

// psql genera SQL con placeholders $1, $2, ... para los filtros dinámicos.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste una línea del libro.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.Sequence, movement.Type, movement.State,
		movement.MaterialID, movement.InventoryID, movement.OriginKind,
		movement.OriginTechnicianID, movement.Quantity, movement.UnitPrice,
		movement.GroupCode, movement.Observations, movement.InstallationID,
		movement.CreatedBy, movement.CreatedAt, movement.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve nil sin error si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Sequence, &m.Type, &m.State, &m.MaterialID, &m.InventoryID,
		&m.OriginKind, &m.OriginTechnicianID, &m.Quantity, &m.UnitPrice,
		&m.GroupCode, &m.Observations, &m.InstallationID, &m.CreatedBy,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// Update reescribe los campos mutables de un movimiento.
func (r *MovementRepo) Update(movement *entity.Movement) error {
	query := `
		UPDATE movements SET
			state = $2, material_id = $3, inventory_id = $4, quantity = $5,
			unit_price = $6, observations = $7, installation_id = $8, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.State, movement.MaterialID, movement.InventoryID,
		movement.Quantity, movement.UnitPrice, movement.Observations, movement.InstallationID,
	)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la fila del movimiento.
func (r *MovementRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NextSequence devuelve el siguiente sufijo del consecutivo para un tipo.
// El advisory lock transaccional por tipo serializa a los creadores
// concurrentes del mismo prefijo; el lock se libera solo al terminar la tx,
// así que esta operación debe correr dentro de una transacción.
func (r *MovementRepo) NextSequence(movementType string) (int, error) {
	prefix, ok := entity.MovementPrefixes[movementType]
	if !ok {
		return 0, domain.ErrInvalidInput
	}
	ctx := context.Background()

	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('movements_seq_' || $1))`, movementType); err != nil {
		return 0, fmt.Errorf("lock sequence: %w", err)
	}

	// Máximo sufijo numérico existente para el prefijo; filas con sufijo no
	// numérico (datos legados) se ignoran.
	query := `
		SELECT COALESCE(MAX((substring(sequence from '^` + prefix + `-(\d+)$'))::int), 0)
		FROM movements WHERE type = $1`
	var max int
	if err := r.q.QueryRow(ctx, query, movementType).Scan(&max); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return max + 1, nil
}

// List devuelve movimientos según el filtro, más recientes primero.
// El filtro por sede entra por join con la bodega del contenedor.
func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	builder := psql.Select(
		"m.id", "m.sequence", "m.type", "m.state", "m.material_id", "m.inventory_id",
		"m.origin_kind", "m.origin_technician_id", "m.quantity", "m.unit_price",
		"m.group_code", "m.observations", "m.installation_id", "m.created_by",
		"m.created_at", "m.updated_at",
	).From("movements m")

	if filter.MaterialID != "" {
		builder = builder.Where(sq.Eq{"m.material_id": filter.MaterialID})
	}
	if filter.GroupCode != "" {
		builder = builder.Where(sq.Eq{"m.group_code": filter.GroupCode})
	}
	if filter.WarehouseID != "" || filter.SiteID != "" {
		builder = builder.LeftJoin("inventories i ON i.id = m.inventory_id")
		if filter.WarehouseID != "" {
			builder = builder.Where(sq.Eq{"i.warehouse_id": filter.WarehouseID})
		}
		if filter.SiteID != "" {
			builder = builder.
				LeftJoin("warehouses w ON w.id = i.warehouse_id").
				Where(sq.Eq{"w.site_id": filter.SiteID})
		}
	}
	builder = builder.OrderBy("m.created_at DESC", "m.id DESC")
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.Sequence, &m.Type, &m.State, &m.MaterialID,
			&m.InventoryID, &m.OriginKind, &m.OriginTechnicianID, &m.Quantity,
			&m.UnitPrice, &m.GroupCode, &m.Observations, &m.InstallationID,
			&m.CreatedBy, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
