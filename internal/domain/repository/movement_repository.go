package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// MovementFilter filtros del listado de movimientos. Campos vacíos se ignoran.
type MovementFilter struct {
	MaterialID  string
	WarehouseID string
	SiteID      string
	GroupCode   string
	Limit       int
	Offset      int
}

// MovementRepository define el puerto de persistencia del libro de movimientos.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	Update(movement *entity.Movement) error
	Delete(id string) error
	// NextSequence devuelve el siguiente sufijo numérico del consecutivo
	// para un tipo de movimiento (máximo existente + 1, inicia en 1).
	// Debe ser atómico frente a creadores concurrentes del mismo tipo.
	NextSequence(movementType string) (int, error)
	List(filter MovementFilter) ([]*entity.Movement, error)
}
