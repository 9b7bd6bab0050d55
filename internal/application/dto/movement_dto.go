package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// MovementLineRequest una línea del movimiento: variante por id o por código
// de catálogo (al menos uno), cantidad positiva y precio unitario opcional.
type MovementLineRequest struct {
	MaterialID string           `json:"material_id,omitempty" validate:"required_without=Code"`
	Code       string           `json:"code,omitempty" validate:"required_without=MaterialID"`
	SupplierID string           `json:"supplier_id,omitempty"`
	Quantity   decimal.Decimal  `json:"quantity" validate:"required"`
	UnitPrice  *decimal.Decimal `json:"unit_price,omitempty"`
}

// OriginRequest origen del movimiento.
type OriginRequest struct {
	Kind         string `json:"kind" validate:"required,oneof=WAREHOUSE TECHNICIAN"`
	TechnicianID string `json:"technician_id,omitempty" validate:"required_if=Kind TECHNICIAN"`
}

// AssignmentItemRequest material y cantidad a cargar a un técnico.
type AssignmentItemRequest struct {
	MaterialID string          `json:"material_id" validate:"required"`
	Quantity   decimal.Decimal `json:"quantity" validate:"required"`
}

// TechnicianAssignmentRequest instrucción de pre-asignación a un técnico.
type TechnicianAssignmentRequest struct {
	TechnicianID string                  `json:"technician_id" validate:"required"`
	Items        []AssignmentItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateMovementRequest body para POST /api/movements.
type CreateMovementRequest struct {
	Type        string                        `json:"type" validate:"required,oneof=RECEIPT ISSUE RETURN"`
	State       string                        `json:"state,omitempty" validate:"omitempty,oneof=PENDING COMPLETED CANCELLED"`
	Lines       []MovementLineRequest         `json:"lines" validate:"required,min=1,dive"`
	InventoryID *string                       `json:"inventory_id,omitempty"`
	HQPool      bool                          `json:"hq_pool,omitempty"`
	Origin      *OriginRequest                `json:"origin,omitempty"`
	GroupCode   string                        `json:"group_code,omitempty"`
	Assignments []TechnicianAssignmentRequest `json:"assignments,omitempty" validate:"omitempty,dive"`
}

// UpdateMovementRequest body para PUT /api/movements/:id. Solo los campos
// presentes se modifican.
type UpdateMovementRequest struct {
	Observations   *string          `json:"observations,omitempty"`
	InstallationID *string          `json:"installation_id,omitempty"`
	InventoryID    *string          `json:"inventory_id,omitempty"`
	UnitPrice      *decimal.Decimal `json:"unit_price,omitempty"`
	Quantity       *decimal.Decimal `json:"quantity,omitempty"`
	MaterialID     *string          `json:"material_id,omitempty"`
}

// SetStateRequest body para PATCH /api/movements/:id/state.
type SetStateRequest struct {
	State string `json:"state" validate:"required,oneof=PENDING COMPLETED CANCELLED"`
}

// MovementResponse representación de un movimiento en respuestas.
type MovementResponse struct {
	ID                 string           `json:"id"`
	Sequence           string           `json:"sequence"`
	Type               string           `json:"type"`
	State              string           `json:"state"`
	MaterialID         string           `json:"material_id"`
	InventoryID        *string          `json:"inventory_id,omitempty"`
	OriginKind         *string          `json:"origin_kind,omitempty"`
	OriginTechnicianID *string          `json:"origin_technician_id,omitempty"`
	Quantity           decimal.Decimal  `json:"quantity"`
	UnitPrice          *decimal.Decimal `json:"unit_price,omitempty"`
	GroupCode          string           `json:"group_code,omitempty"`
	Observations       *string          `json:"observations,omitempty"`
	InstallationID     *string          `json:"installation_id,omitempty"`
	CreatedBy          string           `json:"created_by,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// AssignmentResultResponse resultado por técnico de las pre-asignaciones.
type AssignmentResultResponse struct {
	TechnicianID string `json:"technician_id"`
	OK           bool   `json:"ok"`
	Reason       string `json:"reason,omitempty"`
}

// CreateMovementResponse respuesta de POST /api/movements.
type CreateMovementResponse struct {
	Movements   []MovementResponse         `json:"movements"`
	GroupCode   string                     `json:"group_code"`
	Assignments []AssignmentResultResponse `json:"assignments,omitempty"`
}

// FromMovement mapea la entidad al DTO de respuesta.
func FromMovement(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:                 m.ID,
		Sequence:           m.Sequence,
		Type:               m.Type,
		State:              m.State,
		MaterialID:         m.MaterialID,
		InventoryID:        m.InventoryID,
		OriginKind:         m.OriginKind,
		OriginTechnicianID: m.OriginTechnicianID,
		Quantity:           m.Quantity,
		UnitPrice:          m.UnitPrice,
		GroupCode:          m.GroupCode,
		Observations:       m.Observations,
		InstallationID:     m.InstallationID,
		CreatedBy:          m.CreatedBy,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// FromMovements mapea una lista de entidades.
func FromMovements(movs []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, FromMovement(m))
	}
	return out
}
