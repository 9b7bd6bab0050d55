package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// AssignmentItem un material y la cantidad a cargar al técnico.
type AssignmentItem struct {
	MaterialID string
	Quantity   decimal.Decimal
}

// TechnicianAssignment instrucción "cargar al técnico" que acompaña a una
// recepción masiva.
type TechnicianAssignment struct {
	TechnicianID string
	Items        []AssignmentItem
}

// AssignmentResult resultado individual por técnico. Las asignaciones no son
// atómicas entre técnicos: cada una se procesa y reporta por separado.
type AssignmentResult struct {
	TechnicianID string
	OK           bool
	Reason       string
}

// AssignmentReport resultado tipado de la fase de asignaciones, para que el
// caller (y los tests) puedan afirmar sobre fallos parciales en lugar de
// depender de logs.
type AssignmentReport struct {
	Results []AssignmentResult
}

// AllOK indica si todas las asignaciones se aplicaron.
func (rep *AssignmentReport) AllOK() bool {
	for _, res := range rep.Results {
		if !res.OK {
			return false
		}
	}
	return true
}

// processAssignments ejecuta las instrucciones de pre-asignación a técnicos de
// una recepción. Por cada técnico, en su propia transacción: (a) acredita su
// tier por cada material/cantidad y (b) sintetiza y completa un movimiento
// ISSUE auxiliar desde la bodega receptora, para que el tier de bodega refleje
// que el material salió al campo. El fallo de un técnico no aborta a los demás.
func (p *MovementProcessor) processAssignments(ctx context.Context, input CreateMovementInput, groupCode string, receivingInv *string) *AssignmentReport {
	report := &AssignmentReport{}
	for _, assignment := range input.Assignments {
		result := AssignmentResult{TechnicianID: assignment.TechnicianID, OK: true}
		if err := p.assignToTechnician(ctx, input, assignment, groupCode, receivingInv); err != nil {
			result.OK = false
			result.Reason = err.Error()
			p.log.Warn().Err(err).Str("technician_id", assignment.TechnicianID).
				Str("group_code", groupCode).Msg("asignación a técnico falló")
		}
		report.Results = append(report.Results, result)
	}
	return report
}

func (p *MovementProcessor) assignToTechnician(ctx context.Context, input CreateMovementInput, assignment TechnicianAssignment, groupCode string, receivingInv *string) error {
	if assignment.TechnicianID == "" || len(assignment.Items) == 0 {
		return domain.ErrInvalidInput
	}
	for _, item := range assignment.Items {
		if !item.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	}

	return p.tx.Run(ctx, func(r TxRepos) error {
		now := time.Now()
		for _, item := range assignment.Items {
			material, err := r.Materials.GetByID(item.MaterialID)
			if err != nil {
				return err
			}
			if material == nil {
				return domain.ErrNotFound
			}

			// Crédito directo al tier del técnico (fusiona filas duplicadas).
			if err := r.TechnicianStock.AddQuantity(item.MaterialID, assignment.TechnicianID, item.Quantity); err != nil {
				return err
			}
			if err := p.resyncInTx(r, item.MaterialID); err != nil {
				return err
			}

			// Salida auxiliar desde la bodega receptora por la misma cantidad.
			seq, err := p.nextSequence(r, entity.MovementTypeISSUE)
			if err != nil {
				return err
			}
			aux := &entity.Movement{
				ID:          uuid.New().String(),
				Sequence:    seq,
				Type:        entity.MovementTypeISSUE,
				State:       entity.MovementStateCOMPLETED,
				MaterialID:  item.MaterialID,
				InventoryID: receivingInv,
				Quantity:    item.Quantity,
				GroupCode:   groupCode,
				CreatedBy:   input.ActorID,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if aux.InventoryID != nil {
				kind := entity.OriginWarehouse
				aux.OriginKind = &kind
			}
			if err := r.Movements.Create(aux); err != nil {
				return err
			}
			if err := p.applyEffect(r, aux, false); err != nil {
				return err
			}
		}
		return nil
	})
}
