package inventory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Razón fija con la que se auditan las eliminaciones de movimientos.
const deleteAuditReason = "eliminación de movimiento de inventario"

// RemoveMovement elimina un movimiento: intenta revertir su efecto de tier si
// estaba COMPLETED, deja constancia en el registro de auditoría con el
// snapshot previo a la eliminación y borra la fila. Ni el fallo de la
// reversión ni el de la auditoría bloquean la eliminación; ambos se registran.
func (p *MovementProcessor) RemoveMovement(ctx context.Context, id, actorID string) error {
	return p.tx.Run(ctx, func(r TxRepos) error {
		mov, err := r.Movements.GetByID(id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}

		if mov.State == entity.MovementStateCOMPLETED {
			if err := p.applyEffect(r, mov, true); err != nil {
				p.log.Error().Err(err).Str("movement_id", id).
					Msg("reversión de stock al eliminar falló; la eliminación continúa")
			}
		}

		snapshot, err := json.Marshal(mov)
		if err != nil {
			p.log.Error().Err(err).Str("movement_id", id).Msg("snapshot de auditoría no serializable")
			snapshot = []byte(`{}`)
		}
		entry := &entity.AuditEntry{
			ID:         uuid.New().String(),
			EntityType: "movement",
			EntityID:   mov.ID,
			Snapshot:   snapshot,
			ActorID:    actorID,
			Reason:     deleteAuditReason,
			CreatedAt:  time.Now(),
		}
		if err := r.Audit.Record(entry); err != nil {
			p.log.Error().Err(err).Str("movement_id", id).
				Msg("auditoría de eliminación falló; la eliminación continúa")
		}

		return r.Movements.Delete(id)
	})
}
