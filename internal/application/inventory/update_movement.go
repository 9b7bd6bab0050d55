package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// UpdateMovementInput campos editables de un movimiento. Solo un subconjunto
// puede cambiar: observaciones, instalación vinculada, contenedor, precio,
// cantidad y variante. El tipo y el consecutivo son inmutables.
type UpdateMovementInput struct {
	Observations   *string
	InstallationID *string
	InventoryID    *string
	UnitPrice      *decimal.Decimal
	Quantity       *decimal.Decimal
	MaterialID     *string
}

// UpdateMovement aplica una edición parcial. Si el movimiento está COMPLETED,
// primero revierte el efecto original (con los valores previos a la edición),
// muta los campos y vuelve a aplicar el ajuste con los valores nuevos bajo el
// tipo original. Si no está COMPLETED no hay efecto que revertir.
func (p *MovementProcessor) UpdateMovement(ctx context.Context, id string, input UpdateMovementInput) (*entity.Movement, error) {
	if input.Quantity != nil && !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Movement
	err := p.tx.Run(ctx, func(r TxRepos) error {
		mov, err := r.Movements.GetByID(id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}

		if input.MaterialID != nil {
			material, err := r.Materials.GetByID(*input.MaterialID)
			if err != nil {
				return err
			}
			if material == nil {
				return domain.ErrNotFound
			}
		}
		if input.InventoryID != nil {
			inv, err := r.Inventories.GetByID(*input.InventoryID)
			if err != nil {
				return err
			}
			if inv == nil {
				return domain.ErrInvalidInput
			}
		}

		completed := mov.State == entity.MovementStateCOMPLETED
		if completed {
			// Reversión con los valores originales, antes de mutar nada.
			original := *mov
			if err := p.applyEffect(r, &original, true); err != nil {
				return err
			}
		}

		if input.Observations != nil {
			mov.Observations = input.Observations
		}
		if input.InstallationID != nil {
			mov.InstallationID = input.InstallationID
		}
		if input.InventoryID != nil {
			mov.InventoryID = input.InventoryID
		}
		if input.UnitPrice != nil {
			mov.UnitPrice = input.UnitPrice
		}
		if input.Quantity != nil {
			mov.Quantity = *input.Quantity
		}
		if input.MaterialID != nil {
			mov.MaterialID = *input.MaterialID
		}

		if completed {
			if err := p.applyEffect(r, mov, false); err != nil {
				return err
			}
		}
		if err := r.Movements.Update(mov); err != nil {
			return err
		}

		// El precio cacheado de la variante sigue al de la recepción editada
		// (mejor esfuerzo: un fallo aquí no deshace la edición).
		if input.UnitPrice != nil && mov.Type == entity.MovementTypeRECEIPT {
			if err := r.Materials.UpdatePrice(mov.MaterialID, *input.UnitPrice); err != nil {
				p.log.Warn().Err(err).Str("material_id", mov.MaterialID).
					Msg("no se pudo actualizar el precio cacheado de la variante")
			}
		}
		updated = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetState transiciona el estado de un movimiento. Pasar a COMPLETED aplica el
// efecto de stock; salir de COMPLETED lo revierte; cualquier otra transición
// no toca stock.
func (p *MovementProcessor) SetState(ctx context.Context, id, newState string) (*entity.Movement, error) {
	if !entity.ValidState(newState) {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Movement
	err := p.tx.Run(ctx, func(r TxRepos) error {
		mov, err := r.Movements.GetByID(id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		if mov.State == newState {
			updated = mov
			return nil
		}

		wasCompleted := mov.State == entity.MovementStateCOMPLETED
		willComplete := newState == entity.MovementStateCOMPLETED

		mov.State = newState
		switch {
		case !wasCompleted && willComplete:
			if err := p.applyEffect(r, mov, false); err != nil {
				return err
			}
		case wasCompleted && !willComplete:
			if err := p.applyEffect(r, mov, true); err != nil {
				return err
			}
		}
		if err := r.Movements.Update(mov); err != nil {
			return err
		}
		updated = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
