package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// EffectDelta devuelve el delta firmado que un movimiento aplica sobre su tier.
//
// RECEIPT suma; ISSUE resta; RETURN también resta: una devolución representa
// material que sale del inventario activo (devolución a proveedor), no
// material que reingresa.
func EffectDelta(movementType string, quantity decimal.Decimal) decimal.Decimal {
	switch movementType {
	case entity.MovementTypeRECEIPT:
		return quantity
	case entity.MovementTypeISSUE, entity.MovementTypeRETURN:
		return quantity.Neg()
	}
	return decimal.Zero
}
