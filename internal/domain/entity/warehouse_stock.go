package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarehouseStock es el stock de una variante de material en una bodega
// (fila única por par material+bodega). Stock nunca puede quedar negativo:
// un ajuste que lo dejaría por debajo de cero se rechaza sin mutar la fila.
// Las filas en cero persisten; nunca se eliminan desde el motor.
type WarehouseStock struct {
	MaterialID  string
	WarehouseID string
	Stock       decimal.Decimal
	AvgPrice    *decimal.Decimal // precio promedio móvil, solo se actualiza en recepciones
	UpdatedAt   time.Time
}
