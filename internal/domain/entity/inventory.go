package entity

import "time"

// Inventory es un almacén (agrupación de stock con nombre) ligado a
// exactamente una bodega. El motor de movimientos solo lo usa para resolver
// "qué bodega afecta este movimiento" a partir del contenedor indicado.
type Inventory struct {
	ID          string
	Name        string
	WarehouseID string
	CreatedAt   time.Time
}
