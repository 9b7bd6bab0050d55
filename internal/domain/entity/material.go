package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa una variante de material del catálogo.
// Varias variantes pueden compartir el mismo Code cuando provienen de
// proveedores distintos; cada una es una fila independiente.
// StockTotal es un valor cacheado: la fuente de verdad son las filas de
// warehouse_stock y technician_stock, y el motor de reconciliación lo recalcula
// después de cada mutación.
type Material struct {
	ID          string
	Code        string // código de catálogo, compartido entre variantes
	Name        string
	SupplierID  string
	InventoryID *string         // contenedor "hogar" (almacén); nil = sin contenedor
	StockTotal  decimal.Decimal // cacheado, derivado de los tiers
	Price       decimal.Decimal // precio unitario de referencia
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
