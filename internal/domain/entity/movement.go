package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementTypeRECEIPT = "RECEIPT" // recepción (entrada)
	MovementTypeISSUE   = "ISSUE"   // salida a instalación
	MovementTypeRETURN  = "RETURN"  // devolución a proveedor
)

// Estados de un movimiento. COMPLETED es el valor por defecto por
// compatibilidad con registros históricos sin estado.
const (
	MovementStatePENDING   = "PENDING"
	MovementStateCOMPLETED = "COMPLETED"
	MovementStateCANCELLED = "CANCELLED"
)

// Origen del movimiento. Ausente (nil) significa que el destino es el fondo
// central de la sede (sin bodega ni técnico).
const (
	OriginWarehouse  = "WAREHOUSE"
	OriginTechnician = "TECHNICIAN"
)

// MovementPrefixes prefijo del consecutivo legible por tipo (REC-12, ISS-7, RET-3).
var MovementPrefixes = map[string]string{
	MovementTypeRECEIPT: "REC",
	MovementTypeISSUE:   "ISS",
	MovementTypeRETURN:  "RET",
}

// Movement es una línea del libro de movimientos de inventario.
// Una vez COMPLETED tiene exactamente un efecto aplicado sobre un tier
// (bodega, técnico o fondo central) que debe poder revertirse al editar,
// cancelar o eliminar el movimiento.
type Movement struct {
	ID                 string
	Sequence           string // consecutivo legible: <REC|ISS|RET>-<N>, único
	Type               string
	State              string
	MaterialID         string
	InventoryID        *string // contenedor destino; nil = fondo central
	OriginKind         *string // WAREHOUSE | TECHNICIAN; nil = fondo central
	OriginTechnicianID *string // solo cuando OriginKind = TECHNICIAN
	Quantity           decimal.Decimal
	UnitPrice          *decimal.Decimal
	GroupCode          string // agrupa líneas creadas en una misma petición
	Observations       *string
	InstallationID     *string
	CreatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ValidType indica si el tipo de movimiento es uno de los soportados.
func ValidType(t string) bool {
	_, ok := MovementPrefixes[t]
	return ok
}

// ValidState indica si el estado es uno de los soportados.
func ValidState(s string) bool {
	return s == MovementStatePENDING || s == MovementStateCOMPLETED || s == MovementStateCANCELLED
}
