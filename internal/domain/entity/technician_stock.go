package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TechnicianStock es la cantidad de una variante de material que un técnico
// de campo lleva consigo. Fila única por par material+técnico; inserciones
// duplicadas se fusionan sumando cantidades, nunca fallan.
type TechnicianStock struct {
	MaterialID   string
	TechnicianID string
	Quantity     decimal.Decimal
	UpdatedAt    time.Time
}
