package entity

import (
	"encoding/json"
	"time"
)

// AuditEntry es una entrada append-only del registro de auditoría.
// Snapshot guarda el estado completo de la entidad antes de la operación.
type AuditEntry struct {
	ID         string
	EntityType string
	EntityID   string
	Snapshot   json.RawMessage
	ActorID    string
	Reason     string
	CreatedAt  time.Time
}
