package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// AuditRepository define el puerto del registro de auditoría (append-only).
type AuditRepository interface {
	Record(entry *entity.AuditEntry) error
}
