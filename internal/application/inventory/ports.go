package inventory

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Movements       repository.MovementRepository
	Materials       repository.MaterialRepository
	WarehouseStock  repository.WarehouseStockRepository
	TechnicianStock repository.TechnicianStockRepository
	Inventories     repository.InventoryRepository
	Warehouses      repository.WarehouseRepository
	Audit           repository.AuditRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// movimientos: ajustes de tier, consecutivos y reconciliación comparten
// la misma transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
