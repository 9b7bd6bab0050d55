package inventory

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Motor de reconciliación: recalcula el total cacheado de una variante como
// la suma del tier de bodegas más el tier de técnicos, y lo escribe sin
// comprobación optimista (last-write-wins). Las filas de tier son la única
// fuente de verdad; el total de la variante es siempre una proyección.

// Resync reconcilia una variante en su propia transacción. Expuesto como
// operación directa (endpoint de resincronización del catálogo).
func (p *MovementProcessor) Resync(ctx context.Context, materialID string) error {
	return p.tx.Run(ctx, func(r TxRepos) error {
		return p.resyncInTx(r, materialID)
	})
}

// resyncInTx reconcilia dentro de una transacción existente. El bloqueo de la
// fila de la variante serializa la reconciliación frente a ajustes
// concurrentes sobre el mismo material.
func (p *MovementProcessor) resyncInTx(r TxRepos, materialID string) error {
	material, err := r.Materials.GetForUpdate(materialID)
	if err != nil {
		return err
	}
	if material == nil {
		return domain.ErrNotFound
	}
	enBodegas, err := r.WarehouseStock.SumByMaterial(materialID)
	if err != nil {
		return err
	}
	enTecnicos, err := r.TechnicianStock.SumByMaterial(materialID)
	if err != nil {
		return err
	}
	return r.Materials.UpdateStockTotal(materialID, enBodegas.Add(enTecnicos))
}
