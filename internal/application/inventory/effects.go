package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	dominv "github.com/jhoicas/Almacen-api/internal/domain/inventory"
)

// applyEffect despacha el ajuste de stock de un movimiento al tier que le
// corresponde. Con invert=true aplica el efecto con signo contrario, que es
// exactamente la reversión usada al editar, cancelar o eliminar.
//
// Tabla de signos (dominio): RECEIPT = +cantidad, ISSUE = -cantidad,
// RETURN = -cantidad. La devolución resta porque el material sale del
// inventario activo (devolución a proveedor).
func (p *MovementProcessor) applyEffect(r TxRepos, mov *entity.Movement, invert bool) error {
	delta := dominv.EffectDelta(mov.Type, mov.Quantity)
	if invert {
		delta = delta.Neg()
	}

	target := p.effectTarget(mov)
	switch target.Kind {
	case dominv.TargetTechnician:
		if mov.Type == entity.MovementTypeRECEIPT {
			// Recepción desde técnico: descarga el material del técnico y lo
			// acredita en el destino resuelto (bodega o fondo central). La pata
			// que resta va siempre primero: si se rechaza por stock insuficiente
			// no queda ninguna mutación parcial.
			if invert {
				if err := p.creditDestination(r, mov, delta); err != nil {
					return err
				}
				return p.adjustTechnician(r, mov.MaterialID, target.TechnicianID, delta.Neg())
			}
			if err := p.adjustTechnician(r, mov.MaterialID, target.TechnicianID, delta.Neg()); err != nil {
				return err
			}
			return p.creditDestination(r, mov, delta)
		}
		return p.adjustTechnician(r, mov.MaterialID, target.TechnicianID, delta)
	case dominv.TargetWarehouse, dominv.TargetPool:
		return p.creditDestination(r, mov, delta)
	}
	return nil
}

// effectTarget traduce los campos del movimiento a la unión etiquetada de
// destino, para que el despacho sea un switch exhaustivo.
func (p *MovementProcessor) effectTarget(mov *entity.Movement) dominv.StockTarget {
	if mov.OriginKind != nil && *mov.OriginKind == entity.OriginTechnician && mov.OriginTechnicianID != nil {
		return dominv.TechnicianTarget(*mov.OriginTechnicianID)
	}
	if mov.InventoryID != nil {
		return dominv.WarehouseTarget("") // la bodega se resuelve del contenedor al aplicar
	}
	return dominv.PoolTarget()
}

// creditDestination aplica el delta sobre la bodega del contenedor del
// movimiento, o sobre el fondo central si el movimiento no tiene contenedor.
func (p *MovementProcessor) creditDestination(r TxRepos, mov *entity.Movement, delta decimal.Decimal) error {
	if mov.InventoryID != nil {
		inv, err := r.Inventories.GetByID(*mov.InventoryID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		return p.adjustWarehouse(r, mov, inv.WarehouseID, delta)
	}
	return p.adjustPool(r, mov.MaterialID, delta)
}

// adjustWarehouse ajusta el stock (material, bodega) bajo bloqueo de fila.
// Rechaza sin mutar cualquier ajuste que dejaría el stock negativo.
func (p *MovementProcessor) adjustWarehouse(r TxRepos, mov *entity.Movement, warehouseID string, delta decimal.Decimal) error {
	stock, err := r.WarehouseStock.GetForUpdate(mov.MaterialID, warehouseID)
	if err != nil {
		return err
	}
	nuevo := stock.Stock.Add(delta)
	if nuevo.IsNegative() {
		return domain.ErrInsufficientStock
	}
	// Promedio móvil solo cambia con recepciones con precio que suman stock.
	if mov.Type == entity.MovementTypeRECEIPT && delta.GreaterThan(decimal.Zero) && mov.UnitPrice != nil {
		promedio := decimal.Zero
		if stock.AvgPrice != nil {
			promedio = *stock.AvgPrice
		}
		avg := dominv.RollingAverage(stock.Stock, promedio, delta, *mov.UnitPrice)
		stock.AvgPrice = &avg
	}
	stock.Stock = nuevo
	stock.UpdatedAt = time.Now()
	if err := r.WarehouseStock.Upsert(stock); err != nil {
		return err
	}
	return p.resyncInTx(r, mov.MaterialID)
}

// adjustTechnician ajusta la cantidad cargada por un técnico bajo bloqueo de
// fila, con la misma regla de no-negatividad que el stock de bodega.
func (p *MovementProcessor) adjustTechnician(r TxRepos, materialID, technicianID string, delta decimal.Decimal) error {
	carried, err := r.TechnicianStock.GetForUpdate(materialID, technicianID)
	if err != nil {
		return err
	}
	nuevo := carried.Quantity.Add(delta)
	if nuevo.IsNegative() {
		return domain.ErrInsufficientStock
	}
	carried.Quantity = nuevo
	carried.UpdatedAt = time.Now()
	if err := r.TechnicianStock.Upsert(carried); err != nil {
		return err
	}
	return p.resyncInTx(r, materialID)
}

// adjustPool ajusta el fondo central: escribe un total provisional directo
// sobre la variante y reconcilia de inmediato. Las filas de tier son siempre
// la autoridad, así que la reconciliación corrige el provisional si difiere.
func (p *MovementProcessor) adjustPool(r TxRepos, materialID string, delta decimal.Decimal) error {
	material, err := r.Materials.GetForUpdate(materialID)
	if err != nil {
		return err
	}
	if material == nil {
		return domain.ErrNotFound
	}
	provisional := material.StockTotal.Add(delta)
	if provisional.IsNegative() {
		return domain.ErrInsufficientStock
	}
	if err := r.Materials.UpdateStockTotal(materialID, provisional); err != nil {
		return err
	}
	return p.resyncInTx(r, materialID)
}
