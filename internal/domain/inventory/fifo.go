package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ResolveFIFO selecciona la variante de material que satisface una salida,
// sesgando el consumo hacia el stock más antiguo (servicio de dominio puro).
//
// Reglas, en orden:
//  1. Solo variantes activas con stock > 0, ordenadas por fecha de creación
//     ascendente.
//  2. La primera cuyo stock cacheado cubra la cantidad solicitada.
//  3. Si ninguna la cubre, la más antigua con algo de stock.
//  4. Si ninguna tiene stock, nil (el caller rechaza la línea).
//
// Determinista: ante el mismo snapshot de variantes devuelve siempre la misma.
func ResolveFIFO(variants []*entity.Material, requested decimal.Decimal) *entity.Material {
	eligible := make([]*entity.Material, 0, len(variants))
	for _, v := range variants {
		if v.Active && v.StockTotal.GreaterThan(decimal.Zero) {
			eligible = append(eligible, v)
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].CreatedAt.Before(eligible[j].CreatedAt)
	})
	for _, v := range eligible {
		if v.StockTotal.GreaterThanOrEqual(requested) {
			return v
		}
	}
	return eligible[0]
}
