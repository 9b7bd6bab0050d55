package inventory

import "github.com/shopspring/decimal"

// RollingAverage calcula el precio promedio móvil de una bodega tras una
// recepción (servicio de dominio).
// NuevoPromedio = ((StockActual * PromedioActual) + (CantEntrada * PrecioEntrada)) / (StockActual + CantEntrada)
func RollingAverage(stockActual, promedioActual, cantEntrada, precioEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(promedioActual).Add(cantEntrada.Mul(precioEntrada))
	return num.Div(sum)
}
