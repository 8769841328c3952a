// Package costing implementa los servicios de dominio de costeo:
// HPP (costo de producción por unidad) a partir de las líneas de la receta
// activa, y margen del producto a partir del precio de venta y el HPP.
package costing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// ComputeCost calcula el costo total de un lote y el costo por unidad (HPP).
// TotalCost = Σ(qty × precio de compra del material); UnitCost = TotalCost / yieldQty.
// Receta sin líneas → (0, 0). yieldQty = 0 → UnitCost = 0 (guarda explícita,
// no error de división). Sin redondeo: el redondeo de presentación es del caller.
func ComputeCost(lines []entity.RecipeLineDetail, yieldQty decimal.Decimal) (totalCost, unitCost decimal.Decimal) {
	if len(lines) == 0 {
		return decimal.Zero, decimal.Zero
	}
	for _, l := range lines {
		totalCost = totalCost.Add(l.Qty.Mul(l.PurchasePrice))
	}
	if yieldQty.GreaterThan(decimal.Zero) {
		unitCost = totalCost.Div(yieldQty)
	}
	return totalCost, unitCost
}

// Margin calcula el margen en valor y porcentaje.
// MarginPercent se define relativo al COSTO, no al precio de venta:
// (margen / hpp) × 100, con 0 cuando hpp = 0.
func Margin(sellingPrice, hpp decimal.Decimal) (amount, percent decimal.Decimal) {
	amount = sellingPrice.Sub(hpp)
	if hpp.GreaterThan(decimal.Zero) {
		percent = amount.Div(hpp).Mul(decimal.NewFromInt(100))
	}
	return amount, percent
}
