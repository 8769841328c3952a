package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Costeo-api/internal/domain/costing"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de ComputeCost: HPP = Σ(qty × precio de compra) / rendimiento.
// Vector de referencia: Harina qty 2 × $6.000 sobre rendimiento 10
// → total $12.000, unitario $1.200.
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(name, qty, price string) entity.RecipeLineDetail {
	return entity.RecipeLineDetail{
		RecipeLine: entity.RecipeLine{
			MaterialID: name,
			Qty:        dec(qty),
			Unit:       "gr",
		},
		MaterialName:  name,
		PurchasePrice: dec(price),
	}
}

func TestComputeCost_VectorReferencia(t *testing.T) {
	lines := []entity.RecipeLineDetail{line("Harina", "2", "6000")}

	total, unit := costing.ComputeCost(lines, dec("10"))

	assert.True(t, total.Equal(dec("12000")), "total esperado 12000, fue %s", total)
	assert.True(t, unit.Equal(dec("1200")), "unitario esperado 1200, fue %s", unit)
}

func TestComputeCost_SumaVariasLineas(t *testing.T) {
	lines := []entity.RecipeLineDetail{
		line("Harina", "2", "6000"),
		line("Azúcar", "0.5", "4000"),
		line("Huevos", "6", "500"),
	}

	total, unit := costing.ComputeCost(lines, dec("10"))

	// 12000 + 2000 + 3000 = 17000
	assert.True(t, total.Equal(dec("17000")), "total esperado 17000, fue %s", total)
	assert.True(t, unit.Equal(dec("1700")), "unitario esperado 1700, fue %s", unit)
}

func TestComputeCost_QtyFraccionaria(t *testing.T) {
	lines := []entity.RecipeLineDetail{line("Mantequilla", "0.25", "9000")}

	total, unit := costing.ComputeCost(lines, dec("3"))

	assert.True(t, total.Equal(dec("2250")), "total esperado 2250, fue %s", total)
	assert.True(t, unit.Equal(dec("750")), "unitario esperado 750, fue %s", unit)
}

// Receta sin líneas: costo cero, sin error.
func TestComputeCost_SinLineas(t *testing.T) {
	total, unit := costing.ComputeCost(nil, dec("10"))

	assert.True(t, total.IsZero(), "total debe ser 0 sin líneas")
	assert.True(t, unit.IsZero(), "unitario debe ser 0 sin líneas")
}

// Rendimiento cero: guarda explícita, unitario 0 en lugar de división por cero.
func TestComputeCost_RendimientoCero(t *testing.T) {
	lines := []entity.RecipeLineDetail{line("Harina", "2", "6000")}

	total, unit := costing.ComputeCost(lines, decimal.Zero)

	assert.True(t, total.Equal(dec("12000")), "el total se calcula igual")
	assert.True(t, unit.IsZero(), "unitario debe ser 0 con rendimiento 0")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de Margin: margen relativo al COSTO, no al precio de venta.
// Precio $2.000 con HPP $1.200 → margen $800 = 66.67% sobre el costo.
// ──────────────────────────────────────────────────────────────────────────────

func TestMargin_RelativoAlCosto(t *testing.T) {
	amount, percent := costing.Margin(dec("2000"), dec("1200"))

	assert.True(t, amount.Equal(dec("800")), "margen esperado 800, fue %s", amount)
	assert.True(t, percent.Round(2).Equal(dec("66.67")),
		"porcentaje esperado 66.67 (sobre costo), fue %s", percent)
}

func TestMargin_HppCero(t *testing.T) {
	amount, percent := costing.Margin(dec("2000"), decimal.Zero)

	assert.True(t, amount.Equal(dec("2000")), "sin costo el margen es el precio completo")
	assert.True(t, percent.IsZero(), "con HPP 0 el porcentaje queda en 0, no infinito")
}

// Vender bajo costo: margen negativo, el cálculo no lo bloquea.
func TestMargin_Negativo(t *testing.T) {
	amount, percent := costing.Margin(dec("1000"), dec("1200"))

	assert.True(t, amount.Equal(dec("-200")), "margen esperado -200, fue %s", amount)
	assert.True(t, percent.Round(2).Equal(dec("-16.67")),
		"porcentaje esperado -16.67, fue %s", percent)
}
