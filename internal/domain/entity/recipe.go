package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe representa una receta de producción de un producto.
// Invariante: como máximo una receta por producto tiene IsActive = true.
type Recipe struct {
	ID        string
	ProductID string
	Name      string
	YieldQty  decimal.Decimal // porciones/unidades que rinde un lote
	YieldUnit string
	IsActive  bool
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecipeLine es un ingrediente de la receta. Unit es libre e independiente de
// la unidad base del material: no se hace conversión de unidades, qty × precio
// de compra se toma tal cual.
type RecipeLine struct {
	ID         string
	RecipeID   string
	MaterialID string
	Qty        decimal.Decimal // > 0
	Unit       string
	Note       string
	CreatedAt  time.Time
}

// RecipeLineDetail es una línea de receta unida a los datos actuales de su
// material (precio de compra y stock), tal como la consumen los cálculos de
// costo y la verificación de stock de producción.
type RecipeLineDetail struct {
	RecipeLine
	MaterialName  string
	MaterialUnit  string
	PurchasePrice decimal.Decimal
	MaterialStock decimal.Decimal
}
