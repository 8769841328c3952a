package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto terminado.
// HPP, MarginAmount y MarginPercent son campos derivados (vista materializada):
// se recalculan en cada mutación de receta, toggle de receta activa o edición
// del precio de venta. Stock solo cambia vía producción o ajuste manual.
type Product struct {
	ID            string
	Code          string // código único legible (PRD-001)
	Name          string
	Category      string
	Description   string
	SellingPrice  decimal.Decimal
	Stock         decimal.Decimal
	MinStock      decimal.Decimal
	HPP           decimal.Decimal // costo de producción por unidad, cacheado
	MarginAmount  decimal.Decimal // SellingPrice - HPP
	MarginPercent decimal.Decimal // MarginAmount / HPP * 100 (relativo al costo)
	Status        string
	Note          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
