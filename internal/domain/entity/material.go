package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de materiales y productos.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Material representa una materia prima del inventario.
// PurchasePrice es el último precio de compra (se sobreescribe al recibir una
// orden de compra, sin promedio ponderado); Stock solo se modifica vía los
// procesadores de compra/producción o por ajuste manual, nunca por CRUD directo.
type Material struct {
	ID            string
	Code          string // código único legible (MAT-001)
	Name          string
	Category      string
	Unit          string // unidad base (kg, gr, lt, pcs...)
	PurchasePrice decimal.Decimal
	Stock         decimal.Decimal
	MinStock      decimal.Decimal
	SupplierID    *string // proveedor preferido, opcional
	Status        string
	Note          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
