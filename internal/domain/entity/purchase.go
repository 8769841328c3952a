package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una orden de compra.
const (
	PurchaseStatusDraft     = "draft"
	PurchaseStatusSubmitted = "submitted"
	PurchaseStatusReceived  = "received"
	PurchaseStatusCancelled = "cancelled"
)

// Purchase representa una orden de compra de materias primas.
// Total = Subtotal - Discount + Tax + Shipping. Una vez recibida es inmutable:
// no se puede eliminar ni volver a recibir.
type Purchase struct {
	ID           string
	Number       string // número único legible (PO-20260827-001)
	Date         time.Time
	SupplierID   string
	Subtotal     decimal.Decimal
	Discount     decimal.Decimal
	Tax          decimal.Decimal
	Shipping     decimal.Decimal
	Total        decimal.Decimal
	Status       string
	ReceivedDate *time.Time
	Note         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PurchaseLine es una línea de la orden de compra. Subtotal = Qty × UnitPrice.
type PurchaseLine struct {
	ID         string
	PurchaseID string
	MaterialID string
	Qty        decimal.Decimal // > 0
	Unit       string
	UnitPrice  decimal.Decimal // >= 0
	Subtotal   decimal.Decimal
	CreatedAt  time.Time
}
