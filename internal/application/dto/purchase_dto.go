package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLineRequest una línea de la orden de compra.
type PurchaseLineRequest struct {
	MaterialID string          `json:"material_id"`
	Qty        decimal.Decimal `json:"qty"`
	Unit       string          `json:"unit"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseRequest body para POST /api/purchases.
// Number vacío genera uno secuencial del día (PO-YYYYMMDD-001). Si Status es
// "received" la recepción se procesa inmediatamente (precio y stock de materiales).
type CreatePurchaseRequest struct {
	Number     string                `json:"number"`
	Date       time.Time             `json:"date"`
	SupplierID string                `json:"supplier_id"`
	Discount   decimal.Decimal       `json:"discount"`
	Tax        decimal.Decimal       `json:"tax"`
	Shipping   decimal.Decimal       `json:"shipping"`
	Status     string                `json:"status"`
	Note       string                `json:"note,omitempty"`
	Lines      []PurchaseLineRequest `json:"lines"`
}

// PurchaseLineResponse línea de compra con nombre de material.
type PurchaseLineResponse struct {
	ID           string          `json:"id"`
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name,omitempty"`
	Qty          decimal.Decimal `json:"qty"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse representación HTTP de una orden de compra.
type PurchaseResponse struct {
	ID           string                 `json:"id"`
	Number       string                 `json:"number"`
	Date         time.Time              `json:"date"`
	SupplierID   string                 `json:"supplier_id"`
	Subtotal     decimal.Decimal        `json:"subtotal"`
	Discount     decimal.Decimal        `json:"discount"`
	Tax          decimal.Decimal        `json:"tax"`
	Shipping     decimal.Decimal        `json:"shipping"`
	Total        decimal.Decimal        `json:"total"`
	Status       string                 `json:"status"`
	ReceivedDate *time.Time             `json:"received_date,omitempty"`
	Note         string                 `json:"note,omitempty"`
	Lines        []PurchaseLineResponse `json:"lines,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}
