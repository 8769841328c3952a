package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/inventory/adjustments.
// Registra un ajuste manual (in/out) sobre un material o producto terminado.
type AdjustStockRequest struct {
	ItemKind string          `json:"item_kind"` // material | finished_good
	ItemID   string          `json:"item_id"`
	Type     string          `json:"type"` // in | out
	Qty      decimal.Decimal `json:"qty"`
	Note     string          `json:"note,omitempty"`
}

// StockMovementResponse una entrada del libro de movimientos.
type StockMovementResponse struct {
	ID           string          `json:"id"`
	Date         time.Time       `json:"date"`
	ItemKind     string          `json:"item_kind"`
	ItemID       string          `json:"item_id"`
	ItemName     string          `json:"item_name"`
	MovementType string          `json:"movement_type"`
	Qty          decimal.Decimal `json:"qty"`
	StockBefore  decimal.Decimal `json:"stock_before"`
	StockAfter   decimal.Decimal `json:"stock_after"`
	RefKind      string          `json:"ref_kind"`
	RefID        string          `json:"ref_id"`
	RefNumber    string          `json:"ref_number"`
	Note         string          `json:"note,omitempty"`
}

// LowStockResponse materiales y productos en o por debajo del stock mínimo.
type LowStockResponse struct {
	Materials []MaterialResponse `json:"materials"`
	Products  []ProductResponse  `json:"products"`
}
