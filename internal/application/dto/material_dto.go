package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest body para POST /api/materials.
// Code vacío genera uno secuencial (MAT-001).
type CreateMaterialRequest struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Unit          string          `json:"unit"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	MinStock      decimal.Decimal `json:"min_stock"`
	SupplierID    *string         `json:"supplier_id,omitempty"`
	Note          string          `json:"note,omitempty"`
}

// UpdateMaterialRequest body para PUT /api/materials/:id. Campos nil no se tocan.
// No permite modificar Stock ni PurchasePrice: esos cambian vía compras/ajustes.
type UpdateMaterialRequest struct {
	Name       *string          `json:"name,omitempty"`
	Category   *string          `json:"category,omitempty"`
	Unit       *string          `json:"unit,omitempty"`
	MinStock   *decimal.Decimal `json:"min_stock,omitempty"`
	SupplierID *string          `json:"supplier_id,omitempty"`
	Status     *string          `json:"status,omitempty"`
	Note       *string          `json:"note,omitempty"`
}

// MaterialResponse representación HTTP de un material.
type MaterialResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Unit          string          `json:"unit"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Stock         decimal.Decimal `json:"stock"`
	MinStock      decimal.Decimal `json:"min_stock"`
	SupplierID    *string         `json:"supplier_id,omitempty"`
	Status        string          `json:"status"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
