package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// HPP y márgenes inician en 0 y se calculan cuando exista receta activa.
type CreateProductRequest struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Description  string          `json:"description,omitempty"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Note         string          `json:"note,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil no se tocan.
// Cambiar SellingPrice recalcula los márgenes con el HPP cacheado.
type UpdateProductRequest struct {
	Name         *string          `json:"name,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Description  *string          `json:"description,omitempty"`
	SellingPrice *decimal.Decimal `json:"selling_price,omitempty"`
	MinStock     *decimal.Decimal `json:"min_stock,omitempty"`
	Status       *string          `json:"status,omitempty"`
	Note         *string          `json:"note,omitempty"`
}

// ProductResponse representación HTTP de un producto con su costeo derivado.
type ProductResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Description   string          `json:"description,omitempty"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Stock         decimal.Decimal `json:"stock"`
	MinStock      decimal.Decimal `json:"min_stock"`
	HPP           decimal.Decimal `json:"hpp"`
	MarginAmount  decimal.Decimal `json:"margin_amount"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
	Status        string          `json:"status"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
