package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeLineRequest una línea (ingrediente) de la receta.
type RecipeLineRequest struct {
	MaterialID string          `json:"material_id"`
	Qty        decimal.Decimal `json:"qty"`
	Unit       string          `json:"unit"`
	Note       string          `json:"note,omitempty"`
}

// CreateRecipeRequest body para POST /api/recipes (receta + líneas).
type CreateRecipeRequest struct {
	ProductID string              `json:"product_id"`
	Name      string              `json:"name"`
	YieldQty  decimal.Decimal     `json:"yield_qty"`
	YieldUnit string              `json:"yield_unit"`
	IsActive  bool                `json:"is_active"`
	Note      string              `json:"note,omitempty"`
	Lines     []RecipeLineRequest `json:"lines"`
}

// UpdateRecipeRequest body para PUT /api/recipes/:id: reemplaza cabecera y líneas.
type UpdateRecipeRequest struct {
	Name      string              `json:"name"`
	YieldQty  decimal.Decimal     `json:"yield_qty"`
	YieldUnit string              `json:"yield_unit"`
	IsActive  bool                `json:"is_active"`
	Note      string              `json:"note,omitempty"`
	Lines     []RecipeLineRequest `json:"lines"`
}

// RecipeLineResponse una línea de receta con los datos actuales del material.
type RecipeLineResponse struct {
	ID            string          `json:"id"`
	MaterialID    string          `json:"material_id"`
	MaterialName  string          `json:"material_name"`
	Qty           decimal.Decimal `json:"qty"`
	Unit          string          `json:"unit"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	LineCost      decimal.Decimal `json:"line_cost"`
	Note          string          `json:"note,omitempty"`
}

// RecipeResponse receta con costo total y unitario recalculados al momento.
type RecipeResponse struct {
	ID        string               `json:"id"`
	ProductID string               `json:"product_id"`
	Name      string               `json:"name"`
	YieldQty  decimal.Decimal      `json:"yield_qty"`
	YieldUnit string               `json:"yield_unit"`
	IsActive  bool                 `json:"is_active"`
	TotalCost decimal.Decimal      `json:"total_cost"`
	UnitCost  decimal.Decimal      `json:"unit_cost"`
	Note      string               `json:"note,omitempty"`
	Lines     []RecipeLineResponse `json:"lines,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}
