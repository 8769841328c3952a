package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductionRequest body para POST /api/productions.
// Number vacío genera uno secuencial del día (PROD-YYYYMMDD-001). Si Status es
// "completed" la completación (stock + libro) se procesa inmediatamente.
type CreateProductionRequest struct {
	Number   string          `json:"number"`
	Date     time.Time       `json:"date"`
	RecipeID string          `json:"recipe_id"`
	BatchQty decimal.Decimal `json:"batch_qty"`
	Status   string          `json:"status"`
	Note     string          `json:"note,omitempty"`
}

// ProductionResponse representación HTTP de una producción.
type ProductionResponse struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	Date          time.Time       `json:"date"`
	RecipeID      string          `json:"recipe_id"`
	ProductID     string          `json:"product_id"`
	BatchQty      decimal.Decimal `json:"batch_qty"`
	YieldQty      decimal.Decimal `json:"yield_qty"`
	TotalHPP      decimal.Decimal `json:"total_hpp"`
	HPPPerUnit    decimal.Decimal `json:"hpp_per_unit"`
	Status        string          `json:"status"`
	CompletedDate *time.Time      `json:"completed_date,omitempty"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// StockCheckResponse resultado de la verificación de stock de una producción.
type StockCheckResponse struct {
	Sufficient   bool              `json:"sufficient"`
	Insufficient []ShortageItemDTO `json:"insufficient,omitempty"`
}
