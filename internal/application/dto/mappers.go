package dto

import "github.com/jhoicas/Costeo-api/internal/domain/entity"

// FromMaterial mapea la entidad a su representación HTTP.
func FromMaterial(m *entity.Material) *MaterialResponse {
	return &MaterialResponse{
		ID:            m.ID,
		Code:          m.Code,
		Name:          m.Name,
		Category:      m.Category,
		Unit:          m.Unit,
		PurchasePrice: m.PurchasePrice,
		Stock:         m.Stock,
		MinStock:      m.MinStock,
		SupplierID:    m.SupplierID,
		Status:        m.Status,
		Note:          m.Note,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FromProduct mapea la entidad a su representación HTTP.
func FromProduct(p *entity.Product) *ProductResponse {
	return &ProductResponse{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Category:      p.Category,
		Description:   p.Description,
		SellingPrice:  p.SellingPrice,
		Stock:         p.Stock,
		MinStock:      p.MinStock,
		HPP:           p.HPP,
		MarginAmount:  p.MarginAmount,
		MarginPercent: p.MarginPercent,
		Status:        p.Status,
		Note:          p.Note,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// FromStockMovement mapea una entrada del libro a su representación HTTP.
func FromStockMovement(m *entity.StockMovement) *StockMovementResponse {
	return &StockMovementResponse{
		ID:           m.ID,
		Date:         m.Date,
		ItemKind:     m.ItemKind,
		ItemID:       m.ItemID,
		ItemName:     m.ItemName,
		MovementType: m.MovementType,
		Qty:          m.Qty,
		StockBefore:  m.StockBefore,
		StockAfter:   m.StockAfter,
		RefKind:      m.RefKind,
		RefID:        m.RefID,
		RefNumber:    m.RefNumber,
		Note:         m.Note,
	}
}
