package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// InventoryUseCase cubre las operaciones de inventario que no pasan por
// compras ni producción: ajustes manuales de stock, consulta del libro de
// movimientos y el reporte de ítems bajo stock mínimo.
type InventoryUseCase struct {
	txRunner     TxRunner
	materialRepo repository.MaterialRepository
	productRepo  repository.ProductRepository
	movRepo      repository.StockMovementRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	txRunner TxRunner,
	materialRepo repository.MaterialRepository,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) *InventoryUseCase {
	return &InventoryUseCase{
		txRunner:     txRunner,
		materialRepo: materialRepo,
		productRepo:  productRepo,
		movRepo:      movRepo,
	}
}

// Adjust registra un ajuste manual de stock. Bloquea la fila del ítem, aplica
// el delta (un ajuste "out" no puede dejar stock negativo) y escribe la entrada
// del libro con ref_kind "adjustment", todo en la misma transacción.
func (uc *InventoryUseCase) Adjust(ctx context.Context, in dto.AdjustStockRequest) (*dto.StockMovementResponse, error) {
	if in.ItemID == "" || !in.Qty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.ItemKind != entity.ItemKindMaterial && in.ItemKind != entity.ItemKindFinishedGood {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.MovementIn && in.Type != entity.MovementOut {
		return nil, domain.ErrInvalidInput
	}

	var created *entity.StockMovement
	err := uc.txRunner.RunAdjustment(ctx, func(
		materialRepo repository.MaterialRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		var (
			itemName    string
			stockBefore decimal.Decimal
			material    *entity.Material
		)
		switch in.ItemKind {
		case entity.ItemKindMaterial:
			m, err := materialRepo.GetForUpdate(in.ItemID)
			if err != nil {
				return err
			}
			if m == nil {
				return domain.ErrNotFound
			}
			material = m
			itemName = m.Name
			stockBefore = m.Stock
		case entity.ItemKindFinishedGood:
			product, err := productRepo.GetForUpdate(in.ItemID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			itemName = product.Name
			stockBefore = product.Stock
		}

		stockAfter := stockBefore.Add(in.Qty)
		if in.Type == entity.MovementOut {
			stockAfter = stockBefore.Sub(in.Qty)
			if stockAfter.LessThan(decimal.Zero) {
				return fmt.Errorf("stock resultante negativo: %w", domain.ErrInvalidInput)
			}
		}

		if material != nil {
			material.Stock = stockAfter
			material.UpdatedAt = time.Now()
			if err := materialRepo.UpdateStockAndPrice(material); err != nil {
				return err
			}
		} else {
			if err := productRepo.UpdateStock(in.ItemID, stockAfter); err != nil {
				return err
			}
		}

		now := time.Now()
		mov := &entity.StockMovement{
			Date:         now,
			ItemKind:     in.ItemKind,
			ItemID:       in.ItemID,
			ItemName:     itemName,
			MovementType: in.Type,
			Qty:          in.Qty,
			StockBefore:  stockBefore,
			StockAfter:   stockAfter,
			RefKind:      entity.RefKindAdjustment,
			Note:         in.Note,
			CreatedAt:    now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.FromStockMovement(created), nil
}

// ListMovements devuelve entradas recientes del libro, con filtros opcionales
// por tipo de ítem, tipo de transacción y rango de fechas.
func (uc *InventoryUseCase) ListMovements(ctx context.Context, itemKind, refKind string, from, to *time.Time, limit, offset int) ([]*dto.StockMovementResponse, error) {
	movs, err := uc.movRepo.List(itemKind, refKind, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockMovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.FromStockMovement(m))
	}
	return out, nil
}

// ListItemMovements devuelve el historial de movimientos de un ítem concreto.
func (uc *InventoryUseCase) ListItemMovements(ctx context.Context, itemKind, itemID string, from, to *time.Time, limit, offset int) ([]*dto.StockMovementResponse, error) {
	if itemKind != entity.ItemKindMaterial && itemKind != entity.ItemKindFinishedGood {
		return nil, domain.ErrInvalidInput
	}
	movs, err := uc.movRepo.ListByItem(itemKind, itemID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockMovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.FromStockMovement(m))
	}
	return out, nil
}

// LowStock devuelve materiales y productos activos con stock <= stock mínimo
// (solo los que tienen mínimo configurado mayor a cero).
func (uc *InventoryUseCase) LowStock(ctx context.Context) (*dto.LowStockResponse, error) {
	materials, err := uc.materialRepo.ListBelowMinStock()
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListBelowMinStock()
	if err != nil {
		return nil, err
	}
	resp := &dto.LowStockResponse{
		Materials: make([]dto.MaterialResponse, 0, len(materials)),
		Products:  make([]dto.ProductResponse, 0, len(products)),
	}
	for _, m := range materials {
		resp.Materials = append(resp.Materials, *dto.FromMaterial(m))
	}
	for _, p := range products {
		resp.Products = append(resp.Products, *dto.FromProduct(p))
	}
	return resp, nil
}
