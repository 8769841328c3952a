package production

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/domain"
	domaincosting "github.com/jhoicas/Costeo-api/internal/domain/costing"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// ProductionUseCase gestiona corridas de producción. Completar una producción
// verifica stock de materiales contra un snapshot bloqueado, descuenta
// materiales, suma stock del producto terminado y deja las entradas del libro,
// todo en una sola transacción.
type ProductionUseCase struct {
	txRunner       TxRunner
	productionRepo repository.ProductionRepository
	recipeRepo     repository.RecipeRepository
}

// NewProductionUseCase construye el caso de uso.
func NewProductionUseCase(
	txRunner TxRunner,
	productionRepo repository.ProductionRepository,
	recipeRepo repository.RecipeRepository,
) *ProductionUseCase {
	return &ProductionUseCase{
		txRunner:       txRunner,
		productionRepo: productionRepo,
		recipeRepo:     recipeRepo,
	}
}

// Create crea la producción a partir de una receta. YieldQty y los costos se
// derivan de la receta al momento de crear: YieldQty = yield de receta × lotes,
// TotalHPP = costo del lote × lotes. Con status "completed" el procesamiento de
// stock corre inmediatamente.
func (uc *ProductionUseCase) Create(ctx context.Context, in dto.CreateProductionRequest) (*dto.ProductionResponse, error) {
	if in.RecipeID == "" || !in.BatchQty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	switch in.Status {
	case "", entity.ProductionStatusDraft, entity.ProductionStatusProcessing, entity.ProductionStatusCompleted:
	default:
		return nil, domain.ErrInvalidInput
	}

	recipe, err := uc.recipeRepo.GetByID(in.RecipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.recipeRepo.ListLineDetails(recipe.ID)
	if err != nil {
		return nil, err
	}
	batchCost, unitCost := domaincosting.ComputeCost(lines, recipe.YieldQty)

	number := in.Number
	if number == "" {
		number, err = uc.NextNumber()
		if err != nil {
			return nil, err
		}
	} else if existing, err := uc.productionRepo.GetByNumber(number); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	status := in.Status
	if status == "" {
		status = entity.ProductionStatusDraft
	}

	// Con status "completed" el stock se verifica ANTES de insertar: un
	// faltante no deja ninguna fila creada. Complete repite la verificación
	// sobre el snapshot bloqueado.
	if status == entity.ProductionStatusCompleted {
		if shortages := findShortages(lines, in.BatchQty); len(shortages) > 0 {
			return nil, &domain.InsufficientStockError{Shortages: shortages}
		}
	}

	prod := &entity.Production{
		ID:         uuid.New().String(),
		Number:     number,
		Date:       date,
		RecipeID:   recipe.ID,
		ProductID:  recipe.ProductID,
		BatchQty:   in.BatchQty,
		YieldQty:   recipe.YieldQty.Mul(in.BatchQty),
		TotalHPP:   batchCost.Mul(in.BatchQty),
		HPPPerUnit: unitCost,
		Status:     entity.ProductionStatusDraft,
		Note:       in.Note,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if status == entity.ProductionStatusProcessing {
		prod.Status = entity.ProductionStatusProcessing
	}
	if err := uc.productionRepo.Create(prod); err != nil {
		return nil, err
	}
	// Completación inmediata: mismo procesador transaccional que POST /complete.
	if status == entity.ProductionStatusCompleted {
		if err := uc.Complete(ctx, prod.ID); err != nil {
			return nil, err
		}
		prod, err = uc.productionRepo.GetByID(prod.ID)
		if err != nil {
			return nil, err
		}
	}
	return toProductionResponse(prod), nil
}

// CheckMaterialStock verifica, sin mutar nada, si el stock alcanza para
// completar la producción: needed = qty de línea × lotes, contra el stock
// actual de cada material. Devuelve TODOS los faltantes, no solo el primero.
func (uc *ProductionUseCase) CheckMaterialStock(ctx context.Context, id string) (*dto.StockCheckResponse, error) {
	prod, err := uc.productionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if prod == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.recipeRepo.ListLineDetails(prod.RecipeID)
	if err != nil {
		return nil, err
	}
	shortages := findShortages(lines, prod.BatchQty)
	resp := &dto.StockCheckResponse{Sufficient: len(shortages) == 0}
	for _, s := range shortages {
		resp.Insufficient = append(resp.Insufficient, dto.ShortageItemDTO{
			MaterialID:   s.MaterialID,
			MaterialName: s.MaterialName,
			Needed:       s.Needed.String(),
			Available:    s.Available.String(),
			Unit:         s.Unit,
		})
	}
	return resp, nil
}

// Complete ejecuta la completación en una sola transacción:
//  1. bloquea la producción y rechaza estados finales,
//  2. bloquea los materiales de la receta (FOR UPDATE, orden determinista)
//     y verifica stock contra ese snapshot; si falta, devuelve el error
//     estructurado con la lista completa y no muta nada,
//  3. marca completed + fecha, descuenta cada material con su entrada "out",
//  4. suma el rendimiento al stock del producto con su entrada "in".
//
// Dos completaciones concurrentes sobre un material compartido se serializan
// en el bloqueo de fila: la segunda ve el stock ya descontado.
func (uc *ProductionUseCase) Complete(ctx context.Context, id string) error {
	return uc.txRunner.RunProduction(ctx, func(
		productionRepo repository.ProductionRepository,
		recipeRepo repository.RecipeRepository,
		materialRepo repository.MaterialRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		prod, err := productionRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if prod == nil {
			return domain.ErrNotFound
		}
		if prod.IsFinal() {
			return domain.ErrConflict
		}

		lines, err := recipeRepo.ListLineDetailsForUpdate(prod.RecipeID)
		if err != nil {
			return err
		}
		if shortages := findShortages(lines, prod.BatchQty); len(shortages) > 0 {
			return &domain.InsufficientStockError{Shortages: shortages}
		}

		now := time.Now()
		if err := productionRepo.MarkCompleted(prod.ID, now); err != nil {
			return err
		}

		// Descuento de materiales contra el snapshot bloqueado.
		for _, line := range lines {
			needed := line.Qty.Mul(prod.BatchQty)
			stockBefore := line.MaterialStock
			stockAfter := stockBefore.Sub(needed)

			material, err := materialRepo.GetForUpdate(line.MaterialID)
			if err != nil {
				return err
			}
			if material == nil {
				return fmt.Errorf("material %s de la receta: %w", line.MaterialID, domain.ErrNotFound)
			}
			material.Stock = stockAfter
			material.UpdatedAt = now
			if err := materialRepo.UpdateStockAndPrice(material); err != nil {
				return err
			}

			mov := &entity.StockMovement{
				Date:         now,
				ItemKind:     entity.ItemKindMaterial,
				ItemID:       line.MaterialID,
				ItemName:     line.MaterialName,
				MovementType: entity.MovementOut,
				Qty:          needed,
				StockBefore:  stockBefore,
				StockAfter:   stockAfter,
				RefKind:      entity.RefKindProduction,
				RefID:        prod.ID,
				RefNumber:    prod.Number,
				Note:         "Consumo de producción",
				CreatedAt:    now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}

		// Entrada del producto terminado.
		product, err := productRepo.GetForUpdate(prod.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		stockBefore := product.Stock
		stockAfter := stockBefore.Add(prod.YieldQty)
		if err := productRepo.UpdateStock(product.ID, stockAfter); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			Date:         now,
			ItemKind:     entity.ItemKindFinishedGood,
			ItemID:       product.ID,
			ItemName:     product.Name,
			MovementType: entity.MovementIn,
			Qty:          prod.YieldQty,
			StockBefore:  stockBefore,
			StockAfter:   stockAfter,
			RefKind:      entity.RefKindProduction,
			RefID:        prod.ID,
			RefNumber:    prod.Number,
			Note:         "Resultado de producción",
			CreatedAt:    now,
		}
		return movRepo.Create(mov)
	})
}

// Cancel marca la producción como cancelada (estado final, sin efecto en stock).
func (uc *ProductionUseCase) Cancel(ctx context.Context, id string) error {
	return uc.txRunner.RunProduction(ctx, func(
		productionRepo repository.ProductionRepository,
		_ repository.RecipeRepository,
		_ repository.MaterialRepository,
		_ repository.ProductRepository,
		_ repository.StockMovementRepository,
	) error {
		prod, err := productionRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if prod == nil {
			return domain.ErrNotFound
		}
		if prod.IsFinal() {
			return domain.ErrConflict
		}
		return productionRepo.MarkCancelled(id)
	})
}

// GetByID devuelve una producción.
func (uc *ProductionUseCase) GetByID(ctx context.Context, id string) (*dto.ProductionResponse, error) {
	prod, err := uc.productionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if prod == nil {
		return nil, nil
	}
	return toProductionResponse(prod), nil
}

// List devuelve producciones paginadas, con filtro opcional por estado.
func (uc *ProductionUseCase) List(ctx context.Context, status string, limit, offset int) ([]*dto.ProductionResponse, error) {
	prods, err := uc.productionRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductionResponse, 0, len(prods))
	for _, p := range prods {
		out = append(out, toProductionResponse(p))
	}
	return out, nil
}

// Delete elimina una producción no completada. Una completada ya movió stock
// y es parte del rastro del libro: no se puede borrar.
func (uc *ProductionUseCase) Delete(ctx context.Context, id string) error {
	prod, err := uc.productionRepo.GetByID(id)
	if err != nil {
		return err
	}
	if prod == nil {
		return domain.ErrNotFound
	}
	if prod.Status == entity.ProductionStatusCompleted {
		return domain.ErrConflict
	}
	return uc.productionRepo.Delete(id)
}

// NextNumber genera el siguiente número del día: PROD-YYYYMMDD-001.
func (uc *ProductionUseCase) NextNumber() (string, error) {
	prefix := "PROD-" + time.Now().Format("20060102")
	last, err := uc.productionRepo.LastNumberForPrefix(prefix)
	if err != nil {
		return "", err
	}
	seq := 1
	if last != "" {
		var n int
		if _, err := fmt.Sscanf(last[len(prefix):], "-%03d", &n); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, seq), nil
}

// findShortages devuelve los materiales cuyo stock no alcanza:
// needed > available rechaza; needed == available pasa (estricto, no >=).
func findShortages(lines []entity.RecipeLineDetail, batchQty decimal.Decimal) []domain.StockShortage {
	var shortages []domain.StockShortage
	for _, line := range lines {
		needed := line.Qty.Mul(batchQty)
		if needed.GreaterThan(line.MaterialStock) {
			shortages = append(shortages, domain.StockShortage{
				MaterialID:   line.MaterialID,
				MaterialName: line.MaterialName,
				Needed:       needed,
				Available:    line.MaterialStock,
				Unit:         line.Unit,
			})
		}
	}
	return shortages
}

func toProductionResponse(p *entity.Production) *dto.ProductionResponse {
	return &dto.ProductionResponse{
		ID:            p.ID,
		Number:        p.Number,
		Date:          p.Date,
		RecipeID:      p.RecipeID,
		ProductID:     p.ProductID,
		BatchQty:      p.BatchQty,
		YieldQty:      p.YieldQty,
		TotalHPP:      p.TotalHPP,
		HPPPerUnit:    p.HPPPerUnit,
		Status:        p.Status,
		CompletedDate: p.CompletedDate,
		Note:          p.Note,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
