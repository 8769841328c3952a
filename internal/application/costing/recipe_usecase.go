package costing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/domain"
	domaincosting "github.com/jhoicas/Costeo-api/internal/domain/costing"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// RecipeUseCase gestiona recetas y el costeo derivado del producto:
// CRUD de receta + líneas, selector de receta activa (invariante: a lo sumo
// una activa por producto) y recálculo de HPP/márgenes cacheados.
type RecipeUseCase struct {
	txRunner   TxRunner
	recipeRepo repository.RecipeRepository
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(txRunner TxRunner, recipeRepo repository.RecipeRepository) *RecipeUseCase {
	return &RecipeUseCase{txRunner: txRunner, recipeRepo: recipeRepo}
}

// Create crea una receta con sus líneas y recalcula el costeo del producto,
// todo en una transacción. Si nace activa, primero apaga las hermanas para
// mantener el invariante de receta activa única.
func (uc *RecipeUseCase) Create(ctx context.Context, in dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	if in.ProductID == "" || in.Name == "" || !in.YieldQty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if err := validateLines(in.Lines); err != nil {
		return nil, err
	}

	now := time.Now()
	recipe := &entity.Recipe{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Name:      in.Name,
		YieldQty:  in.YieldQty,
		YieldUnit: in.YieldUnit,
		IsActive:  in.IsActive,
		Note:      in.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var out *dto.RecipeResponse
	err := uc.txRunner.RunCosting(ctx, func(
		recipeRepo repository.RecipeRepository,
		productRepo repository.ProductRepository,
		materialRepo repository.MaterialRepository,
	) error {
		product, err := productRepo.GetByID(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if in.IsActive {
			if err := recipeRepo.DeactivateSiblings(in.ProductID, recipe.ID); err != nil {
				return err
			}
		}
		if err := recipeRepo.Create(recipe); err != nil {
			return err
		}
		if err := createLines(recipeRepo, materialRepo, recipe.ID, in.Lines, now); err != nil {
			return err
		}
		if err := RecomputeProductCosting(recipeRepo, productRepo, in.ProductID); err != nil {
			return err
		}
		out, err = buildRecipeResponse(recipeRepo, recipe)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update reemplaza cabecera y líneas de la receta y recalcula el costeo.
func (uc *RecipeUseCase) Update(ctx context.Context, id string, in dto.UpdateRecipeRequest) (*dto.RecipeResponse, error) {
	if in.Name == "" || !in.YieldQty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if err := validateLines(in.Lines); err != nil {
		return nil, err
	}

	var out *dto.RecipeResponse
	err := uc.txRunner.RunCosting(ctx, func(
		recipeRepo repository.RecipeRepository,
		productRepo repository.ProductRepository,
		materialRepo repository.MaterialRepository,
	) error {
		recipe, err := recipeRepo.GetByID(id)
		if err != nil {
			return err
		}
		if recipe == nil {
			return domain.ErrNotFound
		}
		recipe.Name = in.Name
		recipe.YieldQty = in.YieldQty
		recipe.YieldUnit = in.YieldUnit
		recipe.Note = in.Note
		recipe.UpdatedAt = time.Now()

		if in.IsActive && !recipe.IsActive {
			if err := recipeRepo.DeactivateSiblings(recipe.ProductID, recipe.ID); err != nil {
				return err
			}
		}
		recipe.IsActive = in.IsActive

		if err := recipeRepo.Update(recipe); err != nil {
			return err
		}
		// Reemplazo completo de líneas, como hace el formulario de edición.
		if err := recipeRepo.DeleteLines(recipe.ID); err != nil {
			return err
		}
		if err := createLines(recipeRepo, materialRepo, recipe.ID, in.Lines, recipe.UpdatedAt); err != nil {
			return err
		}
		if err := RecomputeProductCosting(recipeRepo, productRepo, recipe.ProductID); err != nil {
			return err
		}
		out, err = buildRecipeResponse(recipeRepo, recipe)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleActive invierte el flag de la receta. Si la operación la activa,
// primero apaga las demás recetas del producto dentro de la misma transacción,
// de modo que al confirmar haya cero o una receta activa. Después recalcula
// el costeo del producto.
func (uc *RecipeUseCase) ToggleActive(ctx context.Context, id string) (*dto.RecipeResponse, error) {
	var out *dto.RecipeResponse
	err := uc.txRunner.RunCosting(ctx, func(
		recipeRepo repository.RecipeRepository,
		productRepo repository.ProductRepository,
		_ repository.MaterialRepository,
	) error {
		recipe, err := recipeRepo.GetByID(id)
		if err != nil {
			return err
		}
		if recipe == nil {
			return domain.ErrNotFound
		}
		if !recipe.IsActive {
			// Activando: apagar hermanas antes del toggle.
			if err := recipeRepo.DeactivateSiblings(recipe.ProductID, recipe.ID); err != nil {
				return err
			}
		}
		recipe.IsActive = !recipe.IsActive
		if err := recipeRepo.SetActive(recipe.ID, recipe.IsActive); err != nil {
			return err
		}
		if err := RecomputeProductCosting(recipeRepo, productRepo, recipe.ProductID); err != nil {
			return err
		}
		out, err = buildRecipeResponse(recipeRepo, recipe)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina la receta (las líneas caen en cascada) y recalcula el costeo
// del producto: si era la activa, el producto vuelve a HPP = 0.
func (uc *RecipeUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunCosting(ctx, func(
		recipeRepo repository.RecipeRepository,
		productRepo repository.ProductRepository,
		_ repository.MaterialRepository,
	) error {
		recipe, err := recipeRepo.GetByID(id)
		if err != nil {
			return err
		}
		if recipe == nil {
			return domain.ErrNotFound
		}
		if err := recipeRepo.Delete(id); err != nil {
			return err
		}
		return RecomputeProductCosting(recipeRepo, productRepo, recipe.ProductID)
	})
}

// GetByID devuelve la receta con costo total y unitario recalculados al momento.
func (uc *RecipeUseCase) GetByID(ctx context.Context, id string) (*dto.RecipeResponse, error) {
	recipe, err := uc.recipeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, nil
	}
	return buildRecipeResponse(uc.recipeRepo, recipe)
}

// List devuelve recetas paginadas, cada una con su costo recalculado.
func (uc *RecipeUseCase) List(ctx context.Context, limit, offset int) ([]*dto.RecipeResponse, error) {
	recipes, err := uc.recipeRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		resp, err := buildRecipeResponse(uc.recipeRepo, r)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// ListByProduct devuelve las recetas de un producto.
func (uc *RecipeUseCase) ListByProduct(ctx context.Context, productID string) ([]*dto.RecipeResponse, error) {
	recipes, err := uc.recipeRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		resp, err := buildRecipeResponse(uc.recipeRepo, r)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// RecomputeProductCosting recalcula los campos derivados del producto
// (HPP, margen en valor y porcentaje) a partir de su receta activa.
// Sin receta activa todo queda en 0. Se invoca desde cada ruta de mutación
// que pueda invalidar el cache: CRUD de receta y toggle de activa. La edición
// de precio de venta recalcula solo el margen (ProductUseCase) y la recepción
// de compras deliberadamente NO pasa por aquí.
// Exportada para que los repos de una tx ajena puedan reusarla.
func RecomputeProductCosting(
	recipeRepo repository.RecipeRepository,
	productRepo repository.ProductRepository,
	productID string,
) error {
	active, err := recipeRepo.GetActiveByProduct(productID)
	if err != nil {
		return err
	}
	if active == nil {
		return productRepo.UpdateCosting(productID, decimal.Zero, decimal.Zero, decimal.Zero)
	}
	lines, err := recipeRepo.ListLineDetails(active.ID)
	if err != nil {
		return err
	}
	_, unitCost := domaincosting.ComputeCost(lines, active.YieldQty)

	product, err := productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	marginAmount, marginPercent := domaincosting.Margin(product.SellingPrice, unitCost)
	return productRepo.UpdateCosting(productID, unitCost, marginAmount, marginPercent)
}

// validateLines rechaza líneas incompletas y materiales repetidos dentro de
// la misma receta (la fila de stock de cada material se descuenta una vez).
func validateLines(lines []dto.RecipeLineRequest) error {
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if l.MaterialID == "" || !l.Qty.GreaterThan(decimal.Zero) || l.Unit == "" {
			return domain.ErrInvalidInput
		}
		if _, repetido := seen[l.MaterialID]; repetido {
			return domain.ErrInvalidInput
		}
		seen[l.MaterialID] = struct{}{}
	}
	return nil
}

// createLines valida que los materiales existan y persiste las líneas.
func createLines(
	recipeRepo repository.RecipeRepository,
	materialRepo repository.MaterialRepository,
	recipeID string,
	lines []dto.RecipeLineRequest,
	now time.Time,
) error {
	for _, l := range lines {
		material, err := materialRepo.GetByID(l.MaterialID)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}
		line := &entity.RecipeLine{
			ID:         uuid.New().String(),
			RecipeID:   recipeID,
			MaterialID: l.MaterialID,
			Qty:        l.Qty,
			Unit:       l.Unit,
			Note:       l.Note,
			CreatedAt:  now,
		}
		if err := recipeRepo.CreateLine(line); err != nil {
			return err
		}
	}
	return nil
}

// buildRecipeResponse arma la respuesta con costos recalculados on-demand.
func buildRecipeResponse(recipeRepo repository.RecipeRepository, recipe *entity.Recipe) (*dto.RecipeResponse, error) {
	lines, err := recipeRepo.ListLineDetails(recipe.ID)
	if err != nil {
		return nil, err
	}
	totalCost, unitCost := domaincosting.ComputeCost(lines, recipe.YieldQty)

	lineDTOs := make([]dto.RecipeLineResponse, 0, len(lines))
	for _, l := range lines {
		lineDTOs = append(lineDTOs, dto.RecipeLineResponse{
			ID:            l.ID,
			MaterialID:    l.MaterialID,
			MaterialName:  l.MaterialName,
			Qty:           l.Qty,
			Unit:          l.Unit,
			PurchasePrice: l.PurchasePrice,
			LineCost:      l.Qty.Mul(l.PurchasePrice),
			Note:          l.Note,
		})
	}
	return &dto.RecipeResponse{
		ID:        recipe.ID,
		ProductID: recipe.ProductID,
		Name:      recipe.Name,
		YieldQty:  recipe.YieldQty,
		YieldUnit: recipe.YieldUnit,
		IsActive:  recipe.IsActive,
		TotalCost: totalCost,
		UnitCost:  unitCost,
		Note:      recipe.Note,
		Lines:     lineDTOs,
		CreatedAt: recipe.CreatedAt,
		UpdatedAt: recipe.UpdatedAt,
	}, nil
}
