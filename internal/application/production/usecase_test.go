package production_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/application/memrepo"
	"github.com/jhoicas/Costeo-api/internal/application/production"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newFixture arma un Store con:
//   - material Harina: stock 10, precio $6.000
//   - producto Brownie: stock 0
//   - receta activa: rinde 10, una línea de Harina qty 2
//
// Un lote cuesta $12.000 ($1.200 por unidad).
func newFixture(t *testing.T) (*production.ProductionUseCase, *memrepo.Store) {
	t.Helper()
	store := memrepo.NewStore()
	now := time.Now()
	store.Materials["mat-harina"] = &entity.Material{
		ID: "mat-harina", Code: "MAT-001", Name: "Harina de trigo", Unit: "kg",
		PurchasePrice: dec("6000"), Stock: dec("10"),
		Status: entity.StatusActive, CreatedAt: now, UpdatedAt: now,
	}
	store.Products["prd-brownie"] = &entity.Product{
		ID: "prd-brownie", Code: "PRD-001", Name: "Brownie", Stock: decimal.Zero,
		SellingPrice: dec("2000"), Status: entity.StatusActive,
		CreatedAt: now, UpdatedAt: now,
	}
	store.Recipes["rec-1"] = &entity.Recipe{
		ID: "rec-1", ProductID: "prd-brownie", Name: "Brownie clásico",
		YieldQty: dec("10"), YieldUnit: "pcs", IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	}
	store.RecipeLines["rec-1"] = []entity.RecipeLine{
		{ID: "rl-1", RecipeID: "rec-1", MaterialID: "mat-harina", Qty: dec("2"), Unit: "kg", CreatedAt: now},
	}
	uc := production.NewProductionUseCase(
		&memrepo.TxRunner{S: store},
		store.ProductionRepo(), store.RecipeRepo(),
	)
	return uc, store
}

func createDraft(t *testing.T, uc *production.ProductionUseCase, batchQty string) *dto.ProductionResponse {
	t.Helper()
	resp, err := uc.Create(context.Background(), dto.CreateProductionRequest{
		RecipeID: "rec-1",
		BatchQty: dec(batchQty),
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Create: costos y rendimiento derivados de la receta.
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_DerivaCostosDeLaReceta(t *testing.T) {
	uc, _ := newFixture(t)
	resp := createDraft(t, uc, "5")

	assert.Equal(t, "prd-brownie", resp.ProductID, "el producto viene de la receta")
	assert.True(t, resp.YieldQty.Equal(dec("50")), "rendimiento: 10 × 5 lotes")
	assert.True(t, resp.TotalHPP.Equal(dec("60000")), "HPP total: 12000 × 5 lotes, fue %s", resp.TotalHPP)
	assert.True(t, resp.HPPPerUnit.Equal(dec("1200")), "HPP unitario del vector de referencia")
	assert.Equal(t, entity.ProductionStatusDraft, resp.Status)
}

func TestCreate_NumeroGenerado(t *testing.T) {
	uc, _ := newFixture(t)
	prefix := "PROD-" + time.Now().Format("20060102")

	first := createDraft(t, uc, "1")
	second := createDraft(t, uc, "1")

	assert.Equal(t, prefix+"-001", first.Number)
	assert.Equal(t, prefix+"-002", second.Number)
}

func TestCreate_RecetaNoExiste(t *testing.T) {
	uc, _ := newFixture(t)
	_, err := uc.Create(context.Background(), dto.CreateProductionRequest{
		RecipeID: "rec-fantasma", BatchQty: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_LotesInvalidos(t *testing.T) {
	uc, _ := newFixture(t)
	_, err := uc.Create(context.Background(), dto.CreateProductionRequest{
		RecipeID: "rec-1", BatchQty: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Crear directamente como completed corre el mismo procesador de stock.
func TestCreate_CompletadaInmediata(t *testing.T) {
	uc, store := newFixture(t)

	resp, err := uc.Create(context.Background(), dto.CreateProductionRequest{
		RecipeID: "rec-1", BatchQty: dec("5"), Status: entity.ProductionStatusCompleted,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ProductionStatusCompleted, resp.Status)
	assert.True(t, store.Materials["mat-harina"].Stock.IsZero(), "10 - 10 = 0")
	assert.True(t, store.Products["prd-brownie"].Stock.Equal(dec("50")))
	require.Len(t, store.Movements, 2)
}

// Crear como completed con stock insuficiente no deja rastro: ni producción
// en borrador, ni movimientos, ni cambios de stock.
func TestCreate_CompletadaSinStock_NoCreaNada(t *testing.T) {
	uc, store := newFixture(t)

	// Necesita 2 × 100 = 200, disponible 10.
	_, err := uc.Create(context.Background(), dto.CreateProductionRequest{
		RecipeID: "rec-1", BatchQty: dec("100"), Status: entity.ProductionStatusCompleted,
	})

	ise, ok := domain.AsInsufficientStock(err)
	require.True(t, ok, "debe ser InsufficientStockError, fue %v", err)
	require.Len(t, ise.Shortages, 1)

	assert.Empty(t, store.Productions, "no queda ninguna producción creada")
	assert.Empty(t, store.Movements)
	assert.True(t, store.Materials["mat-harina"].Stock.Equal(dec("10")))
	assert.True(t, store.Products["prd-brownie"].Stock.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Complete con faltantes: error estructurado con TODOS los faltantes
// y ninguna mutación de stock ni del libro.
// ──────────────────────────────────────────────────────────────────────────────

func TestComplete_StockInsuficiente(t *testing.T) {
	uc, store := newFixture(t)
	// Necesita 2 × 5 = 10, disponible 8.
	store.Materials["mat-harina"].Stock = dec("8")
	prod := createDraft(t, uc, "5")

	err := uc.Complete(context.Background(), prod.ID)

	ise, ok := domain.AsInsufficientStock(err)
	require.True(t, ok, "debe ser InsufficientStockError, fue %v", err)
	require.Len(t, ise.Shortages, 1)
	s := ise.Shortages[0]
	assert.Equal(t, "mat-harina", s.MaterialID)
	assert.Equal(t, "Harina de trigo", s.MaterialName)
	assert.True(t, s.Needed.Equal(dec("10")), "necesario 10, fue %s", s.Needed)
	assert.True(t, s.Available.Equal(dec("8")), "disponible 8, fue %s", s.Available)

	// Nada se movió.
	assert.True(t, store.Materials["mat-harina"].Stock.Equal(dec("8")))
	assert.True(t, store.Products["prd-brownie"].Stock.IsZero())
	assert.Equal(t, entity.ProductionStatusDraft, store.Productions[prod.ID].Status)
	assert.Empty(t, store.Movements, "el libro queda intacto")
}

func TestComplete_ReportaTodosLosFaltantes(t *testing.T) {
	uc, store := newFixture(t)
	now := time.Now()
	store.Materials["mat-azucar"] = &entity.Material{
		ID: "mat-azucar", Code: "MAT-002", Name: "Azúcar", Unit: "kg",
		PurchasePrice: dec("4000"), Stock: dec("1"),
		Status: entity.StatusActive, CreatedAt: now, UpdatedAt: now,
	}
	store.RecipeLines["rec-1"] = append(store.RecipeLines["rec-1"],
		entity.RecipeLine{ID: "rl-2", RecipeID: "rec-1", MaterialID: "mat-azucar", Qty: dec("1"), Unit: "kg", CreatedAt: now})
	store.Materials["mat-harina"].Stock = dec("8")
	prod := createDraft(t, uc, "5")

	err := uc.Complete(context.Background(), prod.ID)

	ise, ok := domain.AsInsufficientStock(err)
	require.True(t, ok)
	assert.Len(t, ise.Shortages, 2, "la lista incluye todos los faltantes, no solo el primero")
}

// Frontera: necesario == disponible pasa (la verificación es estricta, no >=).
func TestComplete_StockExacto(t *testing.T) {
	uc, store := newFixture(t)
	prod := createDraft(t, uc, "5") // necesita 10, disponible 10

	require.NoError(t, uc.Complete(context.Background(), prod.ID))
	assert.True(t, store.Materials["mat-harina"].Stock.IsZero(), "el stock puede llegar exactamente a 0")
}

// ──────────────────────────────────────────────────────────────────────────────
// Complete feliz: descuenta materiales, suma producto terminado y deja
// las entradas del libro, todo referenciando la producción.
// ──────────────────────────────────────────────────────────────────────────────

func TestComplete_MueveStockYRegistraLibro(t *testing.T) {
	uc, store := newFixture(t)
	prod := createDraft(t, uc, "5")

	require.NoError(t, uc.Complete(context.Background(), prod.ID))

	assert.True(t, store.Materials["mat-harina"].Stock.IsZero(), "10 - 10 = 0")
	assert.True(t, store.Products["prd-brownie"].Stock.Equal(dec("50")), "entra el rendimiento: 10 × 5")

	got := store.Productions[prod.ID]
	assert.Equal(t, entity.ProductionStatusCompleted, got.Status)
	require.NotNil(t, got.CompletedDate)

	require.Len(t, store.Movements, 2, "una salida por material + una entrada del producto")

	out := store.Movements[0]
	assert.Equal(t, entity.ItemKindMaterial, out.ItemKind)
	assert.Equal(t, entity.MovementOut, out.MovementType)
	assert.True(t, out.Qty.Equal(dec("10")))
	assert.True(t, out.StockBefore.Equal(dec("10")))
	assert.True(t, out.StockAfter.IsZero())
	assert.Equal(t, entity.RefKindProduction, out.RefKind)
	assert.Equal(t, prod.ID, out.RefID)

	in := store.Movements[1]
	assert.Equal(t, entity.ItemKindFinishedGood, in.ItemKind)
	assert.Equal(t, entity.MovementIn, in.MovementType)
	assert.True(t, in.Qty.Equal(dec("50")))
	assert.True(t, in.StockBefore.IsZero())
	assert.True(t, in.StockAfter.Equal(dec("50")))
	assert.Equal(t, prod.Number, in.RefNumber)
}

// completed y cancelled son finales: no se completa dos veces.
func TestComplete_EstadoFinal_Conflicto(t *testing.T) {
	uc, store := newFixture(t)
	prod := createDraft(t, uc, "1")
	require.NoError(t, uc.Complete(context.Background(), prod.ID))
	movimientos := len(store.Movements)

	err := uc.Complete(context.Background(), prod.ID)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, store.Movements, movimientos, "sin movimientos nuevos")
}

func TestCancel_YComplete(t *testing.T) {
	uc, store := newFixture(t)
	prod := createDraft(t, uc, "1")

	require.NoError(t, uc.Cancel(context.Background(), prod.ID))
	assert.Equal(t, entity.ProductionStatusCancelled, store.Productions[prod.ID].Status)

	err := uc.Complete(context.Background(), prod.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "una cancelada no se puede completar")

	err = uc.Cancel(context.Background(), prod.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "ni cancelar otra vez")
}

func TestDelete_CompletadaEsInmutable(t *testing.T) {
	uc, _ := newFixture(t)
	prod := createDraft(t, uc, "1")
	require.NoError(t, uc.Complete(context.Background(), prod.ID))

	err := uc.Delete(context.Background(), prod.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// CheckMaterialStock: verificación de solo lectura.
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckMaterialStock_Suficiente(t *testing.T) {
	uc, _ := newFixture(t)
	prod := createDraft(t, uc, "5")

	resp, err := uc.CheckMaterialStock(context.Background(), prod.ID)

	require.NoError(t, err)
	assert.True(t, resp.Sufficient)
	assert.Empty(t, resp.Insufficient)
}

func TestCheckMaterialStock_Insuficiente_SinEfectos(t *testing.T) {
	uc, store := newFixture(t)
	store.Materials["mat-harina"].Stock = dec("8")
	prod := createDraft(t, uc, "5")

	resp, err := uc.CheckMaterialStock(context.Background(), prod.ID)

	require.NoError(t, err)
	assert.False(t, resp.Sufficient)
	require.Len(t, resp.Insufficient, 1)
	assert.Equal(t, "10", resp.Insufficient[0].Needed)
	assert.Equal(t, "8", resp.Insufficient[0].Available)
	assert.True(t, store.Materials["mat-harina"].Stock.Equal(dec("8")), "la verificación no muta")
	assert.Empty(t, store.Movements)
}
