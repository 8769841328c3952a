package costing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costeo-api/internal/application/costing"
	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/application/memrepo"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newFixture arma un Store con el material Harina ($6.000) y el producto
// Brownie (precio de venta $2.000, HPP todavía en 0).
func newFixture(t *testing.T) (*costing.RecipeUseCase, *memrepo.Store) {
	t.Helper()
	store := memrepo.NewStore()
	now := time.Now()
	store.Materials["mat-harina"] = &entity.Material{
		ID: "mat-harina", Code: "MAT-001", Name: "Harina de trigo", Unit: "kg",
		PurchasePrice: dec("6000"), Stock: dec("10"),
		Status: entity.StatusActive, CreatedAt: now, UpdatedAt: now,
	}
	store.Products["prd-brownie"] = &entity.Product{
		ID: "prd-brownie", Code: "PRD-001", Name: "Brownie",
		SellingPrice: dec("2000"), Status: entity.StatusActive,
		CreatedAt: now, UpdatedAt: now,
	}
	uc := costing.NewRecipeUseCase(&memrepo.TxRunner{S: store}, store.RecipeRepo())
	return uc, store
}

func baseRequest(active bool) dto.CreateRecipeRequest {
	return dto.CreateRecipeRequest{
		ProductID: "prd-brownie",
		Name:      "Brownie clásico",
		YieldQty:  dec("10"),
		YieldUnit: "pcs",
		IsActive:  active,
		Lines: []dto.RecipeLineRequest{
			{MaterialID: "mat-harina", Qty: dec("2"), Unit: "kg"},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create: costo recalculado y cache del producto actualizado.
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ActivaRecalculaCosteoDelProducto(t *testing.T) {
	uc, store := newFixture(t)

	resp, err := uc.Create(context.Background(), baseRequest(true))
	require.NoError(t, err)

	assert.True(t, resp.TotalCost.Equal(dec("12000")), "costo del lote: 2 × 6000")
	assert.True(t, resp.UnitCost.Equal(dec("1200")), "HPP: 12000 / 10")

	product := store.Products["prd-brownie"]
	assert.True(t, product.HPP.Equal(dec("1200")), "el cache del producto se actualiza")
	assert.True(t, product.MarginAmount.Equal(dec("800")), "margen: 2000 - 1200")
	assert.True(t, product.MarginPercent.Round(2).Equal(dec("66.67")),
		"porcentaje sobre el costo, fue %s", product.MarginPercent)
}

func TestCreate_InactivaNoTocaElCache(t *testing.T) {
	uc, store := newFixture(t)

	_, err := uc.Create(context.Background(), baseRequest(false))
	require.NoError(t, err)

	assert.True(t, store.Products["prd-brownie"].HPP.IsZero(),
		"sin receta activa el HPP sigue en 0")
}

func TestCreate_ProductoNoExiste(t *testing.T) {
	uc, _ := newFixture(t)
	req := baseRequest(true)
	req.ProductID = "prd-fantasma"
	_, err := uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_MaterialNoExiste(t *testing.T) {
	uc, _ := newFixture(t)
	req := baseRequest(true)
	req.Lines[0].MaterialID = "mat-fantasma"
	_, err := uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante: a lo sumo una receta activa por producto.
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_SegundaActivaApagaLaPrimera(t *testing.T) {
	uc, store := newFixture(t)
	first, err := uc.Create(context.Background(), baseRequest(true))
	require.NoError(t, err)

	second := baseRequest(true)
	second.Name = "Brownie doble chocolate"
	second.Lines[0].Qty = dec("3")
	secondResp, err := uc.Create(context.Background(), second)
	require.NoError(t, err)

	assert.False(t, store.Recipes[first.ID].IsActive, "la primera queda apagada")
	assert.True(t, store.Recipes[secondResp.ID].IsActive)
	// El cache sigue a la nueva activa: 3 × 6000 / 10 = 1800.
	assert.True(t, store.Products["prd-brownie"].HPP.Equal(dec("1800")))
}

func TestToggleActive_ApagaHermanasYRecalcula(t *testing.T) {
	uc, store := newFixture(t)
	first, err := uc.Create(context.Background(), baseRequest(true))
	require.NoError(t, err)
	second := baseRequest(false)
	second.Name = "Brownie doble chocolate"
	second.Lines[0].Qty = dec("3")
	secondResp, err := uc.Create(context.Background(), second)
	require.NoError(t, err)

	_, err = uc.ToggleActive(context.Background(), secondResp.ID)
	require.NoError(t, err)

	assert.False(t, store.Recipes[first.ID].IsActive)
	assert.True(t, store.Recipes[secondResp.ID].IsActive)
	assert.True(t, store.Products["prd-brownie"].HPP.Equal(dec("1800")))
}

func TestToggleActive_ApagarDejaElProductoSinCosteo(t *testing.T) {
	uc, store := newFixture(t)
	resp, err := uc.Create(context.Background(), baseRequest(true))
	require.NoError(t, err)

	_, err = uc.ToggleActive(context.Background(), resp.ID)
	require.NoError(t, err)

	product := store.Products["prd-brownie"]
	assert.False(t, store.Recipes[resp.ID].IsActive)
	assert.True(t, product.HPP.IsZero(), "sin receta activa el HPP vuelve a 0")
	assert.True(t, product.MarginAmount.IsZero())
	assert.True(t, product.MarginPercent.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Update y Delete recalculan el cache.
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_ReemplazaLineasYRecalcula(t *testing.T) {
	uc, store := newFixture(t)
	resp, err := uc.Create(context.Background(), baseRequest(true))
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), resp.ID, dto.UpdateRecipeRequest{
		Name:      "Brownie clásico",
		YieldQty:  dec("20"),
		YieldUnit: "pcs",
		IsActive:  true,
		Lines: []dto.RecipeLineRequest{
			{MaterialID: "mat-harina", Qty: dec("4"), Unit: "kg"},
		},
	})
	require.NoError(t, err)

	// 4 × 6000 / 20 = 1200
	assert.True(t, updated.UnitCost.Equal(dec("1200")))
	assert.Len(t, store.RecipeLines[resp.ID], 1, "las líneas se reemplazan, no se acumulan")
	assert.True(t, store.Products["prd-brownie"].HPP.Equal(dec("1200")))
}

func TestDelete_RecetaActivaDejaCosteoEnCero(t *testing.T) {
	uc, store := newFixture(t)
	resp, err := uc.Create(context.Background(), baseRequest(true))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), resp.ID))

	assert.NotContains(t, store.Recipes, resp.ID)
	assert.True(t, store.Products["prd-brownie"].HPP.IsZero())
}

// Recalcular dos veces sin mutación intermedia deja exactamente el mismo
// cache: HPP y márgenes no derivan.
func TestRecomputeProductCosting_Idempotente(t *testing.T) {
	uc, store := newFixture(t)
	_, err := uc.Create(context.Background(), baseRequest(true))
	require.NoError(t, err)

	require.NoError(t, costing.RecomputeProductCosting(
		store.RecipeRepo(), store.ProductRepo(), "prd-brownie"))
	first := *store.Products["prd-brownie"]

	require.NoError(t, costing.RecomputeProductCosting(
		store.RecipeRepo(), store.ProductRepo(), "prd-brownie"))
	second := store.Products["prd-brownie"]

	assert.True(t, second.HPP.Equal(first.HPP), "HPP estable: %s vs %s", first.HPP, second.HPP)
	assert.True(t, second.MarginAmount.Equal(first.MarginAmount))
	assert.True(t, second.MarginPercent.Equal(first.MarginPercent))
	assert.True(t, second.HPP.Equal(dec("1200")), "y sigue siendo el del vector de referencia")
}

func TestCreate_Invalida(t *testing.T) {
	uc, _ := newFixture(t)

	sinNombre := baseRequest(true)
	sinNombre.Name = ""
	_, err := uc.Create(context.Background(), sinNombre)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	sinRendimiento := baseRequest(true)
	sinRendimiento.YieldQty = decimal.Zero
	_, err = uc.Create(context.Background(), sinRendimiento)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	lineaSinQty := baseRequest(true)
	lineaSinQty.Lines[0].Qty = decimal.Zero
	_, err = uc.Create(context.Background(), lineaSinQty)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un material aparece a lo sumo una vez entre las líneas de una receta;
// las cantidades van en una sola línea.
func TestCreate_MaterialRepetidoEnLineas(t *testing.T) {
	uc, store := newFixture(t)
	req := baseRequest(true)
	req.Lines = append(req.Lines, dto.RecipeLineRequest{
		MaterialID: "mat-harina", Qty: dec("1"), Unit: "kg",
	})

	_, err := uc.Create(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.Recipes, "la receta no se crea")
}

func TestUpdate_MaterialRepetidoEnLineas(t *testing.T) {
	uc, _ := newFixture(t)
	resp, err := uc.Create(context.Background(), baseRequest(true))
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), resp.ID, dto.UpdateRecipeRequest{
		Name:     "Brownie clásico",
		YieldQty: dec("10"),
		IsActive: true,
		Lines: []dto.RecipeLineRequest{
			{MaterialID: "mat-harina", Qty: dec("2"), Unit: "kg"},
			{MaterialID: "mat-harina", Qty: dec("1"), Unit: "kg"},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
