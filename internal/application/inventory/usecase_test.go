package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/application/inventory"
	"github.com/jhoicas/Costeo-api/internal/application/memrepo"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture(t *testing.T) (*inventory.InventoryUseCase, *memrepo.Store) {
	t.Helper()
	store := memrepo.NewStore()
	now := time.Now()
	store.Materials["mat-harina"] = &entity.Material{
		ID: "mat-harina", Code: "MAT-001", Name: "Harina de trigo", Unit: "kg",
		PurchasePrice: dec("6000"), Stock: dec("10"), MinStock: dec("5"),
		Status: entity.StatusActive, CreatedAt: now, UpdatedAt: now,
	}
	store.Products["prd-brownie"] = &entity.Product{
		ID: "prd-brownie", Code: "PRD-001", Name: "Brownie",
		Stock: dec("3"), MinStock: dec("12"),
		Status: entity.StatusActive, CreatedAt: now, UpdatedAt: now,
	}
	uc := inventory.NewInventoryUseCase(
		&memrepo.TxRunner{S: store},
		store.MaterialRepo(), store.ProductRepo(), store.MovementRepo(),
	)
	return uc, store
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes manuales: stock + entrada del libro, con ref_kind "adjustment".
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_EntradaDeMaterial(t *testing.T) {
	uc, store := newFixture(t)

	resp, err := uc.Adjust(context.Background(), dto.AdjustStockRequest{
		ItemKind: entity.ItemKindMaterial,
		ItemID:   "mat-harina",
		Type:     entity.MovementIn,
		Qty:      dec("5"),
		Note:     "Conteo físico",
	})
	require.NoError(t, err)

	assert.True(t, store.Materials["mat-harina"].Stock.Equal(dec("15")))
	assert.Equal(t, entity.RefKindAdjustment, resp.RefKind)
	assert.Equal(t, "10", resp.StockBefore.String())
	assert.Equal(t, "15", resp.StockAfter.String())
	require.Len(t, store.Movements, 1)
}

func TestAdjust_SalidaDeProductoTerminado(t *testing.T) {
	uc, store := newFixture(t)

	_, err := uc.Adjust(context.Background(), dto.AdjustStockRequest{
		ItemKind: entity.ItemKindFinishedGood,
		ItemID:   "prd-brownie",
		Type:     entity.MovementOut,
		Qty:      dec("2"),
	})
	require.NoError(t, err)

	assert.True(t, store.Products["prd-brownie"].Stock.Equal(dec("1")))
	require.Len(t, store.Movements, 1)
	assert.Equal(t, entity.ItemKindFinishedGood, store.Movements[0].ItemKind)
	assert.Equal(t, entity.MovementOut, store.Movements[0].MovementType)
}

// Un ajuste "out" no puede dejar stock negativo.
func TestAdjust_SalidaMayorAlStock(t *testing.T) {
	uc, store := newFixture(t)

	_, err := uc.Adjust(context.Background(), dto.AdjustStockRequest{
		ItemKind: entity.ItemKindMaterial,
		ItemID:   "mat-harina",
		Type:     entity.MovementOut,
		Qty:      dec("11"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, store.Materials["mat-harina"].Stock.Equal(dec("10")), "el stock no cambia")
	assert.Empty(t, store.Movements, "tampoco se registra movimiento")
}

func TestAdjust_Invalido(t *testing.T) {
	uc, _ := newFixture(t)

	casos := []dto.AdjustStockRequest{
		{ItemKind: entity.ItemKindMaterial, ItemID: "mat-harina", Type: entity.MovementIn, Qty: decimal.Zero},
		{ItemKind: "bodega", ItemID: "mat-harina", Type: entity.MovementIn, Qty: dec("1")},
		{ItemKind: entity.ItemKindMaterial, ItemID: "mat-harina", Type: "transfer", Qty: dec("1")},
		{ItemKind: entity.ItemKindMaterial, ItemID: "", Type: entity.MovementIn, Qty: dec("1")},
	}
	for _, req := range casos {
		_, err := uc.Adjust(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestAdjust_ItemNoExiste(t *testing.T) {
	uc, _ := newFixture(t)
	_, err := uc.Adjust(context.Background(), dto.AdjustStockRequest{
		ItemKind: entity.ItemKindMaterial, ItemID: "mat-fantasma",
		Type: entity.MovementIn, Qty: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas del libro y stock bajo.
// ──────────────────────────────────────────────────────────────────────────────

func TestListItemMovements_FiltraPorItem(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()
	_, err := uc.Adjust(ctx, dto.AdjustStockRequest{
		ItemKind: entity.ItemKindMaterial, ItemID: "mat-harina",
		Type: entity.MovementIn, Qty: dec("5"),
	})
	require.NoError(t, err)
	_, err = uc.Adjust(ctx, dto.AdjustStockRequest{
		ItemKind: entity.ItemKindFinishedGood, ItemID: "prd-brownie",
		Type: entity.MovementIn, Qty: dec("1"),
	})
	require.NoError(t, err)

	movs, err := uc.ListItemMovements(ctx, entity.ItemKindMaterial, "mat-harina", nil, nil, 20, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "mat-harina", movs[0].ItemID)

	_, err = uc.ListItemMovements(ctx, "bodega", "mat-harina", nil, nil, 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLowStock(t *testing.T) {
	uc, store := newFixture(t)
	// Harina: stock 10 > mínimo 5 → fuera. Brownie: 3 <= 12 → dentro.
	resp, err := uc.LowStock(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resp.Materials)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "prd-brownie", resp.Products[0].ID)

	// La harina cae al mínimo exacto: entra al reporte (<=, no <).
	store.Materials["mat-harina"].Stock = dec("5")
	resp, err = uc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Materials, 1)
	assert.Equal(t, "mat-harina", resp.Materials[0].ID)
}
