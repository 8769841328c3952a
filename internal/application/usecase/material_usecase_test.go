package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/application/memrepo"
	"github.com/jhoicas/Costeo-api/internal/application/usecase"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newMaterialFixture(t *testing.T) (*usecase.MaterialUseCase, *memrepo.Store) {
	t.Helper()
	store := memrepo.NewStore()
	return usecase.NewMaterialUseCase(store.MaterialRepo()), store
}

// ──────────────────────────────────────────────────────────────────────────────
// Códigos secuenciales y duplicados.
// ──────────────────────────────────────────────────────────────────────────────

func TestMaterialCreate_GeneraCodigoSecuencial(t *testing.T) {
	uc, _ := newMaterialFixture(t)
	ctx := context.Background()

	first, err := uc.Create(ctx, dto.CreateMaterialRequest{Name: "Harina de trigo", Unit: "kg"})
	require.NoError(t, err)
	second, err := uc.Create(ctx, dto.CreateMaterialRequest{Name: "Azúcar", Unit: "kg"})
	require.NoError(t, err)

	assert.Equal(t, "MAT-001", first.Code)
	assert.Equal(t, "MAT-002", second.Code)
	assert.Equal(t, entity.StatusActive, first.Status, "los materiales nacen activos")
}

func TestMaterialCreate_CodigoExplicitoDuplicado(t *testing.T) {
	uc, _ := newMaterialFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateMaterialRequest{Code: "MAT-HAR", Name: "Harina", Unit: "kg"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateMaterialRequest{Code: "MAT-HAR", Name: "Otra harina", Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestMaterialCreate_Invalido(t *testing.T) {
	uc, _ := newMaterialFixture(t)
	_, err := uc.Create(context.Background(), dto.CreateMaterialRequest{Name: "", Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateMaterialRequest{Name: "Harina", Unit: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update parcial: el CRUD no toca stock ni precio de compra.
// ──────────────────────────────────────────────────────────────────────────────

func TestMaterialUpdate_Parcial(t *testing.T) {
	uc, store := newMaterialFixture(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateMaterialRequest{
		Name: "Harina", Unit: "kg", PurchasePrice: dec("5000"), MinStock: dec("5"),
	})
	require.NoError(t, err)
	store.Materials[created.ID].Stock = dec("10")

	name := "Harina de trigo 000"
	status := entity.StatusInactive
	resp, err := uc.Update(ctx, created.ID, dto.UpdateMaterialRequest{Name: &name, Status: &status})
	require.NoError(t, err)

	assert.Equal(t, "Harina de trigo 000", resp.Name)
	assert.Equal(t, entity.StatusInactive, resp.Status)
	assert.Equal(t, "kg", resp.Unit, "los campos no enviados no cambian")
	assert.True(t, resp.Stock.Equal(dec("10")), "el update de catálogo no toca el stock")
	assert.True(t, resp.PurchasePrice.Equal(dec("5000")))
}

func TestMaterialUpdate_EstadoInvalido(t *testing.T) {
	uc, _ := newMaterialFixture(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateMaterialRequest{Name: "Harina", Unit: "kg"})
	require.NoError(t, err)

	status := "archivado"
	_, err = uc.Update(ctx, created.ID, dto.UpdateMaterialRequest{Status: &status})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete: protegido por referencias.
// ──────────────────────────────────────────────────────────────────────────────

func TestMaterialDelete_ReferenciadoPorReceta(t *testing.T) {
	uc, store := newMaterialFixture(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateMaterialRequest{Name: "Harina", Unit: "kg"})
	require.NoError(t, err)
	store.RecipeLines["rec-1"] = []entity.RecipeLine{
		{ID: "rl-1", RecipeID: "rec-1", MaterialID: created.ID, Qty: dec("2"), Unit: "kg", CreatedAt: time.Now()},
	}

	err = uc.Delete(ctx, created.ID)

	assert.ErrorIs(t, err, domain.ErrInUse)
	assert.Contains(t, store.Materials, created.ID, "el material sigue existiendo")
}

func TestMaterialDelete_SinReferencias(t *testing.T) {
	uc, store := newMaterialFixture(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateMaterialRequest{Name: "Harina", Unit: "kg"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.NotContains(t, store.Materials, created.ID)
}
