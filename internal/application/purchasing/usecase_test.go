package purchasing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/application/memrepo"
	"github.com/jhoicas/Costeo-api/internal/application/purchasing"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakePDF registra la llamada y devuelve bytes fijos.
type fakePDF struct {
	called bool
}

func (f *fakePDF) GenerateOrderPDF(_ context.Context, _ *entity.Purchase, _ *entity.Supplier, _ []purchasing.PurchaseLineForPDF) ([]byte, error) {
	f.called = true
	return []byte("%PDF-fake"), nil
}

// newFixture arma un Store con un proveedor y un material Harina
// (stock 10, precio $5.000) y el caso de uso listo.
func newFixture(t *testing.T) (*purchasing.PurchaseUseCase, *memrepo.Store, *fakePDF) {
	t.Helper()
	store := memrepo.NewStore()
	now := time.Now()
	store.Suppliers["sup-1"] = &entity.Supplier{
		ID: "sup-1", Code: "SUP-001", Name: "Distribuidora Central",
		Status: entity.StatusActive, CreatedAt: now, UpdatedAt: now,
	}
	store.Materials["mat-harina"] = &entity.Material{
		ID: "mat-harina", Code: "MAT-001", Name: "Harina de trigo", Unit: "kg",
		PurchasePrice: dec("5000"), Stock: dec("10"),
		Status: entity.StatusActive, CreatedAt: now, UpdatedAt: now,
	}
	pdf := &fakePDF{}
	uc := purchasing.NewPurchaseUseCase(
		&memrepo.TxRunner{S: store},
		store.PurchaseRepo(), store.SupplierRepo(), store.MaterialRepo(), pdf,
	)
	return uc, store, pdf
}

func createDraft(t *testing.T, uc *purchasing.PurchaseUseCase, qty, price string) *dto.PurchaseResponse {
	t.Helper()
	resp, err := uc.Create(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "sup-1",
		Lines: []dto.PurchaseLineRequest{
			{MaterialID: "mat-harina", Qty: dec(qty), Unit: "kg", UnitPrice: dec(price)},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Recepción: último precio gana, stock suma, libro registra entrada "in".
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_ActualizaPrecioStockYLibro(t *testing.T) {
	uc, store, _ := newFixture(t)
	order := createDraft(t, uc, "20", "6000")

	require.NoError(t, uc.Receive(context.Background(), order.ID))

	mat := store.Materials["mat-harina"]
	assert.True(t, mat.Stock.Equal(dec("30")), "stock: 10 + 20 = 30, fue %s", mat.Stock)
	assert.True(t, mat.PurchasePrice.Equal(dec("6000")),
		"el precio de compra se sobreescribe con el de la línea (sin promedio)")

	purchase := store.Purchases[order.ID]
	assert.Equal(t, entity.PurchaseStatusReceived, purchase.Status)
	require.NotNil(t, purchase.ReceivedDate, "la recepción fija la fecha")

	require.Len(t, store.Movements, 1, "una línea → una entrada en el libro")
	mov := store.Movements[0]
	assert.Equal(t, entity.ItemKindMaterial, mov.ItemKind)
	assert.Equal(t, entity.MovementIn, mov.MovementType)
	assert.True(t, mov.Qty.Equal(dec("20")))
	assert.True(t, mov.StockBefore.Equal(dec("10")))
	assert.True(t, mov.StockAfter.Equal(dec("30")))
	assert.Equal(t, entity.RefKindPurchase, mov.RefKind)
	assert.Equal(t, order.ID, mov.RefID)
	assert.Equal(t, order.Number, mov.RefNumber)
}

// received es estado final: recibir dos veces duplicaría stock.
func TestReceive_YaRecibida_Conflicto(t *testing.T) {
	uc, store, _ := newFixture(t)
	order := createDraft(t, uc, "20", "6000")
	require.NoError(t, uc.Receive(context.Background(), order.ID))

	err := uc.Receive(context.Background(), order.ID)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, store.Materials["mat-harina"].Stock.Equal(dec("30")),
		"el stock no debe moverse otra vez")
	assert.Len(t, store.Movements, 1, "sin entradas nuevas en el libro")
}

func TestReceive_Cancelada_Conflicto(t *testing.T) {
	uc, store, _ := newFixture(t)
	order := createDraft(t, uc, "20", "6000")
	store.Purchases[order.ID].Status = entity.PurchaseStatusCancelled

	err := uc.Receive(context.Background(), order.ID)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, store.Materials["mat-harina"].Stock.Equal(dec("10")))
}

func TestReceive_NoExiste(t *testing.T) {
	uc, _, _ := newFixture(t)
	err := uc.Receive(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Create: totales, numeración y recepción inmediata.
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CalculaTotales(t *testing.T) {
	uc, _, _ := newFixture(t)
	resp, err := uc.Create(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "sup-1",
		Discount:   dec("1000"),
		Tax:        dec("500"),
		Shipping:   dec("2000"),
		Lines: []dto.PurchaseLineRequest{
			{MaterialID: "mat-harina", Qty: dec("20"), Unit: "kg", UnitPrice: dec("6000")},
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.Subtotal.Equal(dec("120000")), "subtotal 20 × 6000")
	// 120000 - 1000 + 500 + 2000
	assert.True(t, resp.Total.Equal(dec("121500")), "total esperado 121500, fue %s", resp.Total)
	assert.Equal(t, entity.PurchaseStatusDraft, resp.Status)
}

func TestCreate_NumeroGenerado(t *testing.T) {
	uc, _, _ := newFixture(t)
	prefix := "PO-" + time.Now().Format("20060102")

	first := createDraft(t, uc, "1", "6000")
	second := createDraft(t, uc, "1", "6000")

	assert.Equal(t, prefix+"-001", first.Number)
	assert.Equal(t, prefix+"-002", second.Number, "la secuencia del día avanza")
}

func TestCreate_NumeroDuplicado(t *testing.T) {
	uc, _, _ := newFixture(t)
	req := dto.CreatePurchaseRequest{
		Number:     "PO-20260827-001",
		SupplierID: "sup-1",
		Lines: []dto.PurchaseLineRequest{
			{MaterialID: "mat-harina", Qty: dec("1"), Unit: "kg", UnitPrice: dec("6000")},
		},
	}
	_, err := uc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_ProveedorNoExiste(t *testing.T) {
	uc, _, _ := newFixture(t)
	_, err := uc.Create(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "sup-fantasma",
		Lines: []dto.PurchaseLineRequest{
			{MaterialID: "mat-harina", Qty: dec("1"), Unit: "kg", UnitPrice: dec("6000")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_Invalida(t *testing.T) {
	uc, _, _ := newFixture(t)

	casos := []dto.CreatePurchaseRequest{
		{SupplierID: "sup-1"}, // sin líneas
		{SupplierID: "sup-1", Lines: []dto.PurchaseLineRequest{
			{MaterialID: "mat-harina", Qty: dec("0"), UnitPrice: dec("6000")}, // qty 0
		}},
		{SupplierID: "sup-1", Lines: []dto.PurchaseLineRequest{
			{MaterialID: "mat-harina", Qty: dec("1"), UnitPrice: dec("-1")}, // precio negativo
		}},
		{SupplierID: "sup-1", Status: "enviada", Lines: []dto.PurchaseLineRequest{
			{MaterialID: "mat-harina", Qty: dec("1"), UnitPrice: dec("6000")}, // estado desconocido
		}},
	}
	for _, req := range casos {
		_, err := uc.Create(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// Status "received" en el alta procesa la recepción de inmediato,
// por el mismo camino transaccional que POST /receive.
func TestCreate_RecepcionInmediata(t *testing.T) {
	uc, store, _ := newFixture(t)
	resp, err := uc.Create(context.Background(), dto.CreatePurchaseRequest{
		SupplierID: "sup-1",
		Status:     entity.PurchaseStatusReceived,
		Lines: []dto.PurchaseLineRequest{
			{MaterialID: "mat-harina", Qty: dec("20"), Unit: "kg", UnitPrice: dec("6000")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseStatusReceived, resp.Status)
	assert.NotNil(t, resp.ReceivedDate)
	assert.True(t, store.Materials["mat-harina"].Stock.Equal(dec("30")))
	assert.Len(t, store.Movements, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete y PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_RecibidaEsInmutable(t *testing.T) {
	uc, _, _ := newFixture(t)
	order := createDraft(t, uc, "20", "6000")
	require.NoError(t, uc.Receive(context.Background(), order.ID))

	err := uc.Delete(context.Background(), order.ID)

	assert.ErrorIs(t, err, domain.ErrConflict, "una orden recibida ya movió stock")
}

func TestDelete_Borrador(t *testing.T) {
	uc, store, _ := newFixture(t)
	order := createDraft(t, uc, "20", "6000")

	require.NoError(t, uc.Delete(context.Background(), order.ID))
	assert.NotContains(t, store.Purchases, order.ID)
}

func TestGeneratePDF_DelegaEnGenerador(t *testing.T) {
	uc, _, pdf := newFixture(t)
	order := createDraft(t, uc, "20", "6000")

	out, err := uc.GeneratePDF(context.Background(), order.ID)

	require.NoError(t, err)
	assert.True(t, pdf.called)
	assert.NotEmpty(t, out)
}

func TestGeneratePDF_NoExiste(t *testing.T) {
	uc, _, _ := newFixture(t)
	_, err := uc.GeneratePDF(context.Background(), "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
