package purchasing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La recepción de una compra toca la orden,
// N materiales y N filas del libro: o se confirma todo o nada.
type TxRunner interface {
	RunReceipt(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRepository,
		materialRepo repository.MaterialRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// PurchaseLineForPDF línea de la orden resuelta con el nombre del material.
type PurchaseLineForPDF struct {
	MaterialName string
	Qty          decimal.Decimal
	Unit         string
	UnitPrice    decimal.Decimal
	Subtotal     decimal.Decimal
}

// OrderPDFGenerator genera la representación imprimible de una orden de compra.
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, purchase *entity.Purchase, supplier *entity.Supplier, lines []PurchaseLineForPDF) ([]byte, error)
}
