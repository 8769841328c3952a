package inventory

import (
	"context"

	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Un ajuste manual escribe el stock del ítem
// y su entrada en el libro: ambas o ninguna.
type TxRunner interface {
	RunAdjustment(ctx context.Context, fn func(
		materialRepo repository.MaterialRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
