package production

import (
	"context"

	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La completación de una producción toca la
// producción, N materiales, el producto y N+1 filas del libro: todo o nada,
// con bloqueo de filas para que dos completaciones concurrentes sobre el
// mismo material no pasen ambas la verificación de stock.
type TxRunner interface {
	RunProduction(ctx context.Context, fn func(
		productionRepo repository.ProductionRepository,
		recipeRepo repository.RecipeRepository,
		materialRepo repository.MaterialRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
