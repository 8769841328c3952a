package costing

import (
	"context"

	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la pareja "apagar hermanas +
// toggle" y el recálculo de costeo del producto se confirmen juntos.
type TxRunner interface {
	RunCosting(ctx context.Context, fn func(
		recipeRepo repository.RecipeRepository,
		productRepo repository.ProductRepository,
		materialRepo repository.MaterialRepository,
	) error) error
}
