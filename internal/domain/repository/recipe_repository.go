package repository

import "github.com/jhoicas/Costeo-api/internal/domain/entity"

// RecipeRepository define el puerto de persistencia para recetas y sus líneas.
type RecipeRepository interface {
	Create(recipe *entity.Recipe) error
	GetByID(id string) (*entity.Recipe, error)
	GetActiveByProduct(productID string) (*entity.Recipe, error)
	ListByProduct(productID string) ([]*entity.Recipe, error)
	List(limit, offset int) ([]*entity.Recipe, error)
	Update(recipe *entity.Recipe) error
	// SetActive escribe el flag is_active de una receta.
	SetActive(recipeID string, active bool) error
	// DeactivateSiblings apaga is_active en las demás recetas del mismo producto.
	DeactivateSiblings(productID, exceptRecipeID string) error
	Delete(id string) error

	CreateLine(line *entity.RecipeLine) error
	DeleteLines(recipeID string) error
	// ListLineDetails devuelve las líneas unidas al precio y stock actual del material.
	ListLineDetails(recipeID string) ([]entity.RecipeLineDetail, error)
	// ListLineDetailsForUpdate hace lo mismo bloqueando las filas de materiales
	// (FOR UPDATE, en orden determinista por id) para la completación de producción.
	ListLineDetailsForUpdate(recipeID string) ([]entity.RecipeLineDetail, error)
}
