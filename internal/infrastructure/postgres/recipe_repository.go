package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

const recipeColumns = `id, product_id, name, yield_qty, yield_unit, is_active, note, created_at, updated_at`

// RecipeRepo implementación de RecipeRepository sobre PostgreSQL (usable con pool o tx).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Create persiste la cabecera de una receta.
func (r *RecipeRepo) Create(recipe *entity.Recipe) error {
	query := `
		INSERT INTO recipes (` + recipeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		recipe.ID, recipe.ProductID, recipe.Name, recipe.YieldQty, recipe.YieldUnit,
		recipe.IsActive, recipe.Note, recipe.CreatedAt, recipe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create recipe: %w", err)
	}
	return nil
}

// GetByID obtiene una receta por ID, nil si no existe.
func (r *RecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	return r.getOne(`SELECT `+recipeColumns+` FROM recipes WHERE id = $1`, id)
}

// GetActiveByProduct obtiene la receta activa de un producto, nil si no hay.
func (r *RecipeRepo) GetActiveByProduct(productID string) (*entity.Recipe, error) {
	return r.getOne(`SELECT `+recipeColumns+` FROM recipes WHERE product_id = $1 AND is_active`, productID)
}

func (r *RecipeRepo) getOne(query string, arg any) (*entity.Recipe, error) {
	var rec entity.Recipe
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&rec.ID, &rec.ProductID, &rec.Name, &rec.YieldQty, &rec.YieldUnit,
		&rec.IsActive, &rec.Note, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return &rec, nil
}

// ListByProduct lista todas las recetas de un producto, la activa primero.
func (r *RecipeRepo) ListByProduct(productID string) ([]*entity.Recipe, error) {
	query := `
		SELECT ` + recipeColumns + `
		FROM recipes WHERE product_id = $1
		ORDER BY is_active DESC, created_at`
	return r.list(query, productID)
}

// List devuelve recetas paginadas.
func (r *RecipeRepo) List(limit, offset int) ([]*entity.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *RecipeRepo) list(query string, args ...any) ([]*entity.Recipe, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Recipe
	for rows.Next() {
		var rec entity.Recipe
		if err := rows.Scan(
			&rec.ID, &rec.ProductID, &rec.Name, &rec.YieldQty, &rec.YieldUnit,
			&rec.IsActive, &rec.Note, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// Update escribe la cabecera de una receta.
func (r *RecipeRepo) Update(recipe *entity.Recipe) error {
	query := `
		UPDATE recipes
		SET name = $2, yield_qty = $3, yield_unit = $4, is_active = $5, note = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		recipe.ID, recipe.Name, recipe.YieldQty, recipe.YieldUnit, recipe.IsActive, recipe.Note, recipe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	return nil
}

// SetActive escribe el flag is_active de una receta.
func (r *RecipeRepo) SetActive(recipeID string, active bool) error {
	query := `UPDATE recipes SET is_active = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, recipeID, active)
	if err != nil {
		return fmt.Errorf("set recipe active: %w", err)
	}
	return nil
}

// DeactivateSiblings apaga is_active en las demás recetas del mismo producto.
func (r *RecipeRepo) DeactivateSiblings(productID, exceptRecipeID string) error {
	query := `
		UPDATE recipes SET is_active = false, updated_at = now()
		WHERE product_id = $1 AND id <> $2 AND is_active`
	_, err := r.q.Exec(context.Background(), query, productID, exceptRecipeID)
	if err != nil {
		return fmt.Errorf("deactivate sibling recipes: %w", err)
	}
	return nil
}

// Delete elimina una receta (las líneas caen en cascada).
func (r *RecipeRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de receta.
func (r *RecipeRepo) CreateLine(line *entity.RecipeLine) error {
	query := `
		INSERT INTO recipe_lines (id, recipe_id, material_id, qty, unit, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.RecipeID, line.MaterialID, line.Qty, line.Unit, line.Note, line.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create recipe line: %w", err)
	}
	return nil
}

// DeleteLines elimina todas las líneas de una receta.
func (r *RecipeRepo) DeleteLines(recipeID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM recipe_lines WHERE recipe_id = $1`, recipeID)
	if err != nil {
		return fmt.Errorf("delete recipe lines: %w", err)
	}
	return nil
}

const recipeLineDetailQuery = `
	SELECT l.id, l.recipe_id, l.material_id, l.qty, l.unit, l.note, l.created_at,
	       m.name, m.unit, m.purchase_price, m.stock
	FROM recipe_lines l
	JOIN materials m ON m.id = l.material_id
	WHERE l.recipe_id = $1
	ORDER BY m.id`

// ListLineDetails devuelve las líneas unidas al precio y stock actual del material.
func (r *RecipeRepo) ListLineDetails(recipeID string) ([]entity.RecipeLineDetail, error) {
	return r.listLineDetails(recipeLineDetailQuery, recipeID)
}

// ListLineDetailsForUpdate hace lo mismo bloqueando las filas de materiales.
// El ORDER BY m.id fija un orden de bloqueo determinista: dos producciones
// concurrentes que comparten materiales los bloquean en el mismo orden y no
// se interbloquean.
func (r *RecipeRepo) ListLineDetailsForUpdate(recipeID string) ([]entity.RecipeLineDetail, error) {
	return r.listLineDetails(recipeLineDetailQuery+` FOR UPDATE OF m`, recipeID)
}

func (r *RecipeRepo) listLineDetails(query, recipeID string) ([]entity.RecipeLineDetail, error) {
	rows, err := r.q.Query(context.Background(), query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list recipe line details: %w", err)
	}
	defer rows.Close()
	var list []entity.RecipeLineDetail
	for rows.Next() {
		var d entity.RecipeLineDetail
		if err := rows.Scan(
			&d.ID, &d.RecipeID, &d.MaterialID, &d.Qty, &d.Unit, &d.Note, &d.CreatedAt,
			&d.MaterialName, &d.MaterialUnit, &d.PurchasePrice, &d.MaterialStock,
		); err != nil {
			return nil, fmt.Errorf("scan recipe line detail: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
