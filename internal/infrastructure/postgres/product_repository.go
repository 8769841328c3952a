package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, code, name, category, description, selling_price, stock, min_stock, hpp, margin_amount, margin_percent, status, note, created_at, updated_at`

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto. Código duplicado: ErrDuplicate.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Code, p.Name, p.Category, p.Description, p.SellingPrice, p.Stock,
		p.MinStock, p.HPP, p.MarginAmount, p.MarginPercent, p.Status, p.Note, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID, nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByCode obtiene un producto por código, nil si no existe.
func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE code = $1`, code)
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Code, &p.Name, &p.Category, &p.Description, &p.SellingPrice, &p.Stock,
		&p.MinStock, &p.HPP, &p.MarginAmount, &p.MarginPercent, &p.Status, &p.Note, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update escribe los campos de catálogo y los márgenes (no toca stock ni HPP).
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, category = $3, description = $4, selling_price = $5, min_stock = $6,
		    margin_amount = $7, margin_percent = $8, status = $9, note = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Category, p.Description, p.SellingPrice, p.MinStock,
		p.MarginAmount, p.MarginPercent, p.Status, p.Note, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateCosting escribe los campos derivados del costeo (HPP y márgenes cacheados).
func (r *ProductRepo) UpdateCosting(productID string, hpp, marginAmount, marginPercent decimal.Decimal) error {
	query := `
		UPDATE products
		SET hpp = $2, margin_amount = $3, margin_percent = $4, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, productID, hpp, marginAmount, marginPercent)
	if err != nil {
		return fmt.Errorf("update product costing: %w", err)
	}
	return nil
}

// UpdateStock escribe el stock (procesador de producción y ajustes).
func (r *ProductRepo) UpdateStock(productID string, stock decimal.Decimal) error {
	query := `UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, productID, stock)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// List devuelve productos paginados ordenados por código, filtro opcional por estado.
func (r *ProductRepo) List(status string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY code LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.list(query, args...)
}

// ListBelowMinStock devuelve productos activos con stock <= min_stock (> 0).
func (r *ProductRepo) ListBelowMinStock() ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE status = 'active' AND min_stock > 0 AND stock <= min_stock
		ORDER BY code`
	return r.list(query)
}

func (r *ProductRepo) list(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Code, &p.Name, &p.Category, &p.Description, &p.SellingPrice, &p.Stock,
			&p.MinStock, &p.HPP, &p.MarginAmount, &p.MarginPercent, &p.Status, &p.Note, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// LastCode devuelve el último código generado con el prefijo PRD.
func (r *ProductRepo) LastCode() (string, error) {
	query := `SELECT code FROM products WHERE code LIKE 'PRD-%' ORDER BY code DESC LIMIT 1`
	var code string
	err := r.q.QueryRow(context.Background(), query).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last product code: %w", err)
	}
	return code, nil
}

// CountReferences cuenta producciones que referencian el producto.
func (r *ProductRepo) CountReferences(id string) (int, error) {
	query := `SELECT COUNT(*) FROM productions WHERE product_id = $1`
	var count int
	if err := r.q.QueryRow(context.Background(), query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("count product references: %w", err)
	}
	return count, nil
}

// Delete elimina un producto (las recetas caen en cascada). Referencias vivas: ErrInUse.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
