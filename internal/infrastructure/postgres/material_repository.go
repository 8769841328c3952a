package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, code, name, category, unit, purchase_price, stock, min_stock, supplier_id, status, note, created_at, updated_at`

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un material. Código duplicado: ErrDuplicate.
func (r *MaterialRepo) Create(m *entity.Material) error {
	query := `
		INSERT INTO materials (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Code, m.Name, m.Category, m.Unit, m.PurchasePrice, m.Stock,
		m.MinStock, m.SupplierID, m.Status, m.Note, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID, nil si no existe.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	return r.getOne(`SELECT `+materialColumns+` FROM materials WHERE id = $1`, id)
}

// GetByCode obtiene un material por código, nil si no existe.
func (r *MaterialRepo) GetByCode(code string) (*entity.Material, error) {
	return r.getOne(`SELECT `+materialColumns+` FROM materials WHERE code = $1`, code)
}

// GetForUpdate obtiene el material y bloquea la fila (SELECT FOR UPDATE).
func (r *MaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	return r.getOne(`SELECT `+materialColumns+` FROM materials WHERE id = $1 FOR UPDATE`, id)
}

func (r *MaterialRepo) getOne(query string, arg any) (*entity.Material, error) {
	var m entity.Material
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&m.ID, &m.Code, &m.Name, &m.Category, &m.Unit, &m.PurchasePrice, &m.Stock,
		&m.MinStock, &m.SupplierID, &m.Status, &m.Note, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}

// Update escribe los campos de catálogo (no toca stock ni precio de compra).
func (r *MaterialRepo) Update(m *entity.Material) error {
	query := `
		UPDATE materials
		SET name = $2, category = $3, unit = $4, min_stock = $5, supplier_id = $6,
		    status = $7, note = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.Category, m.Unit, m.MinStock, m.SupplierID, m.Status, m.Note, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// UpdateStockAndPrice escribe stock y precio de compra (procesadores y ajustes).
func (r *MaterialRepo) UpdateStockAndPrice(m *entity.Material) error {
	query := `
		UPDATE materials
		SET purchase_price = $2, stock = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, m.ID, m.PurchasePrice, m.Stock, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update material stock: %w", err)
	}
	return nil
}

// List devuelve materiales paginados ordenados por código, filtro opcional por estado.
func (r *MaterialRepo) List(status string, limit, offset int) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials`
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

// ListBelowMinStock devuelve materiales activos con stock <= min_stock (> 0).
func (r *MaterialRepo) ListBelowMinStock() ([]*entity.Material, error) {
	query := `
		SELECT ` + materialColumns + `
		FROM materials
		WHERE status = 'active' AND min_stock > 0 AND stock <= min_stock
		ORDER BY code`
	return r.list(query)
}

func (r *MaterialRepo) list(query string, args ...any) ([]*entity.Material, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(
			&m.ID, &m.Code, &m.Name, &m.Category, &m.Unit, &m.PurchasePrice, &m.Stock,
			&m.MinStock, &m.SupplierID, &m.Status, &m.Note, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// LastCode devuelve el último código generado con el prefijo MAT.
func (r *MaterialRepo) LastCode() (string, error) {
	query := `SELECT code FROM materials WHERE code LIKE 'MAT-%' ORDER BY code DESC LIMIT 1`
	var code string
	err := r.q.QueryRow(context.Background(), query).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last material code: %w", err)
	}
	return code, nil
}

// CountReferences cuenta líneas de receta y de compra que referencian el material.
func (r *MaterialRepo) CountReferences(id string) (int, error) {
	query := `
		SELECT (SELECT COUNT(*) FROM recipe_lines WHERE material_id = $1)
		     + (SELECT COUNT(*) FROM purchase_lines WHERE material_id = $1)`
	var count int
	if err := r.q.QueryRow(context.Background(), query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("count material references: %w", err)
	}
	return count, nil
}

// Delete elimina un material. Referencias vivas: ErrInUse.
func (r *MaterialRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete material: %w", err)
	}
	return nil
}
