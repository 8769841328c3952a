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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, code, name, contact, phone, address, status, note, created_at, updated_at`

// SupplierRepo implementación de SupplierRepository sobre PostgreSQL (usable con pool o tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor. Código duplicado: ErrDuplicate.
func (r *SupplierRepo) Create(s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Code, s.Name, s.Contact, s.Phone, s.Address, s.Status, s.Note, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID, nil si no existe.
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Code, &s.Name, &s.Contact, &s.Phone, &s.Address, &s.Status, &s.Note, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// Update escribe los campos editables de un proveedor.
func (r *SupplierRepo) Update(s *entity.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $2, contact = $3, phone = $4, address = $5, status = $6, note = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Name, s.Contact, s.Phone, s.Address, s.Status, s.Note, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// List devuelve proveedores paginados ordenados por código.
func (r *SupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(
			&s.ID, &s.Code, &s.Name, &s.Contact, &s.Phone, &s.Address, &s.Status, &s.Note, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// LastCode devuelve el último código generado con el prefijo SUP.
func (r *SupplierRepo) LastCode() (string, error) {
	query := `SELECT code FROM suppliers WHERE code LIKE 'SUP-%' ORDER BY code DESC LIMIT 1`
	var code string
	err := r.q.QueryRow(context.Background(), query).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last supplier code: %w", err)
	}
	return code, nil
}

// CountReferences cuenta materiales y compras que referencian el proveedor.
func (r *SupplierRepo) CountReferences(id string) (int, error) {
	query := `
		SELECT (SELECT COUNT(*) FROM materials WHERE supplier_id = $1)
		     + (SELECT COUNT(*) FROM purchases WHERE supplier_id = $1)`
	var count int
	if err := r.q.QueryRow(context.Background(), query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("count supplier references: %w", err)
	}
	return count, nil
}

// Delete elimina un proveedor. Referencias vivas: ErrInUse.
func (r *SupplierRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}
