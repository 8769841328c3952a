package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `id, number, date, supplier_id, subtotal, discount, tax, shipping, total, status, received_date, note, created_at, updated_at`

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste la orden y sus líneas. Número duplicado: ErrDuplicate.
func (r *PurchaseRepo) Create(p *entity.Purchase, lines []entity.PurchaseLine) error {
	query := `
		INSERT INTO purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Number, p.Date, p.SupplierID, p.Subtotal, p.Discount, p.Tax, p.Shipping,
		p.Total, p.Status, p.ReceivedDate, p.Note, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create purchase: %w", err)
	}
	lineQuery := `
		INSERT INTO purchase_lines (id, purchase_id, material_id, qty, unit, unit_price, subtotal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, l := range lines {
		if _, err := r.q.Exec(context.Background(), lineQuery,
			l.ID, l.PurchaseID, l.MaterialID, l.Qty, l.Unit, l.UnitPrice, l.Subtotal, l.CreatedAt,
		); err != nil {
			return fmt.Errorf("create purchase line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden por ID, nil si no existe.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	return r.getOne(`SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id)
}

// GetForUpdate obtiene la orden y bloquea la fila (SELECT FOR UPDATE).
func (r *PurchaseRepo) GetForUpdate(id string) (*entity.Purchase, error) {
	return r.getOne(`SELECT `+purchaseColumns+` FROM purchases WHERE id = $1 FOR UPDATE`, id)
}

// GetByNumber obtiene una orden por número, nil si no existe.
func (r *PurchaseRepo) GetByNumber(number string) (*entity.Purchase, error) {
	return r.getOne(`SELECT `+purchaseColumns+` FROM purchases WHERE number = $1`, number)
}

func (r *PurchaseRepo) getOne(query string, arg any) (*entity.Purchase, error) {
	var p entity.Purchase
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Number, &p.Date, &p.SupplierID, &p.Subtotal, &p.Discount, &p.Tax, &p.Shipping,
		&p.Total, &p.Status, &p.ReceivedDate, &p.Note, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

// ListLines devuelve las líneas de una orden en orden de inserción.
func (r *PurchaseRepo) ListLines(purchaseID string) ([]entity.PurchaseLine, error) {
	query := `
		SELECT id, purchase_id, material_id, qty, unit, unit_price, subtotal, created_at
		FROM purchase_lines WHERE purchase_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list purchase lines: %w", err)
	}
	defer rows.Close()
	var list []entity.PurchaseLine
	for rows.Next() {
		var l entity.PurchaseLine
		if err := rows.Scan(&l.ID, &l.PurchaseID, &l.MaterialID, &l.Qty, &l.Unit, &l.UnitPrice, &l.Subtotal, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// List devuelve órdenes paginadas por fecha descendente, filtro opcional por estado.
func (r *PurchaseRepo) List(status string, limit, offset int) ([]*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date DESC, number DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(
			&p.ID, &p.Number, &p.Date, &p.SupplierID, &p.Subtotal, &p.Discount, &p.Tax, &p.Shipping,
			&p.Total, &p.Status, &p.ReceivedDate, &p.Note, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// MarkReceived escribe status=received y la fecha de recepción.
func (r *PurchaseRepo) MarkReceived(id string, receivedDate time.Time) error {
	query := `
		UPDATE purchases SET status = $2, received_date = $3, updated_at = $3
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, entity.PurchaseStatusReceived, receivedDate)
	if err != nil {
		return fmt.Errorf("mark purchase received: %w", err)
	}
	return nil
}

// LastNumberForPrefix devuelve el último número que empieza con el prefijo (PO-YYYYMMDD).
func (r *PurchaseRepo) LastNumberForPrefix(prefix string) (string, error) {
	query := `SELECT number FROM purchases WHERE number LIKE $1 ORDER BY number DESC LIMIT 1`
	var number string
	err := r.q.QueryRow(context.Background(), query, prefix+"%").Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last purchase number: %w", err)
	}
	return number, nil
}

// Delete elimina una orden (las líneas caen en cascada).
func (r *PurchaseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM purchases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	return nil
}
