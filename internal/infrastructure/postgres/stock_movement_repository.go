package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, date, item_kind, item_id, item_name, movement_type, qty, stock_before, stock_after, ref_kind, ref_id, ref_number, note, created_at`

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL.
// Solo INSERT y SELECT: el libro es append-only.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste una entrada del libro.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	refID := (*string)(nil)
	if m.RefID != "" {
		refID = &m.RefID
	}
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Date, m.ItemKind, m.ItemID, m.ItemName, m.MovementType, m.Qty,
		m.StockBefore, m.StockAfter, m.RefKind, refID, m.RefNumber, m.Note, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByItem lista movimientos de un ítem (material o producto) en un rango de fechas.
func (r *StockMovementRepo) ListByItem(itemKind, itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE item_kind = $1 AND item_id = $2`
	args := []any{itemKind, itemID}
	return r.list(query, args, from, to, limit, offset)
}

// List lista movimientos recientes con filtros opcionales por tipo de ítem y transacción.
func (r *StockMovementRepo) List(itemKind, refKind string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE true`
	args := []any{}
	if itemKind != "" {
		args = append(args, itemKind)
		query += fmt.Sprintf(" AND item_kind = $%d", len(args))
	}
	if refKind != "" {
		args = append(args, refKind)
		query += fmt.Sprintf(" AND ref_kind = $%d", len(args))
	}
	return r.list(query, args, from, to, limit, offset)
}

func (r *StockMovementRepo) list(query string, args []any, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var refID *string
		if err := rows.Scan(
			&m.ID, &m.Date, &m.ItemKind, &m.ItemID, &m.ItemName, &m.MovementType, &m.Qty,
			&m.StockBefore, &m.StockAfter, &m.RefKind, &refID, &m.RefNumber, &m.Note, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		if refID != nil {
			m.RefID = *refID
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
