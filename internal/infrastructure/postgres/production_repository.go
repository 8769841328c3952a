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

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

const productionColumns = `id, number, date, recipe_id, product_id, batch_qty, yield_qty, total_hpp, hpp_per_unit, status, completed_date, note, created_at, updated_at`

// ProductionRepo implementación de ProductionRepository sobre PostgreSQL (usable con pool o tx).
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

// Create persiste una producción. Número duplicado: ErrDuplicate.
func (r *ProductionRepo) Create(p *entity.Production) error {
	query := `
		INSERT INTO productions (` + productionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Number, p.Date, p.RecipeID, p.ProductID, p.BatchQty, p.YieldQty,
		p.TotalHPP, p.HPPPerUnit, p.Status, p.CompletedDate, p.Note, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create production: %w", err)
	}
	return nil
}

// GetByID obtiene una producción por ID, nil si no existe.
func (r *ProductionRepo) GetByID(id string) (*entity.Production, error) {
	return r.getOne(`SELECT `+productionColumns+` FROM productions WHERE id = $1`, id)
}

// GetForUpdate obtiene la producción y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductionRepo) GetForUpdate(id string) (*entity.Production, error) {
	return r.getOne(`SELECT `+productionColumns+` FROM productions WHERE id = $1 FOR UPDATE`, id)
}

// GetByNumber obtiene una producción por número, nil si no existe.
func (r *ProductionRepo) GetByNumber(number string) (*entity.Production, error) {
	return r.getOne(`SELECT `+productionColumns+` FROM productions WHERE number = $1`, number)
}

func (r *ProductionRepo) getOne(query string, arg any) (*entity.Production, error) {
	var p entity.Production
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Number, &p.Date, &p.RecipeID, &p.ProductID, &p.BatchQty, &p.YieldQty,
		&p.TotalHPP, &p.HPPPerUnit, &p.Status, &p.CompletedDate, &p.Note, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production: %w", err)
	}
	return &p, nil
}

// List devuelve producciones paginadas por fecha descendente, filtro opcional por estado.
func (r *ProductionRepo) List(status string, limit, offset int) ([]*entity.Production, error) {
	query := `SELECT ` + productionColumns + ` FROM productions`
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
		return nil, fmt.Errorf("list productions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Production
	for rows.Next() {
		var p entity.Production
		if err := rows.Scan(
			&p.ID, &p.Number, &p.Date, &p.RecipeID, &p.ProductID, &p.BatchQty, &p.YieldQty,
			&p.TotalHPP, &p.HPPPerUnit, &p.Status, &p.CompletedDate, &p.Note, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan production: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// MarkCompleted escribe status=completed y la fecha de finalización.
func (r *ProductionRepo) MarkCompleted(id string, completedDate time.Time) error {
	query := `
		UPDATE productions SET status = $2, completed_date = $3, updated_at = $3
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, entity.ProductionStatusCompleted, completedDate)
	if err != nil {
		return fmt.Errorf("mark production completed: %w", err)
	}
	return nil
}

// MarkCancelled escribe status=cancelled.
func (r *ProductionRepo) MarkCancelled(id string) error {
	query := `UPDATE productions SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, entity.ProductionStatusCancelled)
	if err != nil {
		return fmt.Errorf("mark production cancelled: %w", err)
	}
	return nil
}

// LastNumberForPrefix devuelve el último número que empieza con el prefijo (PROD-YYYYMMDD).
func (r *ProductionRepo) LastNumberForPrefix(prefix string) (string, error) {
	query := `SELECT number FROM productions WHERE number LIKE $1 ORDER BY number DESC LIMIT 1`
	var number string
	err := r.q.QueryRow(context.Background(), query, prefix+"%").Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last production number: %w", err)
	}
	return number, nil
}

// Delete elimina una producción.
func (r *ProductionRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM productions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete production: %w", err)
	}
	return nil
}
