package repository

import (
	"time"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// StockMovementRepository define el puerto del libro de movimientos de stock.
// Solo expone inserción y lectura: el libro es append-only por diseño del
// dominio, no existe operación de actualización ni borrado.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// ListByItem lista movimientos de un ítem (material o producto) en un rango de fechas.
	ListByItem(itemKind, itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// List lista movimientos recientes con filtros opcionales por tipo de ítem y transacción.
	List(itemKind, refKind string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
