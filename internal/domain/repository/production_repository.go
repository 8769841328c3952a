package repository

import (
	"time"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// ProductionRepository define el puerto de persistencia para producciones.
type ProductionRepository interface {
	Create(production *entity.Production) error
	GetByID(id string) (*entity.Production, error)
	GetForUpdate(id string) (*entity.Production, error)
	GetByNumber(number string) (*entity.Production, error)
	List(status string, limit, offset int) ([]*entity.Production, error)
	// MarkCompleted escribe status=completed y la fecha de finalización.
	MarkCompleted(id string, completedDate time.Time) error
	// MarkCancelled escribe status=cancelled.
	MarkCancelled(id string) error
	LastNumberForPrefix(prefix string) (string, error)
	Delete(id string) error
}
