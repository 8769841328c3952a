package repository

import "github.com/jhoicas/Costeo-api/internal/domain/entity"

// MaterialRepository define el puerto de persistencia para materias primas.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para las secuencias
// check-then-decrement de los procesadores de compra y producción.
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	GetByCode(code string) (*entity.Material, error)
	GetForUpdate(id string) (*entity.Material, error)
	Update(material *entity.Material) error
	// UpdateStockAndPrice escribe stock y precio de compra (solo procesadores).
	UpdateStockAndPrice(material *entity.Material) error
	List(status string, limit, offset int) ([]*entity.Material, error)
	ListBelowMinStock() ([]*entity.Material, error)
	LastCode() (string, error)
	// CountReferences cuenta líneas de receta y de compra que referencian el material.
	CountReferences(id string) (int, error)
	Delete(id string) error
}
