package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para productos terminados.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateCosting escribe los campos derivados (HPP y márgenes cacheados).
	UpdateCosting(productID string, hpp, marginAmount, marginPercent decimal.Decimal) error
	// UpdateStock escribe el stock (solo procesador de producción y ajustes).
	UpdateStock(productID string, stock decimal.Decimal) error
	List(status string, limit, offset int) ([]*entity.Product, error)
	ListBelowMinStock() ([]*entity.Product, error)
	LastCode() (string, error)
	// CountReferences cuenta producciones que referencian el producto.
	CountReferences(id string) (int, error)
	Delete(id string) error
}
