package repository

import "github.com/jhoicas/Costeo-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	List(limit, offset int) ([]*entity.Supplier, error)
	LastCode() (string, error)
	// CountReferences cuenta materiales y compras que referencian el proveedor.
	CountReferences(id string) (int, error)
	Delete(id string) error
}
