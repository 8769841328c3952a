package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// SupplierUseCase gestiona el catálogo de proveedores.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(supplierRepo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo}
}

// Create registra un proveedor. Code vacío genera el siguiente secuencial.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	code := in.Code
	if code == "" {
		last, err := uc.supplierRepo.LastCode()
		if err != nil {
			return nil, err
		}
		code = nextCode("SUP", last)
	}

	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      in.Name,
		Contact:   in.Contact,
		Phone:     in.Phone,
		Address:   in.Address,
		Status:    entity.StatusActive,
		Note:      in.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID devuelve un proveedor, nil si no existe.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, nil
	}
	return toSupplierResponse(supplier), nil
}

// List devuelve proveedores paginados.
func (uc *SupplierUseCase) List(ctx context.Context, limit, offset int) ([]*dto.SupplierResponse, error) {
	suppliers, err := uc.supplierRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, toSupplierResponse(s))
	}
	return out, nil
}

// Update modifica los campos editables de un proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		supplier.Name = *in.Name
	}
	if in.Contact != nil {
		supplier.Contact = *in.Contact
	}
	if in.Phone != nil {
		supplier.Phone = *in.Phone
	}
	if in.Address != nil {
		supplier.Address = *in.Address
	}
	if in.Status != nil {
		if *in.Status != entity.StatusActive && *in.Status != entity.StatusInactive {
			return nil, domain.ErrInvalidInput
		}
		supplier.Status = *in.Status
	}
	if in.Note != nil {
		supplier.Note = *in.Note
	}
	supplier.UpdatedAt = time.Now()

	if err := uc.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// Delete elimina un proveedor sin materiales ni compras asociados.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	refs, err := uc.supplierRepo.CountReferences(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrInUse
	}
	return uc.supplierRepo.Delete(id)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        s.ID,
		Code:      s.Code,
		Name:      s.Name,
		Contact:   s.Contact,
		Phone:     s.Phone,
		Address:   s.Address,
		Status:    s.Status,
		Note:      s.Note,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
