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

// MaterialUseCase gestiona el catálogo de materias primas. El CRUD no toca
// Stock: ese campo solo lo mueven compras, producciones y ajustes.
type MaterialUseCase struct {
	materialRepo repository.MaterialRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(materialRepo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{materialRepo: materialRepo}
}

// Create registra un material. Code vacío genera el siguiente secuencial.
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	code := in.Code
	if code == "" {
		last, err := uc.materialRepo.LastCode()
		if err != nil {
			return nil, err
		}
		code = nextCode("MAT", last)
	} else if existing, err := uc.materialRepo.GetByCode(code); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	material := &entity.Material{
		ID:            uuid.New().String(),
		Code:          code,
		Name:          in.Name,
		Category:      in.Category,
		Unit:          in.Unit,
		PurchasePrice: in.PurchasePrice,
		MinStock:      in.MinStock,
		SupplierID:    in.SupplierID,
		Status:        entity.StatusActive,
		Note:          in.Note,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.materialRepo.Create(material); err != nil {
		return nil, err
	}
	return dto.FromMaterial(material), nil
}

// GetByID devuelve un material, nil si no existe.
func (uc *MaterialUseCase) GetByID(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	material, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	return dto.FromMaterial(material), nil
}

// List devuelve materiales paginados, con filtro opcional por estado.
func (uc *MaterialUseCase) List(ctx context.Context, status string, limit, offset int) ([]*dto.MaterialResponse, error) {
	materials, err := uc.materialRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MaterialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, dto.FromMaterial(m))
	}
	return out, nil
}

// Update modifica los campos editables. Stock y PurchasePrice no se tocan
// aquí: cambian vía recepción de compras o ajustes.
func (uc *MaterialUseCase) Update(ctx context.Context, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	material, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		material.Name = *in.Name
	}
	if in.Category != nil {
		material.Category = *in.Category
	}
	if in.Unit != nil {
		if *in.Unit == "" {
			return nil, domain.ErrInvalidInput
		}
		material.Unit = *in.Unit
	}
	if in.MinStock != nil {
		material.MinStock = *in.MinStock
	}
	if in.SupplierID != nil {
		material.SupplierID = in.SupplierID
	}
	if in.Status != nil {
		if *in.Status != entity.StatusActive && *in.Status != entity.StatusInactive {
			return nil, domain.ErrInvalidInput
		}
		material.Status = *in.Status
	}
	if in.Note != nil {
		material.Note = *in.Note
	}
	material.UpdatedAt = time.Now()

	if err := uc.materialRepo.Update(material); err != nil {
		return nil, err
	}
	return dto.FromMaterial(material), nil
}

// Delete elimina un material sin referencias. Si alguna línea de receta o de
// compra lo usa, devuelve ErrInUse: el historial del libro depende de él.
func (uc *MaterialUseCase) Delete(ctx context.Context, id string) error {
	material, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return err
	}
	if material == nil {
		return domain.ErrNotFound
	}
	refs, err := uc.materialRepo.CountReferences(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrInUse
	}
	return uc.materialRepo.Delete(id)
}
