package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/costing"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// ProductUseCase gestiona el catálogo de productos terminados. HPP y márgenes
// son derivados: el CRUD solo recalcula márgenes cuando cambia el precio de
// venta, usando el HPP cacheado; el HPP mismo lo recalculan las recetas.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create registra un producto con costeo en cero (aún sin receta activa).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	code := in.Code
	if code == "" {
		last, err := uc.productRepo.LastCode()
		if err != nil {
			return nil, err
		}
		code = nextCode("PRD", last)
	} else if existing, err := uc.productRepo.GetByCode(code); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Code:         code,
		Name:         in.Name,
		Category:     in.Category,
		Description:  in.Description,
		SellingPrice: in.SellingPrice,
		MinStock:     in.MinStock,
		Status:       entity.StatusActive,
		Note:         in.Note,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return dto.FromProduct(product), nil
}

// GetByID devuelve un producto, nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return dto.FromProduct(product), nil
}

// List devuelve productos paginados, con filtro opcional por estado.
func (uc *ProductUseCase) List(ctx context.Context, status string, limit, offset int) ([]*dto.ProductResponse, error) {
	products, err := uc.productRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.FromProduct(p))
	}
	return out, nil
}

// Update modifica los campos editables. Cambiar SellingPrice recalcula los
// márgenes con el HPP cacheado, sin releer la receta.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.SellingPrice != nil {
		product.SellingPrice = *in.SellingPrice
		product.MarginAmount, product.MarginPercent = costing.Margin(product.SellingPrice, product.HPP)
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.Status != nil {
		if *in.Status != entity.StatusActive && *in.Status != entity.StatusInactive {
			return nil, domain.ErrInvalidInput
		}
		product.Status = *in.Status
	}
	if in.Note != nil {
		product.Note = *in.Note
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return dto.FromProduct(product), nil
}

// Delete elimina un producto sin producciones asociadas. Las recetas del
// producto caen en cascada en la BD.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	refs, err := uc.productRepo.CountReferences(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrInUse
	}
	return uc.productRepo.Delete(id)
}
