package usecase

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pesl98/erp/internal/application/dto"
	"github.com/pesl98/erp/internal/domain"
	"github.com/pesl98/erp/internal/domain/entity"
	"github.com/pesl98/erp/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Las cantidades de stock
// nunca se tocan aquí: solo el libro de inventario las mueve.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un producto activo. El SKU debe ser único.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.repo.GetBySKU(in.SKU); err == nil && existing != nil {
		return nil, domain.ErrDuplicate
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if in.CategoryID != "" {
		if _, err := uc.categoryRepo.GetByID(in.CategoryID); err != nil {
			return nil, err
		}
	}
	if in.ReorderPoint < 0 || in.ReorderQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.CostPrice != nil && in.CostPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	uom := in.UnitOfMeasure
	if uom == "" {
		uom = "each"
	}
	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		SKU:             in.SKU,
		Name:            in.Name,
		Description:     in.Description,
		CategoryID:      in.CategoryID,
		UnitOfMeasure:   uom,
		Barcode:         in.Barcode,
		Status:          entity.ProductStatusActive,
		ReorderPoint:    in.ReorderPoint,
		ReorderQuantity: in.ReorderQuantity,
		CostPrice:       in.CostPrice,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update aplica un patch parcial. El SKU no se puede cambiar.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		if *in.CategoryID != "" {
			if _, err := uc.categoryRepo.GetByID(*in.CategoryID); err != nil {
				return nil, err
			}
		}
		product.CategoryID = *in.CategoryID
	}
	if in.UnitOfMeasure != nil {
		product.UnitOfMeasure = *in.UnitOfMeasure
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Status != nil {
		if *in.Status != entity.ProductStatusActive && *in.Status != entity.ProductStatusDiscontinued {
			return nil, domain.ErrInvalidInput
		}
		product.Status = *in.Status
	}
	if in.ReorderPoint != nil {
		if *in.ReorderPoint < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.ReorderPoint = *in.ReorderPoint
	}
	if in.ReorderQuantity != nil {
		if *in.ReorderQuantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.ReorderQuantity = *in.ReorderQuantity
	}
	if in.CostPrice != nil {
		if in.CostPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.CostPrice = in.CostPrice
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(filter repository.ProductFilter, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	filter.Limit = page.Limit
	filter.Offset = page.Offset
	products, total, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Discontinue marca el producto como descontinuado en vez de borrarlo:
// el historial de movimientos lo sigue referenciando.
func (uc *ProductUseCase) Discontinue(id string) (*dto.ProductResponse, error) {
	status := entity.ProductStatusDiscontinued
	return uc.Update(id, dto.UpdateProductRequest{Status: &status})
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		SKU:             p.SKU,
		Name:            p.Name,
		Description:     p.Description,
		CategoryID:      p.CategoryID,
		UnitOfMeasure:   p.UnitOfMeasure,
		Barcode:         p.Barcode,
		Status:          p.Status,
		ReorderPoint:    p.ReorderPoint,
		ReorderQuantity: p.ReorderQuantity,
		CostPrice:       p.CostPrice,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
