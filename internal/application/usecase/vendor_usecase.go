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

// VendorUseCase casos de uso CRUD para proveedores.
type VendorUseCase struct {
	repo repository.VendorRepository
}

// NewVendorUseCase construye el caso de uso.
func NewVendorUseCase(repo repository.VendorRepository) *VendorUseCase {
	return &VendorUseCase{repo: repo}
}

// Create crea un proveedor activo. El código debe ser único.
func (uc *VendorUseCase) Create(in dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.repo.GetByCode(in.Code); err == nil && existing != nil {
		return nil, domain.ErrDuplicate
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	now := time.Now()
	vendor := &entity.Vendor{
		ID:           uuid.New().String(),
		Code:         in.Code,
		Name:         in.Name,
		ContactName:  in.ContactName,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		PaymentTerms: in.PaymentTerms,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(vendor); err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *VendorUseCase) GetByID(id string) (*dto.VendorResponse, error) {
	vendor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// Update aplica un patch parcial. El código no se puede cambiar.
func (uc *VendorUseCase) Update(id string, in dto.UpdateVendorRequest) (*dto.VendorResponse, error) {
	vendor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		vendor.Name = *in.Name
	}
	if in.ContactName != nil {
		vendor.ContactName = *in.ContactName
	}
	if in.Email != nil {
		vendor.Email = *in.Email
	}
	if in.Phone != nil {
		vendor.Phone = *in.Phone
	}
	if in.Address != nil {
		vendor.Address = *in.Address
	}
	if in.PaymentTerms != nil {
		vendor.PaymentTerms = *in.PaymentTerms
	}
	if in.IsActive != nil {
		vendor.IsActive = *in.IsActive
	}
	vendor.UpdatedAt = time.Now()
	if err := uc.repo.Update(vendor); err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// List lista proveedores con búsqueda y paginación.
func (uc *VendorUseCase) List(search string, onlyActive bool, page dto.PageRequest) (*dto.VendorListResponse, error) {
	page.DefaultPage()
	vendors, total, err := uc.repo.List(search, onlyActive, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		items = append(items, *toVendorResponse(v))
	}
	return &dto.VendorListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Deactivate desactiva un proveedor en vez de borrarlo: sus órdenes
// históricas lo siguen referenciando. Uno inactivo no admite órdenes nuevas.
func (uc *VendorUseCase) Deactivate(id string) (*dto.VendorResponse, error) {
	inactive := false
	return uc.Update(id, dto.UpdateVendorRequest{IsActive: &inactive})
}

func toVendorResponse(v *entity.Vendor) *dto.VendorResponse {
	if v == nil {
		return nil
	}
	return &dto.VendorResponse{
		ID:           v.ID,
		Code:         v.Code,
		Name:         v.Name,
		ContactName:  v.ContactName,
		Email:        v.Email,
		Phone:        v.Phone,
		Address:      v.Address,
		PaymentTerms: v.PaymentTerms,
		IsActive:     v.IsActive,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
