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

// WarehouseUseCase casos de uso para la jerarquía bodega → zona → ubicación.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea una bodega activa. El código debe ser único.
func (uc *WarehouseUseCase) Create(in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.repo.GetByCode(in.Code); err == nil && existing != nil {
		return nil, domain.ErrDuplicate
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		Address:   in.Address,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// Update aplica un patch parcial a la bodega.
func (uc *WarehouseUseCase) Update(id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	if in.IsActive != nil {
		warehouse.IsActive = *in.IsActive
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas con paginación.
func (uc *WarehouseUseCase) List(page dto.PageRequest) (*dto.WarehouseListResponse, error) {
	page.DefaultPage()
	warehouses, total, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(warehouses))
	for _, w := range warehouses {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// CreateZone agrega una zona a una bodega existente.
func (uc *WarehouseUseCase) CreateZone(warehouseID string, in dto.CreateZoneRequest) (*dto.ZoneResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.repo.GetByID(warehouseID); err != nil {
		return nil, err
	}
	zone := &entity.Zone{
		ID:          uuid.New().String(),
		WarehouseID: warehouseID,
		Code:        in.Code,
		Name:        in.Name,
		ZoneType:    in.ZoneType,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.CreateZone(zone); err != nil {
		return nil, err
	}
	return toZoneResponse(zone), nil
}

// ListZones lista las zonas de una bodega.
func (uc *WarehouseUseCase) ListZones(warehouseID string) ([]dto.ZoneResponse, error) {
	if _, err := uc.repo.GetByID(warehouseID); err != nil {
		return nil, err
	}
	zones, err := uc.repo.ListZones(warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ZoneResponse, 0, len(zones))
	for _, z := range zones {
		out = append(out, *toZoneResponse(z))
	}
	return out, nil
}

// CreateLocation agrega una ubicación a una zona existente.
func (uc *WarehouseUseCase) CreateLocation(zoneID string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MaxCapacity < 0 {
		return nil, domain.ErrInvalidInput
	}
	location := &entity.Location{
		ID:          uuid.New().String(),
		ZoneID:      zoneID,
		Code:        in.Code,
		Label:       in.Label,
		MaxCapacity: in.MaxCapacity,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.CreateLocation(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// ListLocations lista las ubicaciones de una zona.
func (uc *WarehouseUseCase) ListLocations(zoneID string) ([]dto.LocationResponse, error) {
	locations, err := uc.repo.ListLocations(zoneID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, *toLocationResponse(l))
	}
	return out, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Code:      w.Code,
		Name:      w.Name,
		Address:   w.Address,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func toZoneResponse(z *entity.Zone) *dto.ZoneResponse {
	return &dto.ZoneResponse{
		ID:          z.ID,
		WarehouseID: z.WarehouseID,
		Code:        z.Code,
		Name:        z.Name,
		ZoneType:    z.ZoneType,
		CreatedAt:   z.CreatedAt,
	}
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:          l.ID,
		ZoneID:      l.ZoneID,
		Code:        l.Code,
		Label:       l.Label,
		MaxCapacity: l.MaxCapacity,
		IsActive:    l.IsActive,
		CreatedAt:   l.CreatedAt,
	}
}
