package repository

import "github.com/pesl98/erp/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para la jerarquía
// bodega → zona → ubicación (DIP). La bodega es dueña de sus zonas y
// ubicaciones (borrado en cascada).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	GetByCode(code string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	List(limit, offset int) ([]*entity.Warehouse, int, error)
	Delete(id string) error

	CreateZone(zone *entity.Zone) error
	ListZones(warehouseID string) ([]*entity.Zone, error)

	CreateLocation(location *entity.Location) error
	GetLocationByID(id string) (*entity.Location, error)
	ListLocations(zoneID string) ([]*entity.Location, error)
}
