package repository

import "github.com/pesl98/erp/internal/domain/entity"

// VendorRepository define el puerto de persistencia para proveedores (DIP).
type VendorRepository interface {
	Create(vendor *entity.Vendor) error
	GetByID(id string) (*entity.Vendor, error)
	GetByCode(code string) (*entity.Vendor, error)
	Update(vendor *entity.Vendor) error
	List(search string, onlyActive bool, limit, offset int) ([]*entity.Vendor, int, error)
	Delete(id string) error
}
