package repository

import "github.com/pesl98/erp/internal/domain/entity"

// ProductFilter filtros para listados de productos.
type ProductFilter struct {
	Status     string // vacío = todos
	CategoryID string
	Search     string // busca en sku y nombre
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para productos (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(filter ProductFilter) ([]*entity.Product, int, error)
	Delete(id string) error
}

// CategoryRepository define el puerto de persistencia para categorías (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	Update(category *entity.Category) error
	List(limit, offset int) ([]*entity.Category, int, error)
	Delete(id string) error
}
