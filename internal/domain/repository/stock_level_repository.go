package repository

import "github.com/pesl98/erp/internal/domain/entity"

// StockLevelRepository define el puerto de persistencia para el stock
// materializado por (producto, ubicación) (DIP).
type StockLevelRepository interface {
	// GetForUpdate devuelve la fila del par bloqueada (SELECT FOR UPDATE)
	// dentro de la transacción actual, creándola en cero si no existe. Las
	// operaciones concurrentes sobre el mismo par serializan aquí.
	GetForUpdate(productID, locationID string) (*entity.StockLevel, error)
	// Upsert inserta o actualiza la fila del par.
	Upsert(level *entity.StockLevel) error
	// ListByProduct filas de stock de un producto en todas las ubicaciones;
	// productID vacío lista todas las filas.
	ListByProduct(productID string) ([]*entity.StockLevel, error)
}
