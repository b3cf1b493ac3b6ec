package repository

import "github.com/pesl98/erp/internal/domain/entity"

// MovementFilter filtros para el listado de movimientos.
type MovementFilter struct {
	ProductID    string
	MovementType string
	Limit        int
	Offset       int
}

// StockMovementRepository define el puerto de persistencia para la
// bitácora de movimientos (DIP). Append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	List(filter MovementFilter) ([]*entity.StockMovement, int, error)
}

// StockAdjustmentRepository define el puerto de persistencia para los
// ajustes manuales (DIP). Append-only.
type StockAdjustmentRepository interface {
	Create(adjustment *entity.StockAdjustment) error
	List(limit, offset int) ([]*entity.StockAdjustment, int, error)
}
