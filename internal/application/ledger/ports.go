package ledger

import (
	"context"

	"github.com/pesl98/erp/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de
// inventario: o toda la operación (stock + ajuste + movimiento) commitea,
// o nada queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		levelRepo repository.StockLevelRepository,
		movRepo repository.StockMovementRepository,
		adjRepo repository.StockAdjustmentRepository,
	) error) error
}
