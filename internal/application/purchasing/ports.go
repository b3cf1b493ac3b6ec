package purchasing

import (
	"context"
	"time"

	"github.com/pesl98/erp/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La creación de órdenes, los cambios de
// estado y las recepciones de mercancía commitean o se revierten como una
// unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		poRepo repository.PurchaseOrderRepository,
		receiptRepo repository.GoodsReceiptRepository,
		seqRepo repository.SequenceRepository,
		levelRepo repository.StockLevelRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// StockReceiver es el único punto de entrada de compras al libro de
// inventario: acredita stock y registra el movimiento dentro de la
// transacción del llamador. Lo implementa el caso de uso del libro.
type StockReceiver interface {
	ReceiveInTx(
		levelRepo repository.StockLevelRepository,
		movRepo repository.StockMovementRepository,
		productID, locationID string,
		quantity int64,
		receiptID, userID string,
		now time.Time,
	) error
}
