package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIn         = "in"         // entrada (recepción de mercancía)
	MovementTypeOut        = "out"        // salida
	MovementTypeTransfer   = "transfer"   // traslado entre ubicaciones
	MovementTypeAdjustment = "adjustment" // ajuste manual
)

// Tipos de referencia de un movimiento (documento que lo originó).
const (
	ReferenceTypeAdjustment   = "adjustment"
	ReferenceTypeTransfer     = "transfer"
	ReferenceTypeGoodsReceipt = "goods_receipt"
)

// StockMovement registro de auditoría inmutable de un cambio de cantidad.
// Quantity es siempre la magnitud positiva; la dirección la codifican el
// tipo y las ubicaciones: transfer lleva ambas, un ajuste lleva una según
// el signo del cambio, una recepción solo lleva destino.
// Append-only: nunca se actualiza ni se borra.
type StockMovement struct {
	ID             string
	MovementType   string
	ProductID      string
	FromLocationID string // vacío si no aplica
	ToLocationID   string // vacío si no aplica
	Quantity       int64  // magnitud, > 0
	ReferenceType  string
	ReferenceID    string
	Notes          string
	PerformedBy    string
	CreatedAt      time.Time
}
