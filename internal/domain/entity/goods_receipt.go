package entity

import "time"

// GoodsReceipt registro de una recepción de mercancía contra una orden de
// compra (posiblemente parcial). Una vez creada es append-only.
type GoodsReceipt struct {
	ID              string
	ReceiptNumber   string // GR-<año><secuencia de 4 dígitos>, único
	PurchaseOrderID string
	ReceivedDate    time.Time
	Notes           string
	ReceivedBy      string
	CreatedAt       time.Time

	Items []GoodsReceiptItem
}

// GoodsReceiptItem línea de una recepción: referencia la línea de la orden
// (po_line_item) y la ubicación de destino. Referencia — no posee — el
// StockMovement que dispara en el libro de inventario.
type GoodsReceiptItem struct {
	ID               string
	GoodsReceiptID   string
	POLineItemID     string
	ProductID        string
	QuantityReceived int64 // > 0
	LocationID       string
	CreatedAt        time.Time
}
