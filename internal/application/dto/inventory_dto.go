package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockAdjustmentRequest body para POST /api/inventory/adjustments.
type StockAdjustmentRequest struct {
	ProductID      string `json:"product_id"`
	LocationID     string `json:"location_id"`
	AdjustmentType string `json:"adjustment_type"` // count|damage|correction|write_off
	QuantityChange int64  `json:"quantity_change"` // con signo, != 0
	Reason         string `json:"reason"`          // obligatorio
}

// StockTransferRequest body para POST /api/inventory/transfers.
type StockTransferRequest struct {
	ProductID      string `json:"product_id"`
	FromLocationID string `json:"from_location_id"`
	ToLocationID   string `json:"to_location_id"`
	Quantity       int64  `json:"quantity"` // > 0
	Notes          string `json:"notes,omitempty"`
}

// StockAdjustmentResponse ajuste en respuestas.
type StockAdjustmentResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	LocationID     string    `json:"location_id"`
	AdjustmentType string    `json:"adjustment_type"`
	QuantityChange int64     `json:"quantity_change"`
	Reason         string    `json:"reason"`
	AdjustedBy     string    `json:"adjusted_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// StockMovementResponse movimiento en respuestas.
type StockMovementResponse struct {
	ID             string    `json:"id"`
	MovementType   string    `json:"movement_type"`
	ProductID      string    `json:"product_id"`
	FromLocationID string    `json:"from_location_id,omitempty"`
	ToLocationID   string    `json:"to_location_id,omitempty"`
	Quantity       int64     `json:"quantity"`
	ReferenceType  string    `json:"reference_type,omitempty"`
	ReferenceID    string    `json:"reference_id,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	PerformedBy    string    `json:"performed_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// StockLevelResponse fila de stock por (producto, ubicación).
type StockLevelResponse struct {
	ProductID        string    `json:"product_id"`
	LocationID       string    `json:"location_id"`
	QuantityOnHand   int64     `json:"quantity_on_hand"`
	QuantityReserved int64     `json:"quantity_reserved"`
	Available        int64     `json:"available"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// AggregatedStockItem stock agregado de un producto sobre todas las
// ubicaciones. StockValue es nil si el producto no tiene costo.
type AggregatedStockItem struct {
	ProductID      string           `json:"product_id"`
	ProductSKU     string           `json:"product_sku"`
	ProductName    string           `json:"product_name"`
	TotalOnHand    int64            `json:"total_on_hand"`
	TotalReserved  int64            `json:"total_reserved"`
	TotalAvailable int64            `json:"total_available"`
	ReorderPoint   int64            `json:"reorder_point"`
	CostPrice      *decimal.Decimal `json:"cost_price,omitempty"`
	StockValue     *decimal.Decimal `json:"stock_value,omitempty"`
}

// AggregatedStockResponse página de stock agregado.
type AggregatedStockResponse struct {
	Items []AggregatedStockItem `json:"items"`
	Page  PageResponse          `json:"page"`
}

// ReorderAlertItem producto por debajo de su punto de reorden.
type ReorderAlertItem struct {
	ProductID       string `json:"product_id"`
	ProductSKU      string `json:"product_sku"`
	ProductName     string `json:"product_name"`
	TotalOnHand     int64  `json:"total_on_hand"`
	ReorderPoint    int64  `json:"reorder_point"`
	ReorderQuantity int64  `json:"reorder_quantity"`
	Deficit         int64  `json:"deficit"`
}

// StockValuationResponse valorización total del inventario.
type StockValuationResponse struct {
	TotalValue   decimal.Decimal `json:"total_value"`
	ProductCount int64           `json:"product_count"`
	TotalUnits   int64           `json:"total_units"`
}
