package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// POLineItemRequest línea para crear/reemplazar en una orden de compra.
type POLineItemRequest struct {
	ProductID       string          `json:"product_id"`
	QuantityOrdered int64           `json:"quantity_ordered"` // > 0
	UnitPrice       decimal.Decimal `json:"unit_price"`       // >= 0
	SortOrder       int             `json:"sort_order,omitempty"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	VendorID             string             `json:"vendor_id"`
	OrderDate            *time.Time         `json:"order_date,omitempty"`
	ExpectedDeliveryDate *time.Time         `json:"expected_delivery_date,omitempty"`
	ShippingAddress      string             `json:"shipping_address,omitempty"`
	TaxAmount            decimal.Decimal    `json:"tax_amount"`
	Notes                string             `json:"notes,omitempty"`
	LineItems            []POLineItemRequest `json:"line_items"`
}

// UpdatePurchaseOrderRequest patch parcial; solo válido en draft.
// Si LineItems no es nil, reemplaza el juego completo de líneas.
type UpdatePurchaseOrderRequest struct {
	OrderDate            *time.Time           `json:"order_date,omitempty"`
	ExpectedDeliveryDate *time.Time           `json:"expected_delivery_date,omitempty"`
	ShippingAddress      *string              `json:"shipping_address,omitempty"`
	TaxAmount            *decimal.Decimal     `json:"tax_amount,omitempty"`
	Notes                *string              `json:"notes,omitempty"`
	LineItems            *[]POLineItemRequest `json:"line_items,omitempty"`
}

// POLineItemResponse línea en respuestas.
type POLineItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	QuantityOrdered  int64           `json:"quantity_ordered"`
	QuantityReceived int64           `json:"quantity_received"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	SortOrder        int             `json:"sort_order"`
}

// GoodsReceiptItemRequest línea de recepción: referencia una línea de la
// orden y la ubicación de destino.
type GoodsReceiptItemRequest struct {
	POLineItemID     string `json:"po_line_item_id"`
	ProductID        string `json:"product_id"`
	QuantityReceived int64  `json:"quantity_received"` // > 0
	LocationID       string `json:"location_id"`
}

// GoodsReceiptRequest body para POST /api/purchase-orders/:id/receipts.
type GoodsReceiptRequest struct {
	ReceivedDate time.Time                 `json:"received_date"`
	Notes        string                    `json:"notes,omitempty"`
	Items        []GoodsReceiptItemRequest `json:"items"`
}

// GoodsReceiptItemResponse línea de recepción en respuestas.
type GoodsReceiptItemResponse struct {
	ID               string    `json:"id"`
	POLineItemID     string    `json:"po_line_item_id"`
	ProductID        string    `json:"product_id"`
	QuantityReceived int64     `json:"quantity_received"`
	LocationID       string    `json:"location_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// GoodsReceiptResponse recepción en respuestas.
type GoodsReceiptResponse struct {
	ID              string                     `json:"id"`
	ReceiptNumber   string                     `json:"receipt_number"`
	PurchaseOrderID string                     `json:"purchase_order_id"`
	ReceivedDate    time.Time                  `json:"received_date"`
	Notes           string                     `json:"notes,omitempty"`
	ReceivedBy      string                     `json:"received_by"`
	CreatedAt       time.Time                  `json:"created_at"`
	Items           []GoodsReceiptItemResponse `json:"items"`
}

// PurchaseOrderResponse orden de compra con líneas y recepciones.
type PurchaseOrderResponse struct {
	ID                   string                 `json:"id"`
	PONumber             string                 `json:"po_number"`
	VendorID             string                 `json:"vendor_id"`
	Status               string                 `json:"status"`
	OrderDate            *time.Time             `json:"order_date,omitempty"`
	ExpectedDeliveryDate *time.Time             `json:"expected_delivery_date,omitempty"`
	ShippingAddress      string                 `json:"shipping_address,omitempty"`
	Subtotal             decimal.Decimal        `json:"subtotal"`
	TaxAmount            decimal.Decimal        `json:"tax_amount"`
	TotalAmount          decimal.Decimal        `json:"total_amount"`
	Notes                string                 `json:"notes,omitempty"`
	CreatedBy            string                 `json:"created_by"`
	ApprovedBy           string                 `json:"approved_by,omitempty"`
	ApprovedAt           *time.Time             `json:"approved_at,omitempty"`
	CreatedAt            time.Time              `json:"created_at"`
	UpdatedAt            time.Time              `json:"updated_at"`
	LineItems            []POLineItemResponse   `json:"line_items"`
	Receipts             []GoodsReceiptResponse `json:"receipts,omitempty"`
}

// PurchaseOrderListResponse página de órdenes de compra.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
