package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardKPIsResponse indicadores del tablero.
type DashboardKPIsResponse struct {
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	PendingPOCount  int64           `json:"pending_po_count"`
	LowStockCount   int64           `json:"low_stock_count"`
	MovementsToday  int64           `json:"movements_today"`
}

// ActivityEntry entrada del feed de actividad reciente.
type ActivityEntry struct {
	Kind        string    `json:"kind"` // movement | goods_receipt
	ID          string    `json:"id"`
	Description string    `json:"description"`
	ProductID   string    `json:"product_id,omitempty"`
	Quantity    int64     `json:"quantity,omitempty"`
	PerformedBy string    `json:"performed_by"`
	CreatedAt   time.Time `json:"created_at"`
}
