package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardKPIs indicadores del tablero: valor total del inventario,
// órdenes de compra abiertas, productos bajo punto de reorden y
// movimientos del día.
type DashboardKPIs struct {
	TotalStockValue decimal.Decimal
	PendingPOCount  int64
	LowStockCount   int64
	MovementsToday  int64
}

// ActivityRow entrada del feed de actividad reciente (movimientos y
// recepciones mezclados, más nuevo primero).
type ActivityRow struct {
	Kind        string // "movement" | "goods_receipt"
	ID          string
	Description string
	ProductID   string
	Quantity    int64
	PerformedBy string
	CreatedAt   time.Time
}

// ReportRepository define las consultas de lectura para reportes (DIP).
// Read-only: consumidor del estado del libro, sin lógica de negocio propia.
type ReportRepository interface {
	DashboardKPIs() (*DashboardKPIs, error)
	RecentActivity(limit int) ([]ActivityRow, error)
}
