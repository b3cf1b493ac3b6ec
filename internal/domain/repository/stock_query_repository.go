package repository

import "github.com/shopspring/decimal"

// StockAggregateRow resultado crudo de la consulta de stock agregado por
// producto (suma sobre todas las ubicaciones). Lo produce la DB; el use
// case lo convierte en DTO.
type StockAggregateRow struct {
	ProductID     string
	ProductSKU    string
	ProductName   string
	TotalOnHand   int64
	TotalReserved int64
	ReorderPoint  int64
	CostPrice     *decimal.Decimal // nil si el costo no se conoce
}

// ReorderAlertRow producto activo por debajo de su punto de reorden.
type ReorderAlertRow struct {
	ProductID       string
	ProductSKU      string
	ProductName     string
	TotalOnHand     int64
	ReorderPoint    int64
	ReorderQuantity int64
	Deficit         int64 // reorder_point - total_on_hand
}

// StockValuation valorización total del inventario (solo productos con costo).
type StockValuation struct {
	TotalValue   decimal.Decimal
	ProductCount int64
	TotalUnits   int64
}

// StockQueryRepository define las consultas de lectura del libro de
// inventario (DIP). Las implementaciones son read-only.
type StockQueryRepository interface {
	// AggregatedStock suma on-hand y reservado por producto activo, con
	// búsqueda opcional por sku/nombre y paginación.
	AggregatedStock(search string, limit, offset int) ([]StockAggregateRow, int, error)
	// Valuation totaliza on_hand × cost_price sobre productos con costo.
	Valuation() (*StockValuation, error)
	// ReorderAlerts productos activos con reorder_point > 0 y
	// total_on_hand < reorder_point, ordenados por déficit descendente.
	ReorderAlerts() ([]ReorderAlertRow, error)
}
