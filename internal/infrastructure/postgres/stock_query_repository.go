package postgres

import (
	"context"
	"fmt"

	"github.com/pesl98/erp/internal/domain/repository"
)

var _ repository.StockQueryRepository = (*StockQueryRepo)(nil)

// StockQueryRepo consultas de lectura del libro de inventario sobre
// PostgreSQL. Solo SELECT; las agregaciones viven en SQL, no en Go.
type StockQueryRepo struct {
	q Querier
}

// NewStockQueryRepository construye el adaptador de consultas de stock.
func NewStockQueryRepository(q Querier) *StockQueryRepo {
	return &StockQueryRepo{q: q}
}

// AggregatedStock suma on-hand y reservado por producto activo, con búsqueda
// por sku/nombre y paginación. Productos sin filas de stock salen en cero.
func (r *StockQueryRepo) AggregatedStock(search string, limit, offset int) ([]repository.StockAggregateRow, int, error) {
	ctx := context.Background()
	where := `WHERE p.status = 'active' AND ($1 = '' OR p.sku ILIKE '%' || $1 || '%' OR p.name ILIKE '%' || $1 || '%')`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products p `+where, search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count aggregated stock: %w", err)
	}

	query := `
		SELECT p.id, p.sku, p.name,
		       COALESCE(SUM(sl.quantity_on_hand), 0),
		       COALESCE(SUM(sl.quantity_reserved), 0),
		       p.reorder_point, p.cost_price
		FROM products p
		LEFT JOIN stock_levels sl ON sl.product_id = p.id
		` + where + `
		GROUP BY p.id, p.sku, p.name, p.reorder_point, p.cost_price
		ORDER BY p.sku
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("aggregated stock: %w", err)
	}
	defer rows.Close()

	var out []repository.StockAggregateRow
	for rows.Next() {
		var row repository.StockAggregateRow
		if err := rows.Scan(&row.ProductID, &row.ProductSKU, &row.ProductName, &row.TotalOnHand, &row.TotalReserved, &row.ReorderPoint, &row.CostPrice); err != nil {
			return nil, 0, fmt.Errorf("scan aggregated stock: %w", err)
		}
		out = append(out, row)
	}
	return out, total, rows.Err()
}

// Valuation totaliza on_hand × cost_price sobre productos con costo conocido.
func (r *StockQueryRepo) Valuation() (*repository.StockValuation, error) {
	query := `
		SELECT COALESCE(SUM(sl.quantity_on_hand * p.cost_price), 0),
		       COALESCE(COUNT(DISTINCT p.id), 0),
		       COALESCE(SUM(sl.quantity_on_hand), 0)
		FROM stock_levels sl
		JOIN products p ON p.id = sl.product_id
		WHERE p.cost_price IS NOT NULL`
	var v repository.StockValuation
	if err := r.q.QueryRow(context.Background(), query).Scan(&v.TotalValue, &v.ProductCount, &v.TotalUnits); err != nil {
		return nil, fmt.Errorf("stock valuation: %w", err)
	}
	return &v, nil
}

// ReorderAlerts productos activos con reorder_point > 0 cuyo total en mano
// está por debajo del punto de reorden, mayor déficit primero.
func (r *StockQueryRepo) ReorderAlerts() ([]repository.ReorderAlertRow, error) {
	query := `
		SELECT p.id, p.sku, p.name,
		       COALESCE(SUM(sl.quantity_on_hand), 0) AS total_on_hand,
		       p.reorder_point, p.reorder_quantity,
		       p.reorder_point - COALESCE(SUM(sl.quantity_on_hand), 0) AS deficit
		FROM products p
		LEFT JOIN stock_levels sl ON sl.product_id = p.id
		WHERE p.status = 'active' AND p.reorder_point > 0
		GROUP BY p.id, p.sku, p.name, p.reorder_point, p.reorder_quantity
		HAVING COALESCE(SUM(sl.quantity_on_hand), 0) < p.reorder_point
		ORDER BY deficit DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("reorder alerts: %w", err)
	}
	defer rows.Close()

	var out []repository.ReorderAlertRow
	for rows.Next() {
		var row repository.ReorderAlertRow
		if err := rows.Scan(&row.ProductID, &row.ProductSKU, &row.ProductName, &row.TotalOnHand, &row.ReorderPoint, &row.ReorderQuantity, &row.Deficit); err != nil {
			return nil, fmt.Errorf("scan reorder alert: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
