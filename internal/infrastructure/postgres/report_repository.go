package postgres

import (
	"context"
	"fmt"

	"github.com/pesl98/erp/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de lectura para el tablero sobre PostgreSQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// DashboardKPIs calcula los indicadores del tablero en una sola pasada por
// subconsultas: valor del inventario, órdenes pendientes (aún sin recibir
// nada), productos bajo punto de reorden y movimientos de hoy.
func (r *ReportRepo) DashboardKPIs() (*repository.DashboardKPIs, error) {
	query := `
		SELECT
			(SELECT COALESCE(SUM(sl.quantity_on_hand * p.cost_price), 0)
			 FROM stock_levels sl JOIN products p ON p.id = sl.product_id
			 WHERE p.cost_price IS NOT NULL),
			(SELECT count(*) FROM purchase_orders
			 WHERE status IN ('draft', 'pending_approval', 'approved', 'sent')),
			(SELECT count(*) FROM (
				SELECT p.id FROM products p
				LEFT JOIN stock_levels sl ON sl.product_id = p.id
				WHERE p.status = 'active' AND p.reorder_point > 0
				GROUP BY p.id, p.reorder_point
				HAVING COALESCE(SUM(sl.quantity_on_hand), 0) < p.reorder_point
			) low),
			(SELECT count(*) FROM stock_movements WHERE created_at >= date_trunc('day', now()))`
	var k repository.DashboardKPIs
	if err := r.q.QueryRow(context.Background(), query).Scan(
		&k.TotalStockValue, &k.PendingPOCount, &k.LowStockCount, &k.MovementsToday,
	); err != nil {
		return nil, fmt.Errorf("dashboard kpis: %w", err)
	}
	return &k, nil
}

// RecentActivity mezcla movimientos y recepciones, más nuevo primero.
func (r *ReportRepo) RecentActivity(limit int) ([]repository.ActivityRow, error) {
	query := `
		SELECT kind, id, description, product_id, quantity, performed_by, created_at FROM (
			SELECT 'movement' AS kind, m.id, m.movement_type AS description,
			       m.product_id, m.quantity, m.performed_by, m.created_at
			FROM stock_movements m
			UNION ALL
			SELECT 'goods_receipt' AS kind, gr.id, gr.receipt_number AS description,
			       '' AS product_id, 0 AS quantity, gr.received_by, gr.created_at
			FROM goods_receipts gr
		) activity
		ORDER BY created_at DESC
		LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	defer rows.Close()

	var out []repository.ActivityRow
	for rows.Next() {
		var row repository.ActivityRow
		if err := rows.Scan(&row.Kind, &row.ID, &row.Description, &row.ProductID, &row.Quantity, &row.PerformedBy, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
