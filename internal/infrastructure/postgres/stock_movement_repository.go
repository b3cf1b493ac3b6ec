package postgres

import (
	"context"
	"fmt"

	"github.com/pesl98/erp/internal/domain"
	"github.com/pesl98/erp/internal/domain/entity"
	"github.com/pesl98/erp/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)
var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

// StockMovementRepo implementación del puerto StockMovementRepository sobre
// PostgreSQL (usable con pool o tx). La bitácora es append-only: aquí no hay
// UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador de persistencia para movimientos. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento. Las ubicaciones vacías se guardan como NULL.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, movement_type, product_id, from_location_id, to_location_id, quantity, reference_type, reference_id, notes, performed_by, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.MovementType, movement.ProductID,
		movement.FromLocationID, movement.ToLocationID, movement.Quantity,
		movement.ReferenceType, movement.ReferenceID, movement.Notes,
		movement.PerformedBy, movement.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto, ubicación o usuario inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// List lista movimientos con filtros, más nuevo primero.
func (r *StockMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	ctx := context.Background()
	where := `WHERE ($1 = '' OR product_id = $1) AND ($2 = '' OR movement_type = $2)`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_movements `+where, filter.ProductID, filter.MovementType).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock movements: %w", err)
	}

	query := `
		SELECT id, movement_type, product_id, COALESCE(from_location_id, ''), COALESCE(to_location_id, ''), quantity, COALESCE(reference_type, ''), COALESCE(reference_id, ''), notes, performed_by, created_at
		FROM stock_movements ` + where + `
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, filter.ProductID, filter.MovementType, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.MovementType, &m.ProductID, &m.FromLocationID, &m.ToLocationID, &m.Quantity, &m.ReferenceType, &m.ReferenceID, &m.Notes, &m.PerformedBy, &m.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, total, rows.Err()
}

// StockAdjustmentRepo implementación del puerto StockAdjustmentRepository
// sobre PostgreSQL (usable con pool o tx). Append-only.
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador de persistencia para ajustes. Pasar pool o tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

// Create persiste un ajuste manual.
func (r *StockAdjustmentRepo) Create(adjustment *entity.StockAdjustment) error {
	query := `
		INSERT INTO stock_adjustments (id, product_id, location_id, adjustment_type, quantity_change, reason, adjusted_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		adjustment.ID, adjustment.ProductID, adjustment.LocationID,
		adjustment.AdjustmentType, adjustment.QuantityChange, adjustment.Reason,
		adjustment.AdjustedBy, adjustment.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto, ubicación o usuario inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert stock adjustment: %w", err)
	}
	return nil
}

// List lista ajustes, más nuevo primero.
func (r *StockAdjustmentRepo) List(limit, offset int) ([]*entity.StockAdjustment, int, error) {
	ctx := context.Background()

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_adjustments`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock adjustments: %w", err)
	}

	query := `
		SELECT id, product_id, location_id, adjustment_type, quantity_change, reason, adjusted_by, created_at
		FROM stock_adjustments ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock adjustments: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockAdjustment
	for rows.Next() {
		var a entity.StockAdjustment
		if err := rows.Scan(&a.ID, &a.ProductID, &a.LocationID, &a.AdjustmentType, &a.QuantityChange, &a.Reason, &a.AdjustedBy, &a.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan stock adjustment: %w", err)
		}
		out = append(out, &a)
	}
	return out, total, rows.Err()
}
