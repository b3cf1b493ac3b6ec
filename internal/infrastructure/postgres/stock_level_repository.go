package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pesl98/erp/internal/domain"
	"github.com/pesl98/erp/internal/domain/entity"
	"github.com/pesl98/erp/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación del puerto StockLevelRepository sobre PostgreSQL (usable con pool o tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador de persistencia para stock. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

const stockLevelColumns = `id, product_id, location_id, quantity_on_hand, quantity_reserved, updated_at`

// GetForUpdate devuelve la fila del par (producto, ubicación) bloqueada con
// SELECT ... FOR UPDATE hasta el fin de la transacción actual. Una fila
// inexistente no se puede bloquear, así que el primer uso de un par la crea
// en cero y vuelve a seleccionarla: dos transacciones que estrenan el mismo
// par serializan sobre la fila que una de las dos insertó. Solo tiene
// sentido llamarlo dentro de una transacción.
func (r *StockLevelRepo) GetForUpdate(productID, locationID string) (*entity.StockLevel, error) {
	ctx := context.Background()
	selectQuery := `SELECT ` + stockLevelColumns + ` FROM stock_levels WHERE product_id = $1 AND location_id = $2 FOR UPDATE`
	insertQuery := `
		INSERT INTO stock_levels (id, product_id, location_id, quantity_on_hand, quantity_reserved, updated_at)
		VALUES (gen_random_uuid()::text, $1, $2, 0, 0, now())
		ON CONFLICT (product_id, location_id) DO NOTHING`
	for {
		var s entity.StockLevel
		err := r.q.QueryRow(ctx, selectQuery, productID, locationID).Scan(
			&s.ID, &s.ProductID, &s.LocationID, &s.QuantityOnHand, &s.QuantityReserved, &s.UpdatedAt,
		)
		if err == nil {
			return &s, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get stock level: %w", err)
		}
		// DO NOTHING deja ganar a un solo insertador; el que pierde espera al
		// ganador y en la siguiente vuelta bloquea la fila ya creada.
		if _, err := r.q.Exec(ctx, insertQuery, productID, locationID); err != nil {
			if isForeignKeyViolation(err) {
				return nil, fmt.Errorf("%w: producto o ubicación inexistente", domain.ErrInvalidInput)
			}
			return nil, fmt.Errorf("create stock level: %w", err)
		}
	}
}

// Upsert persiste la fila del par. Los escritores pasan antes por
// GetForUpdate, que garantiza que la fila existe y está bloqueada, así que
// el conflicto del índice único aquí solo absorbe el caso de una fila recién
// creada por el propio GetForUpdate. El CHECK de la tabla rechaza cantidades
// negativas aunque el llamador se salte la validación.
func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (id, product_id, location_id, quantity_on_hand, quantity_reserved, updated_at)
		VALUES (COALESCE(NULLIF($1, ''), gen_random_uuid()::text), $2, $3, $4, $5, $6)
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity_on_hand = EXCLUDED.quantity_on_hand,
		              quantity_reserved = EXCLUDED.quantity_reserved,
		              updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		level.ID, level.ProductID, level.LocationID,
		level.QuantityOnHand, level.QuantityReserved, level.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto o ubicación inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// ListByProduct filas de stock de un producto en todas las ubicaciones;
// productID vacío lista todas las filas.
func (r *StockLevelRepo) ListByProduct(productID string) ([]*entity.StockLevel, error) {
	query := `SELECT ` + stockLevelColumns + ` FROM stock_levels
		WHERE ($1 = '' OR product_id = $1)
		ORDER BY product_id, location_id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockLevel
	for rows.Next() {
		var s entity.StockLevel
		if err := rows.Scan(&s.ID, &s.ProductID, &s.LocationID, &s.QuantityOnHand, &s.QuantityReserved, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
