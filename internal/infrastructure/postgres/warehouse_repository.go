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

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre
// PostgreSQL (usable con pool o tx). Cubre la jerarquía completa
// bodega → zona → ubicación.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

const warehouseColumns = `id, code, name, address, is_active, created_at, updated_at`

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, code, name, address, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		warehouse.ID, warehouse.Code, warehouse.Name, warehouse.Address,
		warehouse.IsActive, warehouse.CreatedAt, warehouse.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.getOne(`SELECT `+warehouseColumns+` FROM warehouses WHERE id = $1`, id)
}

// GetByCode obtiene una bodega por código.
func (r *WarehouseRepo) GetByCode(code string) (*entity.Warehouse, error) {
	return r.getOne(`SELECT `+warehouseColumns+` FROM warehouses WHERE code = $1`, code)
}

func (r *WarehouseRepo) getOne(query, arg string) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&w.ID, &w.Code, &w.Name, &w.Address, &w.IsActive, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// Update actualiza una bodega. El código no se toca.
func (r *WarehouseRepo) Update(warehouse *entity.Warehouse) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE warehouses SET name = $2, address = $3, is_active = $4, updated_at = $5 WHERE id = $1`,
		warehouse.ID, warehouse.Name, warehouse.Address, warehouse.IsActive, warehouse.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista bodegas por código con paginación.
func (r *WarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, int, error) {
	ctx := context.Background()

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM warehouses`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count warehouses: %w", err)
	}

	rows, err := r.q.Query(ctx,
		`SELECT `+warehouseColumns+` FROM warehouses ORDER BY code LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	var out []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Code, &w.Name, &w.Address, &w.IsActive, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan warehouse: %w", err)
		}
		out = append(out, &w)
	}
	return out, total, rows.Err()
}

// Delete borra una bodega; las zonas y ubicaciones cascan. Falla con
// ErrConflict si alguna ubicación tiene stock o movimientos (FK).
func (r *WarehouseRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete warehouse: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateZone persiste una zona de bodega.
func (r *WarehouseRepo) CreateZone(zone *entity.Zone) error {
	query := `
		INSERT INTO warehouse_zones (id, warehouse_id, code, name, zone_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		zone.ID, zone.WarehouseID, zone.Code, zone.Name, zone.ZoneType, zone.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert zone: %w", err)
	}
	return nil
}

// ListZones zonas de una bodega por código.
func (r *WarehouseRepo) ListZones(warehouseID string) ([]*entity.Zone, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, warehouse_id, code, name, zone_type, created_at
		 FROM warehouse_zones WHERE warehouse_id = $1 ORDER BY code`, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	defer rows.Close()

	var out []*entity.Zone
	for rows.Next() {
		var z entity.Zone
		if err := rows.Scan(&z.ID, &z.WarehouseID, &z.Code, &z.Name, &z.ZoneType, &z.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		out = append(out, &z)
	}
	return out, rows.Err()
}

// CreateLocation persiste una ubicación. Falla con ErrNotFound si la zona no existe (FK).
func (r *WarehouseRepo) CreateLocation(location *entity.Location) error {
	query := `
		INSERT INTO stock_locations (id, zone_id, code, label, max_capacity, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.ZoneID, location.Code, location.Label,
		location.MaxCapacity, location.IsActive, location.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetLocationByID obtiene una ubicación por ID.
func (r *WarehouseRepo) GetLocationByID(id string) (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(context.Background(),
		`SELECT id, zone_id, code, label, max_capacity, is_active, created_at
		 FROM stock_locations WHERE id = $1`, id).Scan(
		&l.ID, &l.ZoneID, &l.Code, &l.Label, &l.MaxCapacity, &l.IsActive, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// ListLocations ubicaciones de una zona por código.
func (r *WarehouseRepo) ListLocations(zoneID string) ([]*entity.Location, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, zone_id, code, label, max_capacity, is_active, created_at
		 FROM stock_locations WHERE zone_id = $1 ORDER BY code`, zoneID)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var out []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.ZoneID, &l.Code, &l.Label, &l.MaxCapacity, &l.IsActive, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
