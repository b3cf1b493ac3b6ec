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

var _ repository.VendorRepository = (*VendorRepo)(nil)

// VendorRepo implementación del puerto VendorRepository sobre PostgreSQL (usable con pool o tx).
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador de persistencia para proveedores. Pasar pool o tx (Querier).
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

const vendorColumns = `id, code, name, contact_name, email, phone, address, payment_terms, is_active, created_at, updated_at`

// Create persiste un nuevo proveedor.
func (r *VendorRepo) Create(vendor *entity.Vendor) error {
	query := `
		INSERT INTO vendors (id, code, name, contact_name, email, phone, address, payment_terms, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		vendor.ID, vendor.Code, vendor.Name, vendor.ContactName, vendor.Email,
		vendor.Phone, vendor.Address, vendor.PaymentTerms, vendor.IsActive,
		vendor.CreatedAt, vendor.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *VendorRepo) GetByID(id string) (*entity.Vendor, error) {
	return r.getOne(`SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id)
}

// GetByCode obtiene un proveedor por código.
func (r *VendorRepo) GetByCode(code string) (*entity.Vendor, error) {
	return r.getOne(`SELECT `+vendorColumns+` FROM vendors WHERE code = $1`, code)
}

func (r *VendorRepo) getOne(query, arg string) (*entity.Vendor, error) {
	var v entity.Vendor
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&v.ID, &v.Code, &v.Name, &v.ContactName, &v.Email, &v.Phone,
		&v.Address, &v.PaymentTerms, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return &v, nil
}

// Update actualiza un proveedor existente. El código no se toca.
func (r *VendorRepo) Update(vendor *entity.Vendor) error {
	query := `
		UPDATE vendors
		SET name = $2, contact_name = $3, email = $4, phone = $5, address = $6,
		    payment_terms = $7, is_active = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		vendor.ID, vendor.Name, vendor.ContactName, vendor.Email, vendor.Phone,
		vendor.Address, vendor.PaymentTerms, vendor.IsActive, vendor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vendor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista proveedores con búsqueda por código/nombre y paginación.
func (r *VendorRepo) List(search string, onlyActive bool, limit, offset int) ([]*entity.Vendor, int, error) {
	ctx := context.Background()
	where := `WHERE ($1 = '' OR code ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%')
		AND (NOT $2 OR is_active)`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM vendors `+where, search, onlyActive).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count vendors: %w", err)
	}

	query := `SELECT ` + vendorColumns + ` FROM vendors ` + where + ` ORDER BY code LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, search, onlyActive, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	var out []*entity.Vendor
	for rows.Next() {
		var v entity.Vendor
		if err := rows.Scan(&v.ID, &v.Code, &v.Name, &v.ContactName, &v.Email, &v.Phone, &v.Address, &v.PaymentTerms, &v.IsActive, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan vendor: %w", err)
		}
		out = append(out, &v)
	}
	return out, total, rows.Err()
}

// Delete borra un proveedor. Falla con ErrConflict si tiene órdenes (FK).
func (r *VendorRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete vendor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
