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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, name, description, COALESCE(category_id, ''), unit_of_measure, COALESCE(barcode, ''), status, reorder_point, reorder_quantity, cost_price, created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, category_id, unit_of_measure, barcode, status, reorder_point, reorder_quantity, cost_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, NULLIF($7, ''), $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Description, product.CategoryID,
		product.UnitOfMeasure, product.Barcode, product.Status,
		product.ReorderPoint, product.ReorderQuantity, product.CostPrice,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

func (r *ProductRepo) getOne(query, arg string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.CategoryID, &p.UnitOfMeasure,
		&p.Barcode, &p.Status, &p.ReorderPoint, &p.ReorderQuantity, &p.CostPrice,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza un producto existente. El SKU no se toca.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, category_id = NULLIF($4, ''), unit_of_measure = $5,
		    barcode = NULLIF($6, ''), status = $7, reorder_point = $8, reorder_quantity = $9,
		    cost_price = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.CategoryID,
		product.UnitOfMeasure, product.Barcode, product.Status,
		product.ReorderPoint, product.ReorderQuantity, product.CostPrice, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con filtros y paginación.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, int, error) {
	ctx := context.Background()
	where := `WHERE ($1 = '' OR status = $1)
		AND ($2 = '' OR category_id = $2)
		AND ($3 = '' OR sku ILIKE '%' || $3 || '%' OR name ILIKE '%' || $3 || '%')`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products `+where, filter.Status, filter.CategoryID, filter.Search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products ` + where + `
		ORDER BY sku LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, filter.Status, filter.CategoryID, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.CategoryID, &p.UnitOfMeasure, &p.Barcode, &p.Status, &p.ReorderPoint, &p.ReorderQuantity, &p.CostPrice, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, &p)
	}
	return out, total, rows.Err()
}

// Delete borra un producto. Falla con ErrConflict si movimientos u órdenes
// lo referencian (FK).
func (r *ProductRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
