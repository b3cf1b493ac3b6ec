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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de persistencia para órdenes de compra. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const poColumns = `id, po_number, vendor_id, status, order_date, expected_delivery_date, shipping_address, subtotal, tax_amount, total_amount, notes, created_by, COALESCE(approved_by, ''), approved_at, created_at, updated_at`

// Create persiste la cabecera de una orden. Un choque del número único se
// reporta como ErrTransientConflict para que el llamador reintente con otro.
func (r *PurchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, po_number, vendor_id, status, order_date, expected_delivery_date, shipping_address, subtotal, tax_amount, total_amount, notes, created_by, approved_by, approved_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULLIF($13, ''), $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		po.ID, po.PONumber, po.VendorID, po.Status, po.OrderDate, po.ExpectedDeliveryDate,
		po.ShippingAddress, po.Subtotal, po.TaxAmount, po.TotalAmount, po.Notes,
		po.CreatedBy, po.ApprovedBy, po.ApprovedAt, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("po_number '%s': %w", po.PONumber, domain.ErrTransientConflict)
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// CreateLineItem persiste una línea de la orden.
func (r *PurchaseOrderRepo) CreateLineItem(item *entity.POLineItem) error {
	query := `
		INSERT INTO po_line_items (id, purchase_order_id, product_id, quantity_ordered, quantity_received, unit_price, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.PurchaseOrderID, item.ProductID, item.QuantityOrdered,
		item.QuantityReceived, item.UnitPrice, item.SortOrder, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert po line item: %w", err)
	}
	return nil
}

// GetByID devuelve solo la cabecera.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.getHeader(id, "")
}

// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) en la transacción actual.
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.getHeader(id, " FOR UPDATE")
}

func (r *PurchaseOrderRepo) getHeader(id, suffix string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE id = $1` + suffix
	var po entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&po.ID, &po.PONumber, &po.VendorID, &po.Status, &po.OrderDate, &po.ExpectedDeliveryDate,
		&po.ShippingAddress, &po.Subtotal, &po.TaxAmount, &po.TotalAmount, &po.Notes,
		&po.CreatedBy, &po.ApprovedBy, &po.ApprovedAt, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("orden de compra '%s': %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return &po, nil
}

// GetWithDetails devuelve la orden con líneas y recepciones cargadas.
func (r *PurchaseOrderRepo) GetWithDetails(id string) (*entity.PurchaseOrder, error) {
	po, err := r.getHeader(id, "")
	if err != nil {
		return nil, err
	}
	items, err := r.ListLineItems(id)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		po.LineItems = append(po.LineItems, *it)
	}
	receipts, err := NewGoodsReceiptRepository(r.q).ListByPurchaseOrder(id)
	if err != nil {
		return nil, err
	}
	for _, gr := range receipts {
		po.Receipts = append(po.Receipts, *gr)
	}
	return po, nil
}

// Update actualiza cabecera completa (campos editables + estado + totales).
func (r *PurchaseOrderRepo) Update(po *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders
		SET status = $2, order_date = $3, expected_delivery_date = $4, shipping_address = $5,
		    subtotal = $6, tax_amount = $7, total_amount = $8, notes = $9,
		    approved_by = NULLIF($10, ''), approved_at = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		po.ID, po.Status, po.OrderDate, po.ExpectedDeliveryDate, po.ShippingAddress,
		po.Subtotal, po.TaxAmount, po.TotalAmount, po.Notes,
		po.ApprovedBy, po.ApprovedAt, po.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("orden de compra '%s': %w", po.ID, domain.ErrNotFound)
	}
	return nil
}

// UpdateStatus cambia solo el estado de la cabecera.
func (r *PurchaseOrderRepo) UpdateStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("orden de compra '%s': %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteLineItems borra todas las líneas de una orden (solo draft: el
// reemplazo completo del juego de líneas).
func (r *PurchaseOrderRepo) DeleteLineItems(poID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM po_line_items WHERE purchase_order_id = $1`, poID)
	if err != nil {
		return fmt.Errorf("delete po line items: %w", err)
	}
	return nil
}

const poLineColumns = `id, purchase_order_id, product_id, quantity_ordered, quantity_received, unit_price, sort_order, created_at`

// ListLineItems líneas de una orden en su orden de despliegue.
func (r *PurchaseOrderRepo) ListLineItems(poID string) ([]*entity.POLineItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+poLineColumns+` FROM po_line_items WHERE purchase_order_id = $1 ORDER BY sort_order, created_at`, poID)
	if err != nil {
		return nil, fmt.Errorf("list po line items: %w", err)
	}
	defer rows.Close()

	var out []*entity.POLineItem
	for rows.Next() {
		var li entity.POLineItem
		if err := rows.Scan(&li.ID, &li.PurchaseOrderID, &li.ProductID, &li.QuantityOrdered, &li.QuantityReceived, &li.UnitPrice, &li.SortOrder, &li.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan po line item: %w", err)
		}
		out = append(out, &li)
	}
	return out, rows.Err()
}

// AddLineItemReceived incrementa el acumulado recibido de una línea.
func (r *PurchaseOrderRepo) AddLineItemReceived(lineItemID string, quantity int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE po_line_items SET quantity_received = quantity_received + $2 WHERE id = $1`,
		lineItemID, quantity,
	)
	if err != nil {
		return fmt.Errorf("add line item received: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("línea de orden '%s': %w", lineItemID, domain.ErrNotFound)
	}
	return nil
}

// List lista órdenes filtrando por estado y proveedor, más nueva primero.
func (r *PurchaseOrderRepo) List(filter repository.POFilter) ([]*entity.PurchaseOrder, int, error) {
	ctx := context.Background()
	where := `WHERE ($1 = '' OR status = $1) AND ($2 = '' OR vendor_id = $2)`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM purchase_orders `+where, filter.Status, filter.VendorID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchase orders: %w", err)
	}

	query := `SELECT ` + poColumns + ` FROM purchase_orders ` + where + `
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, filter.Status, filter.VendorID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseOrder
	for rows.Next() {
		var po entity.PurchaseOrder
		if err := rows.Scan(&po.ID, &po.PONumber, &po.VendorID, &po.Status, &po.OrderDate, &po.ExpectedDeliveryDate, &po.ShippingAddress, &po.Subtotal, &po.TaxAmount, &po.TotalAmount, &po.Notes, &po.CreatedBy, &po.ApprovedBy, &po.ApprovedAt, &po.CreatedAt, &po.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan purchase order: %w", err)
		}
		out = append(out, &po)
	}
	return out, total, rows.Err()
}
