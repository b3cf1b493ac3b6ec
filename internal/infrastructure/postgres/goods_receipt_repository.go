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

var _ repository.GoodsReceiptRepository = (*GoodsReceiptRepo)(nil)

// GoodsReceiptRepo implementación del puerto GoodsReceiptRepository sobre
// PostgreSQL (usable con pool o tx). Las recepciones son append-only.
type GoodsReceiptRepo struct {
	q Querier
}

// NewGoodsReceiptRepository construye el adaptador de persistencia para recepciones. Pasar pool o tx (Querier).
func NewGoodsReceiptRepository(q Querier) *GoodsReceiptRepo {
	return &GoodsReceiptRepo{q: q}
}

const receiptColumns = `id, receipt_number, purchase_order_id, received_date, notes, received_by, created_at`

// Create persiste la cabecera de una recepción.
func (r *GoodsReceiptRepo) Create(receipt *entity.GoodsReceipt) error {
	query := `
		INSERT INTO goods_receipts (id, receipt_number, purchase_order_id, received_date, notes, received_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.ReceiptNumber, receipt.PurchaseOrderID,
		receipt.ReceivedDate, receipt.Notes, receipt.ReceivedBy, receipt.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("receipt_number '%s': %w", receipt.ReceiptNumber, domain.ErrTransientConflict)
		}
		return fmt.Errorf("insert goods receipt: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de recepción.
func (r *GoodsReceiptRepo) CreateItem(item *entity.GoodsReceiptItem) error {
	query := `
		INSERT INTO goods_receipt_items (id, goods_receipt_id, po_line_item_id, product_id, quantity_received, location_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.GoodsReceiptID, item.POLineItemID, item.ProductID,
		item.QuantityReceived, item.LocationID, item.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: ubicación '%s' inexistente", domain.ErrInvalidInput, item.LocationID)
		}
		return fmt.Errorf("insert goods receipt item: %w", err)
	}
	return nil
}

// GetByID devuelve la recepción con sus líneas.
func (r *GoodsReceiptRepo) GetByID(id string) (*entity.GoodsReceipt, error) {
	var gr entity.GoodsReceipt
	err := r.q.QueryRow(context.Background(),
		`SELECT `+receiptColumns+` FROM goods_receipts WHERE id = $1`, id).Scan(
		&gr.ID, &gr.ReceiptNumber, &gr.PurchaseOrderID, &gr.ReceivedDate, &gr.Notes, &gr.ReceivedBy, &gr.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("recepción '%s': %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get goods receipt: %w", err)
	}
	items, err := r.listItems(gr.ID)
	if err != nil {
		return nil, err
	}
	gr.Items = items
	return &gr, nil
}

// ListByPurchaseOrder recepciones de una orden con sus líneas, más nueva primero.
func (r *GoodsReceiptRepo) ListByPurchaseOrder(poID string) ([]*entity.GoodsReceipt, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+receiptColumns+` FROM goods_receipts WHERE purchase_order_id = $1 ORDER BY created_at DESC`, poID)
	if err != nil {
		return nil, fmt.Errorf("list goods receipts: %w", err)
	}
	receipts, err := scanReceipts(rows)
	if err != nil {
		return nil, err
	}
	for _, gr := range receipts {
		items, err := r.listItems(gr.ID)
		if err != nil {
			return nil, err
		}
		gr.Items = items
	}
	return receipts, nil
}

func (r *GoodsReceiptRepo) listItems(receiptID string) ([]entity.GoodsReceiptItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, goods_receipt_id, po_line_item_id, product_id, quantity_received, location_id, created_at
		 FROM goods_receipt_items WHERE goods_receipt_id = $1 ORDER BY created_at`, receiptID)
	if err != nil {
		return nil, fmt.Errorf("list goods receipt items: %w", err)
	}
	defer rows.Close()

	var out []entity.GoodsReceiptItem
	for rows.Next() {
		var it entity.GoodsReceiptItem
		if err := rows.Scan(&it.ID, &it.GoodsReceiptID, &it.POLineItemID, &it.ProductID, &it.QuantityReceived, &it.LocationID, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan goods receipt item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func scanReceipts(rows pgx.Rows) ([]*entity.GoodsReceipt, error) {
	defer rows.Close()
	var out []*entity.GoodsReceipt
	for rows.Next() {
		var gr entity.GoodsReceipt
		if err := rows.Scan(&gr.ID, &gr.ReceiptNumber, &gr.PurchaseOrderID, &gr.ReceivedDate, &gr.Notes, &gr.ReceivedBy, &gr.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan goods receipt: %w", err)
		}
		out = append(out, &gr)
	}
	return out, rows.Err()
}
