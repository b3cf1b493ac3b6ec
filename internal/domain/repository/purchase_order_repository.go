package repository

import "github.com/pesl98/erp/internal/domain/entity"

// POFilter filtros para listados de órdenes de compra.
type POFilter struct {
	Status   string
	VendorID string
	Limit    int
	Offset   int
}

// PurchaseOrderRepository define el puerto de persistencia para órdenes de
// compra y sus líneas (DIP). La orden es dueña de sus líneas: el borrado en
// draft casca a las líneas; después de draft nunca se borra.
type PurchaseOrderRepository interface {
	Create(po *entity.PurchaseOrder) error
	CreateLineItem(item *entity.POLineItem) error
	// GetByID devuelve solo la cabecera (sin líneas ni recepciones).
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetWithDetails devuelve la orden con líneas y recepciones cargadas.
	GetWithDetails(id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) en la transacción
	// actual; un solo escritor por orden a la vez.
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	Update(po *entity.PurchaseOrder) error
	UpdateStatus(id, status string) error
	DeleteLineItems(poID string) error
	ListLineItems(poID string) ([]*entity.POLineItem, error)
	// AddLineItemReceived incrementa el acumulado recibido de una línea.
	AddLineItemReceived(lineItemID string, quantity int64) error
	List(filter POFilter) ([]*entity.PurchaseOrder, int, error)
}

// GoodsReceiptRepository define el puerto de persistencia para recepciones
// de mercancía (DIP). Append-only una vez creadas.
type GoodsReceiptRepository interface {
	Create(receipt *entity.GoodsReceipt) error
	CreateItem(item *entity.GoodsReceiptItem) error
	GetByID(id string) (*entity.GoodsReceipt, error)
	ListByPurchaseOrder(poID string) ([]*entity.GoodsReceipt, error)
}
