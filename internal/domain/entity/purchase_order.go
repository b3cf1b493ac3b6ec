package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pesl98/erp/internal/domain"
)

// Estados de una orden de compra.
const (
	POStatusDraft             = "draft"
	POStatusPendingApproval   = "pending_approval"
	POStatusApproved          = "approved"
	POStatusSent              = "sent"
	POStatusPartiallyReceived = "partially_received"
	POStatusReceived          = "received"
	POStatusCancelled         = "cancelled"
)

// validPOTransitions tabla de transiciones permitidas del ciclo de vida.
// received y cancelled son terminales. partially_received y received no se
// solicitan manualmente: los deriva la recepción de mercancía.
var validPOTransitions = map[string][]string{
	POStatusDraft:             {POStatusPendingApproval, POStatusCancelled},
	POStatusPendingApproval:   {POStatusApproved, POStatusDraft, POStatusCancelled},
	POStatusApproved:          {POStatusSent, POStatusCancelled},
	POStatusSent:              {POStatusPartiallyReceived, POStatusReceived, POStatusCancelled},
	POStatusPartiallyReceived: {POStatusReceived},
}

// PurchaseOrder orden de compra a un proveedor. Es dueña exclusiva de sus
// líneas y recepciones; las referencias a proveedor, productos y usuarios
// son solo por id.
type PurchaseOrder struct {
	ID                   string
	PONumber             string // PO-<año><secuencia de 4 dígitos>, único
	VendorID             string
	Status               string
	OrderDate            *time.Time
	ExpectedDeliveryDate *time.Time
	ShippingAddress      string
	Subtotal             decimal.Decimal
	TaxAmount            decimal.Decimal
	TotalAmount          decimal.Decimal
	Notes                string
	CreatedBy            string
	ApprovedBy           string
	ApprovedAt           *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time

	LineItems []POLineItem
	Receipts  []GoodsReceipt
}

// POLineItem línea de una orden de compra. QuantityReceived acumula lo
// recibido a través de todas las recepciones (puede superar lo ordenado:
// la sobre-recepción no se bloquea).
type POLineItem struct {
	ID               string
	PurchaseOrderID  string
	ProductID        string
	QuantityOrdered  int64
	QuantityReceived int64
	UnitPrice        decimal.Decimal
	SortOrder        int
	CreatedAt        time.Time
}

// CanTransition indica si la transición de estado está permitida por la tabla.
func (po *PurchaseOrder) CanTransition(to string) bool {
	for _, s := range validPOTransitions[po.Status] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition cambia el estado validando contra la tabla de transiciones.
// Retorna ErrInvalidTransition nombrando el estado actual y el solicitado.
func (po *PurchaseOrder) Transition(to string) error {
	if !po.CanTransition(to) {
		return fmt.Errorf("%w: de '%s' a '%s'", domain.ErrInvalidTransition, po.Status, to)
	}
	po.Status = to
	return nil
}

// RecomputeTotals recalcula subtotal y total desde las líneas:
// subtotal = Σ(cantidad × precio unitario); total = subtotal + impuesto.
// Solo tiene sentido mientras la orden está en draft.
func (po *PurchaseOrder) RecomputeTotals() {
	subtotal := decimal.Zero
	for _, li := range po.LineItems {
		subtotal = subtotal.Add(li.UnitPrice.Mul(decimal.NewFromInt(li.QuantityOrdered)))
	}
	po.Subtotal = subtotal
	po.TotalAmount = subtotal.Add(po.TaxAmount)
}

// AllReceived indica si toda línea tiene recibido >= ordenado.
// Con >= la sobre-recepción también completa la orden.
func (po *PurchaseOrder) AllReceived() bool {
	for _, li := range po.LineItems {
		if li.QuantityReceived < li.QuantityOrdered {
			return false
		}
	}
	return true
}

// IsTerminal indica si el estado actual es terminal.
func (po *PurchaseOrder) IsTerminal() bool {
	return po.Status == POStatusReceived || po.Status == POStatusCancelled
}
