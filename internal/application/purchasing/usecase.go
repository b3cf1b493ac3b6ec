package purchasing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pesl98/erp/internal/application/dto"
	"github.com/pesl98/erp/internal/domain"
	"github.com/pesl98/erp/internal/domain/entity"
	"github.com/pesl98/erp/internal/domain/repository"
)

// maxNumberRetries reintentos ante choque del número de documento. Con la
// secuencia atómica no debería pasar; el tope evita un loop si la BD trae
// datos numerados a mano.
const maxNumberRetries = 3

// UseCase ciclo de vida de órdenes de compra: creación en draft, máquina de
// estados hasta sent, y recepción de mercancía que acredita el libro de
// inventario vía StockReceiver. Los totales solo se recalculan en draft.
type UseCase struct {
	txRunner    TxRunner
	poRepo      repository.PurchaseOrderRepository // lectura fuera de tx
	receiptRepo repository.GoodsReceiptRepository  // lectura fuera de tx
	vendorRepo  repository.VendorRepository
	productRepo repository.ProductRepository
	receiver    StockReceiver
}

// NewUseCase construye el caso de uso de compras.
func NewUseCase(
	txRunner TxRunner,
	poRepo repository.PurchaseOrderRepository,
	receiptRepo repository.GoodsReceiptRepository,
	vendorRepo repository.VendorRepository,
	productRepo repository.ProductRepository,
	receiver StockReceiver,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		poRepo:      poRepo,
		receiptRepo: receiptRepo,
		vendorRepo:  vendorRepo,
		productRepo: productRepo,
		receiver:    receiver,
	}
}

// Create crea una orden en draft con sus líneas. Valida proveedor activo y
// productos existentes, calcula totales desde las líneas y asigna el número
// PO-<año><secuencia> dentro de la misma transacción que el insert.
func (uc *UseCase) Create(ctx context.Context, userID string, req dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if req.VendorID == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	vendor, err := uc.vendorRepo.GetByID(req.VendorID)
	if err != nil {
		return nil, fmt.Errorf("proveedor '%s': %w", req.VendorID, err)
	}
	if !vendor.IsActive {
		return nil, fmt.Errorf("%w: el proveedor '%s' está inactivo", domain.ErrInvalidInput, vendor.Code)
	}
	if req.TaxAmount.IsNegative() {
		return nil, fmt.Errorf("%w: el impuesto no puede ser negativo", domain.ErrInvalidInput)
	}
	lines, err := uc.buildLineItems(req.LineItems)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:                   uuid.New().String(),
		VendorID:             req.VendorID,
		Status:               entity.POStatusDraft,
		OrderDate:            req.OrderDate,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		ShippingAddress:      req.ShippingAddress,
		TaxAmount:            req.TaxAmount,
		Notes:                req.Notes,
		CreatedBy:            userID,
		CreatedAt:            now,
		UpdatedAt:            now,
		LineItems:            lines,
	}
	po.RecomputeTotals()

	for attempt := 0; ; attempt++ {
		err = uc.txRunner.Run(ctx, func(
			poRepo repository.PurchaseOrderRepository,
			_ repository.GoodsReceiptRepository,
			seqRepo repository.SequenceRepository,
			_ repository.StockLevelRepository,
			_ repository.StockMovementRepository,
		) error {
			seq, err := seqRepo.Next(repository.DocTypePurchaseOrder, now.Year())
			if err != nil {
				return err
			}
			po.PONumber = formatDocNumber(repository.DocTypePurchaseOrder, now.Year(), seq)
			if err := poRepo.Create(po); err != nil {
				return err
			}
			for i := range po.LineItems {
				po.LineItems[i].PurchaseOrderID = po.ID
				if err := poRepo.CreateLineItem(&po.LineItems[i]); err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrTransientConflict) && attempt < maxNumberRetries-1 {
			continue
		}
		return nil, err
	}
	return toPurchaseOrderResponse(po), nil
}

// Update aplica un patch parcial a una orden; solo se permite en draft.
// Si el patch trae líneas, reemplaza el juego completo y recalcula totales.
func (uc *UseCase) Update(ctx context.Context, id string, req dto.UpdatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	var newLines []entity.POLineItem
	if req.LineItems != nil {
		var err error
		newLines, err = uc.buildLineItems(*req.LineItems)
		if err != nil {
			return nil, err
		}
	}

	var updated *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(
		poRepo repository.PurchaseOrderRepository,
		_ repository.GoodsReceiptRepository,
		_ repository.SequenceRepository,
		_ repository.StockLevelRepository,
		_ repository.StockMovementRepository,
	) error {
		po, err := poRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if po.Status != entity.POStatusDraft {
			return fmt.Errorf("%w: solo una orden en draft se puede editar (estado actual '%s')", domain.ErrInvalidState, po.Status)
		}
		if req.OrderDate != nil {
			po.OrderDate = req.OrderDate
		}
		if req.ExpectedDeliveryDate != nil {
			po.ExpectedDeliveryDate = req.ExpectedDeliveryDate
		}
		if req.ShippingAddress != nil {
			po.ShippingAddress = *req.ShippingAddress
		}
		if req.TaxAmount != nil {
			if req.TaxAmount.IsNegative() {
				return fmt.Errorf("%w: el impuesto no puede ser negativo", domain.ErrInvalidInput)
			}
			po.TaxAmount = *req.TaxAmount
		}
		if req.Notes != nil {
			po.Notes = *req.Notes
		}
		if req.LineItems != nil {
			if err := poRepo.DeleteLineItems(po.ID); err != nil {
				return err
			}
			po.LineItems = newLines
			for i := range po.LineItems {
				po.LineItems[i].PurchaseOrderID = po.ID
				if err := poRepo.CreateLineItem(&po.LineItems[i]); err != nil {
					return err
				}
			}
		} else {
			items, err := poRepo.ListLineItems(po.ID)
			if err != nil {
				return err
			}
			po.LineItems = derefLineItems(items)
		}
		po.RecomputeTotals()
		po.UpdatedAt = time.Now()
		if err := poRepo.Update(po); err != nil {
			return err
		}
		updated = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(updated), nil
}

// Submit manda la orden a aprobación (draft → pending_approval). Exige al
// menos una línea: una orden vacía no tiene nada que aprobar.
func (uc *UseCase) Submit(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	return uc.transition(ctx, id, entity.POStatusPendingApproval, func(po *entity.PurchaseOrder) error {
		if len(po.LineItems) == 0 {
			return fmt.Errorf("%w: la orden no tiene líneas", domain.ErrInvalidState)
		}
		return nil
	})
}

// Approve aprueba la orden (pending_approval → approved) y registra quién
// y cuándo.
func (uc *UseCase) Approve(ctx context.Context, id, approverID string) (*dto.PurchaseOrderResponse, error) {
	if approverID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.transition(ctx, id, entity.POStatusApproved, func(po *entity.PurchaseOrder) error {
		now := time.Now()
		po.ApprovedBy = approverID
		po.ApprovedAt = &now
		return nil
	})
}

// Reject devuelve la orden a draft (pending_approval → draft) para
// corregirla y volverla a mandar.
func (uc *UseCase) Reject(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	return uc.transition(ctx, id, entity.POStatusDraft, func(po *entity.PurchaseOrder) error {
		po.ApprovedBy = ""
		po.ApprovedAt = nil
		return nil
	})
}

// Send marca la orden como enviada al proveedor (approved → sent). A partir
// de aquí puede recibir mercancía.
func (uc *UseCase) Send(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	return uc.transition(ctx, id, entity.POStatusSent, nil)
}

// Cancel cancela la orden. Una orden received ya movió inventario y no se
// puede cancelar (ErrInvalidState); el resto lo decide la tabla de
// transiciones.
func (uc *UseCase) Cancel(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	return uc.transition(ctx, id, entity.POStatusCancelled, func(po *entity.PurchaseOrder) error {
		if po.Status == entity.POStatusReceived {
			return fmt.Errorf("%w: no se puede cancelar una orden ya recibida", domain.ErrInvalidState)
		}
		return nil
	})
}

// transition bloquea la cabecera, corre el hook (validaciones y mutaciones
// propias de la operación), valida el cambio contra la tabla de transiciones
// y persiste.
func (uc *UseCase) transition(ctx context.Context, id, to string, hook func(*entity.PurchaseOrder) error) (*dto.PurchaseOrderResponse, error) {
	var updated *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(
		poRepo repository.PurchaseOrderRepository,
		_ repository.GoodsReceiptRepository,
		_ repository.SequenceRepository,
		_ repository.StockLevelRepository,
		_ repository.StockMovementRepository,
	) error {
		po, err := poRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		items, err := poRepo.ListLineItems(po.ID)
		if err != nil {
			return err
		}
		po.LineItems = derefLineItems(items)
		if hook != nil {
			if err := hook(po); err != nil {
				return err
			}
		}
		if err := po.Transition(to); err != nil {
			return err
		}
		po.UpdatedAt = time.Now()
		if err := poRepo.Update(po); err != nil {
			return err
		}
		updated = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(updated), nil
}

// Get devuelve la orden con líneas y recepciones.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.poRepo.GetWithDetails(id)
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(po), nil
}

// List lista órdenes filtrando por estado y proveedor, más nueva primero.
func (uc *UseCase) List(ctx context.Context, status, vendorID string, page dto.PageRequest) (*dto.PurchaseOrderListResponse, error) {
	page.DefaultPage()
	orders, total, err := uc.poRepo.List(repository.POFilter{
		Status:   status,
		VendorID: vendorID,
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for _, po := range orders {
		items = append(items, *toPurchaseOrderResponse(po))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// buildLineItems valida y materializa las líneas de una orden. Cada línea
// exige cantidad positiva, precio no negativo y producto existente.
func (uc *UseCase) buildLineItems(reqs []dto.POLineItemRequest) ([]entity.POLineItem, error) {
	lines := make([]entity.POLineItem, 0, len(reqs))
	now := time.Now()
	for i, r := range reqs {
		if r.QuantityOrdered <= 0 {
			return nil, fmt.Errorf("%w: la cantidad ordenada de la línea %d debe ser positiva", domain.ErrInvalidQuantity, i+1)
		}
		if r.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: el precio unitario de la línea %d no puede ser negativo", domain.ErrInvalidInput, i+1)
		}
		if _, err := uc.productRepo.GetByID(r.ProductID); err != nil {
			return nil, fmt.Errorf("producto '%s': %w", r.ProductID, err)
		}
		sortOrder := r.SortOrder
		if sortOrder == 0 {
			sortOrder = i
		}
		lines = append(lines, entity.POLineItem{
			ID:              uuid.New().String(),
			ProductID:       r.ProductID,
			QuantityOrdered: r.QuantityOrdered,
			UnitPrice:       r.UnitPrice,
			SortOrder:       sortOrder,
			CreatedAt:       now,
		})
	}
	return lines, nil
}

// formatDocNumber arma el número de documento: <tipo>-<año><secuencia en 4
// dígitos> (a partir de 10000 la secuencia sigue creciendo sin truncarse).
func formatDocNumber(docType string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d%04d", docType, year, seq)
}

func derefLineItems(items []*entity.POLineItem) []entity.POLineItem {
	out := make([]entity.POLineItem, 0, len(items))
	for _, it := range items {
		out = append(out, *it)
	}
	return out
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	resp := &dto.PurchaseOrderResponse{
		ID:                   po.ID,
		PONumber:             po.PONumber,
		VendorID:             po.VendorID,
		Status:               po.Status,
		OrderDate:            po.OrderDate,
		ExpectedDeliveryDate: po.ExpectedDeliveryDate,
		ShippingAddress:      po.ShippingAddress,
		Subtotal:             po.Subtotal,
		TaxAmount:            po.TaxAmount,
		TotalAmount:          po.TotalAmount,
		Notes:                po.Notes,
		CreatedBy:            po.CreatedBy,
		ApprovedBy:           po.ApprovedBy,
		ApprovedAt:           po.ApprovedAt,
		CreatedAt:            po.CreatedAt,
		UpdatedAt:            po.UpdatedAt,
		LineItems:            make([]dto.POLineItemResponse, 0, len(po.LineItems)),
	}
	for _, li := range po.LineItems {
		resp.LineItems = append(resp.LineItems, dto.POLineItemResponse{
			ID:               li.ID,
			ProductID:        li.ProductID,
			QuantityOrdered:  li.QuantityOrdered,
			QuantityReceived: li.QuantityReceived,
			UnitPrice:        li.UnitPrice,
			SortOrder:        li.SortOrder,
		})
	}
	for _, gr := range po.Receipts {
		resp.Receipts = append(resp.Receipts, *toGoodsReceiptResponse(&gr))
	}
	return resp
}

func toGoodsReceiptResponse(gr *entity.GoodsReceipt) *dto.GoodsReceiptResponse {
	resp := &dto.GoodsReceiptResponse{
		ID:              gr.ID,
		ReceiptNumber:   gr.ReceiptNumber,
		PurchaseOrderID: gr.PurchaseOrderID,
		ReceivedDate:    gr.ReceivedDate,
		Notes:           gr.Notes,
		ReceivedBy:      gr.ReceivedBy,
		CreatedAt:       gr.CreatedAt,
		Items:           make([]dto.GoodsReceiptItemResponse, 0, len(gr.Items)),
	}
	for _, it := range gr.Items {
		resp.Items = append(resp.Items, dto.GoodsReceiptItemResponse{
			ID:               it.ID,
			POLineItemID:     it.POLineItemID,
			ProductID:        it.ProductID,
			QuantityReceived: it.QuantityReceived,
			LocationID:       it.LocationID,
			CreatedAt:        it.CreatedAt,
		})
	}
	return resp
}
