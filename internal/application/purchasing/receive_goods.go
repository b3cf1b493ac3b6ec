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

// ReceiveGoods registra una recepción de mercancía contra una orden en sent
// o partially_received. En una sola transacción: crea la recepción con
// número GR-<año><secuencia>, acumula lo recibido en cada línea, acredita
// el stock vía StockReceiver y deriva el nuevo estado de la orden
// (partially_received o received según recibido >= ordenado en toda línea).
// La sobre-recepción no se bloquea; completa la orden igual.
func (uc *UseCase) ReceiveGoods(ctx context.Context, poID, userID string, req dto.GoodsReceiptRequest) (*dto.GoodsReceiptResponse, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: la recepción no tiene líneas", domain.ErrInvalidInput)
	}
	for i, it := range req.Items {
		if it.QuantityReceived <= 0 {
			return nil, fmt.Errorf("%w: la cantidad recibida de la línea %d debe ser positiva", domain.ErrInvalidQuantity, i+1)
		}
		if it.POLineItemID == "" || it.LocationID == "" {
			return nil, fmt.Errorf("%w: la línea %d necesita línea de orden y ubicación", domain.ErrInvalidInput, i+1)
		}
	}
	receivedDate := req.ReceivedDate
	if receivedDate.IsZero() {
		receivedDate = time.Now()
	}

	var receipt *entity.GoodsReceipt
	run := func() error {
		return uc.txRunner.Run(ctx, func(
			poRepo repository.PurchaseOrderRepository,
			receiptRepo repository.GoodsReceiptRepository,
			seqRepo repository.SequenceRepository,
			levelRepo repository.StockLevelRepository,
			movRepo repository.StockMovementRepository,
		) error {
			po, err := poRepo.GetForUpdate(poID)
			if err != nil {
				return err
			}
			if po.Status != entity.POStatusSent && po.Status != entity.POStatusPartiallyReceived {
				return fmt.Errorf("%w: solo una orden sent o partially_received recibe mercancía (estado actual '%s')", domain.ErrInvalidState, po.Status)
			}
			items, err := poRepo.ListLineItems(po.ID)
			if err != nil {
				return err
			}
			lineByID := make(map[string]*entity.POLineItem, len(items))
			for _, li := range items {
				lineByID[li.ID] = li
			}

			now := time.Now()
			seq, err := seqRepo.Next(repository.DocTypeGoodsReceipt, now.Year())
			if err != nil {
				return err
			}
			receipt = &entity.GoodsReceipt{
				ID:              uuid.New().String(),
				ReceiptNumber:   formatDocNumber(repository.DocTypeGoodsReceipt, now.Year(), seq),
				PurchaseOrderID: po.ID,
				ReceivedDate:    receivedDate,
				Notes:           req.Notes,
				ReceivedBy:      userID,
				CreatedAt:       now,
			}
			if err := receiptRepo.Create(receipt); err != nil {
				return err
			}

			for i, it := range req.Items {
				line, ok := lineByID[it.POLineItemID]
				if !ok {
					return fmt.Errorf("línea de orden '%s' en la orden '%s': %w", it.POLineItemID, po.PONumber, domain.ErrNotFound)
				}
				if it.ProductID != "" && it.ProductID != line.ProductID {
					return fmt.Errorf("%w: la línea %d no coincide con el producto de la línea de orden", domain.ErrInvalidInput, i+1)
				}
				item := &entity.GoodsReceiptItem{
					ID:               uuid.New().String(),
					GoodsReceiptID:   receipt.ID,
					POLineItemID:     line.ID,
					ProductID:        line.ProductID,
					QuantityReceived: it.QuantityReceived,
					LocationID:       it.LocationID,
					CreatedAt:        now,
				}
				if err := receiptRepo.CreateItem(item); err != nil {
					return err
				}
				if err := poRepo.AddLineItemReceived(line.ID, it.QuantityReceived); err != nil {
					return err
				}
				line.QuantityReceived += it.QuantityReceived
				if err := uc.receiver.ReceiveInTx(levelRepo, movRepo, line.ProductID, it.LocationID, it.QuantityReceived, receipt.ID, userID, now); err != nil {
					return err
				}
				receipt.Items = append(receipt.Items, *item)
			}

			// Estado derivado, nunca pedido a mano: received si toda línea
			// quedó completa, partially_received si no.
			po.LineItems = derefLineItems(items)
			target := entity.POStatusPartiallyReceived
			if po.AllReceived() {
				target = entity.POStatusReceived
			}
			if po.Status != target {
				if err := po.Transition(target); err != nil {
					return err
				}
				if err := poRepo.UpdateStatus(po.ID, target); err != nil {
					return err
				}
			}
			return nil
		})
	}

	var err error
	for attempt := 0; attempt < maxNumberRetries; attempt++ {
		if err = run(); err == nil || !errors.Is(err, domain.ErrTransientConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return toGoodsReceiptResponse(receipt), nil
}

// ListReceipts devuelve las recepciones de una orden, más nueva primero.
func (uc *UseCase) ListReceipts(ctx context.Context, poID string) ([]dto.GoodsReceiptResponse, error) {
	if _, err := uc.poRepo.GetByID(poID); err != nil {
		return nil, err
	}
	receipts, err := uc.receiptRepo.ListByPurchaseOrder(poID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GoodsReceiptResponse, 0, len(receipts))
	for _, gr := range receipts {
		out = append(out, *toGoodsReceiptResponse(gr))
	}
	return out, nil
}
