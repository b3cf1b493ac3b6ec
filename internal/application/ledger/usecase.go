package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pesl98/erp/internal/domain"
	"github.com/pesl98/erp/internal/domain/entity"
	"github.com/pesl98/erp/internal/domain/repository"
)

// UseCase motor del libro de inventario. Toda mutación de cantidades pasa
// por aquí: cada operación corre en una sola transacción con bloqueo de
// fila (SELECT FOR UPDATE) sobre los StockLevel afectados, y deja exactamente
// un StockMovement de auditoría. Ninguna operación puede dejar un on-hand
// negativo en ningún punto de commit.
type UseCase struct {
	txRunner  TxRunner
	queryRepo repository.StockQueryRepository
	levelRepo repository.StockLevelRepository     // lectura fuera de tx
	movRepo   repository.StockMovementRepository  // lectura fuera de tx
	adjRepo   repository.StockAdjustmentRepository // lectura fuera de tx
}

// NewUseCase construye el motor del libro.
func NewUseCase(
	txRunner TxRunner,
	queryRepo repository.StockQueryRepository,
	levelRepo repository.StockLevelRepository,
	movRepo repository.StockMovementRepository,
	adjRepo repository.StockAdjustmentRepository,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		queryRepo: queryRepo,
		levelRepo: levelRepo,
		movRepo:   movRepo,
		adjRepo:   adjRepo,
	}
}

// AdjustmentInput entrada para un ajuste manual.
type AdjustmentInput struct {
	ProductID      string
	LocationID     string
	AdjustmentType string
	QuantityChange int64 // con signo, != 0
	Reason         string
	UserID         string
}

// Adjust aplica un ajuste manual: bloquea (o crea) la fila del par,
// verifica que el resultado no quede negativo, y persiste el ajuste más su
// movimiento emparejado. Commit o rollback completo.
func (uc *UseCase) Adjust(ctx context.Context, in AdjustmentInput) (*entity.StockAdjustment, error) {
	if in.ProductID == "" || in.LocationID == "" || in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidAdjustmentType(in.AdjustmentType) {
		return nil, fmt.Errorf("%w: tipo de ajuste '%s' desconocido", domain.ErrInvalidInput, in.AdjustmentType)
	}
	if in.Reason == "" {
		return nil, fmt.Errorf("%w: el motivo del ajuste es obligatorio", domain.ErrInvalidInput)
	}
	if in.QuantityChange == 0 {
		return nil, fmt.Errorf("%w: el cambio de cantidad no puede ser cero", domain.ErrInvalidQuantity)
	}

	now := time.Now()
	adjustment := &entity.StockAdjustment{
		ID:             uuid.New().String(),
		ProductID:      in.ProductID,
		LocationID:     in.LocationID,
		AdjustmentType: in.AdjustmentType,
		QuantityChange: in.QuantityChange,
		Reason:         in.Reason,
		AdjustedBy:     in.UserID,
		CreatedAt:      now,
	}

	err := uc.txRunner.Run(ctx, func(
		levelRepo repository.StockLevelRepository,
		movRepo repository.StockMovementRepository,
		adjRepo repository.StockAdjustmentRepository,
	) error {
		// Bloquea la fila del par; si no existe, GetForUpdate la crea en
		// cero y la devuelve ya bloqueada.
		level, err := levelRepo.GetForUpdate(in.ProductID, in.LocationID)
		if err != nil {
			return err
		}
		newQty := level.QuantityOnHand + in.QuantityChange
		if newQty < 0 {
			return domain.ErrInvalidAdjustment
		}
		level.QuantityOnHand = newQty
		level.UpdatedAt = now
		if err := levelRepo.Upsert(level); err != nil {
			return err
		}
		if err := adjRepo.Create(adjustment); err != nil {
			return err
		}
		// Movimiento emparejado: destino si suma, origen si resta.
		mov := &entity.StockMovement{
			ID:            uuid.New().String(),
			MovementType:  entity.MovementTypeAdjustment,
			ProductID:     in.ProductID,
			Quantity:      abs(in.QuantityChange),
			ReferenceType: entity.ReferenceTypeAdjustment,
			ReferenceID:   adjustment.ID,
			PerformedBy:   in.UserID,
			CreatedAt:     now,
		}
		if in.QuantityChange > 0 {
			mov.ToLocationID = in.LocationID
		} else {
			mov.FromLocationID = in.LocationID
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return adjustment, nil
}

// TransferInput entrada para un traslado entre ubicaciones.
type TransferInput struct {
	ProductID      string
	FromLocationID string
	ToLocationID   string
	Quantity       int64 // > 0
	Notes          string
	UserID         string
}

// Transfer mueve cantidad entre dos ubicaciones en una sola transacción:
// debita el origen (falla con ErrInsufficientStock si no alcanza) y
// acredita el destino, creándolo si no existe. Deja un único movimiento
// con ambas ubicaciones.
func (uc *UseCase) Transfer(ctx context.Context, in TransferInput) (*entity.StockMovement, error) {
	if in.ProductID == "" || in.FromLocationID == "" || in.ToLocationID == "" || in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.FromLocationID == in.ToLocationID {
		return nil, fmt.Errorf("%w: origen y destino deben ser distintos", domain.ErrInvalidTransfer)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad a trasladar debe ser positiva", domain.ErrInvalidQuantity)
	}

	now := time.Now()
	mov := &entity.StockMovement{
		ID:             uuid.New().String(),
		MovementType:   entity.MovementTypeTransfer,
		ProductID:      in.ProductID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		ReferenceType:  entity.ReferenceTypeTransfer,
		Notes:          in.Notes,
		PerformedBy:    in.UserID,
		CreatedAt:      now,
	}

	err := uc.txRunner.Run(ctx, func(
		levelRepo repository.StockLevelRepository,
		movRepo repository.StockMovementRepository,
		_ repository.StockAdjustmentRepository,
	) error {
		// Orden de bloqueo determinista por id de ubicación: dos traslados
		// concurrentes en sentidos opuestos no pueden abrazarse.
		first, second := in.FromLocationID, in.ToLocationID
		if second < first {
			first, second = second, first
		}
		locked := make(map[string]*entity.StockLevel, 2)
		for _, locID := range []string{first, second} {
			level, err := levelRepo.GetForUpdate(in.ProductID, locID)
			if err != nil {
				return err
			}
			locked[locID] = level
		}
		source := locked[in.FromLocationID]
		dest := locked[in.ToLocationID]

		if source.QuantityOnHand < in.Quantity {
			return domain.ErrInsufficientStock
		}
		source.QuantityOnHand -= in.Quantity
		dest.QuantityOnHand += in.Quantity
		source.UpdatedAt = now
		dest.UpdatedAt = now
		if err := levelRepo.Upsert(source); err != nil {
			return err
		}
		if err := levelRepo.Upsert(dest); err != nil {
			return err
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// ReceiveInTx acredita una recepción de mercancía usando los repositorios
// del caller (misma transacción). Es el único punto de entrada del módulo
// de compras al libro: compras nunca toca StockLevel directamente.
// Si retorna error, el caller debe hacer rollback de toda la recepción.
func (uc *UseCase) ReceiveInTx(
	levelRepo repository.StockLevelRepository,
	movRepo repository.StockMovementRepository,
	productID, locationID string,
	quantity int64,
	receiptID, userID string,
	now time.Time,
) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: la cantidad recibida debe ser positiva", domain.ErrInvalidQuantity)
	}
	level, err := levelRepo.GetForUpdate(productID, locationID)
	if err != nil {
		return err
	}
	level.QuantityOnHand += quantity
	level.UpdatedAt = now
	if err := levelRepo.Upsert(level); err != nil {
		return err
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		MovementType:  entity.MovementTypeIn,
		ProductID:     productID,
		ToLocationID:  locationID,
		Quantity:      quantity,
		ReferenceType: entity.ReferenceTypeGoodsReceipt,
		ReferenceID:   receiptID,
		PerformedBy:   userID,
		CreatedAt:     now,
	}
	return movRepo.Create(mov)
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
