package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/pesl98/erp/internal/application/dto"
	"github.com/pesl98/erp/internal/domain/repository"
)

// Lado de lectura del libro: consultas read-only sobre repos atados al pool
// (no necesitan transacción ni bloqueo).

// AggregatedStock stock por producto sumado sobre todas las ubicaciones.
// available = on_hand - reserved; stock_value = on_hand × cost_price si el
// costo se conoce, si no queda nil.
func (uc *UseCase) AggregatedStock(search string, page dto.PageRequest) (*dto.AggregatedStockResponse, error) {
	page.DefaultPage()
	rows, total, err := uc.queryRepo.AggregatedStock(search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AggregatedStockItem, 0, len(rows))
	for _, r := range rows {
		item := dto.AggregatedStockItem{
			ProductID:      r.ProductID,
			ProductSKU:     r.ProductSKU,
			ProductName:    r.ProductName,
			TotalOnHand:    r.TotalOnHand,
			TotalReserved:  r.TotalReserved,
			TotalAvailable: r.TotalOnHand - r.TotalReserved,
			ReorderPoint:   r.ReorderPoint,
			CostPrice:      r.CostPrice,
		}
		if r.CostPrice != nil {
			v := r.CostPrice.Mul(decimal.NewFromInt(r.TotalOnHand))
			item.StockValue = &v
		}
		items = append(items, item)
	}
	return &dto.AggregatedStockResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// StockByLocation filas de stock de un producto (o de todos si productID
// viene vacío), ubicación por ubicación.
func (uc *UseCase) StockByLocation(productID string) ([]dto.StockLevelResponse, error) {
	levels, err := uc.levelRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, dto.StockLevelResponse{
			ProductID:        l.ProductID,
			LocationID:       l.LocationID,
			QuantityOnHand:   l.QuantityOnHand,
			QuantityReserved: l.QuantityReserved,
			Available:        l.Available(),
			UpdatedAt:        l.UpdatedAt,
		})
	}
	return out, nil
}

// Valuation valorización total del inventario.
func (uc *UseCase) Valuation() (*dto.StockValuationResponse, error) {
	v, err := uc.queryRepo.Valuation()
	if err != nil {
		return nil, err
	}
	return &dto.StockValuationResponse{
		TotalValue:   v.TotalValue,
		ProductCount: v.ProductCount,
		TotalUnits:   v.TotalUnits,
	}, nil
}

// ReorderAlerts productos activos bajo su punto de reorden, mayor déficit
// primero.
func (uc *UseCase) ReorderAlerts() ([]dto.ReorderAlertItem, error) {
	rows, err := uc.queryRepo.ReorderAlerts()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReorderAlertItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ReorderAlertItem{
			ProductID:       r.ProductID,
			ProductSKU:      r.ProductSKU,
			ProductName:     r.ProductName,
			TotalOnHand:     r.TotalOnHand,
			ReorderPoint:    r.ReorderPoint,
			ReorderQuantity: r.ReorderQuantity,
			Deficit:         r.Deficit,
		})
	}
	return out, nil
}

// ListMovements bitácora de movimientos, más nuevo primero.
func (uc *UseCase) ListMovements(productID, movementType string, page dto.PageRequest) ([]dto.StockMovementResponse, dto.PageResponse, error) {
	page.DefaultPage()
	movements, total, err := uc.movRepo.List(repository.MovementFilter{
		ProductID:    productID,
		MovementType: movementType,
		Limit:        page.Limit,
		Offset:       page.Offset,
	})
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.StockMovementResponse{
			ID:             m.ID,
			MovementType:   m.MovementType,
			ProductID:      m.ProductID,
			FromLocationID: m.FromLocationID,
			ToLocationID:   m.ToLocationID,
			Quantity:       m.Quantity,
			ReferenceType:  m.ReferenceType,
			ReferenceID:    m.ReferenceID,
			Notes:          m.Notes,
			PerformedBy:    m.PerformedBy,
			CreatedAt:      m.CreatedAt,
		})
	}
	return out, dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total}, nil
}

// ListAdjustments historial de ajustes, más nuevo primero.
func (uc *UseCase) ListAdjustments(page dto.PageRequest) ([]dto.StockAdjustmentResponse, dto.PageResponse, error) {
	page.DefaultPage()
	adjustments, total, err := uc.adjRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	out := make([]dto.StockAdjustmentResponse, 0, len(adjustments))
	for _, a := range adjustments {
		out = append(out, dto.StockAdjustmentResponse{
			ID:             a.ID,
			ProductID:      a.ProductID,
			LocationID:     a.LocationID,
			AdjustmentType: a.AdjustmentType,
			QuantityChange: a.QuantityChange,
			Reason:         a.Reason,
			AdjustedBy:     a.AdjustedBy,
			CreatedAt:      a.CreatedAt,
		})
	}
	return out, dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total}, nil
}
