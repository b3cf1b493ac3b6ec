package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pesl98/erp/internal/application/dto"
	"github.com/pesl98/erp/internal/application/ledger"
)

// InventoryHandler maneja el libro de inventario: ajustes, traslados y
// consultas de stock (protegido).
type InventoryHandler struct {
	uc *ledger.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *ledger.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// CreateAdjustment godoc
// @Summary      Registrar ajuste manual de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustmentRequest  true  "product_id, location_id, adjustment_type, quantity_change con signo, reason"
// @Success      201   {object}  dto.StockAdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) CreateAdjustment(c *fiber.Ctx) error {
	var in dto.StockAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	adjustment, err := h.uc.Adjust(c.Context(), ledger.AdjustmentInput{
		ProductID:      in.ProductID,
		LocationID:     in.LocationID,
		AdjustmentType: in.AdjustmentType,
		QuantityChange: in.QuantityChange,
		Reason:         in.Reason,
		UserID:         GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockAdjustmentResponse{
		ID:             adjustment.ID,
		ProductID:      adjustment.ProductID,
		LocationID:     adjustment.LocationID,
		AdjustmentType: adjustment.AdjustmentType,
		QuantityChange: adjustment.QuantityChange,
		Reason:         adjustment.Reason,
		AdjustedBy:     adjustment.AdjustedBy,
		CreatedAt:      adjustment.CreatedAt,
	})
}

// CreateTransfer godoc
// @Summary      Trasladar stock entre ubicaciones
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockTransferRequest  true  "product_id, from_location_id, to_location_id, quantity > 0"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) CreateTransfer(c *fiber.Ctx) error {
	var in dto.StockTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	mov, err := h.uc.Transfer(c.Context(), ledger.TransferInput{
		ProductID:      in.ProductID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		Notes:          in.Notes,
		UserID:         GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockMovementResponse{
		ID:             mov.ID,
		MovementType:   mov.MovementType,
		ProductID:      mov.ProductID,
		FromLocationID: mov.FromLocationID,
		ToLocationID:   mov.ToLocationID,
		Quantity:       mov.Quantity,
		ReferenceType:  mov.ReferenceType,
		Notes:          mov.Notes,
		PerformedBy:    mov.PerformedBy,
		CreatedAt:      mov.CreatedAt,
	})
}

// GetStock godoc
// @Summary      Stock agregado por producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "busca en sku y nombre"
// @Param        limit   query  int     false  "tamaño de página"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.AggregatedStockResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.AggregatedStock(c.Query("search"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetStockByLocation godoc
// @Summary      Stock por ubicación
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "filtrar por producto"
// @Success      200  {array}  dto.StockLevelResponse
// @Router       /api/inventory/stock/by-location [get]
func (h *InventoryHandler) GetStockByLocation(c *fiber.Ctx) error {
	levels, err := h.uc.StockByLocation(c.Query("product_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(levels)
}

// GetValuation godoc
// @Summary      Valorización del inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockValuationResponse
// @Router       /api/inventory/valuation [get]
func (h *InventoryHandler) GetValuation(c *fiber.Ctx) error {
	resp, err := h.uc.Valuation()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetReorderAlerts godoc
// @Summary      Productos bajo punto de reorden
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReorderAlertItem
// @Router       /api/inventory/reorder-alerts [get]
func (h *InventoryHandler) GetReorderAlerts(c *fiber.Ctx) error {
	alerts, err := h.uc.ReorderAlerts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(alerts)
}

// ListMovements godoc
// @Summary      Bitácora de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "filtrar por producto"
// @Param        type        query  string  false  "in | out | transfer | adjustment"
// @Param        limit       query  int     false  "tamaño de página"
// @Param        offset      query  int     false  "desplazamiento"
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	items, pageResp, err := h.uc.ListMovements(c.Query("product_id"), c.Query("type"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": items, "page": pageResp})
}

// ListAdjustments godoc
// @Summary      Historial de ajustes
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.StockAdjustmentResponse
// @Router       /api/inventory/adjustments [get]
func (h *InventoryHandler) ListAdjustments(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	items, pageResp, err := h.uc.ListAdjustments(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": items, "page": pageResp})
}
