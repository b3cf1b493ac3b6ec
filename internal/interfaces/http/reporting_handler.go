package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pesl98/erp/internal/application/usecase"
)

// ReportingHandler maneja el tablero: KPIs y actividad reciente (protegido).
type ReportingHandler struct {
	uc *usecase.ReportingUseCase
}

// NewReportingHandler construye el handler.
func NewReportingHandler(uc *usecase.ReportingUseCase) *ReportingHandler {
	return &ReportingHandler{uc: uc}
}

// DashboardKPIs godoc
// @Summary      Indicadores del tablero
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardKPIsResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportingHandler) DashboardKPIs(c *fiber.Ctx) error {
	kpis, err := h.uc.DashboardKPIs()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(kpis)
}

// RecentActivity godoc
// @Summary      Actividad reciente
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo de entradas (def 20, máx 100)"
// @Success      200  {array}  dto.ActivityEntry
// @Router       /api/reports/activity [get]
func (h *ReportingHandler) RecentActivity(c *fiber.Ctx) error {
	activity, err := h.uc.RecentActivity(c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(activity)
}
