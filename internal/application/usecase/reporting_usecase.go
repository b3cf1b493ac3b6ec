package usecase

import (
	"github.com/pesl98/erp/internal/application/dto"
	"github.com/pesl98/erp/internal/domain/repository"
)

// ReportingUseCase consultas de lectura para el tablero: KPIs y feed de
// actividad. No muta nada.
type ReportingUseCase struct {
	repo repository.ReportRepository
}

// NewReportingUseCase construye el caso de uso.
func NewReportingUseCase(repo repository.ReportRepository) *ReportingUseCase {
	return &ReportingUseCase{repo: repo}
}

// DashboardKPIs devuelve los indicadores del tablero.
func (uc *ReportingUseCase) DashboardKPIs() (*dto.DashboardKPIsResponse, error) {
	kpis, err := uc.repo.DashboardKPIs()
	if err != nil {
		return nil, err
	}
	return &dto.DashboardKPIsResponse{
		TotalStockValue: kpis.TotalStockValue,
		PendingPOCount:  kpis.PendingPOCount,
		LowStockCount:   kpis.LowStockCount,
		MovementsToday:  kpis.MovementsToday,
	}, nil
}

// RecentActivity devuelve las últimas entradas de actividad (movimientos y
// recepciones mezclados, más nuevo primero).
func (uc *ReportingUseCase) RecentActivity(limit int) ([]dto.ActivityEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := uc.repo.RecentActivity(limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActivityEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ActivityEntry{
			Kind:        r.Kind,
			ID:          r.ID,
			Description: r.Description,
			ProductID:   r.ProductID,
			Quantity:    r.Quantity,
			PerformedBy: r.PerformedBy,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out, nil
}
