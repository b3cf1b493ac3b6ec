package postgres_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pesl98/erp/internal/domain/repository"
	"github.com/pesl98/erp/internal/infrastructure/postgres"
)

// Umbral de reorden: alerta solo el producto activo con punto de reorden > 0
// cuyo total en mano está por debajo del punto, ordenado por déficit
// descendente.
func TestReorderAlerts_UmbralYOrden(t *testing.T) {
	db := newTestDB(t)
	db.seedLocation("loc-reorden")

	db.seedProduct("prod-critico", 50, 200)
	db.seedStock("prod-critico", "loc-reorden", 5) // déficit 45
	db.seedProduct("prod-bajo", 50, 100)
	db.seedStock("prod-bajo", "loc-reorden", 30) // déficit 20
	db.seedProduct("prod-surtido", 50, 100)
	db.seedStock("prod-surtido", "loc-reorden", 60) // por encima del punto
	db.seedProduct("prod-sin-punto", 0, 0) // reorder_point 0 nunca alerta
	db.exec(`INSERT INTO products (id, sku, name, status, reorder_point)
		VALUES ('prod-descontinuado', 'prod-descontinuado', 'prod-descontinuado', 'discontinued', 50)`)

	rows, err := postgres.NewStockQueryRepository(db.pool).ReorderAlerts()
	require.NoError(t, err)

	// El contenedor se comparte entre tests: filtra a los productos de este
	// escenario conservando el orden que devolvió la consulta.
	propios := map[string]bool{
		"prod-critico": true, "prod-bajo": true, "prod-surtido": true,
		"prod-sin-punto": true, "prod-descontinuado": true,
	}
	var got []repository.ReorderAlertRow
	for _, r := range rows {
		if propios[r.ProductID] {
			got = append(got, r)
		}
	}

	require.Len(t, got, 2)
	assert.Equal(t, "prod-critico", got[0].ProductID)
	assert.EqualValues(t, 5, got[0].TotalOnHand)
	assert.EqualValues(t, 45, got[0].Deficit)
	assert.EqualValues(t, 200, got[0].ReorderQuantity)
	assert.Equal(t, "prod-bajo", got[1].ProductID)
	assert.EqualValues(t, 30, got[1].TotalOnHand)
	assert.EqualValues(t, 50, got[1].ReorderPoint)
	assert.EqualValues(t, 20, got[1].Deficit)
}

// KPIs del tablero: pendiente es lo que aún no recibió nada (draft,
// pending_approval, approved, sent); bajo stock cuenta productos bajo su
// punto de reorden; los movimientos de hoy cuentan desde la medianoche.
// Se comparan deltas porque la base se comparte entre tests.
func TestDashboardKPIs_PendientesBajoStockYMovimientos(t *testing.T) {
	db := newTestDB(t)
	repo := postgres.NewReportRepository(db.pool)

	antes, err := repo.DashboardKPIs()
	require.NoError(t, err)

	db.seedUser("user-kpi")
	db.seedVendor("vendor-kpi")
	db.seedLocation("loc-kpi")
	estados := []string{"draft", "pending_approval", "approved", "sent", "partially_received", "received", "cancelled"}
	for i, estado := range estados {
		db.seedPurchaseOrder(fmt.Sprintf("po-kpi-%d", i), "vendor-kpi", "user-kpi", estado)
	}
	db.seedProduct("prod-kpi-bajo", 50, 100)
	db.seedStock("prod-kpi-bajo", "loc-kpi", 30)
	db.seedProduct("prod-kpi-surtido", 50, 100)
	db.seedStock("prod-kpi-surtido", "loc-kpi", 60)
	db.exec(`INSERT INTO stock_movements (id, movement_type, product_id, to_location_id, quantity, performed_by)
		VALUES ('mov-kpi', 'in', 'prod-kpi-bajo', 'loc-kpi', 3, 'user-kpi')`)

	despues, err := repo.DashboardKPIs()
	require.NoError(t, err)

	// Lo recibido (parcial o total) y lo cancelado ya no cuenta como pendiente.
	assert.EqualValues(t, 4, despues.PendingPOCount-antes.PendingPOCount)
	assert.EqualValues(t, 1, despues.LowStockCount-antes.LowStockCount)
	assert.EqualValues(t, 1, despues.MovementsToday-antes.MovementsToday)
}
