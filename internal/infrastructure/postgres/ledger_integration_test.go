package postgres_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pesl98/erp/internal/application/ledger"
	"github.com/pesl98/erp/internal/domain"
	"github.com/pesl98/erp/internal/domain/entity"
	"github.com/pesl98/erp/internal/infrastructure/postgres"
)

func newLedgerUseCase(db *testDB) *ledger.UseCase {
	return ledger.NewUseCase(
		postgres.NewTxRunner(db.pool),
		postgres.NewStockQueryRepository(db.pool),
		postgres.NewStockLevelRepository(db.pool),
		postgres.NewStockMovementRepository(db.pool),
		postgres.NewStockAdjustmentRepository(db.pool),
	)
}

// Dos transacciones que estrenan el mismo par (producto, ubicación) a la vez
// no pueden pisarse: ambas deltas tienen que quedar acumuladas y los
// movimientos comprometidos tienen que sumar exactamente el on-hand final.
func TestAdjust_ConcurrenteSobreParNuevo_AcumulaAmbosCambios(t *testing.T) {
	db := newTestDB(t)
	db.seedUser("user-concurrente")
	db.seedProduct("prod-concurrente", 0, 0)
	db.seedLocation("loc-concurrente")
	uc := newLedgerUseCase(db)

	deltas := []int64{5, 3}
	errs := make([]error, len(deltas))
	var wg sync.WaitGroup
	for i, delta := range deltas {
		wg.Add(1)
		go func(i int, delta int64) {
			defer wg.Done()
			_, errs[i] = uc.Adjust(context.Background(), ledger.AdjustmentInput{
				ProductID:      "prod-concurrente",
				LocationID:     "loc-concurrente",
				AdjustmentType: entity.AdjustmentTypeCount,
				QuantityChange: delta,
				Reason:         "conteo físico",
				UserID:         "user-concurrente",
			})
		}(i, delta)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	assert.EqualValues(t, 8, db.onHand("prod-concurrente", "loc-concurrente"))
	assert.EqualValues(t, 8, db.movementTotal("prod-concurrente"))
}

// Traslados concurrentes desde la misma fila de origen serializan: con 10 en
// mano y dos traslados de 7, uno de los dos tiene que fallar por stock
// insuficiente y el origen nunca queda negativo.
func TestTransfer_ConcurrenteDesdeElMismoOrigen_UnoFalla(t *testing.T) {
	db := newTestDB(t)
	db.seedUser("user-traslado")
	db.seedProduct("prod-traslado", 0, 0)
	db.seedLocation("loc-traslado-origen")
	db.seedLocation("loc-traslado-a")
	db.seedLocation("loc-traslado-b")
	db.seedStock("prod-traslado", "loc-traslado-origen", 10)
	uc := newLedgerUseCase(db)

	destinos := []string{"loc-traslado-a", "loc-traslado-b"}
	errs := make([]error, len(destinos))
	var wg sync.WaitGroup
	for i, dest := range destinos {
		wg.Add(1)
		go func(i int, dest string) {
			defer wg.Done()
			_, errs[i] = uc.Transfer(context.Background(), ledger.TransferInput{
				ProductID:      "prod-traslado",
				FromLocationID: "loc-traslado-origen",
				ToLocationID:   dest,
				Quantity:       7,
				UserID:         "user-traslado",
			})
		}(i, dest)
	}
	wg.Wait()

	var fallidos int
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			fallidos++
		}
	}
	require.Equal(t, 1, fallidos)
	assert.EqualValues(t, 3, db.onHand("prod-traslado", "loc-traslado-origen"))
}

// Una ubicación que no existe se rechaza como validación (la FK la detecta),
// no como error interno, y no deja efectos parciales.
func TestAdjust_UbicacionInexistente_RechazaSinEfectos(t *testing.T) {
	db := newTestDB(t)
	db.seedUser("user-fk")
	db.seedProduct("prod-fk", 0, 0)
	uc := newLedgerUseCase(db)

	_, err := uc.Adjust(context.Background(), ledger.AdjustmentInput{
		ProductID:      "prod-fk",
		LocationID:     "loc-que-no-existe",
		AdjustmentType: entity.AdjustmentTypeCount,
		QuantityChange: 5,
		Reason:         "conteo físico",
		UserID:         "user-fk",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.EqualValues(t, 0, db.movementTotal("prod-fk"))
}
