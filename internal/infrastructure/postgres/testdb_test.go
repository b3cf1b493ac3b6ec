package postgres_test

import (
	"context"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/pesl98/erp/internal/infrastructure/postgres"
	"github.com/pesl98/erp/pkg/config"
)

// Infraestructura de los tests de integración del paquete: levanta un
// PostgreSQL real con testcontainers, aplica las migraciones con goose y
// comparte el pool entre todos los tests. Cada test siembra sus propias
// filas con ids propios, así que no hace falta truncar entre tests.

var (
	sharedMu   sync.Mutex
	sharedPool *pgxpool.Pool
)

type testDB struct {
	pool *pgxpool.Pool
	t    *testing.T
}

func newTestDB(t *testing.T) *testDB {
	t.Helper()
	if testing.Short() {
		t.Skip("test de integración: requiere Docker")
	}

	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedPool == nil {
		ctx := context.Background()
		container, err := tcpostgres.Run(ctx,
			"postgres:16-alpine",
			tcpostgres.WithDatabase("erp_test"),
			tcpostgres.WithUsername("postgres"),
			tcpostgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		require.NoError(t, err, "no se pudo levantar el contenedor de PostgreSQL")

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err)

		runMigrations(t, dsn)

		pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
		require.NoError(t, err, "no se pudo conectar al contenedor")
		sharedPool = pool
	}

	return &testDB{pool: sharedPool, t: t}
}

func runMigrations(t *testing.T, dsn string) {
	t.Helper()
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, goose.Up(db, migrationsDir(t)))
}

func migrationsDir(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(filename), "..", "..", "..", "migrations")
}

func (db *testDB) exec(query string, args ...any) {
	db.t.Helper()
	_, err := db.pool.Exec(context.Background(), query, args...)
	require.NoError(db.t, err)
}

func (db *testDB) seedUser(id string) {
	db.exec(`INSERT INTO users (id, email, password_hash, full_name, role)
		VALUES ($1, $1 || '@prueba.local', 'x', 'Usuario de prueba', 'admin')
		ON CONFLICT (id) DO NOTHING`, id)
}

func (db *testDB) seedProduct(id string, reorderPoint, reorderQuantity int64) {
	db.exec(`INSERT INTO products (id, sku, name, reorder_point, reorder_quantity)
		VALUES ($1, $1, $1, $2, $3)
		ON CONFLICT (id) DO NOTHING`, id, reorderPoint, reorderQuantity)
}

// seedLocation crea la cadena bodega -> zona -> ubicación con ids derivados.
func (db *testDB) seedLocation(id string) {
	whID, zoneID := "wh-"+id, "zona-"+id
	db.exec(`INSERT INTO warehouses (id, code, name) VALUES ($1, $1, 'Bodega de prueba')
		ON CONFLICT (id) DO NOTHING`, whID)
	db.exec(`INSERT INTO warehouse_zones (id, warehouse_id, code) VALUES ($1, $2, $1)
		ON CONFLICT (id) DO NOTHING`, zoneID, whID)
	db.exec(`INSERT INTO stock_locations (id, zone_id, code) VALUES ($1, $2, $1)
		ON CONFLICT (id) DO NOTHING`, id, zoneID)
}

func (db *testDB) seedVendor(id string) {
	db.exec(`INSERT INTO vendors (id, code, name) VALUES ($1, $1, 'Proveedor de prueba')
		ON CONFLICT (id) DO NOTHING`, id)
}

func (db *testDB) seedStock(productID, locationID string, quantity int64) {
	db.exec(`INSERT INTO stock_levels (id, product_id, location_id, quantity_on_hand)
		VALUES (gen_random_uuid()::text, $1, $2, $3)`, productID, locationID, quantity)
}

func (db *testDB) seedPurchaseOrder(id, vendorID, userID, status string) {
	db.exec(`INSERT INTO purchase_orders (id, po_number, vendor_id, status, order_date, created_by)
		VALUES ($1, $1, $2, $3, now(), $4)`, id, vendorID, status, userID)
}

func (db *testDB) onHand(productID, locationID string) int64 {
	db.t.Helper()
	var qty int64
	err := db.pool.QueryRow(context.Background(),
		`SELECT quantity_on_hand FROM stock_levels WHERE product_id = $1 AND location_id = $2`,
		productID, locationID).Scan(&qty)
	require.NoError(db.t, err)
	return qty
}

func (db *testDB) movementTotal(productID string) int64 {
	db.t.Helper()
	var total int64
	err := db.pool.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM stock_movements WHERE product_id = $1`,
		productID).Scan(&total)
	require.NoError(db.t, err)
	return total
}
