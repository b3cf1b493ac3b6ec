package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pesl98/erp/internal/application/ledger"
	"github.com/pesl98/erp/internal/application/purchasing"
	"github.com/pesl98/erp/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner and purchasing.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ purchasing.TxRunner = (*PurchasingTxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con los
// repositorios del libro de inventario atados a la tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	movRepo repository.StockMovementRepository,
	adjRepo repository.StockAdjustmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	levelRepo := NewStockLevelRepository(tx)
	movRepo := NewStockMovementRepository(tx)
	adjRepo := NewStockAdjustmentRepository(tx)

	if err := fn(levelRepo, movRepo, adjRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// PurchasingTxRunner igual que TxRunner pero con el juego de repos del ciclo
// de compras (órdenes, recepciones, secuencias y stock: la recepción de
// mercancía acredita el libro en la misma transacción).
type PurchasingTxRunner struct {
	pool *pgxpool.Pool
}

// NewPurchasingTxRunner construye el runner de compras con el pool.
func NewPurchasingTxRunner(pool *pgxpool.Pool) *PurchasingTxRunner {
	return &PurchasingTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *PurchasingTxRunner) Run(ctx context.Context, fn func(
	poRepo repository.PurchaseOrderRepository,
	receiptRepo repository.GoodsReceiptRepository,
	seqRepo repository.SequenceRepository,
	levelRepo repository.StockLevelRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	poRepo := NewPurchaseOrderRepository(tx)
	receiptRepo := NewGoodsReceiptRepository(tx)
	seqRepo := NewSequenceRepository(tx)
	levelRepo := NewStockLevelRepository(tx)
	movRepo := NewStockMovementRepository(tx)

	if err := fn(poRepo, receiptRepo, seqRepo, levelRepo, movRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
