package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// runInTx inicia una transacción sobre q, ejecuta fn y hace Commit o Rollback.
// Si q ya es una transacción, pgx crea un savepoint.
func runInTx(ctx context.Context, q Querier, fn func(tx pgx.Tx) error) error {
	tx, err := q.Begin(ctx)
	if err != nil {
		return wrapErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapErr("commit transaction", err)
	}
	return nil
}

// TxRunner ejecuta callbacks con un InvoiceRepo atado a una transacción.
type TxRunner struct {
	q Querier
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(q Querier) *TxRunner {
	return &TxRunner{q: q}
}

// Run ejecuta fn dentro de una transacción. Un error de fn provoca Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repo *InvoiceRepo) error) error {
	if r.q == nil {
		return fmt.Errorf("tx runner sin conexión")
	}
	return runInTx(ctx, r.q, func(tx pgx.Tx) error {
		return fn(NewInvoiceRepository(tx))
	})
}
