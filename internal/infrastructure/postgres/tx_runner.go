package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ orders.CustomerTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCustomer inicia una transacción, ejecuta fn con los repos de clientes y
// sucursales atados a la tx y hace Commit o Rollback. Un cliente nuevo y sus
// sucursales se crean todo-o-nada; los pedidos quedan fuera de la tx.
func (r *TxRunner) RunCustomer(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	branchRepo repository.BranchRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	customerRepo := NewCustomerRepository(tx)
	branchRepo := NewBranchRepository(tx)

	if err := fn(customerRepo, branchRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
