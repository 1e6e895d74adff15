package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción (read committed), ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	return r.run(ctx, pgx.TxOptions{}, fn)
}

// View ejecuta fn en una transacción repeatable read de solo lectura: todas las consultas ven la misma foto.
func (r *TxRunner) View(ctx context.Context, fn func(repos repository.Repos) error) error {
	return r.run(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

func (r *TxRunner) run(ctx context.Context, opts pgx.TxOptions, fn func(repos repository.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepos arma el conjunto de repositorios sobre q (pool o tx).
func NewRepos(q Querier) repository.Repos {
	return repository.Repos{
		Companies: NewCompanyRepository(q),
		Users:     NewUserRepository(q),
		Customers: NewCustomerRepository(q),
		Invoices:  NewInvoiceRepository(q),
		Stats:     NewStatsRepository(q),
	}
}
