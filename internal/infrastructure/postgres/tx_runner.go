package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/berlivn/eriflex-api/internal/application/auth"
	"github.com/berlivn/eriflex-api/internal/application/catalog"
	"github.com/berlivn/eriflex-api/internal/domain/repository"
)

var (
	_ auth.TxRunner    = (*TxRunner)(nil)
	_ catalog.TxRunner = (*TxRunner)(nil)
)

// TxRunner runs callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAccount gives fn company and user repositories bound to one transaction (registration).
func (r *TxRunner) RunAccount(ctx context.Context, fn func(
	companies repository.CompanyRepository,
	users repository.UserRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewCompanyRepository(tx), NewUserRepository(tx))
	})
}

// RunCatalog gives fn a component repository bound to one transaction (info + variant list writes).
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(components repository.ComponentRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewComponentRepository(tx))
	})
}
