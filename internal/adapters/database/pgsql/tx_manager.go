// Package pgsql implements the repository ports on PostgreSQL through pgx.
// Every repository is reached through a Tx, so all reads and writes of one
// posting share a single SERIALIZABLE transaction.
package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/ledger_posting_core/internal/core/ports/repositories"
)

// querier is the part of pgx.Tx the repositories use.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// TxManager opens pgx transactions on a pool.
type TxManager struct {
	pool *pgxpool.Pool
}

var _ repositories.TransactionManager = (*TxManager)(nil)

// NewTxManager creates a TxManager backed by pool.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

func (m *TxManager) RunSerializable(ctx context.Context, fn repositories.TxFunc) error {
	return m.run(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable, AccessMode: pgx.ReadWrite}, fn)
}

func (m *TxManager) RunReadOnly(ctx context.Context, fn repositories.TxFunc) error {
	return m.run(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

// run commits when fn returns nil and rolls back otherwise. A conflict
// detected at commit time is reported like one detected mid-transaction.
func (m *TxManager) run(ctx context.Context, opts pgx.TxOptions, fn repositories.TxFunc) error {
	err := pgx.BeginTxFunc(ctx, m.pool, opts, func(tx pgx.Tx) error {
		return fn(ctx, &pgxTx{q: tx})
	})
	return translate(err, "transaction failed")
}

type pgxTx struct {
	q querier
}

func (t *pgxTx) Entities() repositories.EntityRepositoryFacade { return &entityRepository{q: t.q} }
func (t *pgxTx) Accounts() repositories.AccountRepositoryFacade { return &accountRepository{q: t.q} }
func (t *pgxTx) Journals() repositories.JournalRepositoryFacade { return &journalRepository{q: t.q} }
func (t *pgxTx) FiscalPeriods() repositories.FiscalPeriodRepositoryFacade {
	return &fiscalPeriodRepository{q: t.q}
}
func (t *pgxTx) ExchangeRates() repositories.ExchangeRateRepositoryFacade {
	return &exchangeRateRepository{q: t.q}
}
func (t *pgxTx) Documents() repositories.DocumentRepositoryFacade {
	return &documentRepository{q: t.q}
}
func (t *pgxTx) BankTransactions() repositories.BankTransactionRepositoryFacade {
	return &bankTransactionRepository{q: t.q}
}
func (t *pgxTx) Audit() repositories.AuditWriter { return &auditRepository{q: t.q} }
