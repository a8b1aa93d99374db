package repositories

import (
	"context"
)

// Tx is a unit of work. Every repository reached through it reads and writes
// inside the same database transaction, so helpers that must run inside a
// transaction take a Tx as an explicit parameter.
type Tx interface {
	Entities() EntityRepositoryFacade
	Accounts() AccountRepositoryFacade
	Journals() JournalRepositoryFacade
	FiscalPeriods() FiscalPeriodRepositoryFacade
	ExchangeRates() ExchangeRateRepositoryFacade
	Documents() DocumentRepositoryFacade
	BankTransactions() BankTransactionRepositoryFacade
	Audit() AuditWriter
}

// TxFunc is the body of a transaction. Returning an error rolls back.
type TxFunc func(ctx context.Context, tx Tx) error

// TransactionManager opens units of work.
type TransactionManager interface {
	// RunSerializable runs fn in one SERIALIZABLE transaction and commits when
	// fn returns nil. Conflicts surface as SERIALIZATION_FAILURE; they are not
	// retried here.
	RunSerializable(ctx context.Context, fn TxFunc) error

	// RunReadOnly runs fn in a read-only transaction.
	RunReadOnly(ctx context.Context, fn TxFunc) error
}
