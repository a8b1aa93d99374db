// Package memory is an in-process implementation of the repository ports.
// A single lock serialises every unit of work; writes go to a copy of the
// state that replaces the committed state only when the unit succeeds, so
// it behaves like a SERIALIZABLE database without one.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	"github.com/SscSPs/ledger_posting_core/internal/core/ports/repositories"
)

type state struct {
	entities     map[string]domain.Entity
	accounts     map[string]domain.GLAccount
	entries      map[string]domain.JournalEntry
	entryOrder   []string
	periods      map[string]domain.FiscalPeriod
	rates        map[string]domain.ExchangeRate
	invoices     map[string]domain.Invoice
	bills        map[string]domain.Bill
	allocations  map[string]domain.PaymentAllocation
	bankAccounts map[string]domain.BankAccount
	transactions map[string]domain.BankTransaction
	audit        []domain.AuditRecord
}

func newState() *state {
	return &state{
		entities:     map[string]domain.Entity{},
		accounts:     map[string]domain.GLAccount{},
		entries:      map[string]domain.JournalEntry{},
		periods:      map[string]domain.FiscalPeriod{},
		rates:        map[string]domain.ExchangeRate{},
		invoices:     map[string]domain.Invoice{},
		bills:        map[string]domain.Bill{},
		allocations:  map[string]domain.PaymentAllocation{},
		bankAccounts: map[string]domain.BankAccount{},
		transactions: map[string]domain.BankTransaction{},
	}
}

// clone copies every map. Slices held by values (lines, splits) are shared;
// repositories never modify them in place, they store fresh copies instead.
func (s *state) clone() *state {
	return &state{
		entities:     cloneMap(s.entities),
		accounts:     cloneMap(s.accounts),
		entries:      cloneMap(s.entries),
		entryOrder:   slices.Clone(s.entryOrder),
		periods:      cloneMap(s.periods),
		rates:        cloneMap(s.rates),
		invoices:     cloneMap(s.invoices),
		bills:        cloneMap(s.bills),
		allocations:  cloneMap(s.allocations),
		bankAccounts: cloneMap(s.bankAccounts),
		transactions: cloneMap(s.transactions),
		audit:        slices.Clone(s.audit),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Store is the committed state plus the lock guarding it.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{st: newState()}
}

var _ repositories.TransactionManager = (*Store)(nil)

func (s *Store) RunSerializable(ctx context.Context, fn repositories.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(ctx, &tx{st: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}

func (s *Store) RunReadOnly(ctx context.Context, fn repositories.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, &tx{st: s.st.clone()})
}

// AuditRecords returns the committed audit trail.
func (s *Store) AuditRecords() []domain.AuditRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.st.audit)
}

// EntriesForEntity returns every committed entry of an entity in creation
// order, soft-deleted ones included.
func (s *Store) EntriesForEntity(entityID string) []domain.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.JournalEntry
	for _, id := range s.st.entryOrder {
		if e := s.st.entries[id]; e.EntityID == entityID {
			out = append(out, copyEntry(e))
		}
	}
	return out
}

type tx struct {
	st *state
}

func (t *tx) Entities() repositories.EntityRepositoryFacade { return &entityRepo{st: t.st} }
func (t *tx) Accounts() repositories.AccountRepositoryFacade { return &accountRepo{st: t.st} }
func (t *tx) Journals() repositories.JournalRepositoryFacade { return &journalRepo{st: t.st} }
func (t *tx) FiscalPeriods() repositories.FiscalPeriodRepositoryFacade {
	return &fiscalPeriodRepo{st: t.st}
}
func (t *tx) ExchangeRates() repositories.ExchangeRateRepositoryFacade {
	return &exchangeRateRepo{st: t.st}
}
func (t *tx) Documents() repositories.DocumentRepositoryFacade { return &documentRepo{st: t.st} }
func (t *tx) BankTransactions() repositories.BankTransactionRepositoryFacade {
	return &bankTransactionRepo{st: t.st}
}
func (t *tx) Audit() repositories.AuditWriter { return &auditRepo{st: t.st} }
