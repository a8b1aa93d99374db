package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
)

// AccountReader defines read operations for GL accounts.
type AccountReader interface {
	// FindAccountByID returns GL_ACCOUNT_NOT_FOUND if the account is absent
	// or not part of entityID.
	FindAccountByID(ctx context.Context, entityID, accountID string) (*domain.GLAccount, error)

	// FindAccountByCode looks up an account by its exact code within the entity.
	FindAccountByCode(ctx context.Context, entityID, code string) (*domain.GLAccount, error)

	// FindAccountsByIDs returns the accounts of the tenant found, keyed by id,
	// whatever entity of the tenant they belong to.
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.GLAccount, error)

	// HasDraftLines reports whether any non-deleted DRAFT entry has a line on the account.
	HasDraftLines(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for GL accounts.
type AccountWriter interface {
	// SaveAccount persists a new account. A code already used in the entity
	// yields DUPLICATE_ACCOUNT_CODE.
	SaveAccount(ctx context.Context, account domain.GLAccount) error

	// SetAccountActive flips the active flag. Code and normal balance are never updated.
	SetAccountActive(ctx context.Context, accountID string, active bool, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
