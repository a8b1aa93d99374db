package services

import (
	"context"

	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	"github.com/SscSPs/ledger_posting_core/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a GL account of the entity.
	GetAccountByID(ctx context.Context, actor domain.Actor, entityID string, accountID string) (*domain.GLAccount, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new GL account in the entity's chart.
	CreateAccount(ctx context.Context, actor domain.Actor, entityID string, req dto.CreateAccountRequest) (*domain.GLAccount, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, actor domain.Actor, entityID string, accountID string) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetRate resolves the base->quote rate effective on the given date (YYYY-MM-DD).
	GetRate(ctx context.Context, baseCurrency, quoteCurrency, asOf string) (*domain.ExchangeRate, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// CreateExchangeRate records the rate for a date, replacing any previous one.
	CreateExchangeRate(ctx context.Context, actor domain.Actor, req dto.CreateExchangeRateRequest) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
