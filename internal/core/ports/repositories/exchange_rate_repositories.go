package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindLatestRate returns the most recent base->quote rate dated on or
	// before asOf, or nil when none exists.
	FindLatestRate(ctx context.Context, baseCurrency, quoteCurrency string, asOf time.Time) (*domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate upserts the rate for (base, quote, date).
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
// This is a facade for clients that need access to all operations
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
