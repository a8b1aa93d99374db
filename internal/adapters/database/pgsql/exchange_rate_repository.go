package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	"github.com/SscSPs/ledger_posting_core/internal/models"
	"github.com/SscSPs/ledger_posting_core/internal/utils/mapping"
)

type exchangeRateRepository struct {
	q querier
}

// FindLatestRate picks the nearest rate on or before asOf, so weekend
// postings use the previous business day's rate.
func (r *exchangeRateRepository) FindLatestRate(ctx context.Context, baseCurrency, quoteCurrency string, asOf time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT exchange_rate_id, base_currency, quote_currency, rate, rate_date,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		WHERE base_currency = $1 AND quote_currency = $2 AND rate_date <= $3
		ORDER BY rate_date DESC
		LIMIT 1;
	`
	var m models.ExchangeRate
	err := r.q.QueryRow(ctx, query, baseCurrency, quoteCurrency, domain.DateOnly(asOf)).Scan(
		&m.ExchangeRateID,
		&m.BaseCurrency,
		&m.QuoteCurrency,
		&m.Rate,
		&m.RateDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, "failed to find exchange rate "+baseCurrency+"/"+quoteCurrency)
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

func (r *exchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)
	query := `
		INSERT INTO exchange_rates (exchange_rate_id, base_currency, quote_currency, rate, rate_date,
		                            created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (base_currency, quote_currency, rate_date)
		DO UPDATE SET rate = EXCLUDED.rate,
		              last_updated_at = EXCLUDED.last_updated_at,
		              last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.q.Exec(ctx, query,
		m.ExchangeRateID,
		m.BaseCurrency,
		m.QuoteCurrency,
		m.Rate,
		m.RateDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return translate(err, "failed to save exchange rate "+m.BaseCurrency+"/"+m.QuoteCurrency)
}
