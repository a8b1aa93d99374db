package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the base->quote rate effective from RateDate.
type ExchangeRate struct {
	ExchangeRateID string          `db:"exchange_rate_id"`
	BaseCurrency   string          `db:"base_currency"`
	QuoteCurrency  string          `db:"quote_currency"`
	Rate           decimal.Decimal `db:"rate"`
	RateDate       time.Time       `db:"rate_date"`
	AuditFields
}
