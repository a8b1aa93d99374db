package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate converts one unit of BaseCurrency into QuoteCurrency on RateDate.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	BaseCurrency   string          `json:"baseCurrency"`
	QuoteCurrency  string          `json:"quoteCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	RateDate       time.Time       `json:"rateDate"`
	AuditFields
}
