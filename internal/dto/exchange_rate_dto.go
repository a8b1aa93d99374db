package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
)

// CreateExchangeRateRequest defines the structure for recording a daily rate.
type CreateExchangeRateRequest struct {
	BaseCurrency  string          `json:"baseCurrency" binding:"required,len=3,uppercase"`
	QuoteCurrency string          `json:"quoteCurrency" binding:"required,len=3,uppercase,nefield=BaseCurrency"`
	Rate          decimal.Decimal `json:"rate" binding:"required"` // must be > 0, checked in the service
	RateDate      time.Time       `json:"rateDate" binding:"required"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	BaseCurrency   string          `json:"baseCurrency"`
	QuoteCurrency  string          `json:"quoteCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	RateDate       time.Time       `json:"rateDate"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO.
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		BaseCurrency:   rate.BaseCurrency,
		QuoteCurrency:  rate.QuoteCurrency,
		Rate:           rate.Rate,
		RateDate:       rate.RateDate,
		CreatedAt:      rate.CreatedAt,
		CreatedBy:      rate.CreatedBy,
	}
}
