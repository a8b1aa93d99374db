package mapping

import (
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	"github.com/SscSPs/ledger_posting_core/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID: d.ExchangeRateID,
		BaseCurrency:   d.BaseCurrency,
		QuoteCurrency:  d.QuoteCurrency,
		Rate:           d.Rate,
		RateDate:       domain.DateOnly(d.RateDate),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID: m.ExchangeRateID,
		BaseCurrency:   m.BaseCurrency,
		QuoteCurrency:  m.QuoteCurrency,
		Rate:           m.Rate,
		RateDate:       domain.DateOnly(m.RateDate),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelFiscalPeriod converts a domain FiscalPeriod to a model FiscalPeriod
func ToModelFiscalPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		FiscalPeriodID: d.FiscalPeriodID,
		EntityID:       d.EntityID,
		CalendarID:     d.CalendarID,
		Name:           d.Name,
		StartDate:      domain.DateOnly(d.StartDate),
		EndDate:        domain.DateOnly(d.EndDate),
		Status:         string(d.Status),
	}
}

// ToDomainFiscalPeriod converts a model FiscalPeriod to a domain FiscalPeriod
func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		FiscalPeriodID: m.FiscalPeriodID,
		EntityID:       m.EntityID,
		CalendarID:     m.CalendarID,
		Name:           m.Name,
		StartDate:      domain.DateOnly(m.StartDate),
		EndDate:        domain.DateOnly(m.EndDate),
		Status:         domain.FiscalPeriodStatus(m.Status),
	}
}
