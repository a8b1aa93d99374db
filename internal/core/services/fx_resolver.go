package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	portsrepo "github.com/SscSPs/ledger_posting_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_posting_core/internal/utils/accounting"
)

// inverseRatePrecision is the number of decimals kept when inverting a rate.
const inverseRatePrecision = 10

// FXResolver returns the rate converting one unit of a document currency
// into the functional currency.
type FXResolver struct{}

// NewFXResolver creates an FXResolver.
func NewFXResolver() *FXResolver {
	return &FXResolver{}
}

// Rate returns override when given, otherwise the latest stored rate dated on
// or before asOf ("nearest past", so weekends use the prior business day).
// The inverse pair is tried when the direct pair has no rate.
func (r *FXResolver) Rate(ctx context.Context, tx portsrepo.Tx, from, to string, asOf time.Time, override *decimal.Decimal) (decimal.Decimal, error) {
	if override != nil {
		if !override.IsPositive() {
			return decimal.Zero, apperrors.NewValidationError("exchange rate must be positive")
		}
		return *override, nil
	}
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	rates := tx.ExchangeRates()
	direct, err := rates.FindLatestRate(ctx, from, to, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	if direct != nil {
		return direct.Rate, nil
	}

	inverse, err := rates.FindLatestRate(ctx, to, from, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	if inverse != nil && inverse.Rate.IsPositive() {
		return decimal.NewFromInt(1).DivRound(inverse.Rate, inverseRatePrecision), nil
	}

	return decimal.Zero, apperrors.Newf(apperrors.CodeMissingFXRate,
		"No %s/%s exchange rate on or before %s", from, to, asOf.Format(time.DateOnly)).
		WithDetail("from", from).
		WithDetail("to", to).
		WithDetail("date", asOf.Format(time.DateOnly))
}

// ForDocument returns nil when the document is in the functional currency,
// otherwise the FX description the line builder needs.
func (r *FXResolver) ForDocument(ctx context.Context, tx portsrepo.Tx, docCurrency, functional string, asOf time.Time, override *decimal.Decimal) (*accounting.FX, error) {
	if docCurrency == "" || docCurrency == functional {
		return nil, nil
	}
	rate, err := r.Rate(ctx, tx, docCurrency, functional, asOf, override)
	if err != nil {
		return nil, err
	}
	return &accounting.FX{Currency: docCurrency, Rate: rate}, nil
}
