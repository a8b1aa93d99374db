package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_posting_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_posting_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_posting_core/internal/dto"
)

// ExchangeRateService records daily rates and answers effective-rate queries.
type ExchangeRateService struct {
	BaseService
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(txManager portsrepo.TransactionManager, opts ...Option) *ExchangeRateService {
	return &ExchangeRateService{BaseService: newBaseService(txManager, opts...)}
}

var _ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)

// CreateExchangeRate handles the creation of a new exchange rate.
func (s *ExchangeRateService) CreateExchangeRate(ctx context.Context, actor domain.Actor, req dto.CreateExchangeRateRequest) (*domain.ExchangeRate, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := s.Validate(req); err != nil {
		return nil, err
	}
	if !req.Rate.IsPositive() {
		return nil, apperrors.NewValidationError("exchange rate must be positive")
	}

	rate := domain.ExchangeRate{
		ExchangeRateID: s.newID(),
		BaseCurrency:   req.BaseCurrency,
		QuoteCurrency:  req.QuoteCurrency,
		Rate:           req.Rate,
		RateDate:       domain.DateOnly(req.RateDate),
		AuditFields:    domain.NewAuditFields(actor.UserID, s.now()),
	}
	err := s.txManager.RunSerializable(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		return tx.ExchangeRates().SaveExchangeRate(ctx, rate)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to save exchange rate",
			slog.String("base", rate.BaseCurrency), slog.String("quote", rate.QuoteCurrency))
		return nil, apperrors.As(err)
	}

	s.LogInfo(ctx, "Exchange rate recorded",
		slog.String("base", rate.BaseCurrency),
		slog.String("quote", rate.QuoteCurrency),
		slog.String("rate", rate.Rate.String()),
		slog.String("rate_date", rate.RateDate.Format(time.DateOnly)))
	return &rate, nil
}

// GetRate resolves the rate effective on asOf, falling back to the inverse pair.
func (s *ExchangeRateService) GetRate(ctx context.Context, baseCurrency, quoteCurrency, asOf string) (*domain.ExchangeRate, error) {
	baseCurrency = strings.ToUpper(baseCurrency)
	quoteCurrency = strings.ToUpper(quoteCurrency)
	if len(baseCurrency) != 3 || len(quoteCurrency) != 3 {
		return nil, apperrors.NewValidationError("currency codes must be 3 letters")
	}
	date, err := time.Parse(time.DateOnly, asOf)
	if err != nil {
		return nil, apperrors.NewValidationError("date must be formatted YYYY-MM-DD")
	}

	var result *domain.ExchangeRate
	err = s.txManager.RunReadOnly(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		rate, err := s.fx.Rate(ctx, tx, baseCurrency, quoteCurrency, date, nil)
		if err != nil {
			return err
		}
		result = &domain.ExchangeRate{
			BaseCurrency:  baseCurrency,
			QuoteCurrency: quoteCurrency,
			Rate:          rate,
			RateDate:      date,
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.As(err)
	}
	return result, nil
}
