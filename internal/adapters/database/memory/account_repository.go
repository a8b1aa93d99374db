package memory

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
)

type entityRepo struct {
	st *state
}

func (r *entityRepo) FindEntityByID(_ context.Context, tenantID, entityID string) (*domain.Entity, error) {
	e, ok := r.st.entities[entityID]
	if !ok || e.TenantID != tenantID {
		return nil, apperrors.ErrEntityNotFound.WithDetail("entityID", entityID)
	}
	return &e, nil
}

func (r *entityRepo) SaveEntity(_ context.Context, entity domain.Entity) error {
	r.st.entities[entity.EntityID] = entity
	return nil
}

type accountRepo struct {
	st *state
}

func (r *accountRepo) FindAccountByID(_ context.Context, entityID, accountID string) (*domain.GLAccount, error) {
	a, ok := r.st.accounts[accountID]
	if !ok || a.EntityID != entityID {
		return nil, apperrors.ErrGLAccountNotFound.WithDetail("glAccountID", accountID)
	}
	return &a, nil
}

func (r *accountRepo) FindAccountByCode(_ context.Context, entityID, code string) (*domain.GLAccount, error) {
	for _, a := range r.st.accounts {
		if a.EntityID == entityID && a.Code == code {
			return &a, nil
		}
	}
	return nil, apperrors.ErrGLAccountNotFound.WithDetail("code", code)
}

func (r *accountRepo) FindAccountsByIDs(_ context.Context, tenantID string, accountIDs []string) (map[string]domain.GLAccount, error) {
	out := make(map[string]domain.GLAccount, len(accountIDs))
	for _, id := range accountIDs {
		a, ok := r.st.accounts[id]
		if !ok || r.st.entities[a.EntityID].TenantID != tenantID {
			continue
		}
		out[id] = a
	}
	return out, nil
}

func (r *accountRepo) HasDraftLines(_ context.Context, accountID string) (bool, error) {
	for _, e := range r.st.entries {
		if e.Status != domain.Draft || e.DeletedAt != nil {
			continue
		}
		for _, l := range e.Lines {
			if l.GLAccountID == accountID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *accountRepo) SaveAccount(_ context.Context, account domain.GLAccount) error {
	for _, a := range r.st.accounts {
		if a.EntityID == account.EntityID && a.Code == account.Code {
			return apperrors.ErrDuplicateAccountCode.WithDetail("code", account.Code)
		}
	}
	r.st.accounts[account.GLAccountID] = account
	return nil
}

func (r *accountRepo) SetAccountActive(_ context.Context, accountID string, active bool, userID string, now time.Time) error {
	a, ok := r.st.accounts[accountID]
	if !ok {
		return apperrors.ErrGLAccountNotFound.WithDetail("glAccountID", accountID)
	}
	a.IsActive = active
	a.LastUpdatedBy = userID
	a.LastUpdatedAt = now
	r.st.accounts[accountID] = a
	return nil
}

type fiscalPeriodRepo struct {
	st *state
}

func (r *fiscalPeriodRepo) FindPeriodForDate(_ context.Context, entityID string, date time.Time) (*domain.FiscalPeriod, error) {
	for _, p := range r.st.periods {
		if p.EntityID == entityID && p.Contains(date) {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fiscalPeriodRepo) SavePeriod(_ context.Context, period domain.FiscalPeriod) error {
	r.st.periods[period.FiscalPeriodID] = period
	return nil
}

type exchangeRateRepo struct {
	st *state
}

func rateKey(base, quote string, date time.Time) string {
	return base + "|" + quote + "|" + domain.DateOnly(date).Format(time.DateOnly)
}

func (r *exchangeRateRepo) FindLatestRate(_ context.Context, baseCurrency, quoteCurrency string, asOf time.Time) (*domain.ExchangeRate, error) {
	day := domain.DateOnly(asOf)
	var best *domain.ExchangeRate
	for _, rate := range r.st.rates {
		if rate.BaseCurrency != baseCurrency || rate.QuoteCurrency != quoteCurrency {
			continue
		}
		if domain.DateOnly(rate.RateDate).After(day) {
			continue
		}
		if best == nil || rate.RateDate.After(best.RateDate) {
			rate := rate
			best = &rate
		}
	}
	return best, nil
}

func (r *exchangeRateRepo) SaveExchangeRate(_ context.Context, rate domain.ExchangeRate) error {
	r.st.rates[rateKey(rate.BaseCurrency, rate.QuoteCurrency, rate.RateDate)] = rate
	return nil
}

type auditRepo struct {
	st *state
}

func (r *auditRepo) WriteAudit(_ context.Context, record domain.AuditRecord) error {
	r.st.audit = append(r.st.audit, record)
	return nil
}
