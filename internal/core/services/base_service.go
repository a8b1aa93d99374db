package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_posting_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_posting_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_posting_core/internal/middleware"
)

// reportCachePattern drops every cached report of the tenant.
const reportCachePattern = "*"

// BaseService provides common functionality for all services
type BaseService struct {
	txManager portsrepo.TransactionManager
	cache     portssvc.ReportCacheInvalidator
	validate  *validator.Validate
	now       func() time.Time
	newID     func() string

	glCodes     domain.GLCodeMap
	entryPrefix string

	gl      *GLResolver
	fx      *FXResolver
	numbers *EntryNumberSequencer
}

// Option is a functional option for configuring services.
type Option func(*BaseService)

// WithReportCache sets the best-effort report cache invalidator.
func WithReportCache(cache portssvc.ReportCacheInvalidator) Option {
	return func(s *BaseService) {
		s.cache = cache
	}
}

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *BaseService) {
		s.now = now
	}
}

// WithIDGenerator overrides uuid generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *BaseService) {
		s.newID = newID
	}
}

// WithGLCodes injects the well-known chart-of-accounts codes.
func WithGLCodes(codes domain.GLCodeMap) Option {
	return func(s *BaseService) {
		s.glCodes = codes
	}
}

// WithEntryNumberPrefix changes the "JE-" prefix of new entry numbers.
func WithEntryNumberPrefix(prefix string) Option {
	return func(s *BaseService) {
		s.entryPrefix = prefix
	}
}

func newBaseService(txManager portsrepo.TransactionManager, opts ...Option) BaseService {
	s := BaseService{
		txManager:   txManager,
		validate:    newValidator(),
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
		glCodes:     domain.DefaultGLCodes(),
		entryPrefix: defaultEntryPrefix,
	}
	for _, opt := range opts {
		opt(&s)
	}
	s.gl = NewGLResolver(s.glCodes)
	s.fx = NewFXResolver()
	s.numbers = NewEntryNumberSequencer(s.entryPrefix)
	return s
}

// newValidator reads the same `binding` tags gin uses, so request DTOs are
// validated identically whether they arrive over HTTP or in-process.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	return v
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// logFailure logs at WARN for expected business failures and ERROR otherwise.
func (s *BaseService) logFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	appErr := apperrors.As(err)
	if appErr.Code == apperrors.CodeInternal {
		s.LogError(ctx, err, msg, keyvals...)
		return
	}
	args := append([]any{slog.String("code", string(appErr.Code)), slog.String("error", appErr.Message)}, keyvals...)
	s.GetLogger(ctx).Warn(msg, args...)
}

// Validate checks a request DTO against its binding tags.
func (s *BaseService) Validate(v any) error {
	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
			}
			return apperrors.NewValidationError(strings.Join(fields, "; "))
		}
		return apperrors.Wrap(apperrors.CodeValidation, "invalid request", err)
	}
	return nil
}

func requireActor(actor domain.Actor) error {
	if actor.UserID == "" || actor.TenantID == "" {
		return apperrors.NewValidationError("an authenticated actor with a tenant is required")
	}
	return nil
}

// writeAudit records before/after JSON images inside tx.
func (s *BaseService) writeAudit(ctx context.Context, tx portsrepo.Tx, actor domain.Actor, entityID, model, recordID string, action domain.AuditAction, before, after any) error {
	rec := domain.AuditRecord{
		AuditID:   s.newID(),
		TenantID:  actor.TenantID,
		UserID:    actor.UserID,
		EntityID:  entityID,
		Model:     model,
		RecordID:  recordID,
		Action:    action,
		CreatedAt: s.now(),
	}
	var err error
	if before != nil {
		if rec.Before, err = json.Marshal(before); err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, "failed to encode audit image", err)
		}
	}
	if after != nil {
		if rec.After, err = json.Marshal(after); err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, "failed to encode audit image", err)
		}
	}
	return tx.Audit().WriteAudit(ctx, rec)
}

// invalidateReports is best effort: errors and panics from the cache are
// logged and dropped, never returned to the caller.
func (s *BaseService) invalidateReports(ctx context.Context, tenantID string) {
	if s.cache == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.GetLogger(ctx).Warn("Report cache invalidation panicked",
				slog.String("tenant_id", tenantID),
				slog.Any("panic", r))
		}
	}()
	if err := s.cache.InvalidateReports(ctx, tenantID, reportCachePattern); err != nil {
		s.GetLogger(ctx).Warn("Report cache invalidation failed",
			slog.String("tenant_id", tenantID),
			slog.String("error", err.Error()))
	}
}

// loadEntity fetches the entity inside tx, scoped to the actor's tenant.
func loadEntity(ctx context.Context, tx portsrepo.Tx, actor domain.Actor, entityID string) (*domain.Entity, error) {
	if entityID == "" {
		return nil, apperrors.ErrEntityNotFound
	}
	return tx.Entities().FindEntityByID(ctx, actor.TenantID, entityID)
}

// ensurePeriodOpen rejects dates inside a LOCKED or CLOSED fiscal period.
// Dates not covered by any period are treated as open.
func ensurePeriodOpen(ctx context.Context, tx portsrepo.Tx, entityID string, date time.Time) error {
	period, err := tx.FiscalPeriods().FindPeriodForDate(ctx, entityID, date)
	if err != nil {
		return err
	}
	if period != nil && !period.IsPostable() {
		return apperrors.Newf(apperrors.CodeFiscalPeriodClosed,
			"Fiscal period %s is %s", period.Name, period.Status).
			WithDetail("fiscalPeriodID", period.FiscalPeriodID).
			WithDetail("date", domain.DateOnly(date).Format(time.DateOnly))
	}
	return nil
}

// ensureNotPosted enforces one active entry per source document.
func ensureNotPosted(ctx context.Context, tx portsrepo.Tx, tenantID string, sourceType domain.SourceType, sourceID string) error {
	existing, err := tx.Journals().FindActiveEntryBySource(ctx, tenantID, sourceType, sourceID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.Newf(apperrors.CodeAlreadyPosted,
			"%s %s is already posted as %s", sourceType, sourceID, existing.EntryNumber).
			WithDetail("journalEntryID", existing.JournalEntryID).
			WithDetail("entryNumber", existing.EntryNumber)
	}
	return nil
}
