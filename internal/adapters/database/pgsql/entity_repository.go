package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	"github.com/SscSPs/ledger_posting_core/internal/models"
	"github.com/SscSPs/ledger_posting_core/internal/utils/mapping"
)

type entityRepository struct {
	q querier
}

func (r *entityRepository) FindEntityByID(ctx context.Context, tenantID, entityID string) (*domain.Entity, error) {
	query := `
		SELECT entity_id, tenant_id, name, functional_currency, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM entities
		WHERE entity_id = $1 AND tenant_id = $2;
	`
	var m models.Entity
	err := r.q.QueryRow(ctx, query, entityID, tenantID).Scan(
		&m.EntityID,
		&m.TenantID,
		&m.Name,
		&m.FunctionalCurrency,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrEntityNotFound.WithDetail("entityID", entityID), "failed to find entity "+entityID)
	}
	entity := mapping.ToDomainEntity(m)
	return &entity, nil
}

func (r *entityRepository) SaveEntity(ctx context.Context, entity domain.Entity) error {
	m := mapping.ToModelEntity(entity)
	query := `
		INSERT INTO entities (entity_id, tenant_id, name, functional_currency, is_active,
		                      created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.q.Exec(ctx, query,
		m.EntityID, m.TenantID, m.Name, m.FunctionalCurrency, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translate(err, "failed to insert entity "+m.EntityID)
}

type fiscalPeriodRepository struct {
	q querier
}

func (r *fiscalPeriodRepository) FindPeriodForDate(ctx context.Context, entityID string, date time.Time) (*domain.FiscalPeriod, error) {
	query := `
		SELECT fiscal_period_id, entity_id, calendar_id, name, start_date, end_date, status
		FROM fiscal_periods
		WHERE entity_id = $1 AND start_date <= $2 AND end_date >= $2
		ORDER BY start_date DESC
		LIMIT 1;
	`
	var m models.FiscalPeriod
	err := r.q.QueryRow(ctx, query, entityID, domain.DateOnly(date)).Scan(
		&m.FiscalPeriodID,
		&m.EntityID,
		&m.CalendarID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, "failed to find fiscal period for entity "+entityID)
	}
	period := mapping.ToDomainFiscalPeriod(m)
	return &period, nil
}

func (r *fiscalPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)
	query := `
		INSERT INTO fiscal_periods (fiscal_period_id, entity_id, calendar_id, name, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (fiscal_period_id) DO UPDATE SET status = EXCLUDED.status;
	`
	_, err := r.q.Exec(ctx, query,
		m.FiscalPeriodID, m.EntityID, m.CalendarID, m.Name, m.StartDate, m.EndDate, m.Status,
	)
	return translate(err, "failed to save fiscal period "+m.FiscalPeriodID)
}

type auditRepository struct {
	q querier
}

func (r *auditRepository) WriteAudit(ctx context.Context, record domain.AuditRecord) error {
	query := `
		INSERT INTO audit_log (audit_id, tenant_id, user_id, entity_id, model, record_id, action, before, after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.q.Exec(ctx, query,
		record.AuditID,
		record.TenantID,
		record.UserID,
		mapping.NullableString(record.EntityID),
		record.Model,
		record.RecordID,
		string(record.Action),
		jsonOrNull(record.Before),
		jsonOrNull(record.After),
		record.CreatedAt,
	)
	return translate(err, "failed to write audit record for "+record.Model+" "+record.RecordID)
}

// jsonOrNull keeps absent images as SQL NULL instead of the JSON literal null.
func jsonOrNull(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
