package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
)

// EntityReader defines read operations for entities.
type EntityReader interface {
	// FindEntityByID returns ENTITY_NOT_FOUND when the entity is absent or
	// belongs to another tenant.
	FindEntityByID(ctx context.Context, tenantID, entityID string) (*domain.Entity, error)
}

// EntityWriter defines write operations for entities.
type EntityWriter interface {
	SaveEntity(ctx context.Context, entity domain.Entity) error
}

// EntityRepositoryFacade combines all entity-related repository interfaces.
type EntityRepositoryFacade interface {
	EntityReader
	EntityWriter
}

// FiscalPeriodReader defines read operations for fiscal periods.
type FiscalPeriodReader interface {
	// FindPeriodForDate returns the period containing date, or nil when the
	// entity has no period covering it.
	FindPeriodForDate(ctx context.Context, entityID string, date time.Time) (*domain.FiscalPeriod, error)
}

// FiscalPeriodWriter defines write operations for fiscal periods.
type FiscalPeriodWriter interface {
	SavePeriod(ctx context.Context, period domain.FiscalPeriod) error
}

// FiscalPeriodRepositoryFacade combines all fiscal-period repository interfaces.
type FiscalPeriodRepositoryFacade interface {
	FiscalPeriodReader
	FiscalPeriodWriter
}

// AuditWriter appends audit records inside the caller's transaction.
type AuditWriter interface {
	WriteAudit(ctx context.Context, record domain.AuditRecord) error
}
