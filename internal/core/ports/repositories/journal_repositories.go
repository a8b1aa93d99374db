package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
)

// JournalReader defines read operations for journal entries.
type JournalReader interface {
	// FindEntryByID retrieves a non-deleted entry with its lines, scoped to the tenant.
	FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// FindActiveEntryBySource returns the non-voided, non-deleted entry posted
	// from (sourceType, sourceID), or nil when there is none.
	FindActiveEntryBySource(ctx context.Context, tenantID string, sourceType domain.SourceType, sourceID string) (*domain.JournalEntry, error)

	// FindReversalOf returns the entry whose LinkedEntryID is entryID, or nil.
	FindReversalOf(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// LatestEntryNumber returns the entry number of the most recently created
	// entry of the entity, deleted entries included, or "" for a new entity.
	LatestEntryNumber(ctx context.Context, entityID string) (string, error)
}

// JournalWriter defines write operations for journal entries.
type JournalWriter interface {
	// SaveEntry inserts the header and all lines. Entries are insert-only;
	// the source snapshot is never rewritten.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntryStatus moves the entry to status.
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.JournalStatus, userID string, now time.Time) error

	// MarkEntryApproved sets status POSTED and records the approver.
	MarkEntryApproved(ctx context.Context, entryID string, approverID string, now time.Time) error

	// SoftDeleteEntry stamps deleted_at on a DRAFT entry.
	SoftDeleteEntry(ctx context.Context, entryID string, userID string, now time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
