package services

import (
	"context"

	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	"github.com/SscSPs/ledger_posting_core/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetEntry retrieves an entry with its lines, scoped to the actor's tenant.
	GetEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.JournalEntry, error)
}

// JournalWriterSvc defines the manual entry lifecycle: DRAFT -> POSTED -> VOIDED.
type JournalWriterSvc interface {
	// CreateEntry persists a balanced DRAFT entry.
	CreateEntry(ctx context.Context, actor domain.Actor, entityID string, req dto.CreateEntryRequest) (*domain.PostingResult, error)

	// ApproveEntry moves a DRAFT entry to POSTED under separation of duties.
	ApproveEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.JournalEntry, error)

	// VoidEntry creates the reversing entry and marks the original VOIDED.
	VoidEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.PostingResult, error)

	// DeleteEntry soft-deletes a DRAFT entry.
	DeleteEntry(ctx context.Context, actor domain.Actor, entryID string) error
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
