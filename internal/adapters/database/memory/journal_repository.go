package memory

import (
	"context"
	"slices"
	"time"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
)

type journalRepo struct {
	st *state
}

func copyEntry(e domain.JournalEntry) domain.JournalEntry {
	e.Lines = slices.Clone(e.Lines)
	e.SourceDocument = slices.Clone(e.SourceDocument)
	return e
}

func (r *journalRepo) FindEntryByID(_ context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	e, ok := r.st.entries[entryID]
	if !ok || e.TenantID != tenantID || e.DeletedAt != nil {
		return nil, apperrors.ErrNotFound.WithDetail("journalEntryID", entryID)
	}
	out := copyEntry(e)
	return &out, nil
}

func (r *journalRepo) FindActiveEntryBySource(_ context.Context, tenantID string, sourceType domain.SourceType, sourceID string) (*domain.JournalEntry, error) {
	for _, id := range r.st.entryOrder {
		e := r.st.entries[id]
		if e.TenantID == tenantID && e.SourceType == sourceType && e.SourceID == sourceID &&
			e.Status != domain.Voided && e.DeletedAt == nil {
			out := copyEntry(e)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *journalRepo) FindReversalOf(_ context.Context, entryID string) (*domain.JournalEntry, error) {
	for _, id := range r.st.entryOrder {
		e := r.st.entries[id]
		if e.LinkedEntryID != nil && *e.LinkedEntryID == entryID && e.DeletedAt == nil {
			out := copyEntry(e)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *journalRepo) LatestEntryNumber(_ context.Context, entityID string) (string, error) {
	for i := len(r.st.entryOrder) - 1; i >= 0; i-- {
		if e := r.st.entries[r.st.entryOrder[i]]; e.EntityID == entityID {
			return e.EntryNumber, nil
		}
	}
	return "", nil
}

// SaveEntry mirrors the unique indexes of the relational schema: entry
// numbers per entity and one active entry per source document.
func (r *journalRepo) SaveEntry(_ context.Context, entry domain.JournalEntry) error {
	for _, e := range r.st.entries {
		if e.EntityID == entry.EntityID && e.EntryNumber == entry.EntryNumber {
			return apperrors.ErrSerializationFailure.WithDetail("entryNumber", entry.EntryNumber)
		}
		if entry.SourceType != domain.SourceManual && entry.SourceID != "" &&
			e.TenantID == entry.TenantID &&
			e.SourceType == entry.SourceType && e.SourceID == entry.SourceID &&
			e.Status != domain.Voided && e.DeletedAt == nil {
			return apperrors.ErrAlreadyPosted.WithDetail("journalEntryID", e.JournalEntryID)
		}
	}
	r.st.entries[entry.JournalEntryID] = copyEntry(entry)
	r.st.entryOrder = append(r.st.entryOrder, entry.JournalEntryID)
	return nil
}

func (r *journalRepo) UpdateEntryStatus(_ context.Context, entryID string, status domain.JournalStatus, userID string, now time.Time) error {
	e, ok := r.st.entries[entryID]
	if !ok {
		return apperrors.ErrNotFound.WithDetail("journalEntryID", entryID)
	}
	e.Status = status
	e.LastUpdatedBy = userID
	e.LastUpdatedAt = now
	r.st.entries[entryID] = e
	return nil
}

func (r *journalRepo) MarkEntryApproved(_ context.Context, entryID string, approverID string, now time.Time) error {
	e, ok := r.st.entries[entryID]
	if !ok {
		return apperrors.ErrNotFound.WithDetail("journalEntryID", entryID)
	}
	e.Status = domain.Posted
	e.ApprovedBy = approverID
	e.ApprovedAt = &now
	e.LastUpdatedBy = approverID
	e.LastUpdatedAt = now
	r.st.entries[entryID] = e
	return nil
}

func (r *journalRepo) SoftDeleteEntry(_ context.Context, entryID string, userID string, now time.Time) error {
	e, ok := r.st.entries[entryID]
	if !ok {
		return apperrors.ErrNotFound.WithDetail("journalEntryID", entryID)
	}
	e.DeletedAt = &now
	e.LastUpdatedBy = userID
	e.LastUpdatedAt = now
	r.st.entries[entryID] = e
	return nil
}
