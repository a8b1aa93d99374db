package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_posting_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_posting_core/internal/utils/accounting"
)

const journalEntryModel = "JournalEntry"

// postingDraft is everything needed to persist one entry.
type postingDraft struct {
	entity        *domain.Entity
	sourceType    domain.SourceType
	sourceID      string
	date          time.Time
	memo          string
	currency      string
	status        domain.JournalStatus
	linkedEntryID *string
	lines         []domain.JournalLine
	snapshot      any
}

// entryAuditImage is the subset of an entry recorded in audit images.
type entryAuditImage struct {
	JournalEntryID string               `json:"journalEntryID"`
	EntryNumber    string               `json:"entryNumber"`
	Status         domain.JournalStatus `json:"status"`
	SourceType     domain.SourceType    `json:"sourceType,omitempty"`
	SourceID       string               `json:"sourceID,omitempty"`
	LinkedEntryID  *string              `json:"linkedEntryID,omitempty"`
	Debit          int64                `json:"debit"`
	Credit         int64                `json:"credit"`
}

func auditImage(e *domain.JournalEntry) entryAuditImage {
	debit, credit := e.Totals()
	return entryAuditImage{
		JournalEntryID: e.JournalEntryID,
		EntryNumber:    e.EntryNumber,
		Status:         e.Status,
		SourceType:     e.SourceType,
		SourceID:       e.SourceID,
		LinkedEntryID:  e.LinkedEntryID,
		Debit:          debit,
		Credit:         credit,
	}
}

// persistEntry re-checks balance, numbers the entry, writes it with a
// write-once source snapshot and records the audit trail, all inside tx.
func (s *BaseService) persistEntry(ctx context.Context, tx portsrepo.Tx, actor domain.Actor, d postingDraft) (*domain.JournalEntry, error) {
	if err := accounting.ValidateLineShape(d.lines); err != nil {
		return nil, err
	}
	if err := accounting.ValidateJournalBalance(d.lines); err != nil {
		return nil, err
	}

	number, err := s.numbers.Next(ctx, tx, d.entity.EntityID)
	if err != nil {
		return nil, err
	}

	var snapshot json.RawMessage
	if d.snapshot != nil {
		if snapshot, err = json.Marshal(d.snapshot); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, "failed to encode source snapshot", err)
		}
	}

	currency := d.currency
	if currency == "" {
		currency = d.entity.FunctionalCurrency
	}

	now := s.now()
	entryID := s.newID()
	lines := make([]domain.JournalLine, len(d.lines))
	for i, l := range d.lines {
		l.LineID = s.newID()
		l.JournalEntryID = entryID
		l.LineNo = i + 1
		if l.Currency == "" {
			l.Currency = currency
		}
		lines[i] = l
	}

	entry := domain.JournalEntry{
		JournalEntryID: entryID,
		TenantID:       actor.TenantID,
		EntityID:       d.entity.EntityID,
		EntryNumber:    number,
		EntryDate:      domain.DateOnly(d.date),
		Memo:           d.memo,
		Currency:       currency,
		SourceType:     d.sourceType,
		SourceID:       d.sourceID,
		SourceDocument: snapshot,
		Status:         d.status,
		LinkedEntryID:  d.linkedEntryID,
		Lines:          lines,
		AuditFields:    domain.NewAuditFields(actor.UserID, now),
	}

	if err := tx.Journals().SaveEntry(ctx, entry); err != nil {
		return nil, err
	}

	action := domain.AuditCreate
	if entry.Status == domain.Posted {
		action = domain.AuditPost
	}
	if err := s.writeAudit(ctx, tx, actor, entry.EntityID, journalEntryModel, entry.JournalEntryID, action, nil, auditImage(&entry)); err != nil {
		return nil, err
	}

	s.LogDebug(ctx, "Journal entry persisted",
		slog.String("journal_entry_id", entry.JournalEntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("source_type", string(entry.SourceType)),
		slog.String("source_id", entry.SourceID))
	return &entry, nil
}

// runPosting wraps a posting body in one serializable transaction, then
// invalidates report caches once the commit has succeeded.
func (s *BaseService) runPosting(ctx context.Context, actor domain.Actor, op string, attrs []any, body func(ctx context.Context, tx portsrepo.Tx) (*domain.JournalEntry, error)) (*domain.PostingResult, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	var entry *domain.JournalEntry
	err := s.txManager.RunSerializable(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		var err error
		entry, err = body(ctx, tx)
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, op+" failed", attrs...)
		return nil, apperrors.As(err)
	}
	if entry == nil {
		return nil, nil
	}

	s.invalidateReports(ctx, actor.TenantID)

	s.LogInfo(ctx, op+" succeeded", append(attrs,
		slog.String("journal_entry_id", entry.JournalEntryID),
		slog.String("entry_number", entry.EntryNumber))...)
	return domain.NewPostingResult(entry), nil
}
