package services

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_posting_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_posting_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_posting_core/internal/dto"
	"github.com/SscSPs/ledger_posting_core/internal/utils/accounting"
)

// journalService provides the manual journal entry lifecycle.
type journalService struct {
	BaseService
}

// NewJournalService creates a new JournalService.
func NewJournalService(txManager portsrepo.TransactionManager, opts ...Option) portssvc.JournalSvcFacade {
	return &journalService{BaseService: newBaseService(txManager, opts...)}
}

// Ensure JournalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// GetEntry retrieves an entry with its lines.
func (s *journalService) GetEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.JournalEntry, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var entry *domain.JournalEntry
	err := s.txManager.RunReadOnly(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		var err error
		entry, err = tx.Journals().FindEntryByID(ctx, actor.TenantID, entryID)
		return err
	})
	if err != nil {
		return nil, apperrors.As(err)
	}
	return entry, nil
}

// CreateEntry persists a balanced DRAFT entry authored by hand.
func (s *journalService) CreateEntry(ctx context.Context, actor domain.Actor, entityID string, req dto.CreateEntryRequest) (*domain.PostingResult, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}
	attrs := []any{slog.String("entity_id", entityID), slog.Int("lines", len(req.Lines))}
	return s.runPosting(ctx, actor, "CreateEntry", attrs, func(ctx context.Context, tx portsrepo.Tx) (*domain.JournalEntry, error) {
		entity, err := loadEntity(ctx, tx, actor, entityID)
		if err != nil {
			return nil, err
		}
		if err := ensurePeriodOpen(ctx, tx, entity.EntityID, req.EntryDate); err != nil {
			return nil, err
		}
		if err := s.checkLineAccounts(ctx, tx, entity, req.Lines); err != nil {
			return nil, err
		}

		currency := req.Currency
		if currency == "" {
			currency = entity.FunctionalCurrency
		}
		lines, err := s.manualLines(ctx, tx, entity, currency, req)
		if err != nil {
			return nil, err
		}

		return s.persistEntry(ctx, tx, actor, postingDraft{
			entity:   entity,
			date:     req.EntryDate,
			memo:     req.Memo,
			currency: currency,
			status:   domain.Draft,
			lines:    lines,
		})
	})
}

// checkLineAccounts requires every referenced account to exist, be active
// and belong to the entity.
func (s *journalService) checkLineAccounts(ctx context.Context, tx portsrepo.Tx, entity *domain.Entity, lines []dto.EntryLineRequest) error {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.GLAccountID]; ok {
			continue
		}
		seen[l.GLAccountID] = struct{}{}
		ids = append(ids, l.GLAccountID)
	}

	found, err := tx.Accounts().FindAccountsByIDs(ctx, entity.TenantID, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		acc, ok := found[id]
		if err := checkAccountScope(entity, id, acc, ok); err != nil {
			return err
		}
	}
	return nil
}

// manualLines converts request lines. Foreign entries either derive base
// amounts from the rate (when no line supplies any) or keep the supplied
// base amounts, which must balance on their own.
func (s *journalService) manualLines(ctx context.Context, tx portsrepo.Tx, entity *domain.Entity, currency string, req dto.CreateEntryRequest) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.JournalLine{
			LineNo:      i + 1,
			GLAccountID: l.GLAccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Memo:        l.Memo,
		}
	}
	if err := accounting.ValidateLineShape(lines); err != nil {
		return nil, err
	}
	if currency == entity.FunctionalCurrency {
		return lines, nil
	}

	var baseDebit, baseCredit int64
	for _, l := range req.Lines {
		var okDebit, okCredit bool
		baseDebit, okDebit = domain.AddAmount(baseDebit, l.BaseDebit)
		baseCredit, okCredit = domain.AddAmount(baseCredit, l.BaseCredit)
		if !okDebit || !okCredit {
			return nil, apperrors.Newf(apperrors.CodeValidation,
				"base amounts exceed the maximum amount of %d", domain.MaxAmount).
				WithDetail("maxAmount", domain.MaxAmount)
		}
	}

	if baseDebit == 0 && baseCredit == 0 {
		fx, err := s.fx.ForDocument(ctx, tx, currency, entity.FunctionalCurrency, req.EntryDate, req.ExchangeRate)
		if err != nil {
			return nil, err
		}
		postings := make([]accounting.Posting, len(lines))
		for i, l := range lines {
			postings[i] = accounting.Posting{GLAccountID: l.GLAccountID, Amount: l.Amount(), Direction: l.Direction(), Memo: l.Memo}
		}
		return accounting.BuildLines(postings, fx)
	}

	rate, err := s.suppliedRate(req.ExchangeRate, lines, baseDebit)
	if err != nil {
		return nil, err
	}
	for i, l := range req.Lines {
		lines[i].Currency = currency
		lines[i].ExchangeRate = &rate
		lines[i].BaseDebit = l.BaseDebit
		lines[i].BaseCredit = l.BaseCredit
		if (lines[i].Debit != 0 && l.BaseCredit != 0) || (lines[i].Credit != 0 && l.BaseDebit != 0) {
			return nil, apperrors.NewValidationError("base amounts must be on the same side as the line amount")
		}
	}
	return lines, nil
}

// suppliedRate snapshots the override, or the rate implied by the supplied
// base amounts when no override was given.
func (s *journalService) suppliedRate(override *decimal.Decimal, lines []domain.JournalLine, baseDebit int64) (decimal.Decimal, error) {
	if override != nil {
		if !override.IsPositive() {
			return decimal.Zero, apperrors.NewValidationError("exchange rate must be positive")
		}
		return *override, nil
	}
	debit, _ := domain.SumLines(lines)
	if debit == 0 || baseDebit == 0 {
		return decimal.Zero, apperrors.NewValidationError("cannot derive an exchange rate from the supplied base amounts")
	}
	return decimal.NewFromInt(baseDebit).DivRound(decimal.NewFromInt(debit), inverseRatePrecision), nil
}

// ApproveEntry moves a DRAFT entry to POSTED. The approver must differ from
// the creator unless they are the owner of a single-operator business.
func (s *journalService) ApproveEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.JournalEntry, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var approved *domain.JournalEntry
	err := s.txManager.RunSerializable(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		entry, err := tx.Journals().FindEntryByID(ctx, actor.TenantID, entryID)
		if err != nil {
			return err
		}
		if entry.Status != domain.Draft {
			return apperrors.Newf(apperrors.CodeAlreadyPosted,
				"Journal entry %s is %s, only DRAFT entries can be approved", entry.EntryNumber, entry.Status).
				WithDetail("journalEntryID", entry.JournalEntryID).
				WithDetail("status", string(entry.Status))
		}
		if entry.CreatedBy == actor.UserID && !actor.CanSelfApprove() {
			return apperrors.ErrSeparationOfDuties.
				WithDetail("journalEntryID", entry.JournalEntryID).
				WithDetail("createdBy", entry.CreatedBy)
		}
		if err := ensurePeriodOpen(ctx, tx, entry.EntityID, entry.EntryDate); err != nil {
			return err
		}
		if err := accounting.ValidateJournalBalance(entry.Lines); err != nil {
			return err
		}

		before := auditImage(entry)
		now := s.now()
		if err := tx.Journals().MarkEntryApproved(ctx, entry.JournalEntryID, actor.UserID, now); err != nil {
			return err
		}
		entry.Status = domain.Posted
		entry.ApprovedBy = actor.UserID
		entry.ApprovedAt = &now
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = actor.UserID

		if err := s.writeAudit(ctx, tx, actor, entry.EntityID, journalEntryModel, entry.JournalEntryID, domain.AuditApprove, before, auditImage(entry)); err != nil {
			return err
		}
		approved = entry
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "ApproveEntry failed", slog.String("journal_entry_id", entryID))
		return nil, apperrors.As(err)
	}

	s.invalidateReports(ctx, actor.TenantID)
	s.LogInfo(ctx, "Journal entry approved",
		slog.String("journal_entry_id", approved.JournalEntryID),
		slog.String("entry_number", approved.EntryNumber))
	return approved, nil
}

// VoidEntry creates the reversing entry, dated like the original, and marks
// the original VOIDED. An entry can be reversed once.
func (s *journalService) VoidEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.PostingResult, error) {
	attrs := []any{slog.String("voided_entry_id", entryID)}
	return s.runPosting(ctx, actor, "VoidEntry", attrs, func(ctx context.Context, tx portsrepo.Tx) (*domain.JournalEntry, error) {
		journals := tx.Journals()
		original, err := journals.FindEntryByID(ctx, actor.TenantID, entryID)
		if err != nil {
			return nil, err
		}
		switch original.Status {
		case domain.Draft:
			return nil, apperrors.Newf(apperrors.CodeInvalidStatusTransition,
				"Journal entry %s is DRAFT; delete it instead of voiding", original.EntryNumber).
				WithDetail("journalEntryID", original.JournalEntryID)
		case domain.Voided:
			return nil, alreadyReversed(original, nil)
		}
		if original.SourceType == domain.SourceReversal {
			return nil, apperrors.Newf(apperrors.CodeImmutablePostedEntry,
				"Journal entry %s is itself a reversal and cannot be voided", original.EntryNumber).
				WithDetail("journalEntryID", original.JournalEntryID)
		}
		reversal, err := journals.FindReversalOf(ctx, original.JournalEntryID)
		if err != nil {
			return nil, err
		}
		if reversal != nil {
			return nil, alreadyReversed(original, reversal)
		}

		entity, err := loadEntity(ctx, tx, actor, original.EntityID)
		if err != nil {
			return nil, err
		}
		if err := ensurePeriodOpen(ctx, tx, entity.EntityID, original.EntryDate); err != nil {
			return nil, err
		}

		linked := original.JournalEntryID
		entry, err := s.persistEntry(ctx, tx, actor, postingDraft{
			entity:        entity,
			sourceType:    domain.SourceReversal,
			sourceID:      original.JournalEntryID,
			date:          original.EntryDate,
			memo:          "Reversal of " + original.EntryNumber,
			currency:      original.Currency,
			status:        domain.Posted,
			linkedEntryID: &linked,
			lines:         accounting.ReversalLines(original.Lines),
			snapshot:      auditImage(original),
		})
		if err != nil {
			return nil, err
		}

		before := auditImage(original)
		if err := journals.UpdateEntryStatus(ctx, original.JournalEntryID, domain.Voided, actor.UserID, s.now()); err != nil {
			return nil, err
		}
		original.Status = domain.Voided

		if original.SourceType == domain.SourceBankTransaction {
			if err := tx.BankTransactions().LinkJournalEntry(ctx, original.SourceID, "", domain.TxnCategorized, actor.UserID, s.now()); err != nil {
				return nil, err
			}
		}

		if err := s.writeAudit(ctx, tx, actor, original.EntityID, journalEntryModel, original.JournalEntryID, domain.AuditVoid, before, auditImage(original)); err != nil {
			return nil, err
		}
		return entry, nil
	})
}

func alreadyReversed(original, reversal *domain.JournalEntry) error {
	err := apperrors.Newf(apperrors.CodeAlreadyVoided,
		"Journal entry %s already has a reversal", original.EntryNumber).
		WithDetail("journalEntryID", original.JournalEntryID)
	if reversal != nil {
		err = err.WithDetail("reversalEntryID", reversal.JournalEntryID)
	}
	return err
}

// DeleteEntry soft-deletes a DRAFT entry. Posted history is voided, never deleted.
func (s *journalService) DeleteEntry(ctx context.Context, actor domain.Actor, entryID string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	err := s.txManager.RunSerializable(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		entry, err := tx.Journals().FindEntryByID(ctx, actor.TenantID, entryID)
		if err != nil {
			return err
		}
		if entry.Status != domain.Draft {
			return apperrors.Newf(apperrors.CodeImmutablePostedEntry,
				"Journal entry %s is %s and cannot be deleted; void it instead", entry.EntryNumber, entry.Status).
				WithDetail("journalEntryID", entry.JournalEntryID)
		}
		if err := tx.Journals().SoftDeleteEntry(ctx, entry.JournalEntryID, actor.UserID, s.now()); err != nil {
			return err
		}
		return s.writeAudit(ctx, tx, actor, entry.EntityID, journalEntryModel, entry.JournalEntryID, domain.AuditDelete, auditImage(entry), nil)
	})
	if err != nil {
		s.logFailure(ctx, err, "DeleteEntry failed", slog.String("journal_entry_id", entryID))
		return apperrors.As(err)
	}
	s.LogInfo(ctx, "Draft journal entry deleted", slog.String("journal_entry_id", entryID))
	return nil
}
