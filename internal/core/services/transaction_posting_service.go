package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_posting_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_posting_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_posting_core/internal/dto"
	"github.com/SscSPs/ledger_posting_core/internal/utils/accounting"
)

// transactionPostingService categorises imported bank transactions into the ledger.
type transactionPostingService struct {
	BaseService
}

// NewTransactionPostingService creates a new TransactionPostingSvc.
func NewTransactionPostingService(txManager portsrepo.TransactionManager, opts ...Option) portssvc.TransactionPostingSvc {
	return &transactionPostingService{BaseService: newBaseService(txManager, opts...)}
}

var _ portssvc.TransactionPostingSvc = (*transactionPostingService)(nil)

type transactionSnapshot struct {
	TransactionID string                    `json:"transactionID"`
	BankAccountID string                    `json:"bankAccountID"`
	BankGLAccount string                    `json:"bankGLAccountID"`
	TxnDate       time.Time                 `json:"txnDate"`
	Amount        int64                     `json:"amount"`
	Currency      string                    `json:"currency"`
	Description   string                    `json:"description"`
	TargetAccount string                    `json:"targetGLAccountID,omitempty"`
	Splits        []domain.TransactionSplit `json:"splits,omitempty"`
	ExchangeRate  string                    `json:"exchangeRate,omitempty"`
	ManualRate    bool                      `json:"manualRate,omitempty"`
}

// postableTransaction holds what both posting paths load before building lines.
type postableTransaction struct {
	txn    *domain.BankTransaction
	entity *domain.Entity
	bank   *domain.GLAccount
}

// loadPostable runs the shared preconditions: status, idempotency, mapping
// and fiscal period.
func (s *transactionPostingService) loadPostable(ctx context.Context, tx portsrepo.Tx, actor domain.Actor, transactionID string) (*postableTransaction, error) {
	bankTxns := tx.BankTransactions()
	txn, err := bankTxns.FindTransactionByID(ctx, actor.TenantID, transactionID)
	if err != nil {
		return nil, err
	}
	switch {
	case txn.Status == domain.TxnExcluded:
		return nil, apperrors.Newf(apperrors.CodeInvalidStatusTransition,
			"Transaction %s is excluded and cannot be posted", txn.TransactionID).
			WithDetail("status", string(txn.Status))
	case txn.JournalEntryID != "":
		return nil, apperrors.Newf(apperrors.CodeAlreadyPosted,
			"Transaction %s is already posted", txn.TransactionID).
			WithDetail("journalEntryID", txn.JournalEntryID)
	case txn.Amount == 0:
		return nil, apperrors.NewValidationError("cannot post a zero-amount transaction")
	}

	entity, err := loadEntity(ctx, tx, actor, txn.EntityID)
	if err != nil {
		return nil, err
	}
	if err := ensureNotPosted(ctx, tx, actor.TenantID, domain.SourceBankTransaction, txn.TransactionID); err != nil {
		return nil, err
	}
	if err := ensurePeriodOpen(ctx, tx, entity.EntityID, txn.TxnDate); err != nil {
		return nil, err
	}

	account, err := bankTxns.FindBankAccountByID(ctx, actor.TenantID, txn.BankAccountID)
	if err != nil {
		return nil, err
	}
	if account.GLAccountID == "" {
		return nil, apperrors.ErrBankAccountNotMapped.WithDetail("bankAccountID", account.BankAccountID)
	}
	bank, err := s.gl.ResolveByID(ctx, tx, entity, account.GLAccountID)
	if err != nil {
		return nil, err
	}
	return &postableTransaction{txn: txn, entity: entity, bank: bank}, nil
}

func (s *transactionPostingService) link(ctx context.Context, tx portsrepo.Tx, actor domain.Actor, txn *domain.BankTransaction, entry *domain.JournalEntry) error {
	return tx.BankTransactions().LinkJournalEntry(ctx, txn.TransactionID, entry.JournalEntryID, domain.TxnPosted, actor.UserID, s.now())
}

// PostTransaction posts the whole transaction against one category account.
// manualRate overrides the stored FX rate when the transaction is foreign.
func (s *transactionPostingService) PostTransaction(ctx context.Context, actor domain.Actor, transactionID string, targetGLAccountID string, manualRate *decimal.Decimal) (*domain.PostingResult, error) {
	attrs := []any{slog.String("source_type", string(domain.SourceBankTransaction)), slog.String("source_id", transactionID)}
	return s.runPosting(ctx, actor, "PostTransaction", attrs, func(ctx context.Context, tx portsrepo.Tx) (*domain.JournalEntry, error) {
		if targetGLAccountID == "" {
			return nil, apperrors.NewValidationError("target GL account is required")
		}
		p, err := s.loadPostable(ctx, tx, actor, transactionID)
		if err != nil {
			return nil, err
		}
		target, err := s.gl.ResolveByID(ctx, tx, p.entity, targetGLAccountID)
		if err != nil {
			return nil, err
		}
		fx, err := s.fx.ForDocument(ctx, tx, p.txn.Currency, p.entity.FunctionalCurrency, p.txn.TxnDate, manualRate)
		if err != nil {
			return nil, err
		}
		lines, err := accounting.BuildLines(
			accounting.TransactionPostings(p.bank.GLAccountID, target.GLAccountID, p.txn.Amount, p.txn.Description), fx)
		if err != nil {
			return nil, err
		}

		snap := newTransactionSnapshot(p, fx, manualRate != nil)
		snap.TargetAccount = target.GLAccountID

		entry, err := s.persistEntry(ctx, tx, actor, postingDraft{
			entity:     p.entity,
			sourceType: domain.SourceBankTransaction,
			sourceID:   p.txn.TransactionID,
			date:       p.txn.TxnDate,
			memo:       p.txn.Description,
			currency:   p.txn.Currency,
			status:     domain.Posted,
			lines:      lines,
			snapshot:   snap,
		})
		if err != nil {
			return nil, err
		}
		if err := s.link(ctx, tx, actor, p.txn, entry); err != nil {
			return nil, err
		}
		return entry, nil
	})
}

// PostSplitTransaction posts one category line per split and one aggregate
// bank line. Split amounts must add up to the absolute transaction amount.
func (s *transactionPostingService) PostSplitTransaction(ctx context.Context, actor domain.Actor, transactionID string, splits []dto.SplitInput) (*domain.PostingResult, error) {
	attrs := []any{slog.String("source_type", string(domain.SourceBankTransaction)), slog.String("source_id", transactionID), slog.Int("splits", len(splits))}
	return s.runPosting(ctx, actor, "PostSplitTransaction", attrs, func(ctx context.Context, tx portsrepo.Tx) (*domain.JournalEntry, error) {
		if len(splits) == 0 {
			return nil, apperrors.NewValidationError("at least one split is required")
		}
		for _, sp := range splits {
			if err := s.Validate(sp); err != nil {
				return nil, err
			}
		}
		p, err := s.loadPostable(ctx, tx, actor, transactionID)
		if err != nil {
			return nil, err
		}

		var total int64
		for _, sp := range splits {
			var ok bool
			if total, ok = domain.AddAmount(total, sp.Amount); !ok {
				return nil, apperrors.Newf(apperrors.CodeValidation,
					"split amounts exceed the maximum amount of %d", domain.MaxAmount).
					WithDetail("maxAmount", domain.MaxAmount)
			}
		}
		if want := domain.AbsInt64(p.txn.Amount); total != want {
			return nil, apperrors.Newf(apperrors.CodeSplitAmountMismatch,
				"Split amounts total %d but transaction amount is %d", total, want).
				WithDetail("splitTotal", total).
				WithDetail("transactionAmount", want)
		}

		resolved := make([]domain.TransactionSplit, len(splits))
		postings := make([]accounting.Posting, len(splits))
		for i, sp := range splits {
			acc, err := s.gl.ResolveByID(ctx, tx, p.entity, sp.GLAccountID)
			if err != nil {
				return nil, err
			}
			resolved[i] = domain.TransactionSplit{
				SplitID:       s.newID(),
				TransactionID: p.txn.TransactionID,
				GLAccountID:   acc.GLAccountID,
				Amount:        sp.Amount,
				Memo:          sp.Memo,
			}
			postings[i] = accounting.Posting{GLAccountID: acc.GLAccountID, Amount: sp.Amount, Memo: sp.Memo}
		}

		fx, err := s.fx.ForDocument(ctx, tx, p.txn.Currency, p.entity.FunctionalCurrency, p.txn.TxnDate, nil)
		if err != nil {
			return nil, err
		}
		lines, err := accounting.BuildLines(
			accounting.SplitPostings(p.bank.GLAccountID, p.txn.Amount, postings, p.txn.Description), fx)
		if err != nil {
			return nil, err
		}

		snap := newTransactionSnapshot(p, fx, false)
		snap.Splits = resolved

		entry, err := s.persistEntry(ctx, tx, actor, postingDraft{
			entity:     p.entity,
			sourceType: domain.SourceBankTransaction,
			sourceID:   p.txn.TransactionID,
			date:       p.txn.TxnDate,
			memo:       p.txn.Description,
			currency:   p.txn.Currency,
			status:     domain.Posted,
			lines:      lines,
			snapshot:   snap,
		})
		if err != nil {
			return nil, err
		}
		if err := tx.BankTransactions().ReplaceSplits(ctx, p.txn.TransactionID, resolved); err != nil {
			return nil, err
		}
		if err := s.link(ctx, tx, actor, p.txn, entry); err != nil {
			return nil, err
		}
		return entry, nil
	})
}

func newTransactionSnapshot(p *postableTransaction, fx *accounting.FX, manual bool) transactionSnapshot {
	snap := transactionSnapshot{
		TransactionID: p.txn.TransactionID,
		BankAccountID: p.txn.BankAccountID,
		BankGLAccount: p.bank.GLAccountID,
		TxnDate:       p.txn.TxnDate,
		Amount:        p.txn.Amount,
		Currency:      p.txn.Currency,
		Description:   p.txn.Description,
	}
	if fx != nil {
		snap.ExchangeRate = fx.Rate.String()
		snap.ManualRate = manual
	}
	return snap
}
