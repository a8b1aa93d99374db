package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_posting_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_posting_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_posting_core/internal/dto"
	"github.com/SscSPs/ledger_posting_core/internal/utils/accounting"
)

// documentPostingService posts invoices, bills, payment allocations and
// opening balances as POSTED entries.
type documentPostingService struct {
	BaseService
}

// NewDocumentPostingService creates a new DocumentPostingSvc.
func NewDocumentPostingService(txManager portsrepo.TransactionManager, opts ...Option) portssvc.DocumentPostingSvc {
	return &documentPostingService{BaseService: newBaseService(txManager, opts...)}
}

var _ portssvc.DocumentPostingSvc = (*documentPostingService)(nil)

// documentSnapshot is the write-once copy of the fields an invoice or bill
// posting was computed from.
type documentSnapshot struct {
	DocumentType   domain.DocumentType   `json:"documentType"`
	DocumentID     string                `json:"documentID"`
	Number         string                `json:"number"`
	CounterpartyID string                `json:"counterpartyID"`
	IssueDate      time.Time             `json:"issueDate"`
	DueDate        time.Time             `json:"dueDate"`
	Currency       string                `json:"currency"`
	Subtotal       int64                 `json:"subtotal"`
	TaxAmount      int64                 `json:"taxAmount"`
	Total          int64                 `json:"total"`
	ExchangeRate   string                `json:"exchangeRate,omitempty"`
	Lines          []domain.DocumentLine `json:"lines"`
}

func newDocumentSnapshot(docType domain.DocumentType, id, counterparty string, h domain.DocumentHeader, lines []domain.DocumentLine, fx *accounting.FX) documentSnapshot {
	snap := documentSnapshot{
		DocumentType:   docType,
		DocumentID:     id,
		Number:         h.Number,
		CounterpartyID: counterparty,
		IssueDate:      h.IssueDate,
		DueDate:        h.DueDate,
		Currency:       h.Currency,
		Subtotal:       h.Subtotal,
		TaxAmount:      h.TaxAmount,
		Total:          h.Total,
		Lines:          lines,
	}
	if fx != nil {
		snap.ExchangeRate = fx.Rate.String()
	}
	return snap
}

// detailPostings turns document lines into postings, defaulting each line to
// fallback unless it names its own account of the same entity. A document
// without lines posts its subtotal as a single line.
func (s *documentPostingService) detailPostings(ctx context.Context, tx portsrepo.Tx, entity *domain.Entity, h domain.DocumentHeader, lines []domain.DocumentLine, fallback *domain.GLAccount) ([]accounting.Posting, error) {
	if len(lines) == 0 {
		return []accounting.Posting{{GLAccountID: fallback.GLAccountID, Amount: h.Subtotal, Memo: h.Number}}, nil
	}
	out := make([]accounting.Posting, 0, len(lines))
	for _, l := range lines {
		accountID := fallback.GLAccountID
		if l.GLAccountID != "" {
			acc, err := s.gl.ResolveByID(ctx, tx, entity, l.GLAccountID)
			if err != nil {
				return nil, err
			}
			accountID = acc.GLAccountID
		}
		out = append(out, accounting.Posting{GLAccountID: accountID, Amount: l.Amount, Memo: l.Description})
	}
	return out, nil
}

func postableOrError(kind string, status domain.DocumentStatus) error {
	if domain.IsPostable(status) {
		return nil
	}
	return apperrors.Newf(apperrors.CodeInvalidStatusTransition,
		"Cannot post a %s %s; it must be approved first", status, kind).
		WithDetail("status", string(status))
}

// PostInvoice: DR Accounts Receivable, CR Revenue per line, CR Tax Payable.
func (s *documentPostingService) PostInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.PostingResult, error) {
	attrs := []any{slog.String("source_type", string(domain.SourceInvoice)), slog.String("source_id", invoiceID)}
	return s.runPosting(ctx, actor, "PostInvoice", attrs, func(ctx context.Context, tx portsrepo.Tx) (*domain.JournalEntry, error) {
		inv, err := tx.Documents().FindInvoiceByID(ctx, actor.TenantID, invoiceID)
		if err != nil {
			return nil, err
		}
		if err := postableOrError("invoice", inv.Status); err != nil {
			return nil, err
		}
		entity, err := loadEntity(ctx, tx, actor, inv.EntityID)
		if err != nil {
			return nil, err
		}
		if err := ensureNotPosted(ctx, tx, actor.TenantID, domain.SourceInvoice, inv.InvoiceID); err != nil {
			return nil, err
		}
		if err := ensurePeriodOpen(ctx, tx, entity.EntityID, inv.IssueDate); err != nil {
			return nil, err
		}

		accts, err := s.gl.ResolveRoles(ctx, tx, entity.EntityID,
			domain.RoleAccountsReceivable, domain.RoleRevenue, domain.RoleTaxPayable)
		if err != nil {
			return nil, err
		}
		revenue, err := s.detailPostings(ctx, tx, entity, inv.DocumentHeader, inv.Lines, accts[domain.RoleRevenue])
		if err != nil {
			return nil, err
		}
		fx, err := s.fx.ForDocument(ctx, tx, inv.Currency, entity.FunctionalCurrency, inv.IssueDate, nil)
		if err != nil {
			return nil, err
		}
		lines, err := accounting.BuildLines(accounting.InvoicePostings(
			accts[domain.RoleAccountsReceivable].GLAccountID,
			accts[domain.RoleTaxPayable].GLAccountID,
			inv.Total, inv.TaxAmount, revenue), fx)
		if err != nil {
			return nil, err
		}

		return s.persistEntry(ctx, tx, actor, postingDraft{
			entity:     entity,
			sourceType: domain.SourceInvoice,
			sourceID:   inv.InvoiceID,
			date:       inv.IssueDate,
			memo:       "Invoice " + inv.Number,
			currency:   inv.Currency,
			status:     domain.Posted,
			lines:      lines,
			snapshot:   newDocumentSnapshot(domain.DocumentInvoice, inv.InvoiceID, inv.CustomerID, inv.DocumentHeader, inv.Lines, fx),
		})
	})
}

// PostBill: DR Expense per line, DR recoverable tax, CR Accounts Payable.
func (s *documentPostingService) PostBill(ctx context.Context, actor domain.Actor, billID string) (*domain.PostingResult, error) {
	attrs := []any{slog.String("source_type", string(domain.SourceBill)), slog.String("source_id", billID)}
	return s.runPosting(ctx, actor, "PostBill", attrs, func(ctx context.Context, tx portsrepo.Tx) (*domain.JournalEntry, error) {
		bill, err := tx.Documents().FindBillByID(ctx, actor.TenantID, billID)
		if err != nil {
			return nil, err
		}
		if err := postableOrError("bill", bill.Status); err != nil {
			return nil, err
		}
		entity, err := loadEntity(ctx, tx, actor, bill.EntityID)
		if err != nil {
			return nil, err
		}
		if err := ensureNotPosted(ctx, tx, actor.TenantID, domain.SourceBill, bill.BillID); err != nil {
			return nil, err
		}
		if err := ensurePeriodOpen(ctx, tx, entity.EntityID, bill.IssueDate); err != nil {
			return nil, err
		}

		accts, err := s.gl.ResolveRoles(ctx, tx, entity.EntityID,
			domain.RoleAccountsPayable, domain.RoleExpense, domain.RoleTaxRecoverable)
		if err != nil {
			return nil, err
		}
		expenses, err := s.detailPostings(ctx, tx, entity, bill.DocumentHeader, bill.Lines, accts[domain.RoleExpense])
		if err != nil {
			return nil, err
		}
		fx, err := s.fx.ForDocument(ctx, tx, bill.Currency, entity.FunctionalCurrency, bill.IssueDate, nil)
		if err != nil {
			return nil, err
		}
		lines, err := accounting.BuildLines(accounting.BillPostings(
			accts[domain.RoleAccountsPayable].GLAccountID,
			accts[domain.RoleTaxRecoverable].GLAccountID,
			bill.Total, bill.TaxAmount, expenses), fx)
		if err != nil {
			return nil, err
		}

		return s.persistEntry(ctx, tx, actor, postingDraft{
			entity:     entity,
			sourceType: domain.SourceBill,
			sourceID:   bill.BillID,
			date:       bill.IssueDate,
			memo:       "Bill " + bill.Number,
			currency:   bill.Currency,
			status:     domain.Posted,
			lines:      lines,
			snapshot:   newDocumentSnapshot(domain.DocumentBill, bill.BillID, bill.VendorID, bill.DocumentHeader, bill.Lines, fx),
		})
	})
}

type paymentSnapshot struct {
	AllocationID    string              `json:"allocationID"`
	PaymentID       string              `json:"paymentID"`
	DocumentType    domain.DocumentType `json:"documentType"`
	DocumentID      string              `json:"documentID"`
	DocumentNumber  string              `json:"documentNumber"`
	Amount          int64               `json:"amount"`
	Currency        string              `json:"currency"`
	PaymentDate     time.Time           `json:"paymentDate"`
	BankGLAccountID string              `json:"bankGLAccountID"`
	ExchangeRate    string              `json:"exchangeRate,omitempty"`
}

// PostPaymentAllocation: AR payments DR Bank / CR AR, AP payments DR AP / CR Bank.
// The allocated document's paid amount is not touched here.
func (s *documentPostingService) PostPaymentAllocation(ctx context.Context, actor domain.Actor, allocationID string, bankGLAccountID string) (*domain.PostingResult, error) {
	attrs := []any{slog.String("source_type", string(domain.SourcePaymentAllocation)), slog.String("source_id", allocationID)}
	return s.runPosting(ctx, actor, "PostPaymentAllocation", attrs, func(ctx context.Context, tx portsrepo.Tx) (*domain.JournalEntry, error) {
		alloc, err := tx.Documents().FindPaymentAllocationByID(ctx, actor.TenantID, allocationID)
		if err != nil {
			return nil, err
		}
		if alloc.Amount <= 0 {
			return nil, apperrors.NewValidationError("payment allocation amount must be positive")
		}
		entity, err := loadEntity(ctx, tx, actor, alloc.EntityID)
		if err != nil {
			return nil, err
		}
		if err := ensureNotPosted(ctx, tx, actor.TenantID, domain.SourcePaymentAllocation, alloc.AllocationID); err != nil {
			return nil, err
		}
		if err := ensurePeriodOpen(ctx, tx, entity.EntityID, alloc.PaymentDate); err != nil {
			return nil, err
		}

		var (
			docHeader domain.DocumentHeader
			role      domain.GLRole
		)
		switch alloc.DocumentType {
		case domain.DocumentInvoice:
			inv, err := tx.Documents().FindInvoiceByID(ctx, actor.TenantID, alloc.DocumentID)
			if err != nil {
				return nil, err
			}
			docHeader, role = inv.DocumentHeader, domain.RoleAccountsReceivable
		case domain.DocumentBill:
			bill, err := tx.Documents().FindBillByID(ctx, actor.TenantID, alloc.DocumentID)
			if err != nil {
				return nil, err
			}
			docHeader, role = bill.DocumentHeader, domain.RoleAccountsPayable
		default:
			return nil, apperrors.NewValidationError("unknown allocation document type " + string(alloc.DocumentType))
		}
		if docHeader.EntityID != entity.EntityID {
			return nil, apperrors.ErrCrossEntityReference.WithDetail("documentID", alloc.DocumentID)
		}

		control, err := s.gl.ResolveRoles(ctx, tx, entity.EntityID, role)
		if err != nil {
			return nil, err
		}
		var bank *domain.GLAccount
		if bankGLAccountID != "" {
			bank, err = s.gl.ResolveByID(ctx, tx, entity, bankGLAccountID)
		} else {
			var banks map[domain.GLRole]*domain.GLAccount
			banks, err = s.gl.ResolveRoles(ctx, tx, entity.EntityID, domain.RoleBank)
			if err == nil {
				bank = banks[domain.RoleBank]
			}
		}
		if err != nil {
			return nil, err
		}

		fx, err := s.fx.ForDocument(ctx, tx, alloc.Currency, entity.FunctionalCurrency, alloc.PaymentDate, nil)
		if err != nil {
			return nil, err
		}

		var postings []accounting.Posting
		if role == domain.RoleAccountsReceivable {
			postings = accounting.ReceivablePaymentPostings(bank.GLAccountID, control[role].GLAccountID, alloc.Amount)
		} else {
			postings = accounting.PayablePaymentPostings(bank.GLAccountID, control[role].GLAccountID, alloc.Amount)
		}
		lines, err := accounting.BuildLines(postings, fx)
		if err != nil {
			return nil, err
		}

		snap := paymentSnapshot{
			AllocationID:    alloc.AllocationID,
			PaymentID:       alloc.PaymentID,
			DocumentType:    alloc.DocumentType,
			DocumentID:      alloc.DocumentID,
			DocumentNumber:  docHeader.Number,
			Amount:          alloc.Amount,
			Currency:        alloc.Currency,
			PaymentDate:     alloc.PaymentDate,
			BankGLAccountID: bank.GLAccountID,
		}
		if fx != nil {
			snap.ExchangeRate = fx.Rate.String()
		}

		return s.persistEntry(ctx, tx, actor, postingDraft{
			entity:     entity,
			sourceType: domain.SourcePaymentAllocation,
			sourceID:   alloc.AllocationID,
			date:       alloc.PaymentDate,
			memo:       "Payment for " + docHeader.Number,
			currency:   alloc.Currency,
			status:     domain.Posted,
			lines:      lines,
			snapshot:   snap,
		})
	})
}

type openingBalanceSnapshot struct {
	AccountID          string                 `json:"accountID"`
	GLAccountID        string                 `json:"glAccountID"`
	AccountType        domain.BankAccountType `json:"accountType"`
	OpeningBalance     int64                  `json:"openingBalance"`
	OpeningBalanceDate time.Time              `json:"openingBalanceDate"`
}

// PostOpeningBalance posts against Opening Balance Equity inside the caller's
// transaction. It is keyed on the bank account id; a zero balance posts
// nothing. Cache invalidation is left to the caller, who owns the commit.
func (s *documentPostingService) PostOpeningBalance(ctx context.Context, tx portsrepo.Tx, actor domain.Actor, input dto.OpeningBalanceInput) (*domain.PostingResult, error) {
	entry, err := s.postOpeningBalance(ctx, tx, actor, input)
	if err != nil || entry == nil {
		return nil, err
	}
	return domain.NewPostingResult(entry), nil
}

// RecordOpeningBalance runs PostOpeningBalance in its own serializable transaction.
func (s *documentPostingService) RecordOpeningBalance(ctx context.Context, actor domain.Actor, input dto.OpeningBalanceInput) (*domain.PostingResult, error) {
	attrs := []any{slog.String("source_type", string(domain.SourceOpeningBalance)), slog.String("source_id", input.AccountID)}
	return s.runPosting(ctx, actor, "RecordOpeningBalance", attrs, func(ctx context.Context, tx portsrepo.Tx) (*domain.JournalEntry, error) {
		return s.postOpeningBalance(ctx, tx, actor, input)
	})
}

func (s *documentPostingService) postOpeningBalance(ctx context.Context, tx portsrepo.Tx, actor domain.Actor, input dto.OpeningBalanceInput) (*domain.JournalEntry, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := s.Validate(input); err != nil {
		return nil, err
	}
	if input.OpeningBalance == 0 {
		s.LogDebug(ctx, "Zero opening balance, nothing to post", slog.String("account_id", input.AccountID))
		return nil, nil
	}

	entity, err := loadEntity(ctx, tx, actor, input.EntityID)
	if err != nil {
		return nil, err
	}
	if err := ensureNotPosted(ctx, tx, actor.TenantID, domain.SourceOpeningBalance, input.AccountID); err != nil {
		return nil, err
	}
	if err := ensurePeriodOpen(ctx, tx, entity.EntityID, input.OpeningBalanceDate); err != nil {
		return nil, err
	}

	account, err := s.gl.ResolveByID(ctx, tx, entity, input.GLAccountID)
	if err != nil {
		return nil, err
	}
	equity, err := s.gl.ResolveRoles(ctx, tx, entity.EntityID, domain.RoleOpeningBalanceEquity)
	if err != nil {
		return nil, err
	}

	lines, err := accounting.BuildLines(accounting.OpeningBalancePostings(
		account.GLAccountID,
		equity[domain.RoleOpeningBalanceEquity].GLAccountID,
		input.OpeningBalance,
		input.AccountType.IsCreditNormal()), nil)
	if err != nil {
		return nil, err
	}

	return s.persistEntry(ctx, tx, actor, postingDraft{
		entity:     entity,
		sourceType: domain.SourceOpeningBalance,
		sourceID:   input.AccountID,
		date:       input.OpeningBalanceDate,
		memo:       "Opening balance",
		status:     domain.Posted,
		lines:      lines,
		snapshot: openingBalanceSnapshot{
			AccountID:          input.AccountID,
			GLAccountID:        input.GLAccountID,
			AccountType:        input.AccountType,
			OpeningBalance:     input.OpeningBalance,
			OpeningBalanceDate: input.OpeningBalanceDate,
		},
	})
}
