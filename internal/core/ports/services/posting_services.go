package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	"github.com/SscSPs/ledger_posting_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_posting_core/internal/dto"
)

// DocumentPostingSvc posts invoices, bills, payment allocations and opening
// balances. Each call creates at most one POSTED entry per source document.
type DocumentPostingSvc interface {
	PostInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.PostingResult, error)
	PostBill(ctx context.Context, actor domain.Actor, billID string) (*domain.PostingResult, error)
	PostPaymentAllocation(ctx context.Context, actor domain.Actor, allocationID string, bankGLAccountID string) (*domain.PostingResult, error)

	// PostOpeningBalance runs inside the caller's transaction. A nil result
	// with a nil error means the balance was zero and nothing was posted.
	PostOpeningBalance(ctx context.Context, tx repositories.Tx, actor domain.Actor, input dto.OpeningBalanceInput) (*domain.PostingResult, error)

	// RecordOpeningBalance is PostOpeningBalance in its own serializable transaction.
	RecordOpeningBalance(ctx context.Context, actor domain.Actor, input dto.OpeningBalanceInput) (*domain.PostingResult, error)
}

// TransactionPostingSvc posts categorised bank transactions.
type TransactionPostingSvc interface {
	PostTransaction(ctx context.Context, actor domain.Actor, transactionID string, targetGLAccountID string, manualRate *decimal.Decimal) (*domain.PostingResult, error)
	PostSplitTransaction(ctx context.Context, actor domain.Actor, transactionID string, splits []dto.SplitInput) (*domain.PostingResult, error)
}

// DocumentSvcFacade drives the invoice and bill lifecycles.
type DocumentSvcFacade interface {
	TransitionInvoice(ctx context.Context, actor domain.Actor, invoiceID string, target domain.DocumentStatus) (*domain.Invoice, error)
	ApplyInvoicePayment(ctx context.Context, actor domain.Actor, invoiceID string, amount int64) (*domain.Invoice, error)
	ReverseInvoicePayment(ctx context.Context, actor domain.Actor, invoiceID string, amount int64) (*domain.Invoice, error)
	CancelInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error)

	TransitionBill(ctx context.Context, actor domain.Actor, billID string, target domain.DocumentStatus) (*domain.Bill, error)
	ApplyBillPayment(ctx context.Context, actor domain.Actor, billID string, amount int64) (*domain.Bill, error)
	ReverseBillPayment(ctx context.Context, actor domain.Actor, billID string, amount int64) (*domain.Bill, error)
	CancelBill(ctx context.Context, actor domain.Actor, billID string) (*domain.Bill, error)
}
