package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
)

// DocumentReader loads source documents, scoped to the tenant. A miss or a
// document of another tenant yields NOT_FOUND.
type DocumentReader interface {
	FindInvoiceByID(ctx context.Context, tenantID, invoiceID string) (*domain.Invoice, error)
	FindBillByID(ctx context.Context, tenantID, billID string) (*domain.Bill, error)
	FindPaymentAllocationByID(ctx context.Context, tenantID, allocationID string) (*domain.PaymentAllocation, error)
}

// DocumentWriter persists source documents. Documents are created upstream;
// the ledger only changes their status and paid amount.
type DocumentWriter interface {
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error
	SaveBill(ctx context.Context, bill domain.Bill) error
	SavePaymentAllocation(ctx context.Context, allocation domain.PaymentAllocation) error

	// UpdateDocumentState writes status and paid amount of an invoice or bill.
	UpdateDocumentState(ctx context.Context, docType domain.DocumentType, documentID string, status domain.DocumentStatus, paidAmount int64, userID string, now time.Time) error
}

// DocumentRepositoryFacade combines all document repository interfaces.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}

// BankTransactionReader loads bank feed data scoped to the tenant.
type BankTransactionReader interface {
	// FindTransactionByID returns the transaction with its splits.
	FindTransactionByID(ctx context.Context, tenantID, transactionID string) (*domain.BankTransaction, error)
	FindBankAccountByID(ctx context.Context, tenantID, bankAccountID string) (*domain.BankAccount, error)
}

// BankTransactionWriter defines write operations for bank feed data.
type BankTransactionWriter interface {
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error
	SaveTransaction(ctx context.Context, txn domain.BankTransaction) error

	// LinkJournalEntry sets (or clears, with "") the posted entry and status.
	LinkJournalEntry(ctx context.Context, transactionID, journalEntryID string, status domain.TransactionStatus, userID string, now time.Time) error

	// ReplaceSplits overwrites the transaction's splits, including their resolved GL account ids.
	ReplaceSplits(ctx context.Context, transactionID string, splits []domain.TransactionSplit) error
}

// BankTransactionRepositoryFacade combines all bank transaction repository interfaces.
type BankTransactionRepositoryFacade interface {
	BankTransactionReader
	BankTransactionWriter
}
