package memory

import (
	"context"
	"slices"
	"time"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
)

type documentRepo struct {
	st *state
}

func (r *documentRepo) FindInvoiceByID(_ context.Context, tenantID, invoiceID string) (*domain.Invoice, error) {
	inv, ok := r.st.invoices[invoiceID]
	if !ok || inv.TenantID != tenantID {
		return nil, apperrors.ErrNotFound.WithDetail("invoiceID", invoiceID)
	}
	inv.Lines = slices.Clone(inv.Lines)
	return &inv, nil
}

func (r *documentRepo) FindBillByID(_ context.Context, tenantID, billID string) (*domain.Bill, error) {
	bill, ok := r.st.bills[billID]
	if !ok || bill.TenantID != tenantID {
		return nil, apperrors.ErrNotFound.WithDetail("billID", billID)
	}
	bill.Lines = slices.Clone(bill.Lines)
	return &bill, nil
}

func (r *documentRepo) FindPaymentAllocationByID(_ context.Context, tenantID, allocationID string) (*domain.PaymentAllocation, error) {
	a, ok := r.st.allocations[allocationID]
	if !ok || a.TenantID != tenantID {
		return nil, apperrors.ErrNotFound.WithDetail("allocationID", allocationID)
	}
	return &a, nil
}

func (r *documentRepo) SaveInvoice(_ context.Context, invoice domain.Invoice) error {
	invoice.Lines = slices.Clone(invoice.Lines)
	r.st.invoices[invoice.InvoiceID] = invoice
	return nil
}

func (r *documentRepo) SaveBill(_ context.Context, bill domain.Bill) error {
	bill.Lines = slices.Clone(bill.Lines)
	r.st.bills[bill.BillID] = bill
	return nil
}

func (r *documentRepo) SavePaymentAllocation(_ context.Context, allocation domain.PaymentAllocation) error {
	r.st.allocations[allocation.AllocationID] = allocation
	return nil
}

func (r *documentRepo) UpdateDocumentState(_ context.Context, docType domain.DocumentType, documentID string, status domain.DocumentStatus, paidAmount int64, userID string, now time.Time) error {
	update := func(h *domain.DocumentHeader) {
		h.Status = status
		h.PaidAmount = paidAmount
		h.LastUpdatedBy = userID
		h.LastUpdatedAt = now
	}
	switch docType {
	case domain.DocumentInvoice:
		inv, ok := r.st.invoices[documentID]
		if !ok {
			return apperrors.ErrNotFound.WithDetail("invoiceID", documentID)
		}
		update(&inv.DocumentHeader)
		r.st.invoices[documentID] = inv
	case domain.DocumentBill:
		bill, ok := r.st.bills[documentID]
		if !ok {
			return apperrors.ErrNotFound.WithDetail("billID", documentID)
		}
		update(&bill.DocumentHeader)
		r.st.bills[documentID] = bill
	default:
		return apperrors.NewValidationError("unknown document type " + string(docType))
	}
	return nil
}

type bankTransactionRepo struct {
	st *state
}

func (r *bankTransactionRepo) FindTransactionByID(_ context.Context, tenantID, transactionID string) (*domain.BankTransaction, error) {
	t, ok := r.st.transactions[transactionID]
	if !ok || t.TenantID != tenantID {
		return nil, apperrors.ErrNotFound.WithDetail("transactionID", transactionID)
	}
	t.Splits = slices.Clone(t.Splits)
	return &t, nil
}

func (r *bankTransactionRepo) FindBankAccountByID(_ context.Context, tenantID, bankAccountID string) (*domain.BankAccount, error) {
	a, ok := r.st.bankAccounts[bankAccountID]
	if !ok || a.TenantID != tenantID {
		return nil, apperrors.ErrNotFound.WithDetail("bankAccountID", bankAccountID)
	}
	return &a, nil
}

func (r *bankTransactionRepo) SaveBankAccount(_ context.Context, account domain.BankAccount) error {
	r.st.bankAccounts[account.BankAccountID] = account
	return nil
}

func (r *bankTransactionRepo) SaveTransaction(_ context.Context, txn domain.BankTransaction) error {
	txn.Splits = slices.Clone(txn.Splits)
	r.st.transactions[txn.TransactionID] = txn
	return nil
}

func (r *bankTransactionRepo) LinkJournalEntry(_ context.Context, transactionID, journalEntryID string, status domain.TransactionStatus, userID string, now time.Time) error {
	t, ok := r.st.transactions[transactionID]
	if !ok {
		return apperrors.ErrNotFound.WithDetail("transactionID", transactionID)
	}
	t.JournalEntryID = journalEntryID
	t.Status = status
	t.LastUpdatedBy = userID
	t.LastUpdatedAt = now
	r.st.transactions[transactionID] = t
	return nil
}

func (r *bankTransactionRepo) ReplaceSplits(_ context.Context, transactionID string, splits []domain.TransactionSplit) error {
	t, ok := r.st.transactions[transactionID]
	if !ok {
		return apperrors.ErrNotFound.WithDetail("transactionID", transactionID)
	}
	t.Splits = slices.Clone(splits)
	r.st.transactions[transactionID] = t
	return nil
}
