package handlers_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	"github.com/SscSPs/ledger_posting_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_posting_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_posting_core/internal/dto"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, actor domain.Actor, entityID string, accountID string) (*domain.GLAccount, error) {
	args := m.Called(ctx, actor, entityID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, actor domain.Actor, entityID string, req dto.CreateAccountRequest) (*domain.GLAccount, error) {
	args := m.Called(ctx, actor, entityID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, actor domain.Actor, entityID string, accountID string) error {
	args := m.Called(ctx, actor, entityID, accountID)
	return args.Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) GetRate(ctx context.Context, baseCurrency, quoteCurrency, asOf string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, baseCurrency, quoteCurrency, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) CreateExchangeRate(ctx context.Context, actor domain.Actor, req dto.CreateExchangeRateRequest) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, actor, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) CreateEntry(ctx context.Context, actor domain.Actor, entityID string, req dto.CreateEntryRequest) (*domain.PostingResult, error) {
	args := m.Called(ctx, actor, entityID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockJournalService) ApproveEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, actor, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) VoidEntry(ctx context.Context, actor domain.Actor, entryID string) (*domain.PostingResult, error) {
	args := m.Called(ctx, actor, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockJournalService) DeleteEntry(ctx context.Context, actor domain.Actor, entryID string) error {
	args := m.Called(ctx, actor, entryID)
	return args.Error(0)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock DocumentPostingService ---
type MockDocumentPostingService struct {
	mock.Mock
}

func (m *MockDocumentPostingService) result(args mock.Arguments) (*domain.PostingResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockDocumentPostingService) PostInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.PostingResult, error) {
	return m.result(m.Called(ctx, actor, invoiceID))
}

func (m *MockDocumentPostingService) PostBill(ctx context.Context, actor domain.Actor, billID string) (*domain.PostingResult, error) {
	return m.result(m.Called(ctx, actor, billID))
}

func (m *MockDocumentPostingService) PostPaymentAllocation(ctx context.Context, actor domain.Actor, allocationID string, bankGLAccountID string) (*domain.PostingResult, error) {
	return m.result(m.Called(ctx, actor, allocationID, bankGLAccountID))
}

func (m *MockDocumentPostingService) PostOpeningBalance(ctx context.Context, tx repositories.Tx, actor domain.Actor, input dto.OpeningBalanceInput) (*domain.PostingResult, error) {
	return m.result(m.Called(ctx, tx, actor, input))
}

func (m *MockDocumentPostingService) RecordOpeningBalance(ctx context.Context, actor domain.Actor, input dto.OpeningBalanceInput) (*domain.PostingResult, error) {
	return m.result(m.Called(ctx, actor, input))
}

var _ portssvc.DocumentPostingSvc = (*MockDocumentPostingService)(nil)

// --- Mock TransactionPostingService ---
type MockTransactionPostingService struct {
	mock.Mock
}

func (m *MockTransactionPostingService) PostTransaction(ctx context.Context, actor domain.Actor, transactionID string, targetGLAccountID string, manualRate *decimal.Decimal) (*domain.PostingResult, error) {
	args := m.Called(ctx, actor, transactionID, targetGLAccountID, manualRate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockTransactionPostingService) PostSplitTransaction(ctx context.Context, actor domain.Actor, transactionID string, splits []dto.SplitInput) (*domain.PostingResult, error) {
	args := m.Called(ctx, actor, transactionID, splits)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

var _ portssvc.TransactionPostingSvc = (*MockTransactionPostingService)(nil)

// --- Mock DocumentService ---
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) invoice(args mock.Arguments) (*domain.Invoice, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockDocumentService) bill(args mock.Arguments) (*domain.Bill, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockDocumentService) TransitionInvoice(ctx context.Context, actor domain.Actor, invoiceID string, target domain.DocumentStatus) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, actor, invoiceID, target))
}

func (m *MockDocumentService) ApplyInvoicePayment(ctx context.Context, actor domain.Actor, invoiceID string, amount int64) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, actor, invoiceID, amount))
}

func (m *MockDocumentService) ReverseInvoicePayment(ctx context.Context, actor domain.Actor, invoiceID string, amount int64) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, actor, invoiceID, amount))
}

func (m *MockDocumentService) CancelInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, actor, invoiceID))
}

func (m *MockDocumentService) TransitionBill(ctx context.Context, actor domain.Actor, billID string, target domain.DocumentStatus) (*domain.Bill, error) {
	return m.bill(m.Called(ctx, actor, billID, target))
}

func (m *MockDocumentService) ApplyBillPayment(ctx context.Context, actor domain.Actor, billID string, amount int64) (*domain.Bill, error) {
	return m.bill(m.Called(ctx, actor, billID, amount))
}

func (m *MockDocumentService) ReverseBillPayment(ctx context.Context, actor domain.Actor, billID string, amount int64) (*domain.Bill, error) {
	return m.bill(m.Called(ctx, actor, billID, amount))
}

func (m *MockDocumentService) CancelBill(ctx context.Context, actor domain.Actor, billID string) (*domain.Bill, error) {
	return m.bill(m.Called(ctx, actor, billID))
}

var _ portssvc.DocumentSvcFacade = (*MockDocumentService)(nil)
