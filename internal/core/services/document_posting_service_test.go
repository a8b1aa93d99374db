package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_posting_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_posting_core/internal/core/services"
	"github.com/SscSPs/ledger_posting_core/internal/dto"
)

func (suite *LedgerServiceTestSuite) TestPostInvoice_ThreeBalancedLines() {
	suite.seedInvoice("inv-1", domain.DocSent, "CAD", 100000, 13000)

	result, err := suite.svc.DocumentPosting.PostInvoice(suite.ctx, suite.accountant, "inv-1")
	suite.Require().NoError(err)
	suite.Require().NotNil(result)

	suite.Equal("JE-001", result.EntryNumber)
	suite.Equal(int64(113000), result.Amount)
	suite.Require().Len(result.Lines, 3)

	suite.Equal(glID("1200"), result.Lines[0].GLAccountID)
	suite.Equal(int64(113000), result.Lines[0].Debit)
	suite.Equal(glID("4000"), result.Lines[1].GLAccountID)
	suite.Equal(int64(100000), result.Lines[1].Credit)
	suite.Equal(glID("2200"), result.Lines[2].GLAccountID)
	suite.Equal(int64(13000), result.Lines[2].Credit)
	for _, l := range result.Lines {
		suite.False(l.IsForeign())
		suite.Equal("CAD", l.Currency, "functional lines carry the entry currency")
	}
	suite.assertBalanced(result.Lines)

	entries := suite.store.EntriesForEntity(entityID)
	suite.Require().Len(entries, 1)
	suite.Equal(domain.Posted, entries[0].Status)
	suite.Equal(domain.SourceInvoice, entries[0].SourceType)
	suite.Contains(string(entries[0].SourceDocument), `"total":113000`)

	audit := suite.store.AuditRecords()
	suite.Require().Len(audit, 1)
	suite.Equal(domain.AuditPost, audit[0].Action)
	suite.Equal(result.JournalEntryID, audit[0].RecordID)

	suite.cache.AssertCalled(suite.T(), "InvalidateReports", mock.Anything, tenantID, "*")
}

func (suite *LedgerServiceTestSuite) TestPostInvoice_DraftIsRejected() {
	suite.seedInvoice("inv-draft", domain.DocDraft, "CAD", 1000, 0)

	_, err := suite.svc.DocumentPosting.PostInvoice(suite.ctx, suite.accountant, "inv-draft")
	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrInvalidStatusTransition))
	suite.Empty(suite.store.EntriesForEntity(entityID))
}

func (suite *LedgerServiceTestSuite) TestPostInvoice_OtherTenantIsNotFound() {
	suite.seedInvoice("inv-1", domain.DocSent, "CAD", 1000, 0)
	stranger := domain.Actor{UserID: "user-x", TenantID: "tenant-2", Role: domain.RoleOwner}

	_, err := suite.svc.DocumentPosting.PostInvoice(suite.ctx, stranger, "inv-1")
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *LedgerServiceTestSuite) TestPostInvoice_SequentialIdempotency() {
	suite.seedInvoice("inv-1", domain.DocSent, "CAD", 100000, 13000)

	first, err := suite.svc.DocumentPosting.PostInvoice(suite.ctx, suite.accountant, "inv-1")
	suite.Require().NoError(err)

	_, err = suite.svc.DocumentPosting.PostInvoice(suite.ctx, suite.accountant, "inv-1")
	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrAlreadyPosted))
	suite.Equal(first.JournalEntryID, apperrors.As(err).Details["journalEntryID"])
	suite.Len(suite.store.EntriesForEntity(entityID), 1)
}

func (suite *LedgerServiceTestSuite) TestPostInvoice_ConcurrentIdempotency() {
	suite.seedInvoice("inv-1", domain.DocSent, "CAD", 100000, 13000)

	const workers = 10
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = suite.svc.DocumentPosting.PostInvoice(suite.ctx, suite.accountant, "inv-1")
		}(i)
	}
	wg.Wait()

	var ok, posted int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, apperrors.ErrAlreadyPosted):
			posted++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(1, ok)
	suite.Equal(workers-1, posted)
	suite.Len(suite.store.EntriesForEntity(entityID), 1)
}

func (suite *LedgerServiceTestSuite) TestPostInvoice_ConcurrentEntryNumbersAreDistinct() {
	const n = 20
	for i := 0; i < n; i++ {
		suite.seedInvoice(fmt.Sprintf("inv-%02d", i), domain.DocSent, "CAD", 1000, 130)
	}

	numbers := make([]string, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := suite.svc.DocumentPosting.PostInvoice(suite.ctx, suite.accountant, fmt.Sprintf("inv-%02d", i))
			errs[i] = err
			if err == nil {
				numbers[i] = res.EntryNumber
			}
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for i := range numbers {
		suite.Require().NoError(errs[i])
		suite.False(seen[numbers[i]], "duplicate entry number %s", numbers[i])
		seen[numbers[i]] = true
	}
	suite.Len(seen, n)
}

func (suite *LedgerServiceTestSuite) TestPostInvoice_FiscalPeriodLock() {
	suite.seedInvoice("inv-1", domain.DocSent, "CAD", 1000, 0)

	for _, status := range []domain.FiscalPeriodStatus{domain.PeriodLocked, domain.PeriodClosed} {
		suite.seedPeriod(status)
		_, err := suite.svc.DocumentPosting.PostInvoice(suite.ctx, suite.accountant, "inv-1")
		suite.True(errors.Is(err, apperrors.ErrFiscalPeriodClosed), "status %s", status)
	}

	suite.seedPeriod(domain.PeriodOpen)
	_, err := suite.svc.DocumentPosting.PostInvoice(suite.ctx, suite.accountant, "inv-1")
	suite.NoError(err)
}

func (suite *LedgerServiceTestSuite) TestPostInvoice_ForeignWithoutRate() {
	suite.seedInvoice("inv-eur", domain.DocSent, "EUR", 1000, 0)

	_, err := suite.svc.DocumentPosting.PostInvoice(suite.ctx, suite.accountant, "inv-eur")
	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrMissingFXRate))
	suite.Equal("EUR", apperrors.As(err).Details["from"])
}

func (suite *LedgerServiceTestSuite) TestPostInvoice_ForeignUsesInverseRate() {
	suite.seedInvoice("inv-usd", domain.DocSent, "USD", 100000, 13000)
	suite.seedRate("CAD", "USD", "0.8", day(2026, 3, 1))

	result, err := suite.svc.DocumentPosting.PostInvoice(suite.ctx, suite.accountant, "inv-usd")
	suite.Require().NoError(err)
	suite.Equal(int64(141250), result.Lines[0].BaseDebit)
	suite.assertBalanced(result.Lines)
}

func (suite *LedgerServiceTestSuite) TestPostInvoice_ChartNotSeeded() {
	suite.seed(func(ctx context.Context, tx portsrepo.Tx) error {
		return tx.Documents().SaveInvoice(ctx, domain.Invoice{
			InvoiceID: "inv-fresh",
			DocumentHeader: domain.DocumentHeader{
				TenantID: tenantID, EntityID: unseededID, Number: "1", IssueDate: day(2026, 3, 2),
				Currency: "CAD", Subtotal: 1000, Total: 1000, Status: domain.DocSent,
			},
		})
	})

	_, err := suite.svc.DocumentPosting.PostInvoice(suite.ctx, suite.accountant, "inv-fresh")
	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrGLAccountNotFound))
	suite.Contains(err.Error(), "may not be seeded")
}

func (suite *LedgerServiceTestSuite) TestPostInvoice_EntryNumberFollowsLatest() {
	suite.seed(func(ctx context.Context, tx portsrepo.Tx) error {
		return tx.Journals().SaveEntry(ctx, domain.JournalEntry{
			JournalEntryID: "imported", TenantID: tenantID, EntityID: entityID,
			EntryNumber: "IMPORT-0099", Status: domain.Posted,
		})
	})
	suite.seedInvoice("inv-1", domain.DocSent, "CAD", 1000, 0)

	result, err := suite.svc.DocumentPosting.PostInvoice(suite.ctx, suite.accountant, "inv-1")
	suite.Require().NoError(err)
	suite.Equal("JE-100", result.EntryNumber)
}

func (suite *LedgerServiceTestSuite) TestPostInvoice_CacheFailureIsSwallowed() {
	failing := new(MockReportCache)
	failing.On("InvalidateReports", mock.Anything, tenantID, "*").Return(errors.New("redis down")).Once()
	postings := services.NewDocumentPostingService(suite.store, services.WithReportCache(failing))
	suite.seedInvoice("inv-1", domain.DocSent, "CAD", 1000, 0)

	result, err := postings.PostInvoice(suite.ctx, suite.accountant, "inv-1")
	suite.Require().NoError(err)
	suite.NotEmpty(result.JournalEntryID)
	failing.AssertExpectations(suite.T())
}

type panickingCache struct{}

func (panickingCache) InvalidateReports(context.Context, string, string) error {
	panic("cache exploded")
}

func (suite *LedgerServiceTestSuite) TestPostInvoice_CachePanicIsSwallowed() {
	postings := services.NewDocumentPostingService(suite.store, services.WithReportCache(panickingCache{}))
	suite.seedInvoice("inv-1", domain.DocSent, "CAD", 1000, 0)

	suite.NotPanics(func() {
		_, err := postings.PostInvoice(suite.ctx, suite.accountant, "inv-1")
		suite.NoError(err)
	})
}

func (suite *LedgerServiceTestSuite) TestPostBill_LineOverridesAndTax() {
	suite.seedBill(domain.Bill{
		BillID:   "bill-1",
		VendorID: "vendor-1",
		DocumentHeader: domain.DocumentHeader{
			TenantID: tenantID, EntityID: entityID, Number: "B-7", IssueDate: day(2026, 3, 3),
			Currency: "CAD", Subtotal: 50000, TaxAmount: 6500, Total: 56500, Status: domain.DocPending,
		},
		Lines: []domain.DocumentLine{
			{LineID: "l1", Description: "Paper", Amount: 40000, GLAccountID: glID("6100")},
			{LineID: "l2", Description: "Misc", Amount: 10000},
		},
	})

	result, err := suite.svc.DocumentPosting.PostBill(suite.ctx, suite.accountant, "bill-1")
	suite.Require().NoError(err)
	suite.Require().Len(result.Lines, 4)
	suite.Equal(glID("6100"), result.Lines[0].GLAccountID)
	suite.Equal(int64(40000), result.Lines[0].Debit)
	suite.Equal(glID("5000"), result.Lines[1].GLAccountID)
	suite.Equal(int64(10000), result.Lines[1].Debit)
	suite.Equal(glID("2200"), result.Lines[2].GLAccountID)
	suite.Equal(int64(6500), result.Lines[2].Debit)
	suite.Equal(glID("2000"), result.Lines[3].GLAccountID)
	suite.Equal(int64(56500), result.Lines[3].Credit)
	suite.assertBalanced(result.Lines)
}

func (suite *LedgerServiceTestSuite) TestPostBill_CrossEntityLineAccount() {
	suite.seedBill(domain.Bill{
		BillID: "bill-x",
		DocumentHeader: domain.DocumentHeader{
			TenantID: tenantID, EntityID: entityID, Number: "B-8", IssueDate: day(2026, 3, 3),
			Currency: "CAD", Subtotal: 100, Total: 100, Status: domain.DocPending,
		},
		Lines: []domain.DocumentLine{{LineID: "l1", Amount: 100, GLAccountID: "gl-other-6100"}},
	})

	_, err := suite.svc.DocumentPosting.PostBill(suite.ctx, suite.accountant, "bill-x")
	suite.True(errors.Is(err, apperrors.ErrCrossEntityReference))
}

func (suite *LedgerServiceTestSuite) TestPostPaymentAllocation_Receivable() {
	suite.seedInvoice("inv-1", domain.DocSent, "CAD", 100000, 13000)
	suite.seed(func(ctx context.Context, tx portsrepo.Tx) error {
		return tx.Documents().SavePaymentAllocation(ctx, domain.PaymentAllocation{
			AllocationID: "alloc-1", TenantID: tenantID, EntityID: entityID, PaymentID: "pay-1",
			DocumentType: domain.DocumentInvoice, DocumentID: "inv-1",
			Amount: 50000, Currency: "CAD", PaymentDate: day(2026, 3, 5),
		})
	})

	result, err := suite.svc.DocumentPosting.PostPaymentAllocation(suite.ctx, suite.accountant, "alloc-1", "")
	suite.Require().NoError(err)
	suite.Require().Len(result.Lines, 2)
	suite.Equal(glID("1000"), result.Lines[0].GLAccountID)
	suite.Equal(int64(50000), result.Lines[0].Debit)
	suite.Equal(glID("1200"), result.Lines[1].GLAccountID)
	suite.Equal(int64(50000), result.Lines[1].Credit)

	_, err = suite.svc.DocumentPosting.PostPaymentAllocation(suite.ctx, suite.accountant, "alloc-1", "")
	suite.True(errors.Is(err, apperrors.ErrAlreadyPosted))
}

func (suite *LedgerServiceTestSuite) TestPostPaymentAllocation_BankOfOtherEntity() {
	suite.seedBill(domain.Bill{
		BillID: "bill-1",
		DocumentHeader: domain.DocumentHeader{
			TenantID: tenantID, EntityID: entityID, Number: "B-1", IssueDate: day(2026, 3, 3),
			Currency: "CAD", Subtotal: 100, Total: 100, Status: domain.DocPending,
		},
	})
	suite.seed(func(ctx context.Context, tx portsrepo.Tx) error {
		return tx.Documents().SavePaymentAllocation(ctx, domain.PaymentAllocation{
			AllocationID: "alloc-ap", TenantID: tenantID, EntityID: entityID, PaymentID: "pay-2",
			DocumentType: domain.DocumentBill, DocumentID: "bill-1",
			Amount: 100, Currency: "CAD", PaymentDate: day(2026, 3, 5),
		})
	})

	_, err := suite.svc.DocumentPosting.PostPaymentAllocation(suite.ctx, suite.accountant, "alloc-ap", "gl-other-6100")
	suite.True(errors.Is(err, apperrors.ErrCrossEntityReference))

	result, err := suite.svc.DocumentPosting.PostPaymentAllocation(suite.ctx, suite.accountant, "alloc-ap", glID("1000"))
	suite.Require().NoError(err)
	suite.Equal(glID("2000"), result.Lines[0].GLAccountID)
	suite.Equal(glID("1000"), result.Lines[1].GLAccountID)
	suite.Equal(int64(100), result.Lines[1].Credit)
}

func (suite *LedgerServiceTestSuite) TestOpeningBalance_DirectionFollowsAccountType() {
	card := dto.OpeningBalanceInput{
		AccountID: "ba-card", EntityID: entityID, GLAccountID: glID("2100"),
		OpeningBalance: 50000, OpeningBalanceDate: day(2026, 1, 1), AccountType: domain.BankCreditCard,
	}
	result, err := suite.svc.DocumentPosting.RecordOpeningBalance(suite.ctx, suite.owner, card)
	suite.Require().NoError(err)
	suite.Require().Len(result.Lines, 2)
	suite.Equal(glID("3900"), result.Lines[0].GLAccountID)
	suite.Equal(int64(50000), result.Lines[0].Debit)
	suite.Equal(glID("2100"), result.Lines[1].GLAccountID)
	suite.Equal(int64(50000), result.Lines[1].Credit)

	checking := dto.OpeningBalanceInput{
		AccountID: "ba-checking", EntityID: entityID, GLAccountID: glID("1000"),
		OpeningBalance: -25000, OpeningBalanceDate: day(2026, 1, 1), AccountType: domain.BankChecking,
	}
	result, err = suite.svc.DocumentPosting.RecordOpeningBalance(suite.ctx, suite.owner, checking)
	suite.Require().NoError(err)
	suite.Equal(glID("1000"), result.Lines[0].GLAccountID)
	suite.Equal(int64(25000), result.Lines[0].Debit)
	suite.Equal(glID("3900"), result.Lines[1].GLAccountID)

	_, err = suite.svc.DocumentPosting.RecordOpeningBalance(suite.ctx, suite.owner, card)
	suite.True(errors.Is(err, apperrors.ErrAlreadyPosted))
}

func (suite *LedgerServiceTestSuite) TestOpeningBalance_ZeroPostsNothing() {
	input := dto.OpeningBalanceInput{
		AccountID: "ba-savings", EntityID: entityID, GLAccountID: glID("1000"),
		OpeningBalanceDate: day(2026, 1, 1), AccountType: domain.BankSavings,
	}
	result, err := suite.svc.DocumentPosting.RecordOpeningBalance(suite.ctx, suite.owner, input)
	suite.NoError(err)
	suite.Nil(result)
	suite.Empty(suite.store.EntriesForEntity(entityID))
}

func (suite *LedgerServiceTestSuite) TestOpeningBalance_InCallerTransaction() {
	input := dto.OpeningBalanceInput{
		AccountID: "ba-loan", EntityID: entityID, GLAccountID: glID("2100"),
		OpeningBalance: 900000, OpeningBalanceDate: day(2026, 1, 1), AccountType: domain.BankLoan,
	}
	rollback := errors.New("account connection failed")

	err := suite.store.RunSerializable(suite.ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		result, err := suite.svc.DocumentPosting.PostOpeningBalance(ctx, tx, suite.owner, input)
		suite.Require().NoError(err)
		suite.Equal(int64(900000), result.Amount)
		return rollback
	})
	suite.ErrorIs(err, rollback)
	suite.Empty(suite.store.EntriesForEntity(entityID), "entry must roll back with the caller")
}
