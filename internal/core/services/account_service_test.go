package services_test

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	"github.com/SscSPs/ledger_posting_core/internal/dto"
)

func (suite *LedgerServiceTestSuite) TestCreateAccount_DerivesNormalBalance() {
	acc, err := suite.svc.Account.CreateAccount(suite.ctx, suite.admin, entityID, dto.CreateAccountRequest{
		Code: "4100", Name: "Consulting revenue", AccountType: domain.Income, ParentID: glID("4000"),
	})
	suite.Require().NoError(err)
	suite.Equal(domain.NormalCredit, acc.NormalBalance)
	suite.True(acc.IsActive)

	found, err := suite.svc.Account.GetAccountByID(suite.ctx, suite.admin, entityID, acc.GLAccountID)
	suite.Require().NoError(err)
	suite.Equal("4100", found.Code)
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_DuplicateCode() {
	_, err := suite.svc.Account.CreateAccount(suite.ctx, suite.admin, entityID, dto.CreateAccountRequest{
		Code: "1000", Name: "Another bank", AccountType: domain.Asset,
	})
	suite.True(errors.Is(err, apperrors.ErrDuplicateAccountCode))
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_ParentInOtherEntity() {
	_, err := suite.svc.Account.CreateAccount(suite.ctx, suite.admin, entityID, dto.CreateAccountRequest{
		Code: "6110", Name: "Toner", AccountType: domain.Expense, ParentID: "gl-other-6100",
	})
	suite.True(errors.Is(err, apperrors.ErrCrossEntityReference))
}

func (suite *LedgerServiceTestSuite) TestDeactivateAccount_BlockedByDraftLines() {
	draft, err := suite.svc.Journal.CreateEntry(suite.ctx, suite.accountant, entityID,
		suite.manualEntry(debit(glID("6200"), 800), credit(glID("2000"), 800)))
	suite.Require().NoError(err)

	err = suite.svc.Account.DeactivateAccount(suite.ctx, suite.admin, entityID, glID("6200"))
	suite.True(errors.Is(err, apperrors.ErrGLAccountInactive))

	suite.Require().NoError(suite.svc.Journal.DeleteEntry(suite.ctx, suite.accountant, draft.JournalEntryID))
	suite.Require().NoError(suite.svc.Account.DeactivateAccount(suite.ctx, suite.admin, entityID, glID("6200")))

	_, err = suite.svc.Journal.CreateEntry(suite.ctx, suite.accountant, entityID,
		suite.manualEntry(debit(glID("6200"), 800), credit(glID("2000"), 800)))
	suite.True(errors.Is(err, apperrors.ErrGLAccountNotFound), "inactive accounts cannot receive lines")
}

func (suite *LedgerServiceTestSuite) TestExchangeRate_CreateAndResolve() {
	_, err := suite.svc.ExchangeRate.CreateExchangeRate(suite.ctx, suite.admin, dto.CreateExchangeRateRequest{
		BaseCurrency: "EUR", QuoteCurrency: "CAD", Rate: decimal.RequireFromString("1.48"), RateDate: day(2026, 3, 6),
	})
	suite.Require().NoError(err)

	rate, err := suite.svc.ExchangeRate.GetRate(suite.ctx, "eur", "cad", "2026-03-08")
	suite.Require().NoError(err)
	suite.True(rate.Rate.Equal(decimal.RequireFromString("1.48")))

	_, err = suite.svc.ExchangeRate.GetRate(suite.ctx, "EUR", "CAD", "2026-03-05")
	suite.True(errors.Is(err, apperrors.ErrMissingFXRate))

	_, err = suite.svc.ExchangeRate.CreateExchangeRate(suite.ctx, suite.admin, dto.CreateExchangeRateRequest{
		BaseCurrency: "EUR", QuoteCurrency: "CAD", Rate: decimal.RequireFromString("-1"), RateDate: day(2026, 3, 6),
	})
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *LedgerServiceTestSuite) seedPendingBill(id string) {
	suite.seedBill(domain.Bill{
		BillID: id,
		DocumentHeader: domain.DocumentHeader{
			TenantID: tenantID, EntityID: entityID, Number: "B-" + id,
			IssueDate: day(2026, 2, 1), DueDate: day(2026, 3, 1),
			Currency: "CAD", Subtotal: 50000, TaxAmount: 6500, Total: 56500, Status: domain.DocPending,
		},
	})
}

func (suite *LedgerServiceTestSuite) TestBillPayment_ExceedingBalanceLeavesBillUntouched() {
	suite.seedPendingBill("bill-1")

	_, err := suite.svc.Document.ApplyBillPayment(suite.ctx, suite.accountant, "bill-1", 60000)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "exceed balance")

	bill, err := suite.svc.Document.ApplyBillPayment(suite.ctx, suite.accountant, "bill-1", 20000)
	suite.Require().NoError(err)
	suite.Equal(int64(20000), bill.PaidAmount, "the rejected payment must not have been applied")
	suite.Equal(domain.DocPartiallyPaid, bill.Status)

	bill, err = suite.svc.Document.ApplyBillPayment(suite.ctx, suite.accountant, "bill-1", 36500)
	suite.Require().NoError(err)
	suite.Equal(domain.DocPaid, bill.Status)
}

func (suite *LedgerServiceTestSuite) TestBillPayment_ReversalPastDueIsOverdue() {
	suite.seedPendingBill("bill-1")

	_, err := suite.svc.Document.ApplyBillPayment(suite.ctx, suite.accountant, "bill-1", 10000)
	suite.Require().NoError(err)

	bill, err := suite.svc.Document.ReverseBillPayment(suite.ctx, suite.accountant, "bill-1", 15000)
	suite.Require().NoError(err)
	suite.Equal(int64(0), bill.PaidAmount)
	suite.Equal(domain.DocOverdue, bill.Status)

	audit := suite.store.AuditRecords()
	suite.Require().Len(audit, 2)
	suite.Equal(string(domain.DocumentBill), audit[1].Model)
}

func (suite *LedgerServiceTestSuite) TestInvoiceLifecycle_TransitionAndCancel() {
	suite.seedInvoice("inv-1", domain.DocDraft, "CAD", 1000, 0)

	_, err := suite.svc.Document.TransitionInvoice(suite.ctx, suite.accountant, "inv-1", domain.DocPaid)
	suite.True(errors.Is(err, apperrors.ErrInvalidStatusTransition))

	inv, err := suite.svc.Document.TransitionInvoice(suite.ctx, suite.accountant, "inv-1", domain.DocSent)
	suite.Require().NoError(err)
	suite.Equal(domain.DocSent, inv.Status)

	_, err = suite.svc.Document.ApplyInvoicePayment(suite.ctx, suite.accountant, "inv-1", 100)
	suite.Require().NoError(err)
	_, err = suite.svc.Document.CancelInvoice(suite.ctx, suite.accountant, "inv-1")
	suite.True(errors.Is(err, apperrors.ErrInvalidStatusTransition))

	suite.seedInvoice("inv-2", domain.DocSent, "CAD", 1000, 0)
	inv, err = suite.svc.Document.CancelInvoice(suite.ctx, suite.accountant, "inv-2")
	suite.Require().NoError(err)
	suite.Equal(domain.DocCancelled, inv.Status)

	_, err = suite.svc.DocumentPosting.PostInvoice(suite.ctx, suite.accountant, "inv-2")
	suite.True(errors.Is(err, apperrors.ErrInvalidStatusTransition), "cancelled invoices never post")
}
