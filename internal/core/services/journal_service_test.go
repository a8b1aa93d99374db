package services_test

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	"github.com/SscSPs/ledger_posting_core/internal/dto"
)

func (suite *LedgerServiceTestSuite) manualEntry(lines ...dto.EntryLineRequest) dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		EntryDate: day(2026, 3, 5),
		Memo:      "Accrual",
		Lines:     lines,
	}
}

func debit(account string, amount int64) dto.EntryLineRequest {
	return dto.EntryLineRequest{GLAccountID: account, Debit: amount}
}

func credit(account string, amount int64) dto.EntryLineRequest {
	return dto.EntryLineRequest{GLAccountID: account, Credit: amount}
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_IsDraft() {
	result, err := suite.svc.Journal.CreateEntry(suite.ctx, suite.accountant, entityID,
		suite.manualEntry(debit(glID("6100"), 2500), credit(glID("2000"), 2500)))
	suite.Require().NoError(err)
	suite.Equal("JE-001", result.EntryNumber)

	entry, err := suite.svc.Journal.GetEntry(suite.ctx, suite.accountant, result.JournalEntryID)
	suite.Require().NoError(err)
	suite.Equal(domain.Draft, entry.Status)
	suite.Equal("CAD", entry.Currency)
	suite.Equal(suite.accountant.UserID, entry.CreatedBy)
	suite.Len(entry.Lines, 2)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_Unbalanced() {
	_, err := suite.svc.Journal.CreateEntry(suite.ctx, suite.accountant, entityID,
		suite.manualEntry(debit(glID("6100"), 2500), credit(glID("2000"), 2400)))
	suite.True(errors.Is(err, apperrors.ErrUnbalancedEntry))
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_CrossEntityAccount() {
	_, err := suite.svc.Journal.CreateEntry(suite.ctx, suite.accountant, entityID,
		suite.manualEntry(debit("gl-other-6100", 100), credit(glID("2000"), 100)))
	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrCrossEntityReference))
	suite.Empty(suite.store.EntriesForEntity(entityID))
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_ForeignDerivesBase() {
	req := suite.manualEntry(debit(glID("6100"), 1000), credit(glID("2000"), 1000))
	req.Currency = "USD"
	rate := decimal.RequireFromString("1.35")
	req.ExchangeRate = &rate

	result, err := suite.svc.Journal.CreateEntry(suite.ctx, suite.accountant, entityID, req)
	suite.Require().NoError(err)
	suite.Equal(int64(1350), result.Lines[0].BaseDebit)
	suite.Equal(int64(1350), result.Lines[1].BaseCredit)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_ForeignSuppliedBaseMustBalance() {
	req := suite.manualEntry(
		dto.EntryLineRequest{GLAccountID: glID("6100"), Debit: 1000, BaseDebit: 1350},
		dto.EntryLineRequest{GLAccountID: glID("2000"), Credit: 1000, BaseCredit: 1349},
	)
	req.Currency = "USD"

	_, err := suite.svc.Journal.CreateEntry(suite.ctx, suite.accountant, entityID, req)
	suite.True(errors.Is(err, apperrors.ErrUnbalancedEntry))

	req.Lines[1].BaseCredit = 1350
	result, err := suite.svc.Journal.CreateEntry(suite.ctx, suite.accountant, entityID, req)
	suite.Require().NoError(err)
	suite.Require().NotNil(result.Lines[0].ExchangeRate)
	suite.True(result.Lines[0].ExchangeRate.Equal(decimal.RequireFromString("1.35")))
}

func (suite *LedgerServiceTestSuite) TestApproveEntry_SeparationOfDuties() {
	created, err := suite.svc.Journal.CreateEntry(suite.ctx, suite.accountant, entityID,
		suite.manualEntry(debit(glID("6100"), 2500), credit(glID("2000"), 2500)))
	suite.Require().NoError(err)

	_, err = suite.svc.Journal.ApproveEntry(suite.ctx, suite.accountant, created.JournalEntryID)
	suite.True(errors.Is(err, apperrors.ErrSeparationOfDuties))

	approved, err := suite.svc.Journal.ApproveEntry(suite.ctx, suite.admin, created.JournalEntryID)
	suite.Require().NoError(err)
	suite.Equal(domain.Posted, approved.Status)
	suite.Equal(suite.admin.UserID, approved.ApprovedBy)

	_, err = suite.svc.Journal.ApproveEntry(suite.ctx, suite.admin, created.JournalEntryID)
	suite.True(errors.Is(err, apperrors.ErrAlreadyPosted))
}

func (suite *LedgerServiceTestSuite) TestApproveEntry_OwnerMaySelfApprove() {
	created, err := suite.svc.Journal.CreateEntry(suite.ctx, suite.owner, entityID,
		suite.manualEntry(debit(glID("6100"), 2500), credit(glID("2000"), 2500)))
	suite.Require().NoError(err)

	approved, err := suite.svc.Journal.ApproveEntry(suite.ctx, suite.owner, created.JournalEntryID)
	suite.Require().NoError(err)
	suite.Equal(domain.Posted, approved.Status)
}

func (suite *LedgerServiceTestSuite) TestApproveEntry_FiscalPeriodLocked() {
	created, err := suite.svc.Journal.CreateEntry(suite.ctx, suite.accountant, entityID,
		suite.manualEntry(debit(glID("6100"), 2500), credit(glID("2000"), 2500)))
	suite.Require().NoError(err)
	suite.seedPeriod(domain.PeriodLocked)

	_, err = suite.svc.Journal.ApproveEntry(suite.ctx, suite.admin, created.JournalEntryID)
	suite.True(errors.Is(err, apperrors.ErrFiscalPeriodClosed))
}

func (suite *LedgerServiceTestSuite) TestVoidEntry_SingleUseExactSwap() {
	suite.seedInvoice("inv-1", domain.DocSent, "CAD", 100000, 13000)
	posted, err := suite.svc.DocumentPosting.PostInvoice(suite.ctx, suite.accountant, "inv-1")
	suite.Require().NoError(err)

	reversal, err := suite.svc.Journal.VoidEntry(suite.ctx, suite.admin, posted.JournalEntryID)
	suite.Require().NoError(err)
	suite.Equal("JE-002", reversal.EntryNumber)
	suite.Require().Len(reversal.Lines, len(posted.Lines))
	for i := range posted.Lines {
		suite.Equal(posted.Lines[i].GLAccountID, reversal.Lines[i].GLAccountID)
		suite.Equal(posted.Lines[i].Debit, reversal.Lines[i].Credit)
		suite.Equal(posted.Lines[i].Credit, reversal.Lines[i].Debit)
	}

	original, err := suite.svc.Journal.GetEntry(suite.ctx, suite.admin, posted.JournalEntryID)
	suite.Require().NoError(err)
	suite.Equal(domain.Voided, original.Status)

	rev, err := suite.svc.Journal.GetEntry(suite.ctx, suite.admin, reversal.JournalEntryID)
	suite.Require().NoError(err)
	suite.Require().NotNil(rev.LinkedEntryID)
	suite.Equal(posted.JournalEntryID, *rev.LinkedEntryID)
	suite.Equal(original.EntryDate, rev.EntryDate)

	_, err = suite.svc.Journal.VoidEntry(suite.ctx, suite.admin, posted.JournalEntryID)
	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrAlreadyVoided))
	suite.Contains(err.Error(), "already has a reversal")

	_, err = suite.svc.Journal.VoidEntry(suite.ctx, suite.admin, reversal.JournalEntryID)
	suite.True(errors.Is(err, apperrors.ErrImmutablePostedEntry))

	_, err = suite.svc.DocumentPosting.PostInvoice(suite.ctx, suite.accountant, "inv-1")
	suite.NoError(err, "a voided posting frees the source for re-posting")
}

func (suite *LedgerServiceTestSuite) TestVoidEntry_DraftCannotBeVoided() {
	created, err := suite.svc.Journal.CreateEntry(suite.ctx, suite.accountant, entityID,
		suite.manualEntry(debit(glID("6100"), 2500), credit(glID("2000"), 2500)))
	suite.Require().NoError(err)

	_, err = suite.svc.Journal.VoidEntry(suite.ctx, suite.admin, created.JournalEntryID)
	suite.True(errors.Is(err, apperrors.ErrInvalidStatusTransition))
}

func (suite *LedgerServiceTestSuite) TestVoidEntry_FiscalPeriodClosed() {
	suite.seedInvoice("inv-1", domain.DocSent, "CAD", 1000, 0)
	posted, err := suite.svc.DocumentPosting.PostInvoice(suite.ctx, suite.accountant, "inv-1")
	suite.Require().NoError(err)
	suite.seedPeriod(domain.PeriodClosed)

	_, err = suite.svc.Journal.VoidEntry(suite.ctx, suite.admin, posted.JournalEntryID)
	suite.True(errors.Is(err, apperrors.ErrFiscalPeriodClosed))
}

func (suite *LedgerServiceTestSuite) TestDeleteEntry_DraftOnly() {
	draft, err := suite.svc.Journal.CreateEntry(suite.ctx, suite.accountant, entityID,
		suite.manualEntry(debit(glID("6100"), 2500), credit(glID("2000"), 2500)))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.svc.Journal.DeleteEntry(suite.ctx, suite.accountant, draft.JournalEntryID))

	_, err = suite.svc.Journal.GetEntry(suite.ctx, suite.accountant, draft.JournalEntryID)
	suite.True(errors.Is(err, apperrors.ErrNotFound))

	suite.seedInvoice("inv-1", domain.DocSent, "CAD", 1000, 0)
	posted, err := suite.svc.DocumentPosting.PostInvoice(suite.ctx, suite.accountant, "inv-1")
	suite.Require().NoError(err)
	suite.Equal("JE-002", posted.EntryNumber, "deleted drafts keep their number")

	err = suite.svc.Journal.DeleteEntry(suite.ctx, suite.admin, posted.JournalEntryID)
	suite.True(errors.Is(err, apperrors.ErrImmutablePostedEntry))
}
