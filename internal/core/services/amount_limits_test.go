package services_test

import (
	"errors"
	"math"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	"github.com/SscSPs/ledger_posting_core/internal/dto"
)

func (suite *LedgerServiceTestSuite) TestPostSplitTransaction_WrappingAmountsRejected() {
	suite.seedBankTransaction("txn-wrap", glID("1000"), "CAD", -100, day(2026, 3, 4))

	_, err := suite.svc.TransactionPosting.PostSplitTransaction(suite.ctx, suite.accountant, "txn-wrap", []dto.SplitInput{
		{GLAccountID: glID("6100"), Amount: math.MaxInt64},
		{GLAccountID: glID("6200"), Amount: math.MaxInt64},
		{GLAccountID: glID("5000"), Amount: 102},
	})
	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))

	_, err = suite.svc.TransactionPosting.PostSplitTransaction(suite.ctx, suite.accountant, "txn-wrap", []dto.SplitInput{
		{GLAccountID: glID("6100"), Amount: domain.MaxAmount},
		{GLAccountID: glID("6200"), Amount: domain.MaxAmount},
	})
	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))

	suite.Empty(suite.store.EntriesForEntity(entityID))
	suite.Equal(domain.TxnUnreviewed, suite.loadTransaction("txn-wrap").Status)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_WrappingAmountsRejected() {
	_, err := suite.svc.Journal.CreateEntry(suite.ctx, suite.accountant, entityID, suite.manualEntry(
		debit(glID("6100"), math.MaxInt64),
		debit(glID("6200"), math.MaxInt64),
		debit(glID("5000"), 102),
		credit(glID("2000"), 100),
	))
	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))

	_, err = suite.svc.Journal.CreateEntry(suite.ctx, suite.accountant, entityID, suite.manualEntry(
		debit(glID("6100"), domain.MaxAmount),
		debit(glID("6200"), domain.MaxAmount),
		credit(glID("2000"), domain.MaxAmount),
		credit(glID("2100"), domain.MaxAmount),
	))
	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation), "each side is capped, not only each line")

	suite.Empty(suite.store.EntriesForEntity(entityID))
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_ForeignBaseAmountsCapped() {
	req := suite.manualEntry(
		dto.EntryLineRequest{GLAccountID: glID("6100"), Debit: 1000, BaseDebit: domain.MaxAmount},
		dto.EntryLineRequest{GLAccountID: glID("6200"), Debit: 1000, BaseDebit: domain.MaxAmount},
		dto.EntryLineRequest{GLAccountID: glID("2000"), Credit: 2000, BaseCredit: 1},
	)
	req.Currency = "USD"

	_, err := suite.svc.Journal.CreateEntry(suite.ctx, suite.accountant, entityID, req)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.Empty(suite.store.EntriesForEntity(entityID))
}
