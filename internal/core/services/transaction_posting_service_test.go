package services_test

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	"github.com/SscSPs/ledger_posting_core/internal/dto"
)

func (suite *LedgerServiceTestSuite) TestPostTransaction_SaturdayUsesFridayRate() {
	friday, saturday, monday := day(2026, 3, 6), day(2026, 3, 7), day(2026, 3, 9)
	suite.seedRate("USD", "CAD", "1.35", friday)
	suite.seedRate("USD", "CAD", "1.40", monday)
	suite.seedBankTransaction("txn-1", glID("1000"), "USD", -1000, saturday)

	result, err := suite.svc.TransactionPosting.PostTransaction(suite.ctx, suite.accountant, "txn-1", glID("6100"), nil)
	suite.Require().NoError(err)
	suite.Require().Len(result.Lines, 2)

	expense, bank := result.Lines[0], result.Lines[1]
	suite.Equal(glID("6100"), expense.GLAccountID)
	suite.Equal(int64(1000), expense.Debit)
	suite.Equal(int64(1350), expense.BaseDebit)
	suite.Equal(glID("1000"), bank.GLAccountID)
	suite.Equal(int64(1000), bank.Credit)
	suite.Equal(int64(1350), bank.BaseCredit)
	suite.Require().NotNil(bank.ExchangeRate)
	suite.True(bank.ExchangeRate.Equal(decimal.RequireFromString("1.35")))
	suite.assertBalanced(result.Lines)

	txn := suite.loadTransaction("txn-1")
	suite.Equal(domain.TxnPosted, txn.Status)
	suite.Equal(result.JournalEntryID, txn.JournalEntryID)

	_, err = suite.svc.TransactionPosting.PostTransaction(suite.ctx, suite.accountant, "txn-1", glID("6100"), nil)
	suite.True(errors.Is(err, apperrors.ErrAlreadyPosted))
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_InflowWithManualRate() {
	suite.seedBankTransaction("txn-in", glID("1000"), "USD", 2000, day(2026, 3, 4))
	rate := decimal.RequireFromString("1.5")

	result, err := suite.svc.TransactionPosting.PostTransaction(suite.ctx, suite.accountant, "txn-in", glID("4000"), &rate)
	suite.Require().NoError(err)
	suite.Equal(glID("1000"), result.Lines[0].GLAccountID)
	suite.Equal(int64(3000), result.Lines[0].BaseDebit)
	suite.Equal(glID("4000"), result.Lines[1].GLAccountID)
	suite.Equal(int64(3000), result.Lines[1].BaseCredit)
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_UnmappedBankAccount() {
	suite.seedBankTransaction("txn-unmapped", "", "CAD", -500, day(2026, 3, 4))

	_, err := suite.svc.TransactionPosting.PostTransaction(suite.ctx, suite.accountant, "txn-unmapped", glID("6100"), nil)
	suite.True(errors.Is(err, apperrors.ErrBankAccountNotMapped))
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_CrossEntityTarget() {
	suite.seedBankTransaction("txn-1", glID("1000"), "CAD", -500, day(2026, 3, 4))

	_, err := suite.svc.TransactionPosting.PostTransaction(suite.ctx, suite.accountant, "txn-1", "gl-other-6100", nil)
	suite.True(errors.Is(err, apperrors.ErrCrossEntityReference))
	suite.Equal(domain.TxnUnreviewed, suite.loadTransaction("txn-1").Status)
}

func (suite *LedgerServiceTestSuite) TestPostSplitTransaction_RemainderOnBankLine() {
	suite.seedRate("USD", "CAD", "1.333", day(2026, 3, 2))
	suite.seedBankTransaction("txn-split", glID("1000"), "USD", -999, day(2026, 3, 4))

	splits := []dto.SplitInput{
		{GLAccountID: glID("6100"), Amount: 333, Memo: "paper"},
		{GLAccountID: glID("6200"), Amount: 333, Memo: "lunch"},
		{GLAccountID: glID("5000"), Amount: 333, Memo: "other"},
	}
	result, err := suite.svc.TransactionPosting.PostSplitTransaction(suite.ctx, suite.accountant, "txn-split", splits)
	suite.Require().NoError(err)
	suite.Require().Len(result.Lines, 4)

	var splitBase int64
	for _, l := range result.Lines[:3] {
		suite.Equal(int64(333), l.Debit)
		splitBase += l.BaseDebit
	}
	bank := result.Lines[3]
	suite.Equal(glID("1000"), bank.GLAccountID)
	suite.Equal(int64(999), bank.Credit)
	suite.Equal(int64(1332), bank.BaseCredit)
	suite.Equal(int64(1332), splitBase)
	suite.assertBalanced(result.Lines)

	txn := suite.loadTransaction("txn-split")
	suite.Require().Len(txn.Splits, 3)
	suite.Equal(glID("6200"), txn.Splits[1].GLAccountID)
	suite.Equal(domain.TxnPosted, txn.Status)
}

func (suite *LedgerServiceTestSuite) TestPostSplitTransaction_AmountMismatch() {
	suite.seedBankTransaction("txn-split", glID("1000"), "CAD", -999, day(2026, 3, 4))

	splits := []dto.SplitInput{
		{GLAccountID: glID("6100"), Amount: 333},
		{GLAccountID: glID("6200"), Amount: 333},
		{GLAccountID: glID("5000"), Amount: 300},
	}
	_, err := suite.svc.TransactionPosting.PostSplitTransaction(suite.ctx, suite.accountant, "txn-split", splits)
	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrSplitAmountMismatch))
	suite.Equal(int64(966), apperrors.As(err).Details["splitTotal"])
	suite.Empty(suite.store.EntriesForEntity(entityID))
}

func (suite *LedgerServiceTestSuite) TestPostSplitTransaction_RejectsNonPositiveSplit() {
	suite.seedBankTransaction("txn-split", glID("1000"), "CAD", -100, day(2026, 3, 4))

	_, err := suite.svc.TransactionPosting.PostSplitTransaction(suite.ctx, suite.accountant, "txn-split",
		[]dto.SplitInput{{GLAccountID: glID("6100"), Amount: 0}, {GLAccountID: glID("6200"), Amount: 100}})
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *LedgerServiceTestSuite) TestVoidTransactionEntry_ReturnsTransactionToCategorized() {
	suite.seedBankTransaction("txn-1", glID("1000"), "CAD", -500, day(2026, 3, 4))
	posted, err := suite.svc.TransactionPosting.PostTransaction(suite.ctx, suite.accountant, "txn-1", glID("6100"), nil)
	suite.Require().NoError(err)

	_, err = suite.svc.Journal.VoidEntry(suite.ctx, suite.admin, posted.JournalEntryID)
	suite.Require().NoError(err)

	txn := suite.loadTransaction("txn-1")
	suite.Equal(domain.TxnCategorized, txn.Status)
	suite.Empty(txn.JournalEntryID)

	_, err = suite.svc.TransactionPosting.PostTransaction(suite.ctx, suite.accountant, "txn-1", glID("6200"), nil)
	suite.NoError(err)
}
