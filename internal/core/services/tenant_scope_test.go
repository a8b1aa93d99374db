package services_test

import (
	"context"
	"errors"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_posting_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_posting_core/internal/dto"
)

const (
	foreignTenantID  = "tenant-2"
	foreignEntityID  = "entity-tenant-2"
	foreignAccountID = "gl-tenant2-secret"
	missingAccountID = "gl-does-not-exist"
)

func (suite *LedgerServiceTestSuite) seedForeignTenant() {
	suite.seed(func(ctx context.Context, tx portsrepo.Tx) error {
		if err := tx.Entities().SaveEntity(ctx, domain.Entity{
			EntityID: foreignEntityID, TenantID: foreignTenantID, Name: "Elsewhere Inc", FunctionalCurrency: "CAD", IsActive: true,
		}); err != nil {
			return err
		}
		return tx.Accounts().SaveAccount(ctx, domain.GLAccount{
			GLAccountID: foreignAccountID, EntityID: foreignEntityID, Code: "6100", Name: "Their supplies",
			AccountType: domain.Expense, NormalBalance: domain.NormalDebit, IsActive: true,
		})
	})
}

// Every operation that takes a GL account id must answer the same way for an
// id of another tenant as for an id that does not exist.
func (suite *LedgerServiceTestSuite) TestAccountIDsOfOtherTenantsAreNotFound() {
	suite.seedForeignTenant()

	cases := []struct {
		name string
		call func(accountID string) error
	}{
		{"create entry line", func(accountID string) error {
			_, err := suite.svc.Journal.CreateEntry(suite.ctx, suite.accountant, entityID,
				suite.manualEntry(debit(accountID, 100), credit(glID("2000"), 100)))
			return err
		}},
		{"create account parent", func(accountID string) error {
			_, err := suite.svc.Account.CreateAccount(suite.ctx, suite.admin, entityID, dto.CreateAccountRequest{
				Code: "6190", Name: "Child", AccountType: domain.Expense, ParentID: accountID,
			})
			return err
		}},
		{"transaction target", func(accountID string) error {
			txnID := "txn-target-" + accountID
			suite.seedBankTransaction(txnID, glID("1000"), "CAD", -500, day(2026, 3, 4))
			_, err := suite.svc.TransactionPosting.PostTransaction(suite.ctx, suite.accountant, txnID, accountID, nil)
			return err
		}},
		{"bank account mapping", func(accountID string) error {
			txnID := "txn-mapped-" + accountID
			suite.seedBankTransaction(txnID, accountID, "CAD", -500, day(2026, 3, 4))
			_, err := suite.svc.TransactionPosting.PostTransaction(suite.ctx, suite.accountant, txnID, glID("6100"), nil)
			return err
		}},
		{"split account", func(accountID string) error {
			txnID := "txn-split-" + accountID
			suite.seedBankTransaction(txnID, glID("1000"), "CAD", -500, day(2026, 3, 4))
			_, err := suite.svc.TransactionPosting.PostSplitTransaction(suite.ctx, suite.accountant, txnID,
				[]dto.SplitInput{{GLAccountID: glID("6100"), Amount: 200}, {GLAccountID: accountID, Amount: 300}})
			return err
		}},
		{"bill line override", func(accountID string) error {
			billID := "bill-" + accountID
			suite.seedBill(domain.Bill{
				BillID: billID,
				DocumentHeader: domain.DocumentHeader{
					TenantID: tenantID, EntityID: entityID, Number: "B-" + accountID, IssueDate: day(2026, 3, 3),
					Currency: "CAD", Subtotal: 100, Total: 100, Status: domain.DocPending,
				},
				Lines: []domain.DocumentLine{{LineID: "l1", Amount: 100, GLAccountID: accountID}},
			})
			_, err := suite.svc.DocumentPosting.PostBill(suite.ctx, suite.accountant, billID)
			return err
		}},
		{"invoice line override", func(accountID string) error {
			invoiceID := "inv-" + accountID
			suite.seed(func(ctx context.Context, tx portsrepo.Tx) error {
				return tx.Documents().SaveInvoice(ctx, domain.Invoice{
					InvoiceID: invoiceID,
					DocumentHeader: domain.DocumentHeader{
						TenantID: tenantID, EntityID: entityID, Number: "INV-" + accountID, IssueDate: day(2026, 3, 2),
						Currency: "CAD", Subtotal: 100, Total: 100, Status: domain.DocSent,
					},
					Lines: []domain.DocumentLine{{LineID: "l1", Amount: 100, GLAccountID: accountID}},
				})
			})
			_, err := suite.svc.DocumentPosting.PostInvoice(suite.ctx, suite.accountant, invoiceID)
			return err
		}},
		{"payment bank account", func(accountID string) error {
			invoiceID, allocationID := "inv-paid-"+accountID, "alloc-"+accountID
			suite.seedInvoice(invoiceID, domain.DocSent, "CAD", 1000, 0)
			suite.seed(func(ctx context.Context, tx portsrepo.Tx) error {
				return tx.Documents().SavePaymentAllocation(ctx, domain.PaymentAllocation{
					AllocationID: allocationID, TenantID: tenantID, EntityID: entityID, PaymentID: "pay-" + accountID,
					DocumentType: domain.DocumentInvoice, DocumentID: invoiceID,
					Amount: 1000, Currency: "CAD", PaymentDate: day(2026, 3, 5),
				})
			})
			_, err := suite.svc.DocumentPosting.PostPaymentAllocation(suite.ctx, suite.accountant, allocationID, accountID)
			return err
		}},
		{"opening balance account", func(accountID string) error {
			_, err := suite.svc.DocumentPosting.RecordOpeningBalance(suite.ctx, suite.owner, dto.OpeningBalanceInput{
				AccountID: "ba-ob-" + accountID, EntityID: entityID, GLAccountID: accountID,
				OpeningBalance: 1000, OpeningBalanceDate: day(2026, 1, 1), AccountType: domain.BankChecking,
			})
			return err
		}},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			foreignErr := tc.call(foreignAccountID)
			missingErr := tc.call(missingAccountID)

			suite.Require().Error(foreignErr)
			suite.Require().Error(missingErr)
			suite.True(errors.Is(foreignErr, apperrors.ErrGLAccountNotFound), "got %v", foreignErr)
			suite.True(errors.Is(missingErr, apperrors.ErrGLAccountNotFound), "got %v", missingErr)

			foreign, missing := apperrors.As(foreignErr), apperrors.As(missingErr)
			suite.Equal(missing.Status, foreign.Status)
			suite.Equal(missing.Message, foreign.Message)
		})
	}
	suite.Empty(suite.store.EntriesForEntity(entityID))
	suite.Empty(suite.store.EntriesForEntity(foreignEntityID))
}

func (suite *LedgerServiceTestSuite) TestOtherEntityOfSameTenantIsCrossEntity() {
	suite.seedForeignTenant()

	_, err := suite.svc.Journal.CreateEntry(suite.ctx, suite.accountant, entityID,
		suite.manualEntry(debit("gl-other-6100", 100), credit(glID("2000"), 100)))
	suite.True(errors.Is(err, apperrors.ErrCrossEntityReference))
}
