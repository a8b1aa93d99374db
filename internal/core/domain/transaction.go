package domain

import "time"

// TransactionStatus is the review state of an imported bank transaction.
type TransactionStatus string

const (
	TxnUnreviewed  TransactionStatus = "UNREVIEWED"
	TxnCategorized TransactionStatus = "CATEGORIZED"
	TxnPosted      TransactionStatus = "POSTED"
	TxnExcluded    TransactionStatus = "EXCLUDED"
)

// BankAccountType classifies a bank or card account feeding transactions.
type BankAccountType string

const (
	BankChecking   BankAccountType = "CHECKING"
	BankSavings    BankAccountType = "SAVINGS"
	BankCash       BankAccountType = "CASH"
	BankCreditCard BankAccountType = "CREDIT_CARD"
	BankLoan       BankAccountType = "LOAN"
	BankMortgage   BankAccountType = "MORTGAGE"
)

// IsCreditNormal reports whether a positive opening balance of this account
// type is a liability (credit) rather than an asset (debit).
func (t BankAccountType) IsCreditNormal() bool {
	switch t {
	case BankCreditCard, BankLoan, BankMortgage:
		return true
	}
	return false
}

// BankAccount is a feed account mapped to a GL account of its entity.
type BankAccount struct {
	BankAccountID string          `json:"bankAccountID"`
	TenantID      string          `json:"tenantID"`
	EntityID      string          `json:"entityID"`
	Name          string          `json:"name"`
	AccountType   BankAccountType `json:"accountType"`
	Currency      string          `json:"currency"`
	GLAccountID   string          `json:"glAccountID"` // empty when not mapped
}

// BankTransaction is a single feed line. Amount is signed: negative is an
// outflow (money leaving the bank), positive an inflow.
type BankTransaction struct {
	TransactionID  string             `json:"transactionID"`
	TenantID       string             `json:"tenantID"`
	EntityID       string             `json:"entityID"`
	BankAccountID  string             `json:"bankAccountID"`
	TxnDate        time.Time          `json:"txnDate"`
	Amount         int64              `json:"amount"`
	Currency       string             `json:"currency"`
	Description    string             `json:"description"`
	Status         TransactionStatus  `json:"status"`
	JournalEntryID string             `json:"journalEntryID,omitempty"`
	Splits         []TransactionSplit `json:"splits,omitempty"`
	AuditFields
}

// IsOutflow reports whether money leaves the bank account.
func (t BankTransaction) IsOutflow() bool {
	return t.Amount < 0
}

// TransactionSplit assigns part of a transaction to a category account.
type TransactionSplit struct {
	SplitID       string `json:"splitID"`
	TransactionID string `json:"transactionID"`
	GLAccountID   string `json:"glAccountID"` // resolved account, written back on posting
	Amount        int64  `json:"amount"`      // positive minor units
	Memo          string `json:"memo,omitempty"`
}
