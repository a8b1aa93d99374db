package models

import "time"

// BankAccount is a row of bank_accounts.
type BankAccount struct {
	BankAccountID string  `db:"bank_account_id"`
	TenantID      string  `db:"tenant_id"`
	EntityID      string  `db:"entity_id"`
	Name          string  `db:"name"`
	AccountType   string  `db:"account_type"`
	Currency      string  `db:"currency"`
	GLAccountID   *string `db:"gl_account_id"` // NULL until mapped
}

// BankTransaction is a row of bank_transactions. Amount is signed: negative is an outflow.
type BankTransaction struct {
	TransactionID  string    `db:"transaction_id"`
	TenantID       string    `db:"tenant_id"`
	EntityID       string    `db:"entity_id"`
	BankAccountID  string    `db:"bank_account_id"`
	TxnDate        time.Time `db:"txn_date"`
	Amount         int64     `db:"amount"`
	Currency       string    `db:"currency"`
	Description    string    `db:"description"`
	Status         string    `db:"status"`
	JournalEntryID *string   `db:"journal_entry_id"`
	AuditFields
}

// TransactionSplit is a row of transaction_splits.
type TransactionSplit struct {
	SplitID       string  `db:"split_id"`
	TransactionID string  `db:"transaction_id"`
	GLAccountID   *string `db:"gl_account_id"`
	Amount        int64   `db:"amount"`
	Memo          string  `db:"memo"`
}
