package mapping

import (
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	"github.com/SscSPs/ledger_posting_core/internal/models"
)

// ToModelBankAccount converts a domain BankAccount to a model BankAccount
func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID: d.BankAccountID,
		TenantID:      d.TenantID,
		EntityID:      d.EntityID,
		Name:          d.Name,
		AccountType:   string(d.AccountType),
		Currency:      d.Currency,
		GLAccountID:   NullableString(d.GLAccountID),
	}
}

// ToDomainBankAccount converts a model BankAccount to a domain BankAccount
func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID: m.BankAccountID,
		TenantID:      m.TenantID,
		EntityID:      m.EntityID,
		Name:          m.Name,
		AccountType:   domain.BankAccountType(m.AccountType),
		Currency:      m.Currency,
		GLAccountID:   StringValue(m.GLAccountID),
	}
}

// ToModelBankTransaction converts a domain BankTransaction to a model BankTransaction
func ToModelBankTransaction(d domain.BankTransaction) models.BankTransaction {
	return models.BankTransaction{
		TransactionID:  d.TransactionID,
		TenantID:       d.TenantID,
		EntityID:       d.EntityID,
		BankAccountID:  d.BankAccountID,
		TxnDate:        domain.DateOnly(d.TxnDate),
		Amount:         d.Amount,
		Currency:       d.Currency,
		Description:    d.Description,
		Status:         string(d.Status),
		JournalEntryID: NullableString(d.JournalEntryID),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankTransaction converts a model BankTransaction and its splits to a domain BankTransaction
func ToDomainBankTransaction(m models.BankTransaction, splits []models.TransactionSplit) domain.BankTransaction {
	d := domain.BankTransaction{
		TransactionID:  m.TransactionID,
		TenantID:       m.TenantID,
		EntityID:       m.EntityID,
		BankAccountID:  m.BankAccountID,
		TxnDate:        domain.DateOnly(m.TxnDate),
		Amount:         m.Amount,
		Currency:       m.Currency,
		Description:    m.Description,
		Status:         domain.TransactionStatus(m.Status),
		JournalEntryID: StringValue(m.JournalEntryID),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	for _, s := range splits {
		d.Splits = append(d.Splits, ToDomainTransactionSplit(s))
	}
	return d
}

// ToModelTransactionSplit converts a domain TransactionSplit to a model TransactionSplit
func ToModelTransactionSplit(d domain.TransactionSplit) models.TransactionSplit {
	return models.TransactionSplit{
		SplitID:       d.SplitID,
		TransactionID: d.TransactionID,
		GLAccountID:   NullableString(d.GLAccountID),
		Amount:        d.Amount,
		Memo:          d.Memo,
	}
}

// ToDomainTransactionSplit converts a model TransactionSplit to a domain TransactionSplit
func ToDomainTransactionSplit(m models.TransactionSplit) domain.TransactionSplit {
	return domain.TransactionSplit{
		SplitID:       m.SplitID,
		TransactionID: m.TransactionID,
		GLAccountID:   StringValue(m.GLAccountID),
		Amount:        m.Amount,
		Memo:          m.Memo,
	}
}
