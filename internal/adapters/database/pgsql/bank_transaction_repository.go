package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	"github.com/SscSPs/ledger_posting_core/internal/models"
	"github.com/SscSPs/ledger_posting_core/internal/utils/mapping"
)

type bankTransactionRepository struct {
	q querier
}

func (r *bankTransactionRepository) FindTransactionByID(ctx context.Context, tenantID, transactionID string) (*domain.BankTransaction, error) {
	query := `
		SELECT transaction_id, tenant_id, entity_id, bank_account_id, txn_date, amount, currency, description,
		       status, journal_entry_id, created_at, created_by, last_updated_at, last_updated_by
		FROM bank_transactions
		WHERE transaction_id = $1 AND tenant_id = $2
		FOR UPDATE;
	`
	var m models.BankTransaction
	err := r.q.QueryRow(ctx, query, transactionID, tenantID).Scan(
		&m.TransactionID,
		&m.TenantID,
		&m.EntityID,
		&m.BankAccountID,
		&m.TxnDate,
		&m.Amount,
		&m.Currency,
		&m.Description,
		&m.Status,
		&m.JournalEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrNotFound.WithDetail("transactionID", transactionID), "failed to find bank transaction "+transactionID)
	}

	rows, err := r.q.Query(ctx, `
		SELECT split_id, transaction_id, gl_account_id, amount, memo
		FROM transaction_splits
		WHERE transaction_id = $1
		ORDER BY split_no;
	`, transactionID)
	if err != nil {
		return nil, translate(err, "failed to query splits for bank transaction "+transactionID)
	}
	defer rows.Close()

	var splits []models.TransactionSplit
	for rows.Next() {
		var s models.TransactionSplit
		if err := rows.Scan(&s.SplitID, &s.TransactionID, &s.GLAccountID, &s.Amount, &s.Memo); err != nil {
			return nil, translate(err, "failed to scan split row for bank transaction "+transactionID)
		}
		splits = append(splits, s)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "error iterating split rows for bank transaction "+transactionID)
	}

	txn := mapping.ToDomainBankTransaction(m, splits)
	return &txn, nil
}

func (r *bankTransactionRepository) FindBankAccountByID(ctx context.Context, tenantID, bankAccountID string) (*domain.BankAccount, error) {
	query := `
		SELECT bank_account_id, tenant_id, entity_id, name, account_type, currency, gl_account_id
		FROM bank_accounts
		WHERE bank_account_id = $1 AND tenant_id = $2;
	`
	var m models.BankAccount
	err := r.q.QueryRow(ctx, query, bankAccountID, tenantID).Scan(
		&m.BankAccountID,
		&m.TenantID,
		&m.EntityID,
		&m.Name,
		&m.AccountType,
		&m.Currency,
		&m.GLAccountID,
	)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrNotFound.WithDetail("bankAccountID", bankAccountID), "failed to find bank account "+bankAccountID)
	}
	acc := mapping.ToDomainBankAccount(m)
	return &acc, nil
}

func (r *bankTransactionRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)
	query := `
		INSERT INTO bank_accounts (bank_account_id, tenant_id, entity_id, name, account_type, currency, gl_account_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (bank_account_id) DO UPDATE SET
			name = EXCLUDED.name, account_type = EXCLUDED.account_type, gl_account_id = EXCLUDED.gl_account_id;
	`
	_, err := r.q.Exec(ctx, query, m.BankAccountID, m.TenantID, m.EntityID, m.Name, m.AccountType, m.Currency, m.GLAccountID)
	return translate(err, "failed to save bank account "+m.BankAccountID)
}

func (r *bankTransactionRepository) SaveTransaction(ctx context.Context, txn domain.BankTransaction) error {
	m := mapping.ToModelBankTransaction(txn)
	query := `
		INSERT INTO bank_transactions (transaction_id, tenant_id, entity_id, bank_account_id, txn_date, amount, currency,
		                               description, status, journal_entry_id,
		                               created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (transaction_id) DO UPDATE SET
			description = EXCLUDED.description, status = EXCLUDED.status,
			last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.q.Exec(ctx, query,
		m.TransactionID, m.TenantID, m.EntityID, m.BankAccountID, m.TxnDate, m.Amount, m.Currency,
		m.Description, m.Status, m.JournalEntryID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translate(err, "failed to save bank transaction "+m.TransactionID)
	}
	if len(txn.Splits) == 0 {
		return nil
	}
	return r.ReplaceSplits(ctx, txn.TransactionID, txn.Splits)
}

func (r *bankTransactionRepository) LinkJournalEntry(ctx context.Context, transactionID, journalEntryID string, status domain.TransactionStatus, userID string, now time.Time) error {
	query := `
		UPDATE bank_transactions
		SET journal_entry_id = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1;
	`
	tag, err := r.q.Exec(ctx, query, transactionID, mapping.NullableString(journalEntryID), string(status), now, userID)
	if err != nil {
		return translate(err, "failed to link bank transaction "+transactionID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound.WithDetail("transactionID", transactionID)
	}
	return nil
}

func (r *bankTransactionRepository) ReplaceSplits(ctx context.Context, transactionID string, splits []domain.TransactionSplit) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM transaction_splits WHERE transaction_id = $1;`, transactionID)
	for i, split := range splits {
		s := mapping.ToModelTransactionSplit(split)
		batch.Queue(`
			INSERT INTO transaction_splits (split_id, transaction_id, split_no, gl_account_id, amount, memo)
			VALUES ($1, $2, $3, $4, $5, $6);`,
			s.SplitID, transactionID, i+1, s.GLAccountID, s.Amount, s.Memo,
		)
	}
	return translate(r.q.SendBatch(ctx, batch).Close(), "failed to replace splits of bank transaction "+transactionID)
}
